package tabular_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/veneer/pkg/tabular"
)

func namedCol(w tabular.Width, header string) tabular.Column {
	c := col(w)
	c.Header = header
	return c
}

func TestTableLightBorder(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(4), "Name"),
		namedCol(tabular.Fixed(3), "Age"),
	}, tabular.TableOptions{Border: tabular.BorderLight, Header: true})

	assert.Equal(t, "┌──────┬─────┐", tbl.TopBorder())
	assert.Equal(t, "│ Name │ Age │", tbl.HeaderRow())
	assert.Equal(t, "├──────┼─────┤", tbl.SeparatorRow())
	assert.Equal(t, "│ Bob  │ 42  │", tbl.Row([]any{"Bob", 42}))
	assert.Equal(t, "└──────┴─────┘", tbl.BottomBorder())
}

func TestTableAsciiBorder(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(4), "Name"),
	}, tabular.TableOptions{Border: tabular.BorderAscii})

	assert.Equal(t, "+------+", tbl.TopBorder())
	assert.Equal(t, "| Bob  |", tbl.Row([]any{"Bob"}))
	assert.Equal(t, "+------+", tbl.BottomBorder())
}

func TestTableRoundedCorners(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(2), "ID"),
	}, tabular.TableOptions{Border: tabular.BorderRounded})

	assert.Equal(t, "╭────╮", tbl.TopBorder())
	assert.Equal(t, "╰────╯", tbl.BottomBorder())
}

func TestTableNoBorder(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(4), "Name"),
		namedCol(tabular.Fixed(3), "Age"),
	}, tabular.TableOptions{Header: true})

	assert.Equal(t, "", tbl.TopBorder())
	assert.Equal(t, "", tbl.SeparatorRow())
	assert.Equal(t, "Name Age", tbl.HeaderRow())
	assert.Equal(t, "Bob  42 ", tbl.Row([]any{"Bob", 42}))
}

func TestTableHeaderStyle(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(4), "Name"),
	}, tabular.TableOptions{Header: true, HeaderStyle: "header"})

	assert.Equal(t, "[header]Name[/header]", tbl.HeaderRow())
}

func TestTableRenderAll(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(4), "Name"),
		namedCol(tabular.Fixed(3), "Age"),
	}, tabular.TableOptions{Border: tabular.BorderLight, Header: true})

	got := tbl.RenderAll([]any{
		[]any{"Bob", 42},
		[]any{"Ada", 36},
	})

	want := strings.Join([]string{
		"┌──────┬─────┐",
		"│ Name │ Age │",
		"├──────┼─────┤",
		"│ Bob  │ 42  │",
		"│ Ada  │ 36  │",
		"└──────┴─────┘",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTableRenderAllRowSeparator(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(2), "A"),
	}, tabular.TableOptions{Border: tabular.BorderLight, RowSeparator: true})

	got := tbl.RenderAll([]any{[]any{"x"}, []any{"y"}})

	want := strings.Join([]string{
		"┌────┐",
		"│ x  │",
		"├────┤",
		"│ y  │",
		"└────┘",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTableRenderAllFromObjects(t *testing.T) {
	name := namedCol(tabular.Fixed(4), "Name")
	name.Key = "name"
	tbl := tabular.NewTable([]tabular.Column{name}, tabular.TableOptions{})

	got := tbl.RenderAll([]any{
		map[string]any{"name": "Bob"},
		map[string]any{"name": "Ada"},
	})
	assert.Equal(t, "Bob \nAda ", got)
}

func TestTableRenderAllSizesBoundedFromContent(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Bounded(0, 0), "Name"),
	}, tabular.TableOptions{Border: tabular.BorderLight, Header: true})

	got := tbl.RenderAll([]any{[]any{"Gertrude"}})

	want := strings.Join([]string{
		"┌──────────┐",
		"│ Name     │",
		"├──────────┤",
		"│ Gertrude │",
		"└──────────┘",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTableRenderAllEmpty(t *testing.T) {
	tbl := tabular.NewTable([]tabular.Column{
		namedCol(tabular.Fixed(2), "A"),
	}, tabular.TableOptions{Border: tabular.BorderLight, Header: true})

	got := tbl.RenderAll(nil)
	want := strings.Join([]string{
		"┌────┐",
		"│ A  │",
		"├────┤",
		"└────┘",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestParseBorder(t *testing.T) {
	for name, want := range map[string]tabular.BorderStyle{
		"":        tabular.BorderNone,
		"none":    tabular.BorderNone,
		"ascii":   tabular.BorderAscii,
		"light":   tabular.BorderLight,
		"heavy":   tabular.BorderHeavy,
		"double":  tabular.BorderDouble,
		"rounded": tabular.BorderRounded,
	} {
		got, err := tabular.ParseBorder(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "border %q", name)
	}

	_, err := tabular.ParseBorder("dotted")
	assert.Error(t, err)
}

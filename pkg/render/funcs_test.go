package render_test

import (
	"io"
	"strings"
	"testing"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/veneer/pkg/render"
	"github.com/arthur-debert/veneer/pkg/style"
)

func testResolved(t *testing.T) *style.Resolved {
	t.Helper()
	reg := style.NewRegistry()
	reg.Add("bold", style.Style{Bold: true})
	reg.Add("red", style.Style{Foreground: "#ff0000"})
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.TrueColor)
	res, err := reg.Resolve(style.WithRenderer(lr))
	require.NoError(t, err)
	return res
}

func runTemplate(t *testing.T, src string, data any, mode render.Mode) string {
	t.Helper()
	out, err := execTemplate(t, src, data, mode)
	require.NoError(t, err)
	return out
}

func execTemplate(t *testing.T, src string, data any, mode render.Mode) (string, error) {
	t.Helper()
	tpl, err := template.New("t").Funcs(render.FuncMap(testResolved(t), mode, 30)).Parse(src)
	require.NoError(t, err)
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func TestStyleFuncByMode(t *testing.T) {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.TrueColor)
	wantBold := lr.NewStyle().Bold(true).Render("hi")

	assert.Equal(t, wantBold, runTemplate(t, `{{ style "hi" "bold" }}`, nil, render.Term))
	assert.Equal(t, "hi", runTemplate(t, `{{ style "hi" "bold" }}`, nil, render.Text))
	assert.Equal(t, "[bold]hi[/bold]", runTemplate(t, `{{ style "hi" "bold" }}`, nil, render.TermDebug))
}

func TestStyleFuncUnknownName(t *testing.T) {
	assert.Equal(t, "(!?) hi", runTemplate(t, `{{ style "hi" "nope" }}`, nil, render.Term))
	assert.Equal(t, "(!?) hi", runTemplate(t, `{{ style "hi" "nope" }}`, nil, render.Text))
}

func TestStyleAsFunc(t *testing.T) {
	assert.Equal(t, "[ok]v[/ok]", runTemplate(t, `{{ style_as "v" "ok" }}`, nil, render.Term))
	assert.Equal(t, "v", runTemplate(t, `{{ style_as "v" "" }}`, nil, render.Term))
}

func TestNlFunc(t *testing.T) {
	assert.Equal(t, "a\n", runTemplate(t, `{{ nl "a" }}`, nil, render.Text))
	assert.Equal(t, "\n", runTemplate(t, `{{ nl }}`, nil, render.Text))
}

func TestColFunc(t *testing.T) {
	assert.Equal(t, "hello   ", runTemplate(t, `{{ col "hello" 8 }}`, nil, render.Text))
	assert.Equal(t, "   hi", runTemplate(t, `{{ col "hi" 5 "right" }}`, nil, render.Text))
	assert.Equal(t, "Hello W…", runTemplate(t, `{{ col "Hello World" 8 }}`, nil, render.Text))
	assert.Equal(t, "…o World", runTemplate(t, `{{ col "Hello World" 8 "left" "start" }}`, nil, render.Text))
}

func TestColFuncFill(t *testing.T) {
	out := runTemplate(t, `{{ col "x" "fill" }}`, nil, render.Text)
	assert.Equal(t, "x"+strings.Repeat(" ", 29), out)
}

func TestColFuncInvalidAlign(t *testing.T) {
	_, err := execTemplate(t, `{{ col "x" 5 "diagonal" }}`, nil, render.Text)
	assert.Error(t, err)
}

func TestPadFuncs(t *testing.T) {
	assert.Equal(t, "  hi", runTemplate(t, `{{ pad_left "hi" 4 }}`, nil, render.Text))
	assert.Equal(t, "hi  ", runTemplate(t, `{{ pad_right "hi" 4 }}`, nil, render.Text))
	assert.Equal(t, " hi ", runTemplate(t, `{{ pad_center "hi" 4 }}`, nil, render.Text))
}

func TestTruncateAtFunc(t *testing.T) {
	assert.Equal(t, "Hello W…", runTemplate(t, `{{ truncate_at "Hello World" 8 }}`, nil, render.Text))
	assert.Equal(t, "Hell…orld", runTemplate(t, `{{ truncate_at "Hello World" 9 "middle" }}`, nil, render.Text))
	assert.Equal(t, "Hello...", runTemplate(t, `{{ truncate_at "Hello World" 8 "end" "..." }}`, nil, render.Text))
}

func TestDisplayWidthFunc(t *testing.T) {
	assert.Equal(t, "3", runTemplate(t, `{{ display_width "[bold]abc[/bold]" }}`, nil, render.Text))
	assert.Equal(t, "4", runTemplate(t, `{{ display_width "日本" }}`, nil, render.Text))
}

func TestTabularGlobal(t *testing.T) {
	data := map[string]any{
		"cols": []any{5, 5},
		"vals": []any{"a", "b"},
	}
	out := runTemplate(t, `{{ (tabular .cols).Row .vals }}`, data, render.Text)
	assert.Equal(t, "a     b    ", out)
}

func TestTabularGlobalSeparator(t *testing.T) {
	data := map[string]any{
		"cols": []any{3, 3},
		"vals": []any{"a", "b"},
	}
	out := runTemplate(t, `{{ (tabular .cols " | ").Row .vals }}`, data, render.Text)
	assert.Equal(t, "a   | b  ", out)
}

func TestTabularGlobalWidths(t *testing.T) {
	data := map[string]any{"cols": []any{4, "fill"}}
	out := runTemplate(t, `{{ (tabular .cols (dict "width" 20)).Widths }}`, data, render.Text)
	assert.Equal(t, "[4 15]", out)
}

func TestTableGlobal(t *testing.T) {
	data := map[string]any{
		"cols": []any{
			map[string]any{"width": 4, "header": "Name"},
		},
	}
	src := `{{ $t := table .cols (dict "border" "light" "header" true) }}{{ $t.TopBorder }}
{{ $t.HeaderRow }}`
	out := runTemplate(t, src, data, render.Text)
	assert.Equal(t, "┌──────┐\n│ Name │", out)
}

func TestTableGlobalUnknownOption(t *testing.T) {
	data := map[string]any{"cols": []any{4}}
	_, err := execTemplate(t, `{{ table .cols (dict "frame" "light") }}`, data, render.Text)
	assert.Error(t, err)
}

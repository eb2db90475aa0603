package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/veneer/pkg/render"
	"github.com/arthur-debert/veneer/pkg/tabular"
)

func TestSerializeJsonPretty(t *testing.T) {
	out, err := render.Serialize(map[string]any{"msg": "hello"}, render.Json, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"msg\": \"hello\"\n}", out)
}

func TestSerializeJsonStructKeys(t *testing.T) {
	type report struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	out, err := render.Serialize(report{Name: "backup", Count: 3}, render.Json, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "\"name\": \"backup\"")
	assert.Contains(t, out, "\"count\": 3")
}

func TestSerializeYaml(t *testing.T) {
	out, err := render.Serialize(map[string]any{"name": "x", "count": 2}, render.Yaml, nil)
	require.NoError(t, err)
	assert.Equal(t, "count: 2\nname: x", out)
}

func TestSerializeXml(t *testing.T) {
	data := map[string]any{
		"name": "bob",
		"tags": []string{"a", "b"},
	}
	out, err := render.Serialize(data, render.Xml, nil)
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "<?xml")
	assert.Contains(t, out, "<result>")
	assert.Contains(t, out, "</result>")
	assert.Contains(t, out, "<name>bob</name>")
	assert.Contains(t, out, "<item>a</item>")
	assert.Contains(t, out, "<item>b</item>")
}

func TestSerializeXmlScalar(t *testing.T) {
	out, err := render.Serialize("done", render.Xml, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "<result>done</result>")
}

func TestSerializeCsvFlattensDottedPaths(t *testing.T) {
	data := map[string]any{
		"ok": true,
		"user": map[string]any{
			"name": "bob",
			"age":  42,
		},
	}
	out, err := render.Serialize(data, render.Csv, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok,user.age,user.name\ntrue,42,bob", out)
}

func TestSerializeCsvListOfObjects(t *testing.T) {
	data := []map[string]any{
		{"name": "bob", "age": 42},
		{"name": "ada"},
	}
	out, err := render.Serialize(data, render.Csv, nil)
	require.NoError(t, err)
	assert.Equal(t, "age,name\n42,bob\n,ada", out)
}

func TestSerializeCsvWithSpec(t *testing.T) {
	spec := []tabular.Column{
		{Header: "Name", Key: "name"},
		{Header: "Age", Key: "age"},
	}
	data := []map[string]any{
		{"name": "bob", "age": 42, "extra": "dropped"},
		{"name": "ada", "age": 36},
	}
	out, err := render.Serialize(data, render.Csv, spec)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age\nbob,42\nada,36", out)
}

func TestSerializeCsvSpecDottedKey(t *testing.T) {
	spec := []tabular.Column{
		{Header: "User", Key: "user.name"},
	}
	data := map[string]any{"user": map[string]any{"name": "bob"}}
	out, err := render.Serialize(data, render.Csv, spec)
	require.NoError(t, err)
	assert.Equal(t, "User\nbob", out)
}

func TestSerializeCsvScalar(t *testing.T) {
	out, err := render.Serialize("hi", render.Csv, nil)
	require.NoError(t, err)
	assert.Equal(t, "value\nhi", out)
}

func TestSerializeCsvQuotesCommas(t *testing.T) {
	out, err := render.Serialize(map[string]any{"msg": "a,b"}, render.Csv, nil)
	require.NoError(t, err)
	assert.Equal(t, "msg\n\"a,b\"", out)
}

func TestSerializeRejectsTextModes(t *testing.T) {
	_, err := render.Serialize(map[string]any{}, render.Term, nil)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	type inner struct {
		Value int `json:"value"`
	}
	norm, err := render.Normalize(inner{Value: 7})
	require.NoError(t, err)
	m, ok := norm.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), m["value"])

	norm, err = render.Normalize(nil)
	require.NoError(t, err)
	assert.Nil(t, norm)
}

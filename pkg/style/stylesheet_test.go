package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/style"
	"github.com/arthur-debert/veneer/pkg/testutil"
)

const sampleSheet = `
styles:
  header: {bold: true, foreground: "#212529"}
  muted: {dim: true, foreground: "#6C757D"}
  banner: {bold: true, force: true}
  ok: {alias: success}
  success: {bold: true, foreground: "#28A745"}
light:
  header: {bold: true, foreground: "#111111"}
dark:
  header: {bold: true, foreground: "#F8F9FA"}
`

func TestParseStylesheet(t *testing.T) {
	theme, err := style.ParseStylesheet("sample", []byte(sampleSheet))
	require.NoError(t, err)
	assert.Equal(t, "sample", theme.Name)

	entry, ok := theme.Base.Get("header")
	require.True(t, ok)
	assert.True(t, entry.Style.Bold)
	assert.Equal(t, "#212529", entry.Style.Foreground)

	entry, ok = theme.Base.Get("ok")
	require.True(t, ok)
	assert.Equal(t, "success", entry.Alias)

	entry, ok = theme.Base.Get("banner")
	require.True(t, ok)
	assert.True(t, entry.Style.Force)

	entry, ok = theme.Dark.Get("header")
	require.True(t, ok)
	assert.Equal(t, "#F8F9FA", entry.Style.Foreground)

	require.NoError(t, theme.Validate())
}

func TestParseStylesheetInvalidYAML(t *testing.T) {
	_, err := style.ParseStylesheet("broken", []byte("styles: [not, a, map]"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadStylesheet(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "ocean.yaml", sampleSheet)

		theme, err := style.LoadStylesheet(path)
		require.NoError(t, err)
		assert.Equal(t, "ocean", theme.Name, "theme named after the file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := style.LoadStylesheet("/does/not/exist.yaml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFilesystemRead))
	})
}

func TestEmbeddedDefaultTheme(t *testing.T) {
	theme := style.DefaultTheme()
	require.NotNil(t, theme)
	assert.Equal(t, style.DefaultThemeName, theme.Name)
	require.NoError(t, theme.Validate())

	res, err := theme.Resolve(style.ColorDark, style.WithRenderer(testRenderer()))
	require.NoError(t, err)

	// The names templates lean on must exist in the default theme
	for _, name := range []string{
		"bold", "dim", "italic", "underline",
		"success", "error", "warning", "info", "muted",
		"header", "subheader", "label", "value",
		"code", "path", "ok", "fail",
	} {
		_, ok := res.Lookup(name)
		assert.True(t, ok, "default theme missing %q", name)
	}
}

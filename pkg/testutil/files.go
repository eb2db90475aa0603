package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree materializes files under a fresh temp directory and
// returns its root. Keys are slash-separated relative paths.
func WriteTree(tb testing.TB, files map[string]string) string {
	tb.Helper()
	dir := tb.TempDir()
	for name, content := range files {
		WriteFile(tb, dir, name, content)
	}
	return dir
}

// WriteFile writes one file under dir, creating parent directories,
// and returns its full path.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/veneer/pkg/errors"
)

const generatedHeader = `# veneer configuration
#
# Uncomment a value to override the built-in default. Environment
# variables override this file: VENEER_THEME, VENEER_LOG__LEVEL,
# VENEER_TEMPLATES__DEV_RELOAD and so on; a double underscore
# separates sections.

`

// GenerateDefault returns the default configuration rendered as TOML
// with every value commented out, ready to drop into ConfigFile().
func GenerateDefault() (string, error) {
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "marshalling default configuration")
	}
	return generatedHeader + commentValues(string(data)), nil
}

// commentValues comments out every assignment line, leaving blank
// lines, section headers, and existing comments untouched.
func commentValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

// WriteDefault writes the commented default configuration to path,
// creating parent directories. An existing file is never overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "configuration file %s already exists", path)
	}

	content, err := GenerateDefault()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "writing %s", path)
	}
	return nil
}

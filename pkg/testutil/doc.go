// Package testutil provides shared fixtures for testing veneer
// components.
//
// Key components:
//   - Theme: a small fixture theme for render-path tests
//   - TrueColor/Ascii: lipgloss renderers pinned to a color profile,
//     so styled expectations never depend on the test terminal
//   - Bold/Fg: the exact styled bytes an expectation should contain
//   - WriteTree/WriteFile: temp-dir file trees for registry and
//     configuration tests
//
// All test data should be defined inline, not in external files, and
// every tree lands under the test's own temp directory.
package testutil

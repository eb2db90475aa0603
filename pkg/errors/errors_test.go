// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/veneer/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "template not found",
			wantStr: "[NOT_FOUND] template not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid column spec",
			wantStr: "[INVALID_INPUT] invalid column spec",
		},
		{
			name:    "alias_cycle_error",
			code:    errors.ErrAliasCycle,
			message: "style alias cycle detected",
			wantStr: "[ALIAS_CYCLE] style alias cycle detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		format  string
		args    []interface{}
		wantMsg string
	}{
		{
			name:    "format_with_string",
			code:    errors.ErrTemplateNotFound,
			format:  "no template named %q",
			args:    []interface{}{"greeting"},
			wantMsg: `no template named "greeting"`,
		},
		{
			name:    "format_with_multiple_args",
			code:    errors.ErrTemplateCollision,
			format:  "template %s defined in %s and %s",
			args:    []interface{}{"status", "a/", "b/"},
			wantMsg: "template status defined in a/ and b/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.Newf(tt.code, tt.format, tt.args...)

			if err.Message != tt.wantMsg {
				t.Errorf("Newf() message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("read failed")

	err := errors.Wrap(base, errors.ErrFilesystemRead, "loading template dir")
	if err == nil {
		t.Fatal("Wrap() returned nil for non-nil error")
	}

	if err.Code != errors.ErrFilesystemRead {
		t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrFilesystemRead)
	}

	if !stderrors.Is(err, base) {
		t.Error("wrapped error should match errors.Is on the base error")
	}

	if got := err.Error(); got != "[FILESYSTEM_READ] loading template dir: read failed" {
		t.Errorf("Error() = %q", got)
	}

	if errors.Wrap(nil, errors.ErrInternal, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	base := stderrors.New("boom")
	err := errors.Wrapf(base, errors.ErrRender, "rendering %s", "status.tmpl")

	if err.Message != "rendering status.tmpl" {
		t.Errorf("Wrapf() message = %q", err.Message)
	}
	if stderrors.Unwrap(err) != base {
		t.Error("Unwrap() should return the base error")
	}

	if errors.Wrapf(nil, errors.ErrRender, "ignored %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrDanglingAlias, "alias target missing").
		WithDetail("alias", "ok").
		WithDetail("target", "success")

	if err.Details["alias"] != "ok" {
		t.Errorf("Details[alias] = %v, want ok", err.Details["alias"])
	}
	if err.Details["target"] != "success" {
		t.Errorf("Details[target] = %v, want success", err.Details["target"])
	}

	err = err.WithDetails(map[string]interface{}{"chain": "ok -> success"})
	if err.Details["chain"] != "ok -> success" {
		t.Errorf("Details[chain] = %v", err.Details["chain"])
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{
			name: "matching_code",
			err:  errors.New(errors.ErrDuplicateCommand, "path registered twice"),
			code: errors.ErrDuplicateCommand,
			want: true,
		},
		{
			name: "non_matching_code",
			err:  errors.New(errors.ErrDuplicateCommand, "path registered twice"),
			code: errors.ErrCommandConflict,
			want: false,
		},
		{
			name: "wrapped_veneer_error",
			err:  errors.Wrap(errors.New(errors.ErrThemeNotFound, "no such theme"), errors.ErrThemeNotFound, "loading library"),
			code: errors.ErrThemeNotFound,
			want: true,
		},
		{
			name: "plain_error",
			err:  stderrors.New("plain"),
			code: errors.ErrInternal,
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			code: errors.ErrInternal,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrHook, "pre_dispatch failed")); got != errors.ErrHook {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrHook)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestErrorsIsAcrossCodes(t *testing.T) {
	a := errors.New(errors.ErrAliasCycle, "first")
	b := errors.New(errors.ErrAliasCycle, "second")
	c := errors.New(errors.ErrDanglingAlias, "other")

	if !stderrors.Is(a, b) {
		t.Error("errors with the same code should satisfy errors.Is")
	}
	if stderrors.Is(a, c) {
		t.Error("errors with different codes should not satisfy errors.Is")
	}
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Style and theme errors
	ErrAliasCycle    ErrorCode = "ALIAS_CYCLE"
	ErrDanglingAlias ErrorCode = "DANGLING_ALIAS"
	ErrThemeNotFound ErrorCode = "THEME_NOT_FOUND"
	ErrUnknownTag    ErrorCode = "UNKNOWN_TAG"

	// Template errors
	ErrTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateCollision ErrorCode = "TEMPLATE_COLLISION"
	ErrFilesystemRead    ErrorCode = "FILESYSTEM_READ"

	// Rendering errors
	ErrRender ErrorCode = "RENDER"
	ErrHook   ErrorCode = "HOOK"

	// Command registration and dispatch errors
	ErrDuplicateCommand  ErrorCode = "DUPLICATE_COMMAND"
	ErrCommandConflict   ErrorCode = "COMMAND_CONFLICT"
	ErrInvalidSubcommand ErrorCode = "INVALID_SUBCOMMAND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// VeneerError represents a structured error with code and details
type VeneerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VeneerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VeneerError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VeneerError) Is(target error) bool {
	var targetErr *VeneerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VeneerError with the given code and message
func New(code ErrorCode, message string) *VeneerError {
	return &VeneerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VeneerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VeneerError {
	return &VeneerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VeneerError
func Wrap(err error, code ErrorCode, message string) *VeneerError {
	if err == nil {
		return nil
	}
	return &VeneerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VeneerError {
	if err == nil {
		return nil
	}
	return &VeneerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VeneerError) WithDetail(key string, value interface{}) *VeneerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *VeneerError) WithDetails(details map[string]interface{}) *VeneerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var veneerErr *VeneerError
	if errors.As(err, &veneerErr) {
		return veneerErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VeneerError
func GetErrorCode(err error) ErrorCode {
	var veneerErr *VeneerError
	if errors.As(err, &veneerErr) {
		return veneerErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VeneerError
func GetErrorDetails(err error) map[string]interface{} {
	var veneerErr *VeneerError
	if errors.As(err, &veneerErr) {
		return veneerErr.Details
	}
	return nil
}

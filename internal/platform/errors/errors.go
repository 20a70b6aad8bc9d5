package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/message"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for user-facing text
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata for user-facing text.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// UserMessage renders err for a client. Domain errors are prefixed with their
// code and translated with p through the "error.<CODE>" message key, falling
// back to the internal message. Metadata is appended in key order. Anything
// else is reported as an unexpected failure so internal details stay in logs.
func UserMessage(p *message.Printer, err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("%s: %s", CodeUnknown, translate(p, CodeUnknown, "an unexpected error occurred"))
	}
	text := fmt.Sprintf("%s: %s", e.Code, translate(p, e.Code, e.Message))
	if len(e.Metadata) == 0 {
		return text
	}
	keys := make([]string, 0, len(e.Metadata))
	for key := range e.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+e.Metadata[key])
	}
	return text + " (" + strings.Join(parts, ", ") + ")"
}

// MessageKey returns the translation key for a code.
func MessageKey(code Code) string {
	return "error." + string(code)
}

func translate(p *message.Printer, code Code, fallback string) string {
	if p == nil {
		return fallback
	}
	key := MessageKey(code)
	if text := p.Sprintf(key); text != key {
		return text
	}
	return fallback
}

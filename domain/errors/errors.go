// Package errors provides domain-specific error types for the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
)

var (
	// ErrNotBuilt reports that no native library was linked into the binary.
	ErrNotBuilt = stdErrors.New("native library not built into this binary")

	// ErrClientClosed is returned by every client call after Close.
	ErrClientClosed = stdErrors.New("client is closed")

	// ErrNilHandle is returned when the library hands back a null client.
	ErrNilHandle = stdErrors.New("library returned a nil client handle")

	// ErrProjectNotFound is returned when a fixture references an unknown project.
	ErrProjectNotFound = stdErrors.New("project not found")

	// ErrMissingEnv is returned when a required environment variable is unset.
	ErrMissingEnv = stdErrors.New("missing environment variable")
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can describe themselves as
// an ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail("internal", err.Error())
}

// AuthError is an authentication or execution failure reported while logging
// in. Err carries the inner cause, if any.
type AuthError struct {
	Err     error
	Message string
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *AuthError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail("auth", e.Message).WithCode("accessTokenLogin")
	if e.Err != nil {
		detail.Wrapped = ToErrorDetail(e.Err)
	}
	return detail
}

// CommandError is a command the library ran but answered with success=false.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("command %s failed", e.Command)
	}
	return fmt.Sprintf("command %s failed: %s", e.Command, e.Message)
}

// ToErrorDetail implements DetailedError.
func (e *CommandError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("command", e.Message).WithCode(e.Command)
}

// LibraryError is a failure of the library entry point itself, as opposed to a
// command the library answered.
type LibraryError struct {
	Err       error
	Operation string
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("library %s failed: %v", e.Operation, e.Err)
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *LibraryError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("library", e.Error()).WithCode(e.Operation)
}

// ConfigError represents a configuration or environment problem.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("config", e.Error()).WithCode(e.Field)
}

// ValidationError is one failed constraint on a request field.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failed constraint of a request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

// ToErrorDetail implements DetailedError.
func (e ValidationErrors) ToErrorDetail() *entities.ErrorDetail {
	fields := make(map[string]any, len(e))
	for _, ve := range e {
		fields[ve.Field] = ve.Tag
	}
	return entities.NewErrorDetail("validation", e.Error()).WithDetails(fields)
}

// SchemaError represents a schema generation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).WithCode("schema")
}

// WireFormatError represents a wire format encoding/decoding error.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("wire_format", e.Error()).WithCode(e.Operation)
}

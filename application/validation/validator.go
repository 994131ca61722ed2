// Package validation checks request structs before they cross the library
// boundary, so malformed IDs fail fast with field-level errors instead of an
// opaque library message.
package validation

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
)

// StructValidator implements ports.RequestValidator with go-playground/validator.
type StructValidator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() ports.RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &StructValidator{validate: v}
}

// Validate checks v against its `validate` tags. Nested request structs are
// checked when their pointer is non-nil.
func (s *StructValidator) Validate(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := make(sdkerrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, sdkerrors.ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the root type name: "Command.projects.create.name" -> "projects.create.name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return fmt.Sprintf("must be a valid UUID, got %q", fe.Value())
	case "url":
		return fmt.Sprintf("must be a valid URL, got %q", fe.Value())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

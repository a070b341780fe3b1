package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// Stable issue codes. Consumers match on these, so they never change.
const (
	CodeInvalidType          = "invalid_type"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeInvalidString        = "invalid_string"
	CodeInvalidEnumValue     = "invalid_enum_value"
	CodeInvalidLiteral       = "invalid_literal"
	CodeInvalidDiscriminator = "invalid_union_discriminator"
	CodeInvalidDate          = "invalid_date"
	CodeUnrecognizedKeys     = "unrecognized_keys"
	CodeUnknown              = "unknown_error"
	CodeFile                 = "file_error"
	CodeCustom               = "custom"
)

// RootField is the synthetic field used for failures that belong to no
// particular field.
const RootField = "root"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Value   any    `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.AddCode(field, CodeCustom, msg, nil)
}

func (e *ValidationError) AddCode(field, code, msg string, value any) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
		Code:    code,
		Value:   value,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// Unknown wraps an unexpected failure as the single root error.
func Unknown(msg string, value any) FieldError {
	return FieldError{
		Field:   RootField,
		Message: msg,
		Code:    CodeUnknown,
		Value:   value,
	}
}

// Package validate checks raw content records against the category schemas
// and reports every violation as field-level data. Nothing here returns a
// Go error or panics for malformed input.
package validate

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/schema"
	"fmt"
)

type Result[T any] struct {
	Valid  bool                   `json:"valid"`
	Errors []domainerr.FieldError `json:"errors"`
	Data   T                      `json:"data,omitempty"`
}

type ContentResult = Result[content.AnyContent]

func ok[T any](data T) Result[T] {
	return Result[T]{Valid: true, Errors: []domainerr.FieldError{}, Data: data}
}

func fail[T any](errs []domainerr.FieldError) Result[T] {
	return Result[T]{Valid: false, Errors: errs}
}

// guard converts a panic below it into the single root error.
func guard[T any](res *Result[T], raw any) {
	if rec := recover(); rec != nil {
		*res = fail[T]([]domainerr.FieldError{
			domainerr.Unknown(fmt.Sprintf("Unexpected validation error: %v", rec), raw),
		})
	}
}

// ValidateContent checks raw against the union of all categories.
func ValidateContent(raw any) (res ContentResult) {
	defer guard(&res, raw)

	v := schema.Normalize(raw)
	if issues := schema.Check(schema.AnyContent, v); len(issues) > 0 {
		return fail[content.AnyContent](issues)
	}
	m, _ := schema.AsMap(v)
	cat, _ := content.ParseCategory(m["category"].(string))
	return ok(schema.Decode(cat, m))
}

// ValidateContentByType checks raw against exactly one category. An
// unrecognized expected type fails on the category field.
func ValidateContentByType(raw any, expected string) (res ContentResult) {
	defer guard(&res, raw)

	cat, known := content.ParseCategory(expected)
	if !known {
		return fail[content.AnyContent]([]domainerr.FieldError{{
			Field:   "category",
			Message: "Unknown content type: " + expected,
			Code:    domainerr.CodeInvalidEnumValue,
			Value:   expected,
		}})
	}
	obj, _ := schema.ForCategory(cat)
	v := schema.Normalize(raw)
	if issues := schema.Check(obj, v); len(issues) > 0 {
		return fail[content.AnyContent](issues)
	}
	m, _ := schema.AsMap(v)
	return ok(schema.Decode(cat, m))
}

func ValidateBlogPost(raw any) ContentResult {
	return ValidateContentByType(raw, string(content.CategoryBlog))
}

func ValidateHubContent(raw any) ContentResult {
	return ValidateContentByType(raw, string(content.CategoryHub))
}

func ValidateSpokeContent(raw any) ContentResult {
	return ValidateContentByType(raw, string(content.CategorySpoke))
}

func ValidateGuideContent(raw any) ContentResult {
	return ValidateContentByType(raw, string(content.CategoryGuide))
}

func ValidateDocumentationContent(raw any) ContentResult {
	return ValidateContentByType(raw, string(content.CategoryDocumentation))
}

func ValidateFAQContent(raw any) ContentResult {
	return ValidateContentByType(raw, string(content.CategoryFAQ))
}

// DetectContentType reads only the category field. The second return is
// false when it is absent or not a known tag.
func DetectContentType(raw any) (content.Category, bool) {
	m, isMap := schema.AsMap(raw)
	if !isMap {
		return "", false
	}
	s, _ := m["category"].(string)
	return content.ParseCategory(s)
}

// HasRequiredFields is a presence check only: values are not inspected
// beyond comparing the category tag.
func HasRequiredFields(raw any, category content.Category) bool {
	m, isMap := schema.AsMap(raw)
	if !isMap {
		return false
	}
	for _, key := range schema.Required {
		if _, present := m[key]; !present {
			return false
		}
	}
	tag, _ := m["category"].(string)
	return tag == string(category)
}

func IsValidContent(raw any) bool {
	return ValidateContent(raw).Valid
}

// SafeParseContent returns the validated record, else the first fallback,
// else nil.
func SafeParseContent(raw any, fallback ...any) any {
	if res := ValidateContent(raw); res.Valid {
		return res.Data
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return nil
}

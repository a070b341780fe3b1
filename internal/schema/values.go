package schema

import (
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"encoding/json"
	"math"
	"reflect"
	"time"
)

type report struct {
	issues []domainerr.FieldError
}

func (r *report) add(path, code, msg string, v any) {
	if path == "" {
		path = domainerr.RootField
	}
	r.issues = append(r.issues, domainerr.FieldError{
		Field:   path,
		Message: msg,
		Code:    code,
		Value:   v,
	})
}

// Check validates v against t and returns the issues in schema order.
// A nil result means v conforms.
func Check(t Type, v any) []domainerr.FieldError {
	var r report
	t.check(&r, "", Normalize(v))
	return r.issues
}

// Normalize converts typed records into the key-value shape the validators
// read. Other values pass through unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case content.AnyContent:
		if c := content.Deref(x); c != nil {
			return map[string]any(content.ToFrontmatter(c))
		}
		return nil
	case content.Frontmatter:
		return map[string]any(x)
	}
	return v
}

// AsMap returns v as a string-keyed map when it has that shape.
func AsMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, x != nil
	case content.Frontmatter:
		return map[string]any(x), x != nil
	case map[string]string:
		if x == nil {
			return nil, false
		}
		out := make(map[string]any, len(x))
		for k, s := range x {
			out[k] = s
		}
		return out, true
	case content.AnyContent:
		if c := content.Deref(x); c != nil {
			return map[string]any(content.ToFrontmatter(c)), true
		}
		return nil, false
	case content.SEO:
		return seoMap(x), true
	case *content.SEO:
		if x == nil {
			return nil, false
		}
		return seoMap(*x), true
	}
	return nil, false
}

func seoMap(s content.SEO) map[string]any {
	m := map[string]any{}
	if s.MetaTitle != "" {
		m["metaTitle"] = s.MetaTitle
	}
	if s.MetaDescription != "" {
		m["metaDescription"] = s.MetaDescription
	}
	if s.CanonicalURL != "" {
		m["canonicalUrl"] = s.CanonicalURL
	}
	if s.OGImage != "" {
		m["ogImage"] = s.OGImage
	}
	if s.TwitterCard != "" {
		m["twitterCard"] = string(s.TwitterCard)
	}
	return m
}

func asSlice(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		if x == nil {
			return []any{}, true
		}
		return x, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, true
	}
	// a typed nil slice is an empty array; only an untyped nil is null
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsNumber reports v as a float when it is any Go numeric kind or a
// json.Number. NaN is not a number here.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case float64:
		return n, !math.IsNaN(n)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// typeName names a value the way error messages expect.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case time.Time, *time.Time:
		return "date"
	}
	if _, ok := AsNumber(v); ok {
		return "number"
	}
	if _, ok := AsMap(v); ok {
		return "object"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Float32, reflect.Float64:
		return "nan"
	}
	return "unknown"
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

package schema

import (
	domainerr "contentkit/internal/domain/errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Type is one composable validator. check appends every violated constraint
// to the report; it never stops at the first one.
type Type interface {
	check(r *report, path string, v any)
	jsonSchema() map[string]any
}

// Field is one key of an Object. Required overrides the message used when
// a non-optional key is missing.
type Field struct {
	Name     string
	Type     Type
	Optional bool
	Required string
}

type Object struct {
	Fields []Field
	Strict bool
}

func (o Object) check(r *report, path string, v any) {
	m, ok := AsMap(v)
	if !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected object, received "+typeName(v), v)
		return
	}
	for _, f := range o.Fields {
		fv, present := m[f.Name]
		p := join(path, f.Name)
		if !present {
			if !f.Optional {
				msg := f.Required
				if msg == "" {
					msg = "Required"
				}
				r.add(p, domainerr.CodeInvalidType, msg, nil)
			}
			continue
		}
		f.Type.check(r, p, fv)
	}
	if o.Strict {
		for _, k := range o.unknownKeys(m) {
			r.add(join(path, k), domainerr.CodeUnrecognizedKeys,
				fmt.Sprintf("Unrecognized key(s) in object: '%s'", k), m[k])
		}
	}
}

func (o Object) unknownKeys(m map[string]any) []string {
	known := make(map[string]struct{}, len(o.Fields))
	for _, f := range o.Fields {
		known[f.Name] = struct{}{}
	}
	var out []string
	for k := range m {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FieldNames lists the declared keys in order.
func (o Object) FieldNames() []string {
	out := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		out[i] = f.Name
	}
	return out
}

// Extend returns a copy of o with more fields appended.
func (o Object) Extend(fields ...Field) Object {
	out := Object{Strict: o.Strict}
	out.Fields = append(append(out.Fields, o.Fields...), fields...)
	return out
}

type Pattern struct {
	Re  *regexp.Regexp
	Msg string
}

// String checks run in order min, max, patterns, url and all of them report.
type String struct {
	Min      int
	Max      int
	MinMsg   string
	MaxMsg   string
	Patterns []Pattern
	URL      bool
	URLMsg   string
	// AllowRootPath also accepts site-relative paths such as "/images/a.png"
	// where URL is set.
	AllowRootPath bool
}

func (s String) check(r *report, path string, v any) {
	str, ok := v.(string)
	if !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected string, received "+typeName(v), v)
		return
	}
	n := utf8.RuneCountInString(str)
	if s.Min > 0 && n < s.Min {
		r.add(path, domainerr.CodeTooSmall, orDefault(s.MinMsg,
			fmt.Sprintf("String must contain at least %d character(s)", s.Min)), v)
	}
	if s.Max > 0 && n > s.Max {
		r.add(path, domainerr.CodeTooBig, orDefault(s.MaxMsg,
			fmt.Sprintf("String must contain at most %d character(s)", s.Max)), v)
	}
	for _, p := range s.Patterns {
		if !p.Re.MatchString(str) {
			r.add(path, domainerr.CodeInvalidString, orDefault(p.Msg, "Invalid"), v)
		}
	}
	if s.URL && !isURL(str) && !(s.AllowRootPath && isRootPath(str)) {
		r.add(path, domainerr.CodeInvalidString, orDefault(s.URLMsg, "Invalid url"), v)
	}
}

func isURL(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

func isRootPath(s string) bool {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
		return false
	}
	_, err := url.Parse(s)
	return err == nil && !strings.ContainsAny(s, " \t\n")
}

// Date accepts time.Time values only. Strings are never coerced here.
type Date struct {
	InvalidMsg string
}

func (d Date) check(r *report, path string, v any) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			r.add(path, domainerr.CodeInvalidDate, "Invalid date", v)
		}
	case *time.Time:
		if t == nil {
			r.add(path, domainerr.CodeInvalidType, orDefault(d.InvalidMsg, "Expected date, received null"), v)
		} else if t.IsZero() {
			r.add(path, domainerr.CodeInvalidDate, "Invalid date", v)
		}
	default:
		r.add(path, domainerr.CodeInvalidType, orDefault(d.InvalidMsg, "Expected date, received "+typeName(v)), v)
	}
}

type Bool struct{}

func (Bool) check(r *report, path string, v any) {
	if _, ok := v.(bool); !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected boolean, received "+typeName(v), v)
	}
}

type Number struct {
	Int    bool
	Min    *float64
	Max    *float64
	IntMsg string
	MinMsg string
	MaxMsg string
}

func (n Number) check(r *report, path string, v any) {
	f, ok := AsNumber(v)
	if !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected number, received "+typeName(v), v)
		return
	}
	if n.Int && f != math.Trunc(f) {
		r.add(path, domainerr.CodeInvalidType, orDefault(n.IntMsg, "Expected integer, received float"), v)
	}
	if n.Min != nil && f < *n.Min {
		r.add(path, domainerr.CodeTooSmall, orDefault(n.MinMsg,
			fmt.Sprintf("Number must be greater than or equal to %s", formatNum(*n.Min))), v)
	}
	if n.Max != nil && f > *n.Max {
		r.add(path, domainerr.CodeTooBig, orDefault(n.MaxMsg,
			fmt.Sprintf("Number must be less than or equal to %s", formatNum(*n.Max))), v)
	}
}

type Enum struct {
	Values []string
}

func (e Enum) check(r *report, path string, v any) {
	s, ok := v.(string)
	if !ok {
		r.add(path, domainerr.CodeInvalidType,
			fmt.Sprintf("Expected %s, received %s", quoteJoin(e.Values), typeName(v)), v)
		return
	}
	for _, allowed := range e.Values {
		if s == allowed {
			return
		}
	}
	r.add(path, domainerr.CodeInvalidEnumValue,
		fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quoteJoin(e.Values), s), v)
}

type Literal struct {
	Value string
}

func (l Literal) check(r *report, path string, v any) {
	if s, ok := v.(string); ok && s == l.Value {
		return
	}
	r.add(path, domainerr.CodeInvalidLiteral,
		fmt.Sprintf("Invalid literal value, expected %q", l.Value), v)
}

type Array struct {
	Elem   Type
	Min    int
	Max    int
	MinMsg string
	MaxMsg string
}

func (a Array) check(r *report, path string, v any) {
	items, ok := asSlice(v)
	if !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected array, received "+typeName(v), v)
		return
	}
	if a.Min > 0 && len(items) < a.Min {
		r.add(path, domainerr.CodeTooSmall, orDefault(a.MinMsg,
			fmt.Sprintf("Array must contain at least %d element(s)", a.Min)), v)
	}
	if a.Max > 0 && len(items) > a.Max {
		r.add(path, domainerr.CodeTooBig, orDefault(a.MaxMsg,
			fmt.Sprintf("Array must contain at most %d element(s)", a.Max)), v)
	}
	if a.Elem == nil {
		return
	}
	for i, item := range items {
		a.Elem.check(r, join(path, fmt.Sprint(i)), item)
	}
}

// Record is an open key-value mapping with arbitrary values.
type Record struct{}

func (Record) check(r *report, path string, v any) {
	if _, ok := AsMap(v); !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected object, received "+typeName(v), v)
	}
}

// Any accepts every value, including nil.
type Any struct{}

func (Any) check(*report, string, any) {}

type Option struct {
	Tag    string
	Schema Object
}

// Discriminated dispatches on Key before delegating to one option.
type Discriminated struct {
	Key     string
	Options []Option
}

func (d Discriminated) Tags() []string {
	out := make([]string, len(d.Options))
	for i, o := range d.Options {
		out[i] = o.Tag
	}
	return out
}

func (d Discriminated) Option(tag string) (Object, bool) {
	for _, o := range d.Options {
		if o.Tag == tag {
			return o.Schema, true
		}
	}
	return Object{}, false
}

func (d Discriminated) check(r *report, path string, v any) {
	m, ok := AsMap(v)
	if !ok {
		r.add(path, domainerr.CodeInvalidType, "Expected object, received "+typeName(v), v)
		return
	}
	tag, _ := m[d.Key].(string)
	obj, ok := d.Option(tag)
	if !ok {
		r.add(join(path, d.Key), domainerr.CodeInvalidDiscriminator,
			"Invalid discriminator value. Expected "+quoteJoin(d.Tags()), m[d.Key])
		return
	}
	obj.check(r, path, m)
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}

func formatNum(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(f)
}

func floatPtr(f float64) *float64 { return &f }

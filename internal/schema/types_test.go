package schema

import (
	"encoding/json"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerr "contentkit/internal/domain/errors"
)

func codes(issues []domainerr.FieldError) []string {
	out := make([]string, len(issues))
	for i, e := range issues {
		out[i] = e.Code
	}
	return out
}

func TestString(t *testing.T) {
	s := String{Min: 3, Max: 5, Patterns: []Pattern{{Re: regexp.MustCompile(`^[a-z]+$`), Msg: "lower only"}}}

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"ok", "abcd", nil},
		{"too short", "ab", []string{domainerr.CodeTooSmall}},
		{"too long and pattern", "ABCDEF", []string{domainerr.CodeTooBig, domainerr.CodeInvalidString}},
		{"not a string", 12, []string{domainerr.CodeInvalidType}},
		{"nil", nil, []string{domainerr.CodeInvalidType}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(s, tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, codes(got))
		})
	}

	t.Run("type message names the received kind", func(t *testing.T) {
		got := Check(String{}, 12)
		require.Len(t, got, 1)
		assert.Equal(t, "Expected string, received number", got[0].Message)
		assert.Equal(t, domainerr.RootField, got[0].Field)
	})
}

func TestStringURL(t *testing.T) {
	plain := String{URL: true}
	rooted := String{URL: true, AllowRootPath: true}

	tests := []struct {
		in       string
		plainOK  bool
		rootedOK bool
	}{
		{"https://example.com/a.png", true, true},
		{"mailto:someone@example.com", true, true},
		{"/images/a.png", false, true},
		{"//cdn.example.com/a.png", false, false},
		{"invalid-url", false, false},
		{"", false, false},
		{" https://example.com", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.plainOK, Check(plain, tt.in) == nil)
			assert.Equal(t, tt.rootedOK, Check(rooted, tt.in) == nil)
		})
	}
}

func TestNumber(t *testing.T) {
	n := Number{Int: true, Min: floatPtr(0), Max: floatPtr(100)}

	assert.Empty(t, Check(n, 5))
	assert.Empty(t, Check(n, int64(100)))
	assert.Empty(t, Check(n, json.Number("42")))
	assert.Empty(t, Check(n, 3.0))

	got := Check(n, 2.5)
	require.Len(t, got, 1)
	assert.Equal(t, "Expected integer, received float", got[0].Message)

	got = Check(n, -1)
	require.Len(t, got, 1)
	assert.Equal(t, "Number must be greater than or equal to 0", got[0].Message)

	got = Check(n, 101)
	require.Len(t, got, 1)
	assert.Equal(t, "Number must be less than or equal to 100", got[0].Message)

	assert.Equal(t, []string{domainerr.CodeInvalidType}, codes(Check(n, "5")))
}

func TestDate(t *testing.T) {
	d := Date{}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Check(d, now))
	assert.Empty(t, Check(d, &now))
	assert.Equal(t, []string{domainerr.CodeInvalidDate}, codes(Check(d, time.Time{})))
	assert.Equal(t, []string{domainerr.CodeInvalidType}, codes(Check(d, "2024-01-01")))

	var nilTime *time.Time
	assert.Equal(t, []string{domainerr.CodeInvalidType}, codes(Check(d, nilTime)))
}

func TestEnumAndLiteral(t *testing.T) {
	got := Check(Difficulty, "expert")
	require.Len(t, got, 1)
	assert.Equal(t, domainerr.CodeInvalidEnumValue, got[0].Code)
	assert.Equal(t, "Invalid enum value. Expected 'beginner' | 'intermediate' | 'advanced', received 'expert'", got[0].Message)

	assert.Empty(t, Check(Difficulty, "intermediate"))

	got = Check(Literal{Value: "hub"}, "spoke")
	require.Len(t, got, 1)
	assert.Equal(t, `Invalid literal value, expected "hub"`, got[0].Message)
}

func TestArray(t *testing.T) {
	a := Array{Elem: String{Min: 2}, Min: 1, Max: 2}

	assert.Empty(t, Check(a, []string{"ab", "cd"}))
	assert.Empty(t, Check(a, []any{"ab"}))

	got := Check(a, []any{"ab", "x", 3})
	assert.Equal(t, []string{domainerr.CodeTooBig, domainerr.CodeTooSmall, domainerr.CodeInvalidType}, codes(got))
	assert.Equal(t, "1", got[1].Field)
	assert.Equal(t, "2", got[2].Field)

	assert.Equal(t, []string{domainerr.CodeTooSmall}, codes(Check(a, []string{})))
	assert.Equal(t, []string{domainerr.CodeInvalidType}, codes(Check(a, "ab")))

	t.Run("typed nil slices are empty arrays", func(t *testing.T) {
		assert.Empty(t, Check(Array{Elem: String{}}, []string(nil)))
		assert.Empty(t, Check(Array{}, []int(nil)))
		assert.Equal(t, []string{domainerr.CodeTooSmall}, codes(Check(a, []any(nil))))
	})

	t.Run("untyped nil is null", func(t *testing.T) {
		got := Check(a, nil)
		require.Len(t, got, 1)
		assert.Equal(t, "Expected array, received null", got[0].Message)
	})
}

func TestAsNumber(t *testing.T) {
	for _, v := range []any{7, int64(7), uint16(7), float32(7), 7.0, json.Number("7")} {
		n, ok := AsNumber(v)
		assert.True(t, ok, "%T", v)
		assert.Equal(t, 7.0, n, "%T", v)
	}
	for _, v := range []any{"7", nil, true, math.NaN(), json.Number("seven")} {
		_, ok := AsNumber(v)
		assert.False(t, ok, "%#v", v)
	}
}

func TestObject(t *testing.T) {
	o := Object{Fields: []Field{
		{Name: "name", Type: String{}},
		{Name: "age", Type: Number{}, Optional: true},
		{Name: "nested", Type: Object{Fields: []Field{{Name: "flag", Type: Bool{}}}}, Optional: true},
	}}

	assert.Empty(t, Check(o, map[string]any{"name": "x", "extra": 1}))

	got := Check(o, map[string]any{"nested": map[string]any{"flag": "yes"}})
	require.Len(t, got, 2)
	assert.Equal(t, "name", got[0].Field)
	assert.Equal(t, "Required", got[0].Message)
	assert.Equal(t, "nested.flag", got[1].Field)

	strict := Object{Strict: true, Fields: o.Fields}
	got = Check(strict, map[string]any{"name": "x", "zeta": 1, "alpha": 2})
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Field)
	assert.Equal(t, domainerr.CodeUnrecognizedKeys, got[0].Code)
	assert.Equal(t, "zeta", got[1].Field)

	assert.Equal(t, []string{"name", "age", "nested"}, o.FieldNames())
	ext := o.Extend(Field{Name: "more", Type: Any{}})
	assert.Len(t, ext.Fields, 4)
	assert.Len(t, o.Fields, 3)
}

func TestDiscriminated(t *testing.T) {
	got := Check(AnyContent, map[string]any{"category": "podcast"})
	require.Len(t, got, 1)
	assert.Equal(t, "category", got[0].Field)
	assert.Equal(t, domainerr.CodeInvalidDiscriminator, got[0].Code)
	assert.Equal(t,
		"Invalid discriminator value. Expected 'blog' | 'hub' | 'spoke' | 'guide' | 'documentation' | 'faq'",
		got[0].Message)

	assert.Equal(t, []string{"blog", "hub", "spoke", "guide", "documentation", "faq"}, AnyContent.Tags())
	_, ok := AnyContent.Option("faq")
	assert.True(t, ok)
}

func TestRecordAndAny(t *testing.T) {
	assert.Empty(t, Check(Record{}, map[string]any{}))
	assert.Empty(t, Check(Record{}, map[string]string{"a": "b"}))
	assert.NotEmpty(t, Check(Record{}, []any{}))
	assert.Empty(t, Check(Any{}, nil))
}

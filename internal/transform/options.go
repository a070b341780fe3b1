package transform

import (
	"bytes"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/schema"
	"contentkit/internal/validate"
	"encoding/json"
	"errors"
	"fmt"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"sort"
	"strings"
	"sync"
)

type Options struct {
	EnableGFM                bool `json:"enableGFM" yaml:"enableGFM"`
	EnableRawHTML            bool `json:"enableRawHTML" yaml:"enableRawHTML"`
	GenerateTOC              bool `json:"generateTOC" yaml:"generateTOC"`
	EnableSyntaxHighlighting bool `json:"enableSyntaxHighlighting" yaml:"enableSyntaxHighlighting"`
	GenerateReadingTime      bool `json:"generateReadingTime" yaml:"generateReadingTime"`
	GenerateWordCount        bool `json:"generateWordCount" yaml:"generateWordCount"`
	OptimizeImages           bool `json:"optimizeImages" yaml:"optimizeImages"`
	StrictValidation         bool `json:"strictValidation" yaml:"strictValidation"`
	ValidateLinks            bool `json:"validateLinks" yaml:"validateLinks"`
	ValidateImages           bool `json:"validateImages" yaml:"validateImages"`
}

// PartialOptions carries only the options a caller set.
type PartialOptions struct {
	EnableGFM                *bool `json:"enableGFM,omitempty" yaml:"enableGFM,omitempty"`
	EnableRawHTML            *bool `json:"enableRawHTML,omitempty" yaml:"enableRawHTML,omitempty"`
	GenerateTOC              *bool `json:"generateTOC,omitempty" yaml:"generateTOC,omitempty"`
	EnableSyntaxHighlighting *bool `json:"enableSyntaxHighlighting,omitempty" yaml:"enableSyntaxHighlighting,omitempty"`
	GenerateReadingTime      *bool `json:"generateReadingTime,omitempty" yaml:"generateReadingTime,omitempty"`
	GenerateWordCount        *bool `json:"generateWordCount,omitempty" yaml:"generateWordCount,omitempty"`
	OptimizeImages           *bool `json:"optimizeImages,omitempty" yaml:"optimizeImages,omitempty"`
	StrictValidation         *bool `json:"strictValidation,omitempty" yaml:"strictValidation,omitempty"`
	ValidateLinks            *bool `json:"validateLinks,omitempty" yaml:"validateLinks,omitempty"`
	ValidateImages           *bool `json:"validateImages,omitempty" yaml:"validateImages,omitempty"`
}

func DefaultOptions() Options {
	return Options{
		EnableGFM:                true,
		EnableRawHTML:            true,
		GenerateTOC:              false,
		EnableSyntaxHighlighting: true,
		GenerateReadingTime:      true,
		GenerateWordCount:        true,
		OptimizeImages:           true,
		StrictValidation:         false,
		ValidateLinks:            false,
		ValidateImages:           false,
	}
}

// Merge overlays the fields set in p onto o.
func (o Options) Merge(p PartialOptions) Options {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&o.EnableGFM, p.EnableGFM)
	set(&o.EnableRawHTML, p.EnableRawHTML)
	set(&o.GenerateTOC, p.GenerateTOC)
	set(&o.EnableSyntaxHighlighting, p.EnableSyntaxHighlighting)
	set(&o.GenerateReadingTime, p.GenerateReadingTime)
	set(&o.GenerateWordCount, p.GenerateWordCount)
	set(&o.OptimizeImages, p.OptimizeImages)
	set(&o.StrictValidation, p.StrictValidation)
	set(&o.ValidateLinks, p.ValidateLinks)
	set(&o.ValidateImages, p.ValidateImages)
	return o
}

var (
	optionsOnce   sync.Once
	optionsSchema *santhosh.Schema
	optionsErr    error
)

func compiledOptionsSchema() (*santhosh.Schema, error) {
	optionsOnce.Do(func() {
		doc, err := json.Marshal(schema.JSONSchema(schema.TransformOptions, "TransformOptions"))
		if err != nil {
			optionsErr = err
			return
		}
		compiler := santhosh.NewCompiler()
		compiler.Draft = santhosh.Draft7
		if err := compiler.AddResource("transform-options.json", bytes.NewReader(doc)); err != nil {
			optionsErr = err
			return
		}
		optionsSchema, optionsErr = compiler.Compile("transform-options.json")
	})
	return optionsSchema, optionsErr
}

// ValidateTransformOptions checks a loose options object and fills every
// option it leaves out from DefaultOptions.
func ValidateTransformOptions(raw any) (res validate.Result[Options]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = validate.Result[Options]{Errors: []domainerr.FieldError{
				domainerr.Unknown(fmt.Sprintf("Unexpected validation error: %v", rec), raw),
			}}
		}
	}()

	m, isMap := schema.AsMap(raw)
	if !isMap {
		if raw == nil {
			return validate.Result[Options]{Valid: true, Errors: []domainerr.FieldError{}, Data: DefaultOptions()}
		}
		return validate.Result[Options]{Errors: []domainerr.FieldError{{
			Field:   domainerr.RootField,
			Message: "Expected object, received " + fmt.Sprintf("%T", raw),
			Code:    domainerr.CodeInvalidType,
			Value:   raw,
		}}}
	}

	sch, err := compiledOptionsSchema()
	if err != nil {
		panic(err)
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return validate.Result[Options]{Errors: []domainerr.FieldError{
			domainerr.Unknown("Options are not serializable: "+err.Error(), raw),
		}}
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return validate.Result[Options]{Errors: []domainerr.FieldError{
			domainerr.Unknown("Options are not serializable: "+err.Error(), raw),
		}}
	}

	if err := sch.Validate(doc); err != nil {
		var ve *santhosh.ValidationError
		if !errors.As(err, &ve) {
			return validate.Result[Options]{Errors: []domainerr.FieldError{domainerr.Unknown(err.Error(), raw)}}
		}
		return validate.Result[Options]{Errors: optionIssues(ve, m)}
	}

	var partial PartialOptions
	if err := json.Unmarshal(encoded, &partial); err != nil {
		return validate.Result[Options]{Errors: []domainerr.FieldError{domainerr.Unknown(err.Error(), raw)}}
	}
	return validate.Result[Options]{
		Valid:  true,
		Errors: []domainerr.FieldError{},
		Data:   DefaultOptions().Merge(partial),
	}
}

// optionIssues flattens the leaf causes into field errors, one per key.
func optionIssues(ve *santhosh.ValidationError, m map[string]any) []domainerr.FieldError {
	var out []domainerr.FieldError
	seen := map[string]bool{}
	var walk func(*santhosh.ValidationError)
	walk = func(e *santhosh.ValidationError) {
		for _, c := range e.Causes {
			walk(c)
		}
		if len(e.Causes) > 0 {
			return
		}
		field := strings.ReplaceAll(strings.TrimPrefix(e.InstanceLocation, "/"), "/", ".")
		switch {
		case strings.HasSuffix(e.KeywordLocation, "/additionalProperties"):
			known := map[string]bool{}
			for _, name := range schema.TransformOptions.FieldNames() {
				known[name] = true
			}
			for k, v := range m {
				if known[k] || seen["key:"+k] {
					continue
				}
				seen["key:"+k] = true
				out = append(out, domainerr.FieldError{
					Field:   k,
					Message: fmt.Sprintf("Unrecognized key(s) in object: '%s'", k),
					Code:    domainerr.CodeUnrecognizedKeys,
					Value:   v,
				})
			}
		case strings.HasSuffix(e.KeywordLocation, "/type"):
			if seen["type:"+field] {
				return
			}
			seen["type:"+field] = true
			out = append(out, domainerr.FieldError{
				Field:   field,
				Message: "Expected boolean, received " + jsonKind(m[field]),
				Code:    domainerr.CodeInvalidType,
				Value:   m[field],
			})
		default:
			if field == "" {
				field = domainerr.RootField
			}
			out = append(out, domainerr.FieldError{
				Field:   field,
				Message: e.Message,
				Code:    domainerr.CodeCustom,
				Value:   m[field],
			})
		}
	}
	walk(ve)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any, []string:
		return "array"
	}
	return "object"
}

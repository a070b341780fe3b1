package schema

import (
	"contentkit/internal/domain/content"
	"encoding/json"
	"fmt"
)

const draft7 = "http://json-schema.org/draft-07/schema#"

// JSONSchema renders t as a draft-07 document. Dates become date-time
// strings since JSON has no date type.
func JSONSchema(t Type, title string) map[string]any {
	doc := t.jsonSchema()
	doc["$schema"] = draft7
	if title != "" {
		doc["title"] = title
	}
	return doc
}

// ExportCategory returns the indented JSON Schema for one category, or for
// the whole union when c is empty.
func ExportCategory(c content.Category) ([]byte, error) {
	if c == "" {
		return json.MarshalIndent(JSONSchema(AnyContent, "AnyContent"), "", "  ")
	}
	obj, ok := ForCategory(c)
	if !ok {
		return nil, fmt.Errorf("schema: unknown content type %q", c)
	}
	return json.MarshalIndent(JSONSchema(obj, string(c)), "", "  ")
}

func (o Object) jsonSchema() map[string]any {
	props := make(map[string]any, len(o.Fields))
	required := []string{}
	for _, f := range o.Fields {
		props[f.Name] = f.Type.jsonSchema()
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	if o.Strict {
		doc["additionalProperties"] = false
	}
	return doc
}

func (s String) jsonSchema() map[string]any {
	doc := map[string]any{"type": "string"}
	if s.Min > 0 {
		doc["minLength"] = s.Min
	}
	if s.Max > 0 {
		doc["maxLength"] = s.Max
	}
	switch len(s.Patterns) {
	case 0:
	case 1:
		doc["pattern"] = s.Patterns[0].Re.String()
	default:
		all := make([]any, len(s.Patterns))
		for i, p := range s.Patterns {
			all[i] = map[string]any{"pattern": p.Re.String()}
		}
		doc["allOf"] = all
	}
	if s.URL {
		if s.AllowRootPath {
			doc["anyOf"] = []any{
				map[string]any{"format": "uri"},
				map[string]any{"pattern": "^/[^/]"},
			}
		} else {
			doc["format"] = "uri"
		}
	}
	return doc
}

func (Date) jsonSchema() map[string]any {
	return map[string]any{"type": "string", "format": "date-time"}
}

func (Bool) jsonSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

func (n Number) jsonSchema() map[string]any {
	doc := map[string]any{"type": "number"}
	if n.Int {
		doc["type"] = "integer"
	}
	if n.Min != nil {
		doc["minimum"] = *n.Min
	}
	if n.Max != nil {
		doc["maximum"] = *n.Max
	}
	return doc
}

func (e Enum) jsonSchema() map[string]any {
	return map[string]any{"type": "string", "enum": e.Values}
}

func (l Literal) jsonSchema() map[string]any {
	return map[string]any{"const": l.Value}
}

func (a Array) jsonSchema() map[string]any {
	doc := map[string]any{"type": "array"}
	if a.Elem != nil {
		doc["items"] = a.Elem.jsonSchema()
	}
	if a.Min > 0 {
		doc["minItems"] = a.Min
	}
	if a.Max > 0 {
		doc["maxItems"] = a.Max
	}
	return doc
}

func (Record) jsonSchema() map[string]any {
	return map[string]any{"type": "object"}
}

func (Any) jsonSchema() map[string]any {
	return map[string]any{}
}

func (d Discriminated) jsonSchema() map[string]any {
	options := make([]any, len(d.Options))
	for i, o := range d.Options {
		options[i] = o.Schema.jsonSchema()
	}
	return map[string]any{
		"type":  "object",
		"oneOf": options,
	}
}

// Package schema implements a condensed JSON Schema (draft 2020-12 subset)
// compiler and evaluator: a Compiler that turns a schema document
// (map[string]any, already JSON-decoded upstream) into a *Schema, and a
// recursive evaluator that produces a pass/fail EvaluationResult with a
// JSON-Pointer-style error surface.
//
// It is not a general-purpose JSON Schema implementation: it covers the
// keyword subset the page/flow/widget/features schemas in this domain
// actually use (type, properties/patternProperties/additionalProperties,
// required, items/prefixItems, enum/const, allOf/anyOf/oneOf/not, format,
// the string/number/array/object size and range keywords, and default).
package schema

import (
	"fmt"
	"regexp"
	"sort"
)

// Schema is a compiled node of a JSON Schema document.
type Schema struct {
	compiler *Compiler

	boolSchema *bool // non-nil for a bare `true`/`false` schema

	Type []string

	Properties           map[string]*Schema
	PropertyOrder        []string
	PatternProperties    map[string]*Schema
	patternPropertiesRe  map[string]*regexp.Regexp
	AdditionalProperties *Schema // nil = "not declared" (anything allowed), or declared false (see additionalPropsFalse)
	additionalPropsFalse bool
	Required             []string
	MinProperties        *int
	MaxProperties        *int

	Items       *Schema
	PrefixItems []*Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	Enum    []any
	HasEnum bool
	Const   any
	HasConst bool

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Format string

	MinLength *int
	MaxLength *int
	Pattern   string
	patternRe *regexp.Regexp

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	Default    any
	HasDefault bool

	SchemaURI string // the raw "$schema" value, if present
}

// IsBoolSchemaFalse reports whether this schema is the literal `false`
// boolean schema (rejects everything).
func (s *Schema) IsBoolSchemaFalse() bool {
	return s.boolSchema != nil && !*s.boolSchema
}

// HasObjectConstraints reports whether the schema declares "properties" or
// "patternProperties" — used by the map-format rewrite in the validator
// facade to decide whether a schema is "bare object" shaped.
func (s *Schema) HasObjectConstraints() bool {
	return len(s.Properties) > 0 || len(s.PatternProperties) > 0
}

// DeclaresType reports whether the schema's "type" set contains t.
func (s *Schema) DeclaresType(t string) bool {
	for _, v := range s.Type {
		if v == t {
			return true
		}
	}
	return false
}

// newSchemaFromAny parses a schema node, which per JSON Schema may be a
// bool (boolean schema) or an object (map[string]any).
func newSchemaFromAny(c *Compiler, v any) (*Schema, error) {
	switch t := v.(type) {
	case bool:
		b := t
		return &Schema{compiler: c, boolSchema: &b}, nil
	case map[string]any:
		return newSchema(c, t)
	case nil:
		return &Schema{compiler: c}, nil
	default:
		return nil, fmt.Errorf("%w: schema node must be an object or boolean", ErrInvalidSchema)
	}
}

func newSchema(c *Compiler, doc map[string]any) (*Schema, error) {
	s := &Schema{compiler: c}

	if v, ok := doc["$schema"].(string); ok {
		s.SchemaURI = v
	}

	if v, ok := doc["type"]; ok {
		switch tv := v.(type) {
		case string:
			s.Type = []string{tv}
		case []any:
			for _, e := range tv {
				if es, ok := e.(string); ok {
					s.Type = append(s.Type, es)
				}
			}
		}
	}

	if raw, ok := doc["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*Schema, len(raw))
		s.PropertyOrder = make([]string, 0, len(raw))
		for k, v := range raw {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("properties.%s: %w", k, err)
			}
			s.Properties[k] = sub
			s.PropertyOrder = append(s.PropertyOrder, k)
		}
		sort.Strings(s.PropertyOrder)
	}

	if raw, ok := doc["patternProperties"].(map[string]any); ok {
		s.PatternProperties = make(map[string]*Schema, len(raw))
		s.patternPropertiesRe = make(map[string]*regexp.Regexp, len(raw))
		for pat, v := range raw {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("patternProperties.%s: %w", pat, err)
			}
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("%w: patternProperties key %q: %v", ErrInvalidSchema, pat, err)
			}
			s.PatternProperties[pat] = sub
			s.patternPropertiesRe[pat] = re
		}
	}

	if v, ok := doc["additionalProperties"]; ok {
		if b, ok := v.(bool); ok && !b {
			s.additionalPropsFalse = true
		} else {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("additionalProperties: %w", err)
			}
			s.AdditionalProperties = sub
		}
	}

	if raw, ok := doc["required"].([]any); ok {
		for _, e := range raw {
			if es, ok := e.(string); ok {
				s.Required = append(s.Required, es)
			}
		}
	}

	s.MinProperties = intPtr(doc["minProperties"])
	s.MaxProperties = intPtr(doc["maxProperties"])

	if v, ok := doc["items"]; ok {
		sub, err := newSchemaFromAny(c, v)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = sub
	}
	if raw, ok := doc["prefixItems"].([]any); ok {
		for i, v := range raw {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("prefixItems[%d]: %w", i, err)
			}
			s.PrefixItems = append(s.PrefixItems, sub)
		}
	}
	s.MinItems = intPtr(doc["minItems"])
	s.MaxItems = intPtr(doc["maxItems"])
	if v, ok := doc["uniqueItems"].(bool); ok {
		s.UniqueItems = v
	}

	if raw, ok := doc["enum"].([]any); ok {
		s.Enum = raw
		s.HasEnum = true
	}
	if v, ok := doc["const"]; ok {
		s.Const = v
		s.HasConst = true
	}

	if raw, ok := doc["allOf"].([]any); ok {
		for i, v := range raw {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("allOf[%d]: %w", i, err)
			}
			s.AllOf = append(s.AllOf, sub)
		}
	}
	if raw, ok := doc["anyOf"].([]any); ok {
		for i, v := range raw {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("anyOf[%d]: %w", i, err)
			}
			s.AnyOf = append(s.AnyOf, sub)
		}
	}
	if raw, ok := doc["oneOf"].([]any); ok {
		for i, v := range raw {
			sub, err := newSchemaFromAny(c, v)
			if err != nil {
				return nil, fmt.Errorf("oneOf[%d]: %w", i, err)
			}
			s.OneOf = append(s.OneOf, sub)
		}
	}
	if v, ok := doc["not"]; ok {
		sub, err := newSchemaFromAny(c, v)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		s.Not = sub
	}

	if v, ok := doc["format"].(string); ok {
		s.Format = v
	}

	s.MinLength = intPtr(doc["minLength"])
	s.MaxLength = intPtr(doc["maxLength"])
	if v, ok := doc["pattern"].(string); ok {
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidSchema, v, err)
		}
		s.Pattern = v
		s.patternRe = re
	}

	s.Minimum = floatPtr(doc["minimum"])
	s.Maximum = floatPtr(doc["maximum"])
	s.ExclusiveMinimum = floatPtr(doc["exclusiveMinimum"])
	s.ExclusiveMaximum = floatPtr(doc["exclusiveMaximum"])
	s.MultipleOf = floatPtr(doc["multipleOf"])

	if v, ok := doc["default"]; ok {
		s.Default = v
		s.HasDefault = true
	}

	return s, nil
}

func intPtr(v any) *int {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	i := int(f)
	return &i
}

func floatPtr(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/laxarjs/laxar-assembler/internal/jsonutil"
)

// Evaluate validates value against s, applying "default" in place on object
// properties as it goes (the "standard JSON-Schema default keyword
// handling" the validator facade's own first-level decoration builds on
// top of). instanceLocation is the JSON Pointer prefix already accumulated
// by the caller (e.g. "/areas/main/0/features"); pass "" at the top level.
func (s *Schema) Evaluate(value any, instanceLocation string) *EvaluationResult {
	result := newResult(instanceLocation)

	if s == nil {
		return result
	}
	if s.IsBoolSchemaFalse() {
		return result.fail(&EvaluationError{Keyword: "false", Message: "schema always fails", InstanceLocation: instanceLocation})
	}
	if s.boolSchema != nil {
		return result // bare `true` schema
	}

	actualType := typeOf(value)

	if len(s.Type) > 0 && !typeMatches(value, actualType, s.Type) {
		result.fail(&EvaluationError{
			Keyword:          "type",
			Message:          fmt.Sprintf("must be %s", strings.Join(s.Type, " or ")),
			InstanceLocation: instanceLocation,
		})
	}

	if s.HasConst {
		if !jsonutil.Equal(value, s.Const) {
			result.fail(&EvaluationError{Keyword: "const", Message: "must be the constant value", InstanceLocation: instanceLocation})
		}
	}
	if s.HasEnum {
		ok := false
		for _, e := range s.Enum {
			if jsonutil.Equal(value, e) {
				ok = true
				break
			}
		}
		if !ok {
			result.fail(&EvaluationError{Keyword: "enum", Message: "must be one of the enumerated values", InstanceLocation: instanceLocation})
		}
	}

	for i, sub := range s.AllOf {
		sr := sub.Evaluate(value, instanceLocation)
		result.merge(sr)
		if !sr.Valid {
			result.fail(&EvaluationError{Keyword: fmt.Sprintf("allOf/%d", i), Message: "must match allOf schema", InstanceLocation: instanceLocation})
		}
	}
	if len(s.AnyOf) > 0 {
		ok := false
		for _, sub := range s.AnyOf {
			if sub.Evaluate(value, instanceLocation).Valid {
				ok = true
				break
			}
		}
		if !ok {
			result.fail(&EvaluationError{Keyword: "anyOf", Message: "must match at least one anyOf schema", InstanceLocation: instanceLocation})
		}
	}
	if len(s.OneOf) > 0 {
		matches := 0
		for _, sub := range s.OneOf {
			if sub.Evaluate(value, instanceLocation).Valid {
				matches++
			}
		}
		if matches != 1 {
			result.fail(&EvaluationError{Keyword: "oneOf", Message: "must match exactly one oneOf schema", InstanceLocation: instanceLocation})
		}
	}
	if s.Not != nil {
		if s.Not.Evaluate(value, instanceLocation).Valid {
			result.fail(&EvaluationError{Keyword: "not", Message: "must not match the not schema", InstanceLocation: instanceLocation})
		}
	}

	if s.Format != "" && s.compiler != nil {
		if fn, ok := s.compiler.lookupFormat(s.Format); ok {
			if !fn(value) && s.compiler.assertFormat {
				result.fail(&EvaluationError{Keyword: "format", Message: fmt.Sprintf("must match format %q", s.Format), InstanceLocation: instanceLocation})
			}
		} else if s.compiler.assertFormat {
			result.fail(&EvaluationError{Keyword: "format", Message: fmt.Sprintf("unknown format %q", s.Format), InstanceLocation: instanceLocation})
		}
	}

	switch v := value.(type) {
	case string:
		s.evaluateString(v, instanceLocation, result)
	case float64:
		s.evaluateNumber(v, instanceLocation, result)
	case map[string]any:
		s.evaluateObject(v, instanceLocation, result)
	case []any:
		s.evaluateArray(v, instanceLocation, result)
	}

	return result
}

func (s *Schema) evaluateString(v string, loc string, result *EvaluationResult) {
	if s.MinLength != nil && len([]rune(v)) < *s.MinLength {
		result.fail(&EvaluationError{Keyword: "minLength", Message: fmt.Sprintf("must be at least %d characters", *s.MinLength), InstanceLocation: loc})
	}
	if s.MaxLength != nil && len([]rune(v)) > *s.MaxLength {
		result.fail(&EvaluationError{Keyword: "maxLength", Message: fmt.Sprintf("must be at most %d characters", *s.MaxLength), InstanceLocation: loc})
	}
	if s.patternRe != nil && !s.patternRe.MatchString(v) {
		result.fail(&EvaluationError{Keyword: "pattern", Message: fmt.Sprintf("must match pattern %q", s.Pattern), InstanceLocation: loc})
	}
}

func (s *Schema) evaluateNumber(v float64, loc string, result *EvaluationResult) {
	if s.Minimum != nil && v < *s.Minimum {
		result.fail(&EvaluationError{Keyword: "minimum", Message: fmt.Sprintf("must be >= %v", *s.Minimum), InstanceLocation: loc})
	}
	if s.Maximum != nil && v > *s.Maximum {
		result.fail(&EvaluationError{Keyword: "maximum", Message: fmt.Sprintf("must be <= %v", *s.Maximum), InstanceLocation: loc})
	}
	if s.ExclusiveMinimum != nil && v <= *s.ExclusiveMinimum {
		result.fail(&EvaluationError{Keyword: "exclusiveMinimum", Message: fmt.Sprintf("must be > %v", *s.ExclusiveMinimum), InstanceLocation: loc})
	}
	if s.ExclusiveMaximum != nil && v >= *s.ExclusiveMaximum {
		result.fail(&EvaluationError{Keyword: "exclusiveMaximum", Message: fmt.Sprintf("must be < %v", *s.ExclusiveMaximum), InstanceLocation: loc})
	}
	if s.MultipleOf != nil && *s.MultipleOf != 0 {
		q := v / *s.MultipleOf
		if math.Abs(q-math.Round(q)) > 1e-9 {
			result.fail(&EvaluationError{Keyword: "multipleOf", Message: fmt.Sprintf("must be a multiple of %v", *s.MultipleOf), InstanceLocation: loc})
		}
	}
}

func (s *Schema) evaluateObject(v map[string]any, loc string, result *EvaluationResult) {
	if s.MinProperties != nil && len(v) < *s.MinProperties {
		result.fail(&EvaluationError{Keyword: "minProperties", Message: fmt.Sprintf("must have at least %d properties", *s.MinProperties), InstanceLocation: loc})
	}
	if s.MaxProperties != nil && len(v) > *s.MaxProperties {
		result.fail(&EvaluationError{Keyword: "maxProperties", Message: fmt.Sprintf("must have at most %d properties", *s.MaxProperties), InstanceLocation: loc})
	}
	for _, req := range s.Required {
		if _, ok := v[req]; !ok {
			result.fail(&EvaluationError{Keyword: "required", Message: fmt.Sprintf("must have property %q", req), InstanceLocation: loc})
		}
	}

	matched := make(map[string]bool, len(v))

	for _, name := range s.PropertyOrder {
		sub := s.Properties[name]
		child, present := v[name]
		if !present {
			if sub != nil && sub.HasDefault {
				v[name] = jsonutil.Clone(sub.Default)
			}
			continue
		}
		matched[name] = true
		sr := sub.Evaluate(child, pointerChild(loc, name))
		result.merge(sr)
	}

	for pat, sub := range s.PatternProperties {
		re := s.patternPropertiesRe[pat]
		for name, child := range v {
			if !re.MatchString(name) {
				continue
			}
			matched[name] = true
			sr := sub.Evaluate(child, pointerChild(loc, name))
			result.merge(sr)
		}
	}

	var additionalBad []string
	for name, child := range v {
		if matched[name] {
			continue
		}
		if s.additionalPropsFalse {
			additionalBad = append(additionalBad, name)
			continue
		}
		if s.AdditionalProperties != nil {
			sr := s.AdditionalProperties.Evaluate(child, pointerChild(loc, name))
			result.merge(sr)
		}
	}
	if len(additionalBad) > 0 {
		result.fail(&EvaluationError{
			Keyword:          "additionalProperties",
			Message:          fmt.Sprintf("unexpected additional properties: %s", strings.Join(quoteAll(additionalBad), ", ")),
			InstanceLocation: loc,
		})
	}
}

func (s *Schema) evaluateArray(v []any, loc string, result *EvaluationResult) {
	if s.MinItems != nil && len(v) < *s.MinItems {
		result.fail(&EvaluationError{Keyword: "minItems", Message: fmt.Sprintf("must have at least %d items", *s.MinItems), InstanceLocation: loc})
	}
	if s.MaxItems != nil && len(v) > *s.MaxItems {
		result.fail(&EvaluationError{Keyword: "maxItems", Message: fmt.Sprintf("must have at most %d items", *s.MaxItems), InstanceLocation: loc})
	}
	if s.UniqueItems {
		for i := 0; i < len(v); i++ {
			for j := i + 1; j < len(v); j++ {
				if jsonutil.Equal(v[i], v[j]) {
					result.fail(&EvaluationError{Keyword: "uniqueItems", Message: "items must be unique", InstanceLocation: loc})
					break
				}
			}
		}
	}
	for i, item := range v {
		var sub *Schema
		if i < len(s.PrefixItems) {
			sub = s.PrefixItems[i]
		} else {
			sub = s.Items
		}
		if sub == nil {
			continue
		}
		sr := sub.Evaluate(item, fmt.Sprintf("%s/%d", loc, i))
		result.merge(sr)
	}
}

func pointerChild(base, name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return base + "/" + name
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}

func typeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

func typeMatches(value any, actual string, declared []string) bool {
	for _, t := range declared {
		if t == actual {
			return true
		}
		if t == "number" && actual == "number" {
			return true
		}
		if t == "integer" && actual == "number" {
			if f, _ := value.(float64); f == math.Trunc(f) {
				return true // integer-valued floats are accepted; JSON has no int/float distinction
			}
		}
	}
	return false
}


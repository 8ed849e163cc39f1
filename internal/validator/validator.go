// Package validator implements the JSON Schema Validator Facade (§4.A):
// a small wrapper over the condensed schema engine in internal/schema that
// adds this framework's domain formats, the recursive pre-compile schema
// transforms, and the first-level default expansion applied before every
// validation call.
package validator

import (
	"fmt"

	"github.com/laxarjs/laxar-assembler/internal/jsonutil"
	"github.com/laxarjs/laxar-assembler/internal/schema"
)

// Options configures one Compile call. The zero value turns every transform
// off; start from DefaultOptions() and override fields for the usual setup.
type Options struct {
	ProhibitAdditionalProperties bool
	UseMapFormats                bool
	ExpandFirstLevelDefaults     bool
	IsFeaturesValidator          bool
}

// DefaultOptions returns §4.A's documented defaults: every transform on,
// features-validator suppression off.
func DefaultOptions() Options {
	return Options{
		ProhibitAdditionalProperties: true,
		UseMapFormats:                true,
		ExpandFirstLevelDefaults:     true,
		IsFeaturesValidator:          false,
	}
}

// ValidationError is one failed keyword at one JSON-Pointer instance
// location, the facade's public shape of internal/schema's EvaluationError.
type ValidationError struct {
	Keyword          string
	Message          string
	InstanceLocation string
}

// StructuredError is the facade's error() constructor product: carries
// Name = "ValidationError" per §4.A/§7 so callers can identify schema
// failures programmatically.
type StructuredError struct {
	Name    string
	Message string
	Errors  []ValidationError
}

func (e *StructuredError) Error() string { return e.Message }

// Validator is a compiled schema ready to check values. pointerPrefix, if
// given, is prepended to every reported InstanceLocation (used by the
// assembler to scope feature errors under e.g. "/areas/main/0/features").
type Validator func(value any, pointerPrefix ...string) (bool, []ValidationError)

// Facade is a compiler handle carrying this framework's configuration:
// JSON-Pointer error paths, the domain format set, and default expansion.
// Create a new Facade per independent configuration; it is safe for
// concurrent use once built; Compile may be called concurrently.
type Facade struct {
	compiler *schema.Compiler
}

// Create yields a Facade with the domain formats of §4.A already
// registered on its underlying engine.
func Create() *Facade {
	c := schema.NewCompiler()
	c.RegisterFormat("topic", isTopic)
	c.RegisterFormat("sub-topic", isSubTopic)
	c.RegisterFormat("flag-topic", isFlagTopic)
	c.RegisterFormat("language-tag", isLanguageTag)
	c.RegisterFormat("topic-map", alwaysTrue)
	c.RegisterFormat("localization", alwaysTrue)
	c.SetAssertFormat(true)
	return &Facade{compiler: c}
}

// Compile compiles schema (an already-decoded JSON Schema document) into a
// Validator. sourceLabel names the artifact the schema came from, for error
// messages. See Options for the four tunables; pass DefaultOptions()
// modified as needed, or the zero Options{} is equivalent to "every
// transform off".
func (f *Facade) Compile(doc map[string]any, sourceLabel string, opts Options) (Validator, error) {
	if !opts.IsFeaturesValidator {
		if _, ok := doc["$schema"]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSchemaKeyword, sourceLabel)
		}
	}

	working, ok := jsonutil.Clone(doc).(map[string]any)
	if !ok {
		working = map[string]any{}
	}
	transformNode(working, opts)

	compiled, err := f.compiler.Compile(working)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, sourceLabel, err)
	}

	return func(value any, pointerPrefix ...string) (bool, []ValidationError) {
		prefix := ""
		if len(pointerPrefix) > 0 {
			prefix = pointerPrefix[0]
		}
		if opts.ExpandFirstLevelDefaults {
			expandFirstLevelDefaults(compiled, value)
		}
		result := compiled.Evaluate(value, prefix)
		if result.Valid {
			return true, nil
		}
		return false, toValidationErrors(result.Flatten())
	}, nil
}

// Error constructs a StructuredError carrying the given message and raw
// errors, the facade's error() operation from §4.A.
func (f *Facade) Error(message string, errs []ValidationError) *StructuredError {
	return &StructuredError{Name: "ValidationError", Message: message, Errors: errs}
}

// expandFirstLevelDefaults implements §4.A's post-compile decoration: one
// level deep, any top-level property declared "object" or "array" that is
// absent from value is set to {} / [] before validation runs.
func expandFirstLevelDefaults(compiled *schema.Schema, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		return
	}
	for name, sub := range compiled.Properties {
		if _, present := obj[name]; present {
			continue
		}
		switch {
		case sub.DeclaresType("object"):
			obj[name] = map[string]any{}
		case sub.DeclaresType("array"):
			obj[name] = []any{}
		}
	}
}

func toValidationErrors(errs []*schema.EvaluationError) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		out = append(out, ValidationError{
			Keyword:          e.Keyword,
			Message:          e.Message,
			InstanceLocation: e.InstanceLocation,
		})
	}
	return out
}

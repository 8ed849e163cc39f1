// Package jsonutil holds small helpers shared across the schema engine,
// the expression interpolator and the page assembler for working with
// already-decoded JSON values (map[string]any / []any / string / float64 /
// bool / nil).
package jsonutil

import "reflect"

// Clone deep-copies a decoded JSON value. Artifacts handed to the
// assembler are immutable to the caller (§3's lifecycle rule); the
// assembler's page lookups copy through artifact.ClonePageDefinition,
// which uses Clone for the JSON-valued fields.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Clone(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = Clone(vv)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two decoded JSON values are structurally equal.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

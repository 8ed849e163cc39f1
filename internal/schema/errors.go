package schema

import "errors"

// Errors raised while compiling a schema document. Evaluation failures are
// not errors in the Go sense — they are reported through EvaluationResult —
// these are reserved for malformed schema input.
var (
	// ErrInvalidSchema is returned when a schema document cannot be parsed,
	// e.g. a malformed regular expression in "pattern"/"patternProperties",
	// or a schema node that is neither an object nor a boolean.
	ErrInvalidSchema = errors.New("invalid schema document")
)

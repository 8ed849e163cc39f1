package validator

import "errors"

// Errors raised by the facade itself, as opposed to schema validation
// failures (which are reported through StructuredError, not these
// sentinels), in the teacher's errors.go cataloguing style.
var (
	// ErrMissingSchemaKeyword is returned when compiling a non-features
	// schema document that lacks the required "$schema" keyword.
	ErrMissingSchemaKeyword = errors.New("schema document is missing required \"$schema\" keyword")

	// ErrSchemaCompilation is returned when the underlying engine rejects a
	// schema document (e.g. a malformed regular expression).
	ErrSchemaCompilation = errors.New("schema compilation failed")
)

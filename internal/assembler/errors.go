package assembler

import (
	"errors"

	"github.com/laxarjs/laxar-assembler/internal/merge"
)

// === Structural assembly errors ===
var (
	// ErrPageExtensionCycle is returned when a page's extends chain revisits
	// a page already in the chain.
	ErrPageExtensionCycle = errors.New("cycle in page extension detected")

	// ErrCompositionCycle is returned when a composition chain revisits a
	// composition ref already being expanded.
	ErrCompositionCycle = errors.New("cycle in compositions detected")

	// ErrDuplicateID is returned when two items in the same assembled page
	// share an id.
	ErrDuplicateID = errors.New("duplicate widget/composition/layout id(s)")

	// ErrLayoutConflict is returned when an extending page declares a
	// layout its base page already declares.
	ErrLayoutConflict = errors.New("page overwrites layout set by base page")

	// ErrMissingInsertBefore is returned when an item's insertBeforeId does
	// not match any existing id in the target area. It is the same value as
	// merge.ErrMissingInsertBefore, which the structural merge returns.
	ErrMissingInsertBefore = merge.ErrMissingInsertBefore

	// ErrBadInput is returned when Assemble is called with something other
	// than a page artifact.
	ErrBadInput = errors.New("assemble must be called with a page artifact")
)

// === Validation errors ===
var (
	// ErrSchemaFailure is returned when a page artifact fails schema
	// validation against the page validator. Flow and widget schema
	// failures reported by internal/orchestrator do not wrap it.
	ErrSchemaFailure = errors.New("schema validation failed")

	// ErrFeatureValidation is returned when a widget or composition's
	// features fail validation against its features schema.
	ErrFeatureValidation = errors.New("feature validation failed")

	// ErrPageNotFound is returned when a lookup for an extends or
	// composition ref finds no matching page.
	ErrPageNotFound = errors.New("referenced page not found")
)

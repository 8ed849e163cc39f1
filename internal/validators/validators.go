// Package validators implements the Validator Builder of §4.F: it compiles
// every schema in a bundle into a flat lookup table consumed by the
// assembler and the orchestrator.
package validators

import (
	"fmt"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
	"github.com/laxarjs/laxar-assembler/internal/validator"
)

// Table is the flat validators table produced by Build: schema refs keyed
// directly, widget/page feature validators keyed under their own
// sub-namespaces, and the well-known page/flow/widget validators promoted
// to named fields for direct use by the assembler and orchestrator.
type Table struct {
	Facade *validator.Facade

	BySchemaRef    map[string]validator.Validator
	FeatureWidgets map[string]validator.Validator
	FeaturePages   map[string]validator.Validator

	Page   validator.Validator
	Flow   validator.Validator
	Widget validator.Validator
}

// Build compiles every shared schema in the bundle, every widget's features
// schema and every page's (pre-expansion) features schema, keyed by the
// artifact's refs, per §4.F. facade is the compiler handle from
// internal/validator used for every Compile call.
func Build(bundle *artifact.Bundle, facade *validator.Facade) (*Table, error) {
	t := &Table{
		Facade:         facade,
		BySchemaRef:    map[string]validator.Validator{},
		FeatureWidgets: map[string]validator.Validator{},
		FeaturePages:   map[string]validator.Validator{},
	}

	for _, schema := range bundle.Schemas {
		if schema.Definition == nil {
			continue
		}
		for _, ref := range schema.Refs {
			v, err := facade.Compile(schema.Definition, ref, validator.DefaultOptions())
			if err != nil {
				return nil, fmt.Errorf("building validator for schema %q: %w", ref, err)
			}
			t.BySchemaRef[ref] = v
		}
	}

	for _, widget := range bundle.Widgets {
		if widget.Descriptor == nil || widget.Descriptor.Features == nil {
			continue
		}
		opts := validator.DefaultOptions()
		opts.IsFeaturesValidator = true
		for _, ref := range widget.Refs {
			v, err := facade.Compile(widget.Descriptor.Features, ref, opts)
			if err != nil {
				return nil, fmt.Errorf("building features validator for widget %q: %w", ref, err)
			}
			t.FeatureWidgets[ref] = v
		}
	}

	for _, page := range bundle.Pages {
		if page.Definition == nil || page.Definition.Features == nil {
			continue
		}
		opts := validator.DefaultOptions()
		opts.IsFeaturesValidator = true
		for _, ref := range page.Refs {
			v, err := facade.Compile(page.Definition.Features, ref, opts)
			if err != nil {
				return nil, fmt.Errorf("building features validator for page %q: %w", ref, err)
			}
			t.FeaturePages[ref] = v
		}
	}

	t.Page = t.BySchemaRef["page"]
	t.Flow = t.BySchemaRef["flow"]
	t.Widget = t.BySchemaRef["widget"]

	return t, nil
}

// Error constructs a structured validation error via the underlying facade,
// the table's error(message, errors) operation from §3.
func (t *Table) Error(message string, errs []validator.ValidationError) *validator.StructuredError {
	return t.Facade.Error(message, errs)
}

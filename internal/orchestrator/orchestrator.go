// Package orchestrator implements the top-level Artifact Validator of
// §4.G: it dispatches schema validation per artifact class and invokes the
// assembler over entry pages only.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
	"github.com/laxarjs/laxar-assembler/internal/assembler"
	"github.com/laxarjs/laxar-assembler/internal/validator"
	"github.com/laxarjs/laxar-assembler/internal/validators"
)

// Result is the validated/assembled replacement for a bundle's flows,
// pages, and widgets; schemas and layouts pass through unchanged.
type Result struct {
	Schemas []*artifact.SharedSchema
	Flows   []*artifact.Flow
	Pages   []*artifact.Page
	Widgets []*artifact.Widget
	Layouts []*artifact.Artifact
}

// ValidateFlows applies validators.Flow to every flow's definition,
// returning the first failure encountered.
func ValidateFlows(flows []*artifact.Flow, vt *validators.Table) error {
	for _, flow := range flows {
		if vt.Flow == nil {
			continue
		}
		if ok, errs := vt.Flow(flow.Definition); !ok {
			return fmt.Errorf("validation failed for flow %q: %v", flow.Name, errs)
		}
	}
	return nil
}

// ValidateWidgets applies validators.Widget to every widget's descriptor.
func ValidateWidgets(widgets []*artifact.Widget, vt *validators.Table) error {
	for _, widget := range widgets {
		if vt.Widget == nil {
			continue
		}
		descriptor := widgetDescriptorDoc(widget)
		if ok, errs := vt.Widget(descriptor); !ok {
			return fmt.Errorf("validation failed for widget %q: %v", widget.Name, errs)
		}
	}
	return nil
}

func widgetDescriptorDoc(widget *artifact.Widget) map[string]any {
	if widget.Descriptor == nil {
		return map[string]any{}
	}
	doc := map[string]any{}
	if widget.Descriptor.Features != nil {
		doc["features"] = widget.Descriptor.Features
	}
	return doc
}

// entryRefs computes the set of entry page refs: the union of every
// flow's Pages list.
func entryRefs(flows []*artifact.Flow) map[artifact.Ref]struct{} {
	refs := map[artifact.Ref]struct{}{}
	for _, flow := range flows {
		for _, ref := range flow.Pages {
			refs[ref] = struct{}{}
		}
	}
	return refs
}

// ValidatePages selects the entry pages reachable from flows (the union of
// every flow's Pages list) and assembles each via the Page Assembler.
// Non-entry pages are left untouched.
func ValidatePages(ctx context.Context, bundle *artifact.Bundle, flows []*artifact.Flow, vt *validators.Table) ([]*artifact.Page, error) {
	entries := entryRefs(flows)
	if len(entries) == 0 {
		return nil, nil
	}

	var selected []*artifact.Page
	for _, page := range bundle.Pages {
		for _, ref := range page.Refs {
			if _, ok := entries[ref]; ok {
				selected = append(selected, page)
				break
			}
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Name < selected[j].Name })

	asm := assembler.New(bundle, vt)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]*artifact.Page, len(selected))
		firstErr error
	)
	for i, page := range selected {
		wg.Add(1)
		go func(i int, page *artifact.Page) {
			defer wg.Done()
			assembled, err := asm.Assemble(ctx, page)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[i] = assembled
		}(i, page)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// ValidateArtifacts builds the validators table from bundle, runs flow,
// widget, and page validation, and returns the resulting Result.
func ValidateArtifacts(ctx context.Context, bundle *artifact.Bundle) (*Result, error) {
	facade := validator.Create()
	vt, err := validators.Build(bundle, facade)
	if err != nil {
		return nil, err
	}

	var (
		wg                        sync.WaitGroup
		flowErr, widgetErr, pageErr error
		pages                     []*artifact.Page
	)

	wg.Add(3)
	go func() { defer wg.Done(); flowErr = ValidateFlows(bundle.Flows, vt) }()
	go func() { defer wg.Done(); widgetErr = ValidateWidgets(bundle.Widgets, vt) }()
	go func() { defer wg.Done(); pages, pageErr = ValidatePages(ctx, bundle, bundle.Flows, vt) }()
	wg.Wait()

	if flowErr != nil {
		return nil, flowErr
	}
	if widgetErr != nil {
		return nil, widgetErr
	}
	if pageErr != nil {
		return nil, pageErr
	}

	return &Result{
		Schemas: bundle.Schemas,
		Flows:   bundle.Flows,
		Pages:   pages,
		Widgets: bundle.Widgets,
		Layouts: bundle.Layouts,
	}, nil
}

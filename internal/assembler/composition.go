package assembler

import (
	"fmt"
	"strings"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
	"github.com/laxarjs/laxar-assembler/internal/expr"
	"github.com/laxarjs/laxar-assembler/internal/ids"
	"github.com/laxarjs/laxar-assembler/internal/jsonutil"
	"github.com/laxarjs/laxar-assembler/internal/merge"
	"github.com/laxarjs/laxar-assembler/internal/validator"
)

// expandCompositions expands every composition item reachable from def's
// areas, per §4.E.1. compositionChain tracks the composition refs already
// being expanded, for cycle detection.
func (a *Assembler) expandCompositions(def *artifact.PageDefinition, topPageRef string, compositionChain []string) error {
	for _, areaName := range sortedKeys(def.Areas) {
		if err := a.expandArea(def, areaName, topPageRef, compositionChain); err != nil {
			return err
		}
	}
	return nil
}

// expandArea processes one area in reverse index order so that splicing
// replacements in does not disturb the indices of items yet to be visited.
func (a *Assembler) expandArea(def *artifact.PageDefinition, areaName, topPageRef string, compositionChain []string) error {
	items := def.Areas[areaName]

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item.Composition == "" {
			continue
		}
		if item.Enabled != nil && !*item.Enabled {
			continue
		}
		if item.ID == "" {
			item.ID = ids.NextID(a.counter, ids.ItemName(item.Widget, item.Composition, item.Layout))
		}
		if contains(compositionChain, item.Composition) {
			chain := append(append([]string{}, compositionChain...), item.Composition)
			return wrapPage(topPageRef, fmt.Errorf("%w: %s", ErrCompositionCycle, chainString(chain)))
		}

		compPage := a.bundle.FindPage(item.Composition)
		if compPage == nil || compPage.Definition == nil {
			return wrapPage(topPageRef, fmt.Errorf("%w: %s", ErrPageNotFound, item.Composition))
		}
		compDef := artifact.ClonePageDefinition(compPage.Definition)
		if compDef.Areas == nil {
			compDef.Areas = map[string][]*artifact.Item{}
		}

		prefixCompositionIDs(compDef, item.ID)

		itemPointer := fmt.Sprintf("/areas/%s/%d", areaName, i)
		if err := a.expandCompositionExpressions(compDef, item, itemPointer, topPageRef); err != nil {
			return err
		}

		newChain := append(append([]string{}, compositionChain...), item.Composition)
		if err := a.expandCompositions(compDef, topPageRef, newChain); err != nil {
			return err
		}

		var err error
		items, err = graftComposition(def, areaName, items, i, compDef)
		if err != nil {
			return wrapPage(topPageRef, err)
		}

		if err := a.validateCompositionWidgets(compDef, item.Composition, topPageRef); err != nil {
			return err
		}
	}

	def.Areas[areaName] = items
	return nil
}

// prefixCompositionIDs rewrites every explicitly-set item id within
// compDef's areas to "<instanceID>-<origID>", and renames every dotted
// "widget-local" area (a name containing "." at a non-leading position) to
// "<instanceID>-<oldName>". The special area name "." is left untouched.
func prefixCompositionIDs(compDef *artifact.PageDefinition, instanceID string) {
	renamed := make(map[string][]*artifact.Item, len(compDef.Areas))
	for areaName, items := range compDef.Areas {
		for _, item := range items {
			if item.ID != "" {
				item.ID = instanceID + "-" + item.ID
			}
		}
		newName := areaName
		if areaName != "." {
			if idx := strings.Index(areaName, "."); idx > 0 {
				newName = instanceID + "-" + areaName
			}
		}
		renamed[newName] = items
	}
	compDef.Areas = renamed
}

// expandCompositionExpressions runs §4.E.2 on compDef in place, using item
// (the composition item C in the enclosing page) for its id and features.
func (a *Assembler) expandCompositionExpressions(compDef *artifact.PageDefinition, item *artifact.Item, itemPointer, topPageRef string) error {
	features := map[string]any{}
	if item.Features != nil {
		features = jsonutil.Clone(item.Features).(map[string]any)
	}
	ctx := map[string]any{"id": item.ID, "features": features}

	if compDef.Features != nil {
		interpolated, _ := expr.Interpolate(compDef.Features, ctx)
		schemaDoc, _ := interpolated.(map[string]any)
		if schemaDoc != nil {
			v, err := a.validators.Facade.Compile(schemaDoc, item.Composition, defaultFeatureOptions())
			if err != nil {
				return wrapPage(topPageRef, fmt.Errorf("%w: %s", ErrFeatureValidation, err))
			}
			if ok, errs := v(features, itemPointer+"/features"); !ok {
				return wrapPage(topPageRef, fmt.Errorf("%w: validation of page %s failed for %s features: %s",
					ErrFeatureValidation, topPageRef, item.Composition, formatErrors(errs)))
			}
		}
	}

	if compDef.MergedFeatures != nil {
		interpolatedAny, _ := expr.Interpolate(compDef.MergedFeatures, ctx)
		if merged, ok := interpolatedAny.(map[string]any); ok {
			for path, v := range merged {
				addition, _ := v.([]any)
				existing, _ := getPath(features, path).([]any)
				combined := append(append([]any{}, existing...), addition...)
				setPath(features, path, combined)
			}
		}
	}

	ctx["features"] = features

	areasJSON := artifact.AreasToJSON(compDef.Areas)
	interpolatedAreas, _ := expr.Interpolate(areasJSON, ctx)
	if m, ok := interpolatedAreas.(map[string]any); ok {
		compDef.Areas = artifact.AreasFromJSON(m)
	}

	return nil
}

func defaultFeatureOptions() validator.Options {
	opts := validator.DefaultOptions()
	opts.IsFeaturesValidator = true
	return opts
}

// graftComposition replaces the composition item at index idx in items
// with compDef's expanded areas, per §4.E.1 step 9, and merges compDef's
// other areas into the enclosing page's area map.
func graftComposition(def *artifact.PageDefinition, areaName string, items []*artifact.Item, idx int, compDef *artifact.PageDefinition) ([]*artifact.Item, error) {
	dotItems := compDef.Areas["."]

	next := make([]*artifact.Item, 0, len(items)-1+len(dotItems))
	next = append(next, items[:idx]...)
	next = append(next, dotItems...)
	next = append(next, items[idx+1:]...)

	for _, name := range sortedKeys(compDef.Areas) {
		if name == "." {
			continue
		}
		compItems := compDef.Areas[name]
		if existing, ok := def.Areas[name]; ok {
			merged, err := merge.ItemLists(existing, compItems, areaName)
			if err != nil {
				return nil, err
			}
			def.Areas[name] = merged
			continue
		}
		def.Areas[name] = append([]*artifact.Item{}, compItems...)
	}

	return next, nil
}

// validateCompositionWidgets recursively revalidates widget items inside
// the grafted composition against validators.features.widgets, with the
// composition ref as the source label (§4.E.1 step 10).
func (a *Assembler) validateCompositionWidgets(compDef *artifact.PageDefinition, compositionRef, topPageRef string) error {
	if a.validators == nil {
		return nil
	}
	for areaName, items := range compDef.Areas {
		for idx, item := range items {
			if item.Widget == "" {
				continue
			}
			v, ok := a.validators.FeatureWidgets[item.Widget]
			if !ok {
				continue
			}
			if item.Features == nil {
				item.Features = map[string]any{}
			}
			prefix := fmt.Sprintf("/areas/%s/%d/features", areaName, idx)
			if ok, errs := v(item.Features, prefix); !ok {
				return wrapPage(topPageRef, fmt.Errorf("%w: validation of page %s failed for %s features: %s",
					ErrFeatureValidation, compositionRef, item.Widget, formatErrors(errs)))
			}
		}
	}
	return nil
}

// getPath resolves a dotted path into a nested map[string]any tree.
func getPath(m map[string]any, path string) any {
	segments := strings.Split(path, ".")
	var cur any = m
	for _, seg := range segments {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = mm[seg]
	}
	return cur
}

// setPath writes value at the dotted path into m, creating intermediate
// maps as needed.
func setPath(m map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	cur := m
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
}

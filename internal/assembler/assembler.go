// Package assembler implements the Page Assembler of §4.E: recursive
// extension and composition resolution over a bundle of page artifacts,
// threading schema validation, id generation, and expression evaluation
// through every stage.
package assembler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
	"github.com/laxarjs/laxar-assembler/internal/ids"
	"github.com/laxarjs/laxar-assembler/internal/merge"
	"github.com/laxarjs/laxar-assembler/internal/validators"
)

// Assembler resolves page artifacts against a fixed bundle and validators
// table. One Assembler owns one monotonic id counter; ids generated across
// every page it assembles never collide.
type Assembler struct {
	bundle     *artifact.Bundle
	validators *validators.Table
	counter    *ids.Counter
}

// New constructs an Assembler over bundle, using vt to validate pages and
// widget/composition features.
func New(bundle *artifact.Bundle, vt *validators.Table) *Assembler {
	return &Assembler{bundle: bundle, validators: vt, counter: &ids.Counter{}}
}

// Assemble resolves page into a self-contained definition with all
// extends/composition/expression resolution applied. page itself is never
// mutated.
func (a *Assembler) Assemble(ctx context.Context, page *artifact.Page) (*artifact.Page, error) {
	if page == nil || page.Definition == nil {
		return nil, ErrBadInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	def, err := a.loadPageRecursively(artifact.ClonePageDefinition(page.Definition), page.Name, nil)
	if err != nil {
		return nil, err
	}
	return &artifact.Page{Name: page.Name, Refs: page.Refs, Definition: def}, nil
}

func (a *Assembler) loadPageRecursively(def *artifact.PageDefinition, pageRef string, extensionChain []string) (*artifact.PageDefinition, error) {
	if contains(extensionChain, pageRef) {
		return nil, wrapPage(pageRef, fmt.Errorf("%w: %s", ErrPageExtensionCycle, chainString(append(extensionChain, pageRef))))
	}

	if a.validators != nil && a.validators.Page != nil && def.Raw != nil {
		if ok, errs := a.validators.Page(def.Raw); !ok {
			return nil, wrapPage(pageRef, fmt.Errorf("%w: validation failed for page %q: %s", ErrSchemaFailure, pageRef, formatErrors(errs)))
		}
	}

	if def.Areas == nil {
		def.Areas = map[string][]*artifact.Item{}
	}

	if def.Extends != "" {
		base := a.bundle.FindPage(def.Extends)
		if base == nil || base.Definition == nil {
			return nil, wrapPage(pageRef, fmt.Errorf("%w: %s", ErrPageNotFound, def.Extends))
		}

		assembledBase, err := a.loadPageRecursively(artifact.ClonePageDefinition(base.Definition), def.Extends, append(append([]string{}, extensionChain...), pageRef))
		if err != nil {
			return nil, err
		}

		if assembledBase.Layout != "" && def.Layout != "" {
			return nil, wrapPage(pageRef, fmt.Errorf("%w: %q", ErrLayoutConflict, def.Extends))
		}

		merged := map[string][]*artifact.Item{}
		for name, items := range assembledBase.Areas {
			merged[name] = items
		}
		for name, items := range def.Areas {
			if existing, ok := merged[name]; ok {
				mergedList, err := merge.ItemLists(existing, items, pageRef)
				if err != nil {
					return nil, wrapPage(pageRef, err)
				}
				merged[name] = mergedList
			} else {
				merged[name] = items
			}
		}
		def.Areas = merged
		if assembledBase.Layout != "" {
			def.Layout = assembledBase.Layout
		}
	}

	for _, areaName := range sortedKeys(def.Areas) {
		for _, item := range def.Areas[areaName] {
			if item.ID == "" {
				item.ID = ids.NextID(a.counter, ids.ItemName(item.Widget, item.Composition, item.Layout))
			}
		}
	}
	if dup := duplicateIDs(def.Areas); len(dup) > 0 {
		return nil, wrapPage(pageRef, fmt.Errorf("%w: %s", ErrDuplicateID, strings.Join(dup, ", ")))
	}

	if err := a.expandCompositions(def, pageRef, nil); err != nil {
		return nil, err
	}

	if dup := duplicateIDs(def.Areas); len(dup) > 0 {
		return nil, wrapPage(pageRef, fmt.Errorf("%w: %s", ErrDuplicateID, strings.Join(dup, ", ")))
	}

	for name, items := range def.Areas {
		kept := make([]*artifact.Item, 0, len(items))
		for _, it := range items {
			if it.Enabled != nil && !*it.Enabled {
				continue
			}
			kept = append(kept, it)
		}
		def.Areas[name] = kept
	}

	for _, areaName := range sortedKeys(def.Areas) {
		for idx, item := range def.Areas[areaName] {
			if item.Widget == "" || a.validators == nil {
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
				return nil, wrapPage(pageRef, fmt.Errorf("%w: validation of page %s failed for %s features: %s",
					ErrFeatureValidation, pageRef, item.Widget, formatErrors(errs)))
			}
		}
	}

	return def, nil
}

func wrapPage(pageRef string, err error) error {
	return fmt.Errorf("error loading page %q: %w", pageRef, err)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func chainString(chain []string) string {
	return strings.Join(chain, " -> ")
}

func sortedKeys(m map[string][]*artifact.Item) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func duplicateIDs(areas map[string][]*artifact.Item) []string {
	seen := map[string]int{}
	for _, items := range areas {
		for _, item := range items {
			if item.ID == "" {
				continue
			}
			seen[item.ID]++
		}
	}
	var dup []string
	for id, n := range seen {
		if n > 1 {
			dup = append(dup, id)
		}
	}
	sort.Strings(dup)
	return dup
}

func formatErrors(errs any) string {
	return fmt.Sprintf("%v", errs)
}

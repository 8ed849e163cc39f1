// Package artifact holds the plain data model shared by every other
// package: the build-time artifacts the assembler reads and the page it
// produces.
package artifact

// Ref names one artifact instance as it appears in a bundle, e.g. a widget
// reference path or a page name.
type Ref = string

// Artifact is the generic shape shared by layouts and other simple,
// unprocessed artifact kinds: a decoded JSON document plus the refs that
// resolve to it.
type Artifact struct {
	Name       string
	Refs       []Ref
	Definition map[string]any
}

// Item is one entry in a page area: a widget, a composition, or (only
// inside a layout's own area list) a layout reference. Exactly one of
// Widget, Composition, Layout should be set; which one is the discriminant
// used throughout the assembler.
type Item struct {
	ID             string
	Widget         string
	Composition    string
	Layout         string
	Features       map[string]any
	InsertBeforeID string
	Enabled        *bool
}

// PageDefinition is the decoded body of a page artifact: its areas, its
// optional extension and layout refs, and its "features" (a composition's
// feature template) and "mergedFeatures" documents as decoded.
type PageDefinition struct {
	Layout         string
	Extends        string
	Areas          map[string][]*Item
	Features       map[string]any
	MergedFeatures map[string]any

	// Raw is the originally decoded JSON document this definition was
	// parsed from, kept alongside the typed fields so schema validation
	// (which runs against the loader's decoded JSON) can run on the whole
	// document without re-encoding the typed Areas tree.
	Raw map[string]any
}

// Page pairs a page's refs with its definition. Definition is nil until
// the artifact has been decoded; after assembly it holds the fully
// resolved tree.
type Page struct {
	Name       string
	Refs       []Ref
	Definition *PageDefinition
}

// WidgetDescriptor is the part of a widget artifact the assembler cares
// about: its features schema.
type WidgetDescriptor struct {
	Features map[string]any
}

// Widget pairs a widget's refs with its descriptor.
type Widget struct {
	Name       string
	Refs       []Ref
	Descriptor *WidgetDescriptor
}

// Flow is a decoded flow artifact together with the page refs it reaches,
// used by the orchestrator to compute the set of entry pages.
type Flow struct {
	Name       string
	Refs       []Ref
	Definition map[string]any
	Pages      []Ref
}

// SharedSchema is a schema document shared across widgets/pages, keyed by
// its own refs rather than a name.
type SharedSchema struct {
	Refs       []Ref
	Definition map[string]any
}

// Bundle is the full set of build-time artifacts handed to the top-level
// validator.
type Bundle struct {
	Schemas []*SharedSchema
	Flows   []*Flow
	Pages   []*Page
	Widgets []*Widget
	Layouts []*Artifact
}

// FindPage returns the page named name, or nil if none of b.Pages carries
// that ref.
func (b *Bundle) FindPage(name Ref) *Page {
	for _, p := range b.Pages {
		for _, r := range p.Refs {
			if r == name {
				return p
			}
		}
	}
	return nil
}

// FindWidget returns the widget named name, or nil.
func (b *Bundle) FindWidget(name Ref) *Widget {
	for _, w := range b.Widgets {
		for _, r := range w.Refs {
			if r == name {
				return w
			}
		}
	}
	return nil
}

// FindLayout returns the layout named name, or nil.
func (b *Bundle) FindLayout(name Ref) *Artifact {
	for _, l := range b.Layouts {
		for _, r := range l.Refs {
			if r == name {
				return l
			}
		}
	}
	return nil
}

// Package loader reads an artifact bundle from a single JSON or YAML
// document on disk (or stdin) for the CLI and for tests. It is not the
// production artifact-collection path — a real deployment collects
// artifacts from a filesystem tree keyed by naming convention, which is
// out of scope here (see the module's Non-goals).
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	goccyjson "github.com/goccy/go-json"
	goccyyaml "github.com/goccy/go-yaml"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
)

// ErrReadInput is returned when an input file or stream cannot be read.
var ErrReadInput = errors.New("read input failed")

// ErrDecodeBundle is returned when the bundle document cannot be decoded.
var ErrDecodeBundle = errors.New("decode bundle failed")

// document is the on-disk shape this loader accepts: one JSON or YAML
// document with one array per artifact class.
type document struct {
	Schemas []schemaDoc `json:"schemas" yaml:"schemas"`
	Flows   []flowDoc   `json:"flows" yaml:"flows"`
	Pages   []pageDoc   `json:"pages" yaml:"pages"`
	Widgets []widgetDoc `json:"widgets" yaml:"widgets"`
	Layouts []layoutDoc `json:"layouts" yaml:"layouts"`
}

type schemaDoc struct {
	Refs       []string       `json:"refs" yaml:"refs"`
	Definition map[string]any `json:"definition" yaml:"definition"`
}

type flowDoc struct {
	Name       string         `json:"name" yaml:"name"`
	Refs       []string       `json:"refs" yaml:"refs"`
	Definition map[string]any `json:"definition" yaml:"definition"`
	Pages      []string       `json:"pages" yaml:"pages"`
}

type pageDoc struct {
	Name       string         `json:"name" yaml:"name"`
	Refs       []string       `json:"refs" yaml:"refs"`
	Definition map[string]any `json:"definition" yaml:"definition"`
}

type widgetDoc struct {
	Name       string         `json:"name" yaml:"name"`
	Refs       []string       `json:"refs" yaml:"refs"`
	Descriptor map[string]any `json:"descriptor" yaml:"descriptor"`
}

type layoutDoc struct {
	Name       string         `json:"name" yaml:"name"`
	Refs       []string       `json:"refs" yaml:"refs"`
	Definition map[string]any `json:"definition" yaml:"definition"`
}

// Load reads path (or stdin, for path == "-") and decodes it into a
// Bundle. The format is chosen by the file extension; ".yaml"/".yml"
// decode as YAML, everything else as JSON.
func Load(path string) (*artifact.Bundle, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	return Decode(data, isYAML(path))
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

// Decode decodes raw bundle bytes into a Bundle, using YAML if yamlFormat
// is set, otherwise JSON.
func Decode(data []byte, yamlFormat bool) (*artifact.Bundle, error) {
	var doc document
	var err error
	if yamlFormat {
		err = goccyyaml.Unmarshal(data, &doc)
	} else {
		err = goccyjson.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeBundle, err)
	}

	return toBundle(doc), nil
}

func toBundle(doc document) *artifact.Bundle {
	bundle := &artifact.Bundle{}

	for _, s := range doc.Schemas {
		bundle.Schemas = append(bundle.Schemas, &artifact.SharedSchema{
			Refs:       s.Refs,
			Definition: s.Definition,
		})
	}

	for _, f := range doc.Flows {
		bundle.Flows = append(bundle.Flows, &artifact.Flow{
			Name:       f.Name,
			Refs:       f.Refs,
			Definition: f.Definition,
			Pages:      f.Pages,
		})
	}

	for _, p := range doc.Pages {
		var def *artifact.PageDefinition
		if p.Definition != nil {
			def = artifact.ParsePageDefinition(p.Definition)
		}
		bundle.Pages = append(bundle.Pages, &artifact.Page{
			Name:       p.Name,
			Refs:       p.Refs,
			Definition: def,
		})
	}

	for _, w := range doc.Widgets {
		descriptor := &artifact.WidgetDescriptor{}
		if features, ok := w.Descriptor["features"].(map[string]any); ok {
			descriptor.Features = features
		}
		bundle.Widgets = append(bundle.Widgets, &artifact.Widget{
			Name:       w.Name,
			Refs:       w.Refs,
			Descriptor: descriptor,
		})
	}

	for _, l := range doc.Layouts {
		bundle.Layouts = append(bundle.Layouts, &artifact.Artifact{
			Name:       l.Name,
			Refs:       l.Refs,
			Definition: l.Definition,
		})
	}

	return bundle
}

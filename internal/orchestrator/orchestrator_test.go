package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
	"github.com/laxarjs/laxar-assembler/internal/validator"
	"github.com/laxarjs/laxar-assembler/internal/validators"
)

func schemaDoc(extra map[string]any) map[string]any {
	doc := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
	}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

func TestValidateFlowsSkipsWhenNoValidatorRegistered(t *testing.T) {
	vt := &validators.Table{}
	flows := []*artifact.Flow{{Name: "f", Definition: map[string]any{}}}
	assert.NoError(t, ValidateFlows(flows, vt))
}

func TestValidateFlowsReportsFailure(t *testing.T) {
	facade := validator.Create()
	bad, err := facade.Compile(schemaDoc(map[string]any{
		"properties": map[string]any{"entry": map[string]any{"type": "string"}},
		"required":   []any{"entry"},
	}), "flow", validator.DefaultOptions())
	require.NoError(t, err)

	vt := &validators.Table{Flow: bad}
	flows := []*artifact.Flow{{Name: "badFlow", Definition: map[string]any{}}}

	err = ValidateFlows(flows, vt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badFlow")
}

func TestValidateWidgetsBuildsDescriptorDocument(t *testing.T) {
	facade := validator.Create()
	v, err := facade.Compile(schemaDoc(map[string]any{
		"properties": map[string]any{"features": map[string]any{"type": "object"}},
	}), "widget", validator.DefaultOptions())
	require.NoError(t, err)

	vt := &validators.Table{Widget: v}
	widgets := []*artifact.Widget{
		{Name: "w", Descriptor: &artifact.WidgetDescriptor{Features: map[string]any{"type": "object"}}},
	}

	assert.NoError(t, ValidateWidgets(widgets, vt))
}

func TestEntryRefsUnionsFlowPages(t *testing.T) {
	flows := []*artifact.Flow{
		{Name: "f1", Pages: []artifact.Ref{"p1", "p2"}},
		{Name: "f2", Pages: []artifact.Ref{"p2", "p3"}},
	}
	refs := entryRefs(flows)
	assert.Len(t, refs, 3)
	assert.Contains(t, refs, artifact.Ref("p1"))
	assert.Contains(t, refs, artifact.Ref("p3"))
}

func TestValidatePagesAssemblesOnlyEntryPages(t *testing.T) {
	bundle := &artifact.Bundle{
		Pages: []*artifact.Page{
			{Name: "entry", Refs: []artifact.Ref{"entry"}, Definition: &artifact.PageDefinition{
				Areas: map[string][]*artifact.Item{"a": {{Widget: "w1", ID: "id1"}}},
			}},
			{Name: "orphan", Refs: []artifact.Ref{"orphan"}, Definition: &artifact.PageDefinition{}},
		},
	}
	flows := []*artifact.Flow{{Name: "f", Pages: []artifact.Ref{"entry"}}}

	pages, err := ValidatePages(context.Background(), bundle, flows, &validators.Table{})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "entry", pages[0].Name)
}

func TestValidatePagesReturnsNilWhenNoEntries(t *testing.T) {
	bundle := &artifact.Bundle{Pages: []*artifact.Page{{Name: "p", Definition: &artifact.PageDefinition{}}}}
	pages, err := ValidatePages(context.Background(), bundle, nil, &validators.Table{})
	require.NoError(t, err)
	assert.Nil(t, pages)
}

func TestValidateArtifactsAssemblesEntryPagesEndToEnd(t *testing.T) {
	bundle := &artifact.Bundle{
		Pages: []*artifact.Page{
			{Name: "home", Refs: []artifact.Ref{"home"}, Definition: &artifact.PageDefinition{
				Areas: map[string][]*artifact.Item{"a": {{Widget: "w1", ID: "id1"}}},
			}},
		},
		Flows: []*artifact.Flow{{Name: "main", Definition: map[string]any{}, Pages: []artifact.Ref{"home"}}},
	}

	result, err := ValidateArtifacts(context.Background(), bundle)
	require.NoError(t, err)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "home", result.Pages[0].Name)
}

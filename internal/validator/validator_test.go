package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRejectsSchemaWithoutSchemaKeyword(t *testing.T) {
	f := Create()
	_, err := f.Compile(map[string]any{"type": "object"}, "mySchema", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSchemaKeyword)
}

func TestCompileAllowsMissingSchemaKeywordForFeatures(t *testing.T) {
	f := Create()
	opts := DefaultOptions()
	opts.IsFeaturesValidator = true
	_, err := f.Compile(map[string]any{"type": "object"}, "features", opts)
	require.NoError(t, err)
}

func TestCompileInjectsAdditionalPropertiesFalse(t *testing.T) {
	f := Create()
	doc := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "string"}},
	}
	v, err := f.Compile(doc, "doc", DefaultOptions())
	require.NoError(t, err)

	ok, errs := v(map[string]any{"a": "x", "b": "y"})
	assert.False(t, ok)
	assert.NotEmpty(t, errs)
}

func TestCompileExpandsTopicMapFormat(t *testing.T) {
	f := Create()
	doc := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"format":  "topic-map",
	}
	v, err := f.Compile(doc, "doc", DefaultOptions())
	require.NoError(t, err)

	ok, _ := v(map[string]any{"myTopic": "anything"})
	assert.True(t, ok)

	ok, _ = v(map[string]any{"Not A Topic!": "anything"})
	assert.False(t, ok)
}

func TestExpandFirstLevelDefaultsInjectsEmptyContainers(t *testing.T) {
	f := Create()
	doc := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"areas": map[string]any{"type": "object"},
		},
	}
	v, err := f.Compile(doc, "doc", DefaultOptions())
	require.NoError(t, err)

	value := map[string]any{}
	ok, _ := v(value)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{}, value["areas"])
}

func TestTopicFormatValidation(t *testing.T) {
	f := Create()
	doc := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "string",
		"format":  "topic",
	}
	v, err := f.Compile(doc, "doc", DefaultOptions())
	require.NoError(t, err)

	ok, _ := v("my-topic")
	assert.True(t, ok)

	ok, errs := v("Not A Topic!")
	assert.False(t, ok)
	require.NotEmpty(t, errs)
	assert.Equal(t, "format", errs[0].Keyword)
}

func TestCompileDescendsIntoObjectValuedAdditionalProperties(t *testing.T) {
	f := Create()
	doc := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"additionalProperties": map[string]any{
			"type":       "object",
			"properties": map[string]any{"a": map[string]any{"type": "string"}},
		},
	}
	v, err := f.Compile(doc, "doc", DefaultOptions())
	require.NoError(t, err)

	ok, _ := v(map[string]any{"extra": map[string]any{"a": "x"}})
	assert.True(t, ok)

	ok, errs := v(map[string]any{"extra": map[string]any{"a": "x", "b": "y"}})
	assert.False(t, ok)
	assert.NotEmpty(t, errs)
}

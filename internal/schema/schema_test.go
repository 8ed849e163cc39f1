package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndEvaluateBasicObject(t *testing.T) {
	c := NewCompiler()
	doc := map[string]any{
		"type":       "object",
		"properties": map[string]any{"name": map[string]any{"type": "string"}},
		"required":   []any{"name"},
	}
	s, err := c.Compile(doc)
	require.NoError(t, err)

	result := s.Evaluate(map[string]any{"name": "ok"}, "")
	assert.True(t, result.Valid)

	result = s.Evaluate(map[string]any{}, "")
	assert.False(t, result.Valid)
}

func TestEvaluateAppliesDefault(t *testing.T) {
	c := NewCompiler()
	doc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "number", "default": float64(3)},
		},
	}
	s, err := c.Compile(doc)
	require.NoError(t, err)

	value := map[string]any{}
	result := s.Evaluate(value, "")
	require.True(t, result.Valid)
	assert.Equal(t, float64(3), value["count"])
}

func TestEvaluateAdditionalPropertiesFalse(t *testing.T) {
	c := NewCompiler()
	doc := map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"a": map[string]any{"type": "string"}},
		"additionalProperties": false,
	}
	s, err := c.Compile(doc)
	require.NoError(t, err)

	result := s.Evaluate(map[string]any{"a": "x", "b": "y"}, "")
	require.False(t, result.Valid)
	errs := result.Flatten()
	require.Len(t, errs, 1)
	assert.Equal(t, "additionalProperties", errs[0].Keyword)
}

func TestRegisterFormatIsConsulted(t *testing.T) {
	c := NewCompiler()
	c.RegisterFormat("even", func(v any) bool {
		s, ok := v.(string)
		return ok && len(s)%2 == 0
	})
	c.SetAssertFormat(true)

	doc := map[string]any{"type": "string", "format": "even"}
	s, err := c.Compile(doc)
	require.NoError(t, err)

	assert.True(t, s.Evaluate("aaaa", "").Valid)
	assert.False(t, s.Evaluate("aaa", "").Valid)
}

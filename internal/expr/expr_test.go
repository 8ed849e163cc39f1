package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolatePassthrough(t *testing.T) {
	v, ok := Interpolate("plain string", nil)
	assert.True(t, ok)
	assert.Equal(t, "plain string", v)
}

func TestInterpolateTopicExpression(t *testing.T) {
	ctx := map[string]any{"id": "host"}
	v, ok := Interpolate("${topic:r}", ctx)
	assert.True(t, ok)
	assert.Equal(t, "host+r", v)
}

func TestInterpolateDottedPath(t *testing.T) {
	ctx := map[string]any{"features": map[string]any{"test": map[string]any{"resource": "R"}}}
	v, ok := Interpolate("${features.test.resource}", ctx)
	assert.True(t, ok)
	assert.Equal(t, "R", v)
}

func TestInterpolateUndefinedPathDropsValue(t *testing.T) {
	v, ok := Interpolate("${features.missing}", map[string]any{})
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestInterpolateNegation(t *testing.T) {
	ctx := map[string]any{"flag": "on"}
	v, ok := Interpolate("!${flag}", ctx)
	assert.True(t, ok)
	assert.Equal(t, "!on", v)
}

func TestInterpolateNegationIgnoredForNonString(t *testing.T) {
	ctx := map[string]any{"n": 5}
	v, ok := Interpolate("!${n}", ctx)
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestInterpolateObjectDropsUndefinedEntries(t *testing.T) {
	ctx := map[string]any{"present": "value"}
	input := map[string]any{
		"keep": "${present}",
		"drop": "${missing}",
		"lit":  42,
	}
	out, ok := Interpolate(input, ctx)
	assert.True(t, ok)
	m := out.(map[string]any)
	assert.Equal(t, "value", m["keep"])
	assert.Equal(t, 42, m["lit"])
	_, hasDrop := m["drop"]
	assert.False(t, hasDrop)
}

func TestInterpolateArrayDropsUndefinedElements(t *testing.T) {
	ctx := map[string]any{"present": "value"}
	input := []any{"${present}", "${missing}", "literal"}
	out, ok := Interpolate(input, ctx)
	assert.True(t, ok)
	arr := out.([]any)
	assert.Equal(t, []any{"value", "literal"}, arr)
}

func TestInterpolateArrayNestedInsideObjectPropertyIsRecursed(t *testing.T) {
	ctx := map[string]any{"id": "host"}
	input := map[string]any{
		"main": []any{
			map[string]any{"widget": "tw", "features": map[string]any{"resource": "${topic:r}"}},
		},
	}
	out, ok := Interpolate(input, ctx)
	assert.True(t, ok)
	m := out.(map[string]any)
	items := m["main"].([]any)
	item := items[0].(map[string]any)
	features := item["features"].(map[string]any)
	assert.Equal(t, "host+r", features["resource"])
}

func TestInterpolateNestedObjects(t *testing.T) {
	ctx := map[string]any{"a": map[string]any{"b": "C"}}
	input := map[string]any{
		"outer": map[string]any{
			"inner": "${a.b}",
		},
	}
	out, ok := Interpolate(input, ctx)
	assert.True(t, ok)
	m := out.(map[string]any)
	inner := m["outer"].(map[string]any)
	assert.Equal(t, "C", inner["inner"])
}

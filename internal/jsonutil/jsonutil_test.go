package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneDeepCopiesNestedStructures(t *testing.T) {
	original := map[string]any{
		"a": []any{1, map[string]any{"b": "c"}},
	}

	cloned := Clone(original).(map[string]any)
	assert.True(t, Equal(original, cloned))

	nestedArr := cloned["a"].([]any)
	nestedObj := nestedArr[1].(map[string]any)
	nestedObj["b"] = "changed"

	origArr := original["a"].([]any)
	origObj := origArr[1].(map[string]any)
	assert.Equal(t, "c", origObj["b"])
}

func TestEqualDetectsDifference(t *testing.T) {
	a := map[string]any{"x": 1}
	b := map[string]any{"x": 2}
	assert.False(t, Equal(a, b))
}

// Package expr implements the Expression Interpolator (§4.B): a tree
// rewriter over arbitrary decoded JSON values that evaluates the single-
// match whole-string "${...}" / "!${...}" grammar against a context
// object.
package expr

import (
	"regexp"
	"strings"

	"github.com/laxarjs/laxar-assembler/internal/ids"
)

var exprPattern = regexp.MustCompile(`^(!?)\$\{([^}]+)\}$`)

// Interpolate evaluates value against ctx, returning the rewritten value
// and true, or (nil, false) if value itself resolved to "undefined" (only
// possible when value is itself a single expression string resolving to a
// dropped path). Object and array traversal drop entries whose replacement
// is undefined, per §4.B.
func Interpolate(value any, ctx map[string]any) (any, bool) {
	switch t := value.(type) {
	case nil:
		return nil, true
	case string:
		return interpolateString(t, ctx)
	case []any:
		return interpolateArray(t, ctx), true
	case map[string]any:
		return interpolateObject(t, ctx), true
	default:
		return value, true
	}
}

func interpolateArray(arr []any, ctx map[string]any) []any {
	out := make([]any, 0, len(arr))
	for _, elem := range arr {
		if v, ok := Interpolate(elem, ctx); ok {
			out = append(out, v)
		}
	}
	return out
}

func interpolateObject(obj map[string]any, ctx map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		newKey, keyOK := interpolateString(k, ctx)
		if !keyOK {
			continue
		}
		keyStr, ok := newKey.(string)
		if !ok {
			continue
		}

		newVal, valOK := Interpolate(v, ctx)
		if !valOK {
			continue
		}
		out[keyStr] = newVal
	}
	return out
}

func interpolateString(s string, ctx map[string]any) (any, bool) {
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return s, true
	}
	negate := m[1] == "!"
	inner := m[2]

	var resolved any
	var found bool
	if strings.HasPrefix(inner, "topic:") {
		subtopic := inner[len("topic:"):]
		id, _ := ctx["id"].(string)
		resolved = ids.TopicFromID(id) + "+" + subtopic
		found = true
	} else {
		resolved, found = resolvePath(ctx, inner)
	}

	if !found {
		return nil, false
	}

	if negate {
		if str, ok := resolved.(string); ok {
			return "!" + str, true
		}
	}
	return resolved, true
}

// resolvePath resolves a dotted path into a nested map[string]any tree,
// the "standard shallow path accessor" referenced in §4.B.
func resolvePath(ctx map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var cur any = ctx
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

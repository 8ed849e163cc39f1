// Package ids implements the ID & Topic Utilities of §4.C: deterministic
// id generation, dash/underscore/slash-to-camelCase conversion, and
// id-to-topic conversion.
package ids

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

var camelBoundary = regexp.MustCompile(`[_/-].`)

// DashToCamel replaces each occurrence of [_/-]X with uppercase X.
func DashToCamel(s string) string {
	return camelBoundary.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// TopicFromID replaces the first "-" in id with "+" (matching JavaScript's
// single-argument String.replace semantics, which the source formula in
// §6 relies on), then applies DashToCamel to the result.
func TopicFromID(id string) string {
	return DashToCamel(replaceFirst(id, "-", "+"))
}

func replaceFirst(s, old, replacement string) string {
	idx := strings.Index(s, old)
	if idx < 0 {
		return s
	}
	return s[:idx] + replacement + s[idx+len(old):]
}

// ItemName derives the name used to seed a generated id, per §4.C:
// widget items use the last "/"-separated segment of the widget ref,
// composition and layout items use their ref verbatim, all run through
// DashToCamel; any other item kind yields "". Exactly one of widget,
// composition, layout should be non-empty, mirroring the Item discriminant
// in internal/artifact.
func ItemName(widget, composition, layout string) string {
	switch {
	case widget != "":
		segments := strings.Split(widget, "/")
		return DashToCamel(segments[len(segments)-1])
	case composition != "":
		return DashToCamel(composition)
	case layout != "":
		return DashToCamel(layout)
	default:
		return ""
	}
}

// Counter is the assembler's per-instance monotonic id counter (§3's
// lifecycle rule: "the assembler retains a per-instance monotonic id
// counter to guarantee generated-id uniqueness across all pages assembled
// by one instance"). The zero value starts counting at 0 and is safe for
// concurrent use, matching §5's "relaxed atomic in a threaded port" note.
type Counter struct {
	n atomic.Uint64
}

// Next returns the next counter value and advances the counter.
func (c *Counter) Next() uint64 {
	return c.n.Add(1) - 1
}

// NextID returns "<prefix>-id<N>" where N is drawn from c, per §4.C/§6.
func NextID(c *Counter, prefix string) string {
	return fmt.Sprintf("%s-id%d", prefix, c.Next())
}

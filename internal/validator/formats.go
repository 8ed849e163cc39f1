package validator

import "regexp"

// topicSegment matches one topic segment: a lowercase segment starting with a
// lowercase letter and continuing with letters, digits or "+", or an
// uppercase segment of the equivalent shape.
const topicSegment = `(?:[a-z][+a-zA-Z0-9]*|[A-Z][+A-Z0-9]*)`

var (
	topicRe      = regexp.MustCompile(`^(?:` + topicSegment + `(?:-` + topicSegment + `)*)$`)
	subTopicRe   = regexp.MustCompile(`^` + topicSegment + `$`)
	flagTopicRe  = regexp.MustCompile(`^!?` + topicSegment + `(?:-` + topicSegment + `)*$`)
	languageTagRe = regexp.MustCompile(`(?i)^[a-z]{2,8}(?:[_-][a-z0-9]{1,8})*$`)
)

func isTopic(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return topicRe.MatchString(s)
}

func isSubTopic(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return subTopicRe.MatchString(s)
}

func isFlagTopic(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return flagTopicRe.MatchString(s)
}

func isLanguageTag(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return languageTagRe.MatchString(s)
}

// topicMapKeyPattern and localizationKeyPattern are the patternProperties
// key regexes a bare "topic-map"/"localization" object schema is rewritten
// into (§4.A). They reuse the same grammar as the corresponding string
// formats, since a topic-map's keys are topics and a localization map's
// keys are language tags.
var (
	topicMapKeyPattern      = topicRe.String()
	localizationKeyPattern  = languageTagRe.String()
)

// alwaysTrue backs "topic-map"/"localization" as string formats: when the
// map-format rewrite doesn't apply (the schema isn't a bare object schema),
// these formats degrade to a no-op per §4.A ("format is really a key
// constraint").
func alwaysTrue(any) bool { return true }

// Credit to https://github.com/santhosh-tekuri/jsonschema for the general
// shape of these format validators, via the teacher's own formats.go.
package schema

import (
	"net/mail"
	"net/url"
	"regexp"
	"time"
)

// Formats is the built-in format registry. Domain-specific formats (topic,
// sub-topic, flag-topic, language-tag, topic-map, localization) are
// registered on top of this by internal/validator, not here — this engine
// stays generic.
var Formats = map[string]FormatFunc{
	"date-time": IsDateTime,
	"date":      IsDate,
	"email":     IsEmail,
	"uri":       IsURI,
	"regex":     IsRegex,
}

// IsDateTime reports whether v is a valid RFC 3339 date-time string.
func IsDateTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// IsDate reports whether v is a valid RFC 3339 full-date string.
func IsDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsEmail reports whether v is a syntactically valid email address.
func IsEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsURI reports whether v is a valid absolute URI.
func IsURI(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// IsRegex reports whether v compiles as a regular expression.
func IsRegex(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := regexp.Compile(s)
	return err == nil
}

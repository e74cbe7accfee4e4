package normalize

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing free-text dates. Day-first
// layouts come before month-first so an ambiguous "03/04/2024" resolves to
// 3 April, matching the upstream convention.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"1/2/2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"1/2006",
	"2006-01",
	"2006",
	time.RFC3339,
}

// ParseDate parses a free-text date into canonical YYYY-MM-DD form.
// Empty or unparsable input returns ok=false rather than an error; callers
// decide whether absence is acceptable for the field in question.
func ParseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// fixDate normalizes a raw field value to canonical date form, yielding ""
// when the value is missing or cannot be parsed.
func fixDate(v any) string {
	s, ok := ParseDate(stringValue(v))
	if !ok {
		return ""
	}
	return s
}

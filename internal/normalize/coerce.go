// Package normalize coerces loosely-structured upstream data API payloads
// into the canonical shapes expected by the Stage-0 schema.
package normalize

import (
	"encoding/json"
	"strings"
)

// StringList flattens a heterogeneous list into plain strings.
//
// Upstream represents list fields (required skills, responsibilities)
// inconsistently: entries may be plain strings or objects carrying the text
// under one of several name fields. Strings are trimmed and kept when
// non-empty; objects contribute the first non-empty name field; everything
// else is dropped. Relative order is preserved and no deduplication happens.
func StringList(items []any, nameFields ...string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			for _, field := range nameFields {
				if s := strings.TrimSpace(stringValue(v[field])); s != "" {
					out = append(out, s)
					break
				}
			}
		}
	}
	return out
}

// EnsureList accepts a value that should be a list of strings but may arrive
// as a string. Strings are first parsed as a JSON array; when that fails they
// are split on commas with each piece trimmed and empties dropped.
func EnsureList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case string:
		var parsed []any
		if err := json.Unmarshal([]byte(val), &parsed); err == nil {
			return parsed
		}
		var out []any
		for _, piece := range strings.Split(val, ",") {
			if s := strings.TrimSpace(piece); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// stringValue returns v as a string, or "" when it is not one.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// firstString returns the first non-empty string among the given keys of m.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// sliceOfMaps extracts m[key] as a list; non-list values yield nil.
func sliceOfMaps(m map[string]any, key string) []any {
	items, _ := m[key].([]any)
	return items
}

// setIfPresent stores value under key when it is a non-empty string.
func setIfPresent(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

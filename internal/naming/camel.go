// Package naming converts JSON key casing at the API boundary.
// Internal payloads are snake_case; the external API speaks camelCase.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToCamel converts a snake_case string to camelCase.
//
// Strings without underscores pass through unchanged, including names that
// are already camelCase. Leading and trailing underscore runs are kept as-is
// around the converted core, so "__private_field" becomes "__privateField"
// and "field__" stays "field__".
func ToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}

	core := strings.Trim(s, "_")
	if core == "" {
		// e.g. "___"
		return s
	}
	leading := len(s) - len(strings.TrimLeft(s, "_"))
	trailing := len(s) - len(strings.TrimRight(s, "_"))

	parts := strings.FieldsFunc(core, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return s
	}

	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		r, size := utf8.DecodeRuneInString(p)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(p[size:])
	}

	return s[:leading] + sb.String() + s[len(s)-trailing:]
}

// ConvertKeysDeep recursively converts map keys from snake_case to camelCase.
// The input is never mutated; a new structure is returned.
//
// preserve lists container keys (in either casing) whose value, when it is
// itself a map, is copied through with its inner keys untouched at every
// depth. The container key itself is still converted. The exemption covers
// exactly that subtree: siblings convert normally, and non-map values under
// a preserved key get the normal recursive treatment.
func ConvertKeysDeep(v any, preserve map[string]bool) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ConvertKeysDeep(item, preserve)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, value := range val {
			camel := ToCamel(key)
			if _, isMap := value.(map[string]any); isMap && (preserve[key] || preserve[camel]) {
				out[camel] = deepCopy(value)
				continue
			}
			out[camel] = ConvertKeysDeep(value, preserve)
		}
		return out
	default:
		return v
	}
}

// deepCopy clones a JSON-like value without touching any keys.
func deepCopy(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

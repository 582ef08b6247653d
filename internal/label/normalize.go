package label

import "strings"

// Qualifier words that introduce a descriptive tail on a detected
// object name. Everything from the first occurrence onward is dropped
// so "cup with red stripes" and "cup with blue stripes" collapse to
// the same key.
var qualifierWords = map[string]struct{}{
	"with":       {},
	"holding":    {},
	"containing": {},
	"on":         {},
	"in":         {},
	"near":       {},
	"next":       {},
}

// Normalize canonicalizes a raw detection label into a comparable key:
// lowercase, descriptive tail stripped, leading adjectives dropped by
// keeping the final token, single plural suffix removed. An empty or
// whitespace-only input yields an empty key; callers treat that as an
// unnamed object.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	fields := strings.Fields(s)
	for i, f := range fields {
		if _, ok := qualifierWords[f]; ok {
			fields = fields[:i]
			break
		}
	}
	if len(fields) == 0 {
		return ""
	}

	key := fields[len(fields)-1]
	return singular(key)
}

func singular(s string) string {
	if len(s) > 3 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}

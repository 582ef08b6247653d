package ambiguity

import (
	"fmt"
	"strings"

	"github.com/eleven-am/sight-backend/internal/vision"
)

// CanonicalLabel is the bare "{name} #{id}" form. The selection
// resolver matches user replies against exactly this rendering, so it
// must stay in sync with SummarizeObject's leading segment.
func CanonicalLabel(obj vision.DetectedObject) string {
	name := obj.Name
	if name == "" {
		name = "object"
	}
	return fmt.Sprintf("%s #%d", name, obj.ID)
}

// SummarizeObject renders the short human-readable label used for
// clarifying options, e.g. "cup #2 (red, top-left)". The fallback is
// used when the detection pass assigned no id.
func SummarizeObject(obj vision.DetectedObject, idxFallback int) string {
	if obj.ID <= 0 {
		obj.ID = idxFallback
	}

	parts := []string{CanonicalLabel(obj)}

	var meta []string
	if obj.Color != "" && strings.ToLower(obj.Color) != "none" {
		meta = append(meta, obj.Color)
	}
	if obj.Position != "" && strings.ToLower(obj.Position) != "unknown" {
		meta = append(meta, obj.Position)
	}
	if len(meta) > 0 {
		parts = append(parts, "("+strings.Join(meta, ", ")+")")
	}

	return strings.Join(parts, " ")
}

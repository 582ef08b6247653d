package answer

import (
	"fmt"
	"strings"

	"github.com/eleven-am/sight-backend/internal/vision"
)

// OnePass renders the exhaustive structured scene description used in
// one-pass mode. Deterministic, no generator call involved.
func OnePass(objects []vision.DetectedObject) string {
	if len(objects) == 0 {
		return "I do not see any objects in the image."
	}

	lines := []string{fmt.Sprintf("I see %d objects in the image:", len(objects))}

	for _, obj := range objects {
		name := obj.Name
		if name == "" {
			name = "object"
		}
		count := obj.Count
		if count < 1 {
			count = 1
		}

		description := fmt.Sprintf("- %d %s", count, name)

		var details []string
		if obj.Color != "" && strings.ToLower(obj.Color) != "none" {
			details = append(details, obj.Color)
		}
		if obj.Position != "" && strings.ToLower(obj.Position) != "unknown" {
			details = append(details, obj.Position)
		}
		if len(details) > 0 {
			description += fmt.Sprintf(" (%s)", strings.Join(details, ", "))
		}

		lines = append(lines, description)
	}

	return strings.Join(lines, "\n")
}

// NoObjectsMessage is the hand-back when detection legitimately finds
// nothing. An empty scene is a terminal outcome, not a failure.
const NoObjectsMessage = "I do not see any salient objects to talk about."

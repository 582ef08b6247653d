package ambiguity

import (
	"fmt"
	"strings"

	"github.com/eleven-am/sight-backend/internal/vision"
)

const maxGenericOptions = 6

// Result is the outcome of one ambiguity pass over a question and a
// detected object list.
type Result struct {
	IsAmbiguous        bool           `json:"is_ambiguous"`
	Reasons            []string       `json:"reasons"`
	ClarifyingQuestion string         `json:"clarifying_question,omitempty"`
	Options            []string       `json:"options,omitempty"`
	MultiObjectGroups  map[string]int `json:"multi_object_groups,omitempty"`
}

// Detect runs the rule-based detector over a single-image object list.
// Pure function: no side effects, deterministic for a given input.
func Detect(question string, objects []vision.DetectedObject) Result {
	q := strings.ToLower(strings.TrimSpace(question))

	result := Result{
		Reasons:           []string{},
		MultiObjectGroups: map[string]int{},
	}

	hasPronoun := matchesAny(q, pronounRules)
	if hasPronoun {
		result.Reasons = append(result.Reasons, ReasonPronoun)
	}

	groupOrder, groups := groupByName(objects)
	for _, name := range groupOrder {
		if n := len(groups[name]); n >= 2 {
			result.Reasons = append(result.Reasons, fmt.Sprintf("%s: %s(%d)", ReasonMultipleObjects, name, n))
			result.MultiObjectGroups[name] = n
		}
	}

	asksCount := countIntentRe.MatchString(q)
	asksListAll := listIntentRe.MatchString(q)
	hasReferentialHint := matchesAny(q, referentialHintRules)

	// Aggregate questions are never ambiguous: the answer covers every
	// instance, so there is nothing to clarify.
	if !asksCount && !asksListAll {
		if hasPronoun || len(result.MultiObjectGroups) > 0 {
			result.IsAmbiguous = true
		}
	}

	if result.IsAmbiguous {
		if target, ok := largestGroup(groupOrder, groups); ok {
			members := groups[target]
			result.Options = make([]string, len(members))
			for i, obj := range members {
				result.Options[i] = SummarizeObject(obj, i+1)
			}
			result.ClarifyingQuestion = fmt.Sprintf("I see multiple %ss. Which one do you mean?", target)
		} else {
			// Pronoun without a duplicate group: offer the leading
			// detections and ask generically.
			limit := len(objects)
			if limit > maxGenericOptions {
				limit = maxGenericOptions
			}
			result.Options = make([]string, limit)
			for i := 0; i < limit; i++ {
				result.Options[i] = SummarizeObject(objects[i], i+1)
			}
			result.ClarifyingQuestion = "Which object are you referring to?"
		}

		if hasReferentialHint {
			result.Reasons = append(result.Reasons, ReasonReferentialHint)
		}
	}

	return result
}

// groupByName buckets objects by their case- and whitespace-normalized
// name, preserving first-encounter order of the keys.
func groupByName(objects []vision.DetectedObject) ([]string, map[string][]vision.DetectedObject) {
	var order []string
	groups := make(map[string][]vision.DetectedObject)

	for _, obj := range objects {
		name := strings.ToLower(strings.TrimSpace(obj.Name))
		if name == "" {
			name = "object"
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], obj)
	}

	return order, groups
}

// largestGroup picks the duplicate-type group with the most members.
// Ties break toward the first-encountered name.
func largestGroup(order []string, groups map[string][]vision.DetectedObject) (string, bool) {
	best := ""
	bestCount := 0
	for _, name := range order {
		if n := len(groups[name]); n >= 2 && n > bestCount {
			best = name
			bestCount = n
		}
	}
	return best, best != ""
}

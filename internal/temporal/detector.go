package temporal

import "github.com/eleven-am/sight-backend/internal/ambiguity"

const clarifyingQuestion = "I see multiple objects across time. Which one are you referring to?"

// Detect applies the temporal ambiguity rule: zero or one entity is
// unambiguous, anything more always needs clarification. The question
// text is not consulted.
func Detect(question string, entities []Entity) ambiguity.Result {
	_ = question

	result := ambiguity.Result{
		Reasons:           []string{},
		MultiObjectGroups: map[string]int{},
	}

	if len(entities) <= 1 {
		return result
	}

	result.IsAmbiguous = true
	result.Reasons = append(result.Reasons, "multiple_temporal_objects")
	result.ClarifyingQuestion = clarifyingQuestion
	result.Options = make([]string, len(entities))
	for i, e := range entities {
		result.Options[i] = e.OptionLabel()
	}

	return result
}

package convo

import (
	"strings"

	"github.com/eleven-am/sight-backend/internal/ambiguity"
	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
)

// Selection is the candidate a clarification reply resolved to.
// Exactly one of Object and Entity is set, matching the session kind.
type Selection struct {
	Object *vision.DetectedObject
	Entity *temporal.Entity
}

// Label re-renders the selected candidate the way it was offered to
// the user.
func (sel Selection) Label() string {
	if sel.Object != nil {
		return ambiguity.CanonicalLabel(*sel.Object)
	}
	if sel.Entity != nil {
		return sel.Entity.OptionLabel()
	}
	return ""
}

// Resolve matches a user's free-text clarification reply back to one
// candidate. Strategies in order, first success wins: literal
// containment of the canonical option label, case-insensitive
// substring of the bare name, and an unconditional pick when only one
// candidate exists. With several candidates and no match the caller
// must re-ask rather than guess.
func Resolve(sess *Session, userText string) (Selection, bool) {
	if sess.Kind == shared.SceneKindVideo {
		return resolveEntity(sess.Entities, userText)
	}
	return resolveObject(sess.Objects, userText)
}

func resolveObject(candidates []vision.DetectedObject, userText string) (Selection, bool) {
	for i := range candidates {
		if strings.Contains(userText, ambiguity.CanonicalLabel(candidates[i])) {
			return Selection{Object: &candidates[i]}, true
		}
	}

	lower := strings.ToLower(userText)
	for i := range candidates {
		name := strings.ToLower(candidates[i].Name)
		if name != "" && strings.Contains(lower, name) {
			return Selection{Object: &candidates[i]}, true
		}
	}

	if len(candidates) == 1 {
		return Selection{Object: &candidates[0]}, true
	}

	return Selection{}, false
}

func resolveEntity(candidates []temporal.Entity, userText string) (Selection, bool) {
	for i := range candidates {
		if strings.Contains(userText, candidates[i].OptionLabel()) {
			return Selection{Entity: &candidates[i]}, true
		}
	}

	lower := strings.ToLower(userText)
	for i := range candidates {
		name := strings.ToLower(candidates[i].Name)
		if name != "" && strings.Contains(lower, name) {
			return Selection{Entity: &candidates[i]}, true
		}
	}

	if len(candidates) == 1 {
		return Selection{Entity: &candidates[0]}, true
	}

	return Selection{}, false
}

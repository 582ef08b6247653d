package convo

import (
	"time"

	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
)

const DefaultTTL = 10 * time.Minute

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Session carries one ambiguous scene through the clarify, select and
// follow-up turns. The object list is frozen at creation; later turns
// never re-query the vision service.
type Session struct {
	ID        string           `json:"id"`
	Kind      shared.SceneKind `json:"kind"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`

	Question string                  `json:"question"`
	Objects  []vision.DetectedObject `json:"objects,omitempty"`
	Entities []temporal.Entity       `json:"entities,omitempty"`

	FocusObject *vision.DetectedObject `json:"focus_object,omitempty"`
	FocusEntity *temporal.Entity       `json:"focus_entity,omitempty"`

	History []Turn `json:"history"`
}

// HasFocus reports whether a clarification round has committed the
// session to a single referent.
func (s *Session) HasFocus() bool {
	return s.FocusObject != nil || s.FocusEntity != nil
}

func (s *Session) RedisKey() string {
	return "convo:" + s.ID
}

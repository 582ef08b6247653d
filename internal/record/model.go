package record

import (
	"time"

	"github.com/eleven-am/sight-backend/internal/shared"
)

// Analysis is one row of the analysis log, written for every
// /analyze call whether or not it spawned a session.
type Analysis struct {
	ID          string           `gorm:"primaryKey" json:"id"`
	Kind        shared.SceneKind `gorm:"not null;index" json:"kind"`
	Mode        string           `gorm:"not null" json:"mode"`
	Question    string           `gorm:"not null" json:"question"`
	ObjectCount int              `json:"object_count"`
	Ambiguous   bool             `gorm:"index" json:"ambiguous"`
	SessionID   string           `gorm:"index" json:"session_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

package vision

import (
	"context"
	"time"

	"github.com/eleven-am/sight-backend/internal/shared"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DetectedObject is one entry of the labeler's structured object list
// for a single image or frame. IDs are assigned per detection pass and
// carry no identity across frames.
type DetectedObject struct {
	ID         int                `json:"id" example:"1"`
	Name       string             `json:"name" example:"cup"`
	Count      int                `json:"count" example:"1"`
	Color      string             `json:"color,omitempty" example:"red"`
	Position   string             `json:"position,omitempty" example:"top-left"`
	Attributes shared.StringSlice `json:"attributes,omitempty"`
}

// Labeler is the external vision collaborator: raw image bytes in,
// detected object list out. An empty list is a valid outcome, not an
// error.
type Labeler interface {
	AnalyzeImage(ctx context.Context, data []byte, mimeType, question string) ([]DetectedObject, error)
	IsAvailable(ctx context.Context) bool
}

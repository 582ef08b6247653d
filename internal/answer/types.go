package answer

import (
	"context"
	"time"

	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Request carries the selected referent plus the full candidate list
// so the generator can answer follow-ups without re-detection.
// Temporal switches the context framing from a static scene to
// first-seen/last-seen timing.
type Request struct {
	Question string
	Temporal bool

	Object  *vision.DetectedObject
	Objects []vision.DetectedObject

	Entity   *temporal.Entity
	Entities []temporal.Entity
}

// Generator is the external natural-language answer collaborator.
type Generator interface {
	Answer(ctx context.Context, req Request) (string, error)
	IsAvailable(ctx context.Context) bool
}

package frames

import (
	"context"
	"time"
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	MaxFrames int
}

// Frame is one sampled still with the timestamp label under which it
// was cut, rendered as fixed-precision seconds with a trailing "s",
// e.g. "1.17s".
type Frame struct {
	Data      []byte
	Timestamp string
}

// Sampler is the external frame extraction collaborator: raw video
// bytes in, evenly spaced JPEG frames out, already in temporal order.
type Sampler interface {
	Extract(ctx context.Context, video []byte, maxFrames int) ([]Frame, error)
	IsAvailable(ctx context.Context) bool
}

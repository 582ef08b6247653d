package temporal

import (
	"fmt"

	"github.com/eleven-am/sight-backend/internal/label"
	"github.com/eleven-am/sight-backend/internal/vision"
)

// Entity is a real-world object tracked across sampled frames by
// normalized identity, as opposed to a single per-frame detection.
type Entity struct {
	Name      string `json:"name" example:"cup"`
	FirstSeen string `json:"first_seen" example:"0.00s"`
	LastSeen  string `json:"last_seen" example:"3.51s"`
	Count     int    `json:"count,omitempty" example:"4"`
}

// OptionLabel renders the entity exactly as it is presented to the
// user at clarification time. The selection resolver matches against
// this rendering, so the two must not drift apart.
func (e Entity) OptionLabel() string {
	if e.FirstSeen == e.LastSeen {
		return fmt.Sprintf("%s at %s", e.Name, e.FirstSeen)
	}
	return fmt.Sprintf("%s (%s–%s)", e.Name, e.FirstSeen, e.LastSeen)
}

// FrameObjects pairs one sampled frame's timestamp label with its
// detection result.
type FrameObjects struct {
	Timestamp string
	Objects   []vision.DetectedObject
}

// DefaultIgnore lists generic scene-level nouns that must never
// create or extend an entity.
var DefaultIgnore = []string{
	"scene", "room", "background", "furniture",
	"wall", "floor", "ceiling", "area", "image", "video",
}

// Aggregator folds time-ordered frame detections into deduplicated
// entities. Matching is first-match-wins over keys in creation order,
// a deliberate simplification over global clustering: the output is
// sensitive to presentation order.
type Aggregator struct {
	Threshold float64
	Ignore    map[string]struct{}
}

func NewAggregator() *Aggregator {
	ignore := make(map[string]struct{}, len(DefaultIgnore))
	for _, name := range DefaultIgnore {
		ignore[name] = struct{}{}
	}
	return &Aggregator{
		Threshold: label.DefaultThreshold,
		Ignore:    ignore,
	}
}

// Aggregate consumes frames already in non-decreasing timestamp order;
// ordering is an input precondition and is not re-checked. For each
// observation: normalize, redirect to the first existing key above the
// similarity threshold, drop ignore-listed keys, then create or fold.
func (a *Aggregator) Aggregate(frames []FrameObjects) []Entity {
	var order []string
	entities := make(map[string]*Entity)

	for _, frame := range frames {
		for _, obj := range frame.Objects {
			key := label.Normalize(obj.Name)

			for _, existing := range order {
				if label.Similarity(key, existing) > a.Threshold {
					key = existing
					break
				}
			}

			if _, ignored := a.Ignore[key]; ignored {
				continue
			}

			if ent, ok := entities[key]; ok {
				ent.LastSeen = frame.Timestamp
				ent.Count++
				continue
			}

			entities[key] = &Entity{
				Name:      key,
				FirstSeen: frame.Timestamp,
				LastSeen:  frame.Timestamp,
				Count:     1,
			}
			order = append(order, key)
		}
	}

	result := make([]Entity, 0, len(order))
	for _, key := range order {
		result = append(result, *entities[key])
	}
	return result
}

package answer

import (
	"strings"
	"testing"

	"github.com/eleven-am/sight-backend/internal/vision"
)

func TestOnePass_Empty(t *testing.T) {
	got := OnePass(nil)
	if got != "I do not see any objects in the image." {
		t.Errorf("unexpected empty-scene message: %q", got)
	}
}

func TestOnePass(t *testing.T) {
	objects := []vision.DetectedObject{
		{ID: 1, Name: "cup", Count: 2, Color: "red", Position: "left"},
		{ID: 2, Name: "chair", Count: 1, Color: "None", Position: "unknown"},
		{ID: 3, Name: "", Count: 0},
	}

	got := OnePass(objects)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "I see 3 objects in the image:" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "- 2 cup (red, left)" {
		t.Errorf("unexpected cup line: %q", lines[1])
	}
	if lines[2] != "- 1 chair" {
		t.Errorf("none color and unknown position must be dropped: %q", lines[2])
	}
	if lines[3] != "- 1 object" {
		t.Errorf("unnamed and zero-count objects get defaults: %q", lines[3])
	}
}

package shared

import (
	"strings"
	"testing"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name     string
		slice    StringSlice
		expected string
	}{
		{
			name:     "empty slice",
			slice:    StringSlice{},
			expected: "[]",
		},
		{
			name:     "nil slice",
			slice:    nil,
			expected: "[]",
		},
		{
			name:     "single attribute",
			slice:    StringSlice{"ceramic"},
			expected: `["ceramic"]`,
		},
		{
			name:     "multiple attributes",
			slice:    StringSlice{"ceramic", "striped", "chipped"},
			expected: `["ceramic","striped","chipped"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.slice.Value()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			str, ok := result.([]byte)
			if !ok {
				s, ok := result.(string)
				if !ok {
					t.Fatalf("expected string or []byte, got %T", result)
				}
				str = []byte(s)
			}
			if string(str) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, string(str))
			}
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected StringSlice
		wantErr  bool
	}{
		{
			name:     "nil value",
			input:    nil,
			expected: nil,
		},
		{
			name:     "bytes",
			input:    []byte(`["red","left"]`),
			expected: StringSlice{"red", "left"},
		},
		{
			name:     "string",
			input:    `["wooden"]`,
			expected: StringSlice{"wooden"},
		},
		{
			name:    "unsupported type",
			input:   42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(s) != len(tt.expected) {
				t.Fatalf("expected %d items, got %d", len(tt.expected), len(s))
			}
			for i := range s {
				if s[i] != tt.expected[i] {
					t.Errorf("item %d: expected %s, got %s", i, tt.expected[i], s[i])
				}
			}
		})
	}
}

func TestNewID(t *testing.T) {
	id := NewID("conv_")
	if !strings.HasPrefix(id, "conv_") {
		t.Errorf("expected prefix 'conv_', got %s", id)
	}
	if len(id) != len("conv_")+32 {
		t.Errorf("expected 32 hex chars after prefix, got %d", len(id)-len("conv_"))
	}

	other := NewID("conv_")
	if id == other {
		t.Error("expected unique ids")
	}
}

func TestSceneKind(t *testing.T) {
	if SceneKindImage.String() != "image" {
		t.Errorf("unexpected: %s", SceneKindImage)
	}
	if SceneKindVideo.String() != "video" {
		t.Errorf("unexpected: %s", SceneKindVideo)
	}
}

func TestAnalysisMode_Valid(t *testing.T) {
	if !ModeOnePass.Valid() || !ModeClarify.Valid() {
		t.Error("expected built-in modes to be valid")
	}
	if AnalysisMode("stream").Valid() {
		t.Error("unknown mode should be invalid")
	}
}

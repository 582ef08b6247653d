package label

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "cup", "cup"},
		{"uppercase", "Cup", "cup"},
		{"surrounding whitespace", "  chair  ", "chair"},
		{"qualifier tail", "cup with red stripes", "cup"},
		{"qualifier tail variant", "cup with blue stripes", "cup"},
		{"holding tail", "person holding a phone", "person"},
		{"location tail", "book on the shelf", "book"},
		{"leading adjective", "wooden chair", "chair"},
		{"adjectives stacked", "small red mug", "mug"},
		{"plural", "cups", "cup"},
		{"plural with adjective", "ceramic plates", "plate"},
		{"double s kept", "glass", "glass"},
		{"short word kept", "bus", "bus"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"qualifier first word", "with stripes", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_CollapsesVariants(t *testing.T) {
	variants := []string{
		"cup with red stripes",
		"cup with blue stripes",
		"Cups",
		"porcelain cup",
	}
	for _, v := range variants {
		if got := Normalize(v); got != "cup" {
			t.Errorf("Normalize(%q) = %q, expected cup", v, got)
		}
	}
}

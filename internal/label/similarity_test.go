package label

import "testing"

func TestSimilarity_Reflexive(t *testing.T) {
	keys := []string{"cup", "vase", "a", "", "chair"}
	for _, k := range keys {
		if got := Similarity(k, k); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, expected 1.0", k, k, got)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"near duplicate", "vase", "vas", 0.76, 1.0},
		{"disjoint", "cup", "dog", 0.0, 0.1},
		{"empty vs word", "", "cup", 0.0, 0.0},
		{"prefix", "chair", "chairs", 0.88, 1.0},
		{"partial overlap", "table", "cable", 0.5, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("Similarity(%q, %q) = %v, expected in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
			if rev := Similarity(tt.b, tt.a); rev != got {
				t.Errorf("similarity not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestSame(t *testing.T) {
	if !Same("vase", "vas") {
		t.Error("expected vase and vas to merge")
	}
	if Same("cup", "dog") {
		t.Error("expected cup and dog to stay separate")
	}
	// score equal to the threshold must not merge
	if Same("ab", "ax") {
		// 2*1/4 = 0.5 < 0.75, distinct
		t.Error("expected ab and ax to stay separate")
	}
}

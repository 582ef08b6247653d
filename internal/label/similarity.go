package label

// DefaultThreshold is the identity cutoff for merging two keys into
// one entity. Two keys denote the same entity iff their similarity is
// strictly greater than the threshold.
const DefaultThreshold = 0.75

// Similarity scores two normalized keys in [0,1] using a longest
// common subsequence ratio, the same shape as Python's difflib ratio:
// 2*matches / (len(a)+len(b)). Detection labels come from independent
// per-frame calls to a non-deterministic labeler, so near-duplicates
// like "vase" and "vas" must still score high.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	matches := lcsLength(a, b)
	return 2.0 * float64(matches) / float64(len(a)+len(b))
}

// Same reports whether two keys identify the same entity at the
// default threshold.
func Same(a, b string) bool {
	return Similarity(a, b) > DefaultThreshold
}

func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

package search

import "github.com/fwojciec/docsearch"

// FuzzyMatch reports whether a and b are within threshold edit distance
// relative to the longer of the two. Pairs whose lengths differ by more
// than maxLengthDiff are rejected without computing the distance.
func FuzzyMatch(a, b string, threshold float64, maxLengthDiff int) bool {
	la, lb := len(a), len(b)
	if abs(la-lb) > maxLengthDiff {
		return false
	}
	longest := max(la, lb)
	if longest == 0 {
		return true
	}
	return float64(docsearch.Levenshtein(a, b))/float64(longest) <= threshold
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

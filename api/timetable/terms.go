package timetable

import (
	"cmp"
	"slices"
)

// DefaultLatest is how many of the most recent terms are scraped.
const DefaultLatest = 2

// Latest returns the n terms with the greatest codes in ascending code
// order. All terms are returned when there are fewer than n.
func Latest(terms []Term, n int) []Term {
	sorted := slices.SortedStableFunc(slices.Values(terms), func(a, b Term) int {
		return cmp.Compare(a.Code, b.Code)
	})
	if n <= 0 {
		return []Term{}
	}
	if len(sorted) <= n {
		return sorted
	}
	return sorted[len(sorted)-n:]
}

package dice

import "fmt"

// WeightedIndex draws one index from weights, with probability proportional
// to each weight. Zero-weight entries are unreachable.
//
// Precondition: src must be non-nil; all weights must be >= 0.
// Postcondition: Returns an index i with weights[i] > 0, or an error when
// weights is empty or sums to zero.
func WeightedIndex(weights []int, src Source) (int, error) {
	total := 0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("dice: negative weight %d at index %d", w, i)
		}
		total += w
	}
	if total == 0 {
		return 0, fmt.Errorf("dice: empty or zero-weight candidate list")
	}

	pick := src.Intn(total)
	for i, w := range weights {
		if pick < w {
			return i, nil
		}
		pick -= w
	}
	// Unreachable: pick < total and the loop consumes exactly total.
	return 0, fmt.Errorf("dice: weighted draw out of range")
}

// Percent reports a success with probability chance/100.
// A chance <= 0 never succeeds; a chance >= 100 always succeeds.
//
// Precondition: src must be non-nil.
func Percent(chance int, src Source) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return src.Intn(100) < chance
}

// Range returns a uniform random int in [min, max].
//
// Precondition: min <= max; src must be non-nil.
func Range(min, max int, src Source) int {
	if min == max {
		return min
	}
	return min + src.Intn(max-min+1)
}

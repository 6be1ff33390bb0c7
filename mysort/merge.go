package mysort

import "cmp"

/////////////////////////
// MERGE
////////////////////////

// Merge merges two sorted sequences into a new sorted sequence. On equal
// keys the element from a comes first.
func Merge(a, b []int) []int {
	return MergeFunc(a, b, cmp.Compare[int])
}

// MergeFunc is Merge for any element type ordered by compare.
func MergeFunc[E any](a, b []E, compare func(x, y E) int) []E {
	out := make([]E, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if compare(b[j], a[i]) < 0 {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// Aggregate merges an ordered collection of sorted sequences. Ties resolve
// to the earlier sequence, then the earlier position within it, the same
// order a left fold of Merge produces.
func Aggregate(parts [][]int) ([]int, error) {
	return AggregateFunc(parts, cmp.Compare[int])
}

// AggregateFunc merges parts as a balanced tournament: adjacent pairs are
// merged each round until one sequence remains. Merging only adjacent
// sequences, earlier one first, keeps left-fold tie order.
func AggregateFunc[E any](parts [][]E, compare func(x, y E) int) ([]E, error) {
	if len(parts) == 0 {
		return nil, &ConfigurationError{Field: "partitions", Reason: "nothing to aggregate"}
	}
	round := parts
	for len(round) > 1 {
		next := make([][]E, 0, (len(round)+1)/2)
		for i := 0; i+1 < len(round); i += 2 {
			next = append(next, MergeFunc(round[i], round[i+1], compare))
		}
		if len(round)%2 == 1 {
			next = append(next, round[len(round)-1])
		}
		round = next
	}
	return round[0], nil
}

// FoldAggregate is the left-fold form of Aggregate: ((p0+p1)+p2)+...
// It costs O(N^2) in the number of parts.
func FoldAggregate(parts [][]int) ([]int, error) {
	if len(parts) == 0 {
		return nil, &ConfigurationError{Field: "partitions", Reason: "nothing to aggregate"}
	}
	acc := parts[0]
	for _, p := range parts[1:] {
		acc = Merge(acc, p)
	}
	return acc, nil
}

package mathutil

// NthSmallest returns the n-th smallest value of xs (n is 1-based).
// It uses an in-place iterative quickselect and therefore reorders xs.
// Used by pruning to find the cost of the k-th best hypothesis without a
// full sort.
func NthSmallest(xs []float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	if n > len(xs) {
		n = len(xs)
	}
	k := n - 1
	lo, hi := 0, len(xs)-1
	for lo < hi {
		p := partition(xs, lo, hi)
		switch {
		case k == p:
			return xs[k]
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
	return xs[k]
}

// partition uses a median-of-three pivot to avoid quadratic behavior on
// sorted cost arrays, which are common after pruning.
func partition(xs []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if xs[mid] < xs[lo] {
		xs[mid], xs[lo] = xs[lo], xs[mid]
	}
	if xs[hi] < xs[lo] {
		xs[hi], xs[lo] = xs[lo], xs[hi]
	}
	if xs[hi] < xs[mid] {
		xs[hi], xs[mid] = xs[mid], xs[hi]
	}
	pivot := xs[mid]
	xs[mid], xs[hi-1] = xs[hi-1], xs[mid]
	i := lo
	for j := lo; j < hi-1; j++ {
		if xs[j] < pivot {
			xs[i], xs[j] = xs[j], xs[i]
			i++
		}
	}
	xs[i], xs[hi-1] = xs[hi-1], xs[i]
	return i
}

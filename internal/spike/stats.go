package spike

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
// Callers that care about an empty baseline must guard before dividing.
func Mean(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values around the given
// mean (divide by N, not N-1). Returns 0 for fewer than 2 values.
func StdDev(values []int64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := float64(v) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// Percentile returns the nearest-rank percentile of a slice that is already
// sorted ascending (contract, not re-checked). Returns 0 for an empty slice.
func Percentile(sorted []int64, p float64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

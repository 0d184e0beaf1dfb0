package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Spread summarizes a set of distances.
type Spread struct {
	Mean float64
	Std  float64
	P50  float64
	Max  float64
}

// ComputeSpread calculates mean, population standard deviation, median and
// maximum of values. Returns zeros for an empty slice.
func ComputeSpread(values []float64) Spread {
	n := len(values)
	if n == 0 {
		return Spread{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Spread{
		Mean: mean,
		Std:  std,
		P50:  Percentile(sorted, 0.5),
		Max:  sorted[n-1],
	}
}

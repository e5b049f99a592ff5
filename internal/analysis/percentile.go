package analysis

import (
	"math"
	"sort"
)

// Named percentile constants. Each view keeps its own; they are not meant to be unified.
const (
	OpportunityTopShare = 0.30 // opportunity matrix, top-percentile convention
	QuadrantPercentile  = 0.70 // keyword 2x2 and competitor gap, rank convention
	BlueOceanPercentile = 0.50 // blue ocean, rank convention
)

// TopPercentileThreshold sorts values descending and returns the value at index floor(n×p),
// clamped to the last element. It is the cut for "top p share" style thresholds.
// An empty input yields 0.
func TopPercentileThreshold(values []int64, p float64) int64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]int64, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	idx := int(math.Floor(float64(n) * p))
	return sorted[clampIndex(idx, n)]
}

// RankPercentile sorts values ascending and returns the value at index ceil(p×n)-1,
// clamped to [0, n-1]. It is the P70/P50 style cut. An empty input yields 0.
func RankPercentile(values []int64, p float64) int64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]int64, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(math.Ceil(p*float64(n))) - 1
	return sorted[clampIndex(idx, n)]
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

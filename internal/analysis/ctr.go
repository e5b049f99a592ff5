// Package analysis holds the pure building blocks shared by every query aggregator:
// the CTR traffic model, percentile thresholds, term bucket classification and the
// opportunity matrix.
package analysis

import "math"

// ctrBand is an inclusive position range with a fixed click-through rate.
type ctrBand struct {
	from, to int
	rate     float64
}

var ctrBands = []ctrBand{
	{1, 1, 0.30},
	{2, 2, 0.175},
	{3, 3, 0.12},
	{4, 4, 0.08},
	{5, 5, 0.06},
	{6, 6, 0.04},
	{7, 7, 0.03},
	{8, 8, 0.02},
	{9, 9, 0.015},
	{10, 10, 0.01},
	{11, 15, 0.005},
	{16, 20, 0.003},
	{21, 30, 0.001},
	{31, 50, 0.0003},
	{51, 100, 0},
}

// CTR returns the modeled click-through rate for a SERP position. Positions outside 1..100 yield 0.
func CTR(position int) float64 {
	for _, b := range ctrBands {
		if position >= b.from && position <= b.to {
			return b.rate
		}
	}
	return 0
}

// EstimateTraffic returns round(volume × CTR(position)).
func EstimateTraffic(volume int64, position int) int64 {
	if volume <= 0 {
		return 0
	}
	return int64(math.Round(float64(volume) * CTR(position)))
}

// SharePercent returns part/total × 100 rounded to two decimals, or 0 when total is not positive.
func SharePercent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package graph

import "sort"

// P95 returns the 95th-percentile value of the strictly positive entries
// in values: sort ascending and take the element at floor(0.95×n),
// clamped to the last index. Returns 1 when no positive values remain,
// so a degenerate metric never divides a multiplier by zero.
//
// Anchoring each metric at its own 95th percentile makes the scoring
// scale-adaptive per corpus instead of relying on absolute thresholds.
func P95(values []float64) float64 {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) == 0 {
		return 1
	}
	sort.Float64s(positive)
	idx := int(0.95 * float64(len(positive)))
	if idx > len(positive)-1 {
		idx = len(positive) - 1
	}
	return positive[idx]
}

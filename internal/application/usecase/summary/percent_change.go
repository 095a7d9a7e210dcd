package summary

import "math"

// ComputePercentChange returns the change from previous to current as a percentage of |previous|.
// A zero previous value yields 0 when current is also zero and 100 otherwise.
func ComputePercentChange(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}

	return float64(current-previous) / math.Abs(float64(previous)) * 100
}

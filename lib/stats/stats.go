package stats

import (
	"math"
	"slices"
)

// Stats summarizes a series of measurements (payload sizes, latencies, ...)
type Stats struct {
	Count        int     `json:"count" yaml:"count"`
	StdDeviation float64 `json:"std_deviation" yaml:"std_deviation"`
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
	Mean         float64 `json:"mean" yaml:"mean"`
	Median       float64 `json:"median" yaml:"median"`
	MinMaxRatio  float64 `json:"min_max_ratio" yaml:"min_max_ratio"`
}

// NewStats computes count, mean, median, standard deviation, minimum and maximum
// from an array of float64 values. The input is not modified.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	min, max := values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))

	// population standard deviation
	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(values)))

	minMaxRatio := 1.0
	if max > 0 {
		minMaxRatio = min / max
	}

	return Stats{
		Count:        len(values),
		StdDeviation: stdDev,
		Min:          min,
		Max:          max,
		Mean:         mean,
		Median:       median(values),
		MinMaxRatio:  minMaxRatio,
	}
}

// NewIntStats is NewStats for integer samples such as byte counts
func NewIntStats(values []int) Stats {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	return NewStats(floats)
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

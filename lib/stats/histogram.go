package stats

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// PayloadBoundaries are the default bucket upper bounds of a SizeHistogram:
// powers of four from 64 bytes to 16 MiB, which covers single references up to
// large paged lists with journals
var PayloadBoundaries = []int{
	64, 256, 1024, 4096, // bytes to 4KiB
	16384, 65536, 262144, // up to 256KiB
	1048576, 4194304, 16777216, // up to 16MiB
}

// SizeHistogram tracks the distribution of payload sizes. Samples are sorted
// into buckets, only counts and the sum are kept.
//
// All methods are safe for concurrent use.
type SizeHistogram struct {
	mutex      sync.RWMutex
	boundaries []int   // bucket upper bounds, ascending
	buckets    []int64 // len(boundaries)+1, the last one takes everything larger
	count      int64
	sum        int64
	min        int
	max        int
}

// NewSizeHistogram creates a histogram with PayloadBoundaries
func NewSizeHistogram() *SizeHistogram {
	return NewSizeHistogramWithBoundaries(PayloadBoundaries)
}

// NewSizeHistogramWithBoundaries creates a histogram with custom ascending bucket bounds
func NewSizeHistogramWithBoundaries(boundaries []int) *SizeHistogram {
	return &SizeHistogram{
		boundaries: boundaries,
		buckets:    make([]int64, len(boundaries)+1),
	}
}

// AddSample adds a size sample to the histogram
func (h *SizeHistogram) AddSample(size int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	bucket := len(h.boundaries)
	for i, boundary := range h.boundaries {
		if size <= boundary {
			bucket = i
			break
		}
	}

	if h.count == 0 || size < h.min {
		h.min = size
	}
	if size > h.max {
		h.max = size
	}
	h.buckets[bucket]++
	h.count++
	h.sum += int64(size)
}

// Count returns the total number of samples
func (h *SizeHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// AverageSize returns the average size across all samples
func (h *SizeHistogram) AverageSize() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return 0
	}
	return int(h.sum / h.count)
}

// MinMax returns the smallest and largest sample
func (h *SizeHistogram) MinMax() (int, int) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.min, h.max
}

// PercentileEstimate returns an estimate for the given percentile (0-100).
// The estimate is the middle of the bucket the percentile falls into, clamped
// to the observed minimum and maximum.
func (h *SizeHistogram) PercentileEstimate(percentile int) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	target := int64(math.Ceil(float64(h.count) * float64(percentile) / 100.0))
	if target == 0 {
		target = 1
	}

	var cumulative int64
	for i, count := range h.buckets {
		cumulative += count
		if cumulative >= target {
			return h.clamp(h.bucketMiddle(i))
		}
	}
	return h.max
}

// MedianEstimate estimates the median size
func (h *SizeHistogram) MedianEstimate() int {
	return h.PercentileEstimate(50)
}

// SizeDistribution returns the bucket upper bounds and the percentage of samples
// in each bucket. The percentages have one entry more than the bounds.
func (h *SizeHistogram) SizeDistribution() ([]int, []float64) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	percentages := make([]float64, len(h.buckets))
	if h.count == 0 {
		return h.boundaries, percentages
	}
	for i, count := range h.buckets {
		percentages[i] = float64(count) * 100.0 / float64(h.count)
	}
	return h.boundaries, percentages
}

// Reset clears all histogram data
func (h *SizeHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.count, h.sum, h.min, h.max = 0, 0, 0, 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}

// String renders the non-empty buckets as a small bar chart
func (h *SizeHistogram) String() string {
	boundaries, percentages := h.SizeDistribution()

	var sb strings.Builder
	lower := 0
	for i, pct := range percentages {
		label := fmt.Sprintf("> %s", FormatBytes(lower))
		if i < len(boundaries) {
			label = fmt.Sprintf("<= %s", FormatBytes(boundaries[i]))
			lower = boundaries[i]
		}
		if pct == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-10s %5.1f%% %s\n", label, pct, strings.Repeat("#", int(math.Round(pct/2)))))
	}
	return sb.String()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (h *SizeHistogram) bucketMiddle(i int) int {
	switch {
	case len(h.boundaries) == 0:
		return h.max
	case i == 0:
		return h.boundaries[0] / 2
	case i < len(h.boundaries):
		return (h.boundaries[i-1] + h.boundaries[i]) / 2
	default:
		return h.boundaries[len(h.boundaries)-1] * 2
	}
}

func (h *SizeHistogram) clamp(v int) int {
	return max(h.min, min(v, h.max))
}

// FormatBytes renders a byte count with a binary unit (B, KiB, MiB, GiB)
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMG"[exp])
}

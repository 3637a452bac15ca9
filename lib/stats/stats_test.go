package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStats(t *testing.T) {
	assert.Equal(t, Stats{}, NewStats(nil))

	s := NewStats([]float64{4, 2, 8, 6})
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 8.0, s.Max)
	assert.Equal(t, 5.0, s.Mean)
	assert.Equal(t, 5.0, s.Median)
	assert.Equal(t, 0.25, s.MinMaxRatio)
	assert.InDelta(t, 2.236, s.StdDeviation, 0.001)

	s = NewIntStats([]int{3, 1, 2})
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 2.0, s.Mean)
}

func TestNewStatsKeepsInput(t *testing.T) {
	values := []float64{3, 1, 2}
	NewStats(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestSizeHistogram(t *testing.T) {
	h := NewSizeHistogram()
	assert.Zero(t, h.MedianEstimate())
	assert.Zero(t, h.AverageSize())

	for _, size := range []int{100, 120, 200, 900, 3000} {
		h.AddSample(size)
	}

	assert.Equal(t, int64(5), h.Count())
	assert.Equal(t, 864, h.AverageSize())
	lo, hi := h.MinMax()
	assert.Equal(t, 100, lo)
	assert.Equal(t, 3000, hi)

	// three samples in (64, 256], middle 160
	assert.Equal(t, 160, h.MedianEstimate())
	// p100 falls into (1024, 4096], middle 2560
	assert.Equal(t, 2560, h.PercentileEstimate(100))
	// p0 lands in the first non-empty bucket
	assert.Equal(t, 160, h.PercentileEstimate(0))
	assert.Zero(t, h.PercentileEstimate(101))

	boundaries, pct := h.SizeDistribution()
	assert.Len(t, pct, len(boundaries)+1)
	assert.Equal(t, 60.0, pct[1])
	assert.Equal(t, 20.0, pct[2])
	assert.Equal(t, 20.0, pct[3])

	out := h.String()
	assert.Contains(t, out, "<= 256B")
	assert.Contains(t, out, "60.0%")

	h.Reset()
	assert.Zero(t, h.Count())
}

func TestSizeHistogramOverflow(t *testing.T) {
	h := NewSizeHistogramWithBoundaries([]int{10, 100})
	h.AddSample(5)
	h.AddSample(5000)

	_, pct := h.SizeDistribution()
	assert.Equal(t, []float64{50, 0, 50}, pct)
	// last bucket estimates twice the last bound
	assert.Equal(t, 200, h.PercentileEstimate(100))
	assert.Contains(t, h.String(), "> 100B")
}

func TestSizeHistogramConcurrent(t *testing.T) {
	h := NewSizeHistogram()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				h.AddSample(j)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), h.Count())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512B", FormatBytes(512))
	assert.Equal(t, "1.5KiB", FormatBytes(1536))
	assert.Equal(t, "5.0MiB", FormatBytes(5*1024*1024))
	assert.Equal(t, "2.0GiB", FormatBytes(2*1024*1024*1024))
}

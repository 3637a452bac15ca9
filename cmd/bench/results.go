package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/redmine/lib/stats"
)

// benchResult is the outcome of one test in one format
type benchResult struct {
	Test   string
	Format string
	Result testing.BenchmarkResult
	Errors int64
}

func (r benchResult) skipped() bool {
	return r.Result.NsPerOp() == 0
}

// rates returns ns/op and ops/sec of the result
func (r benchResult) rates() (float64, float64) {
	if r.skipped() {
		return 0, 0
	}
	nsPerOp := math.Max(float64(r.Result.NsPerOp()), 1) // prevent division by zero
	return nsPerOp, 1.0 / (nsPerOp / 1e9)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	return slices.Contains(benchSkip, test)
}

// splitList splits a comma separated flag value and drops empty entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(w io.Writer, r benchResult) {
	if r.skipped() {
		fmt.Fprintf(w, "%-20sskipped\n", r.Test)
		return
	}

	nsPerOp, opsPerSec := r.rates()
	fmt.Fprintf(w, "%-20s%.0fns/op (%s/op)\t%.0f ops/sec", r.Test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
	if r.Errors > 0 {
		fmt.Fprintf(w, "\t%d errors", r.Errors)
	}
	fmt.Fprintln(w)
}

// formatSizes renders the payload size statistics and distribution
func formatSizes(sizes []int, histogram *stats.SizeHistogram) string {
	s := stats.NewIntStats(sizes)
	lo, hi := histogram.MinMax()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %-10s %d documents\n", "count", s.Count))
	sb.WriteString(fmt.Sprintf("  %-10s %s - %s\n", "range", stats.FormatBytes(lo), stats.FormatBytes(hi)))
	sb.WriteString(fmt.Sprintf("  %-10s %s (median %s, stddev %s)\n", "mean",
		stats.FormatBytes(int(s.Mean)), stats.FormatBytes(int(s.Median)), stats.FormatBytes(int(s.StdDeviation))))
	sb.WriteString(fmt.Sprintf("  %-10s ~%s\n", "p90", stats.FormatBytes(histogram.PercentileEstimate(90))))
	sb.WriteString(histogram.String())
	return sb.String()
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []benchResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	return writeResults(file, results)
}

func writeResults(w io.Writer, results []benchResult) error {
	writer := csv.NewWriter(w)

	// Write header
	header := []string{
		"Test", "Format", "NsPerOp", "DurationPerOp", "OpsPerSec", "AllocsPerOp", "BytesPerOp",
		"Errors", "Skipped", "Threads", "PageSize",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for _, r := range results {
		nsPerOp, opsPerSec := r.rates()
		row := []string{
			r.Test,
			r.Format,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			strconv.FormatInt(r.Result.AllocsPerOp(), 10),
			strconv.FormatInt(r.Result.AllocedBytesPerOp(), 10),
			strconv.FormatInt(r.Errors, 10),
			strconv.FormatBool(r.skipped()),
			strconv.Itoa(benchNumThreads),
			strconv.Itoa(benchPageSize),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", r.Test, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

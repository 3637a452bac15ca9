// Package stats provides small statistics helpers for the benchmark and
// metrics output of the redmine CLI.
//
// The package contains:
//   - Stats: count, mean, median, standard deviation and min/max of a series
//   - SizeHistogram: a bucketed, concurrency safe distribution of payload sizes
//     with percentile estimates
//   - FormatBytes: human readable byte counts
package stats

package bench

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ValentinKolb/redmine/cmd/util"
	"github.com/ValentinKolb/redmine/lib/stats"
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/lib/types/samples"
	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// BenchCmd measures the codec on the sample entities
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Performance testing tool for the xml and json codec",
		Long:    "Serializes and deserializes sample entities of every type in parallel and reports throughput and payload sizes. No server is needed.",
		RunE:    run,
		PreRunE: processBenchConfig,
	}
	benchNumThreads = 10
	benchPageSize   = 25
	benchFormats    = []string{common.FormatJSON, common.FormatXML}
	benchSkip       = make([]string, 0)
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// add flags
	key := "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. serialize,count)"))
	key = "threads"
	BenchCmd.Flags().Int(key, 10, util.WrapString("Number of goroutines per CPU to use for the benchmark"))
	key = "formats"
	BenchCmd.Flags().String(key, "json,xml", util.WrapString("Formats to benchmark (comma separated)"))
	key = "bench-page-size"
	BenchCmd.Flags().Int(key, 25, util.WrapString("Number of issues in the list envelope of the page and count tests"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.InitLoggers(); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	benchNumThreads = viper.GetInt("threads")
	benchPageSize = viper.GetInt("bench-page-size")
	benchFormats = splitList(viper.GetString("formats"))
	benchSkip = splitList(viper.GetString("skip"))

	for _, format := range benchFormats {
		if _, err := serializer.New(format); err != nil {
			return err
		}
	}
	if benchNumThreads < 1 {
		return fmt.Errorf("threads must be positive, got %d", benchNumThreads)
	}
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Performance testing tool for the redmine codec")

	// Print configuration
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "Formats: %s\n", strings.Join(benchFormats, ", "))
	fmt.Fprintf(out, "Threads: %d\n", benchNumThreads)
	fmt.Fprintf(out, "Page size: %d\n", benchPageSize)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "starting tests...")

	var results []benchResult
	for _, format := range benchFormats {
		s, _ := serializer.New(format)
		suite, err := newBenchSuite(s, benchPageSize)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n%s (%d entity types)\n", strings.ToUpper(format), len(suite.entities))
		for _, test := range suite.tests() {
			result := benchResult{Test: test.name, Format: format}
			if !shouldSkip(test.name) {
				result.Result = testing.Benchmark(test.fn)
				result.Errors = suite.errors.Value()
				suite.errors.Reset()
			}
			results = append(results, result)
			printResult(out, result)
		}

		fmt.Fprintln(out, "\npayload sizes:")
		fmt.Fprint(out, formatSizes(suite.sizes, suite.histogram))
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Fprintln(out, "Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Suite
// --------------------------------------------------------------------------

// benchEntity is one sample entity with its encoded form
type benchEntity struct {
	handler *util.EntityHandler
	value   any
	data    []byte
}

// benchSuite holds the prepared samples of one format
type benchSuite struct {
	s         serializer.ISerializer
	entities  []benchEntity
	page      []byte
	sizes     []int
	histogram *stats.SizeHistogram
	errors    *xsync.Counter
}

type benchTest struct {
	name string
	fn   func(b *testing.B)
}

// newBenchSuite encodes every sample entity and a list envelope of pageSize issues
func newBenchSuite(s serializer.ISerializer, pageSize int) (*benchSuite, error) {
	suite := &benchSuite{
		s:         s,
		histogram: stats.NewSizeHistogram(),
		errors:    xsync.NewCounter(),
	}

	for _, t := range types.EntityTypes() {
		h, ok := util.Handler(t)
		if !ok {
			continue
		}
		v := h.Sample()
		data, err := h.Encode(s, v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sample %s: %w", h.Name(), err)
		}
		suite.entities = append(suite.entities, benchEntity{handler: h, value: v, data: data})
		suite.sizes = append(suite.sizes, len(data))
		suite.histogram.AddSample(len(data))
	}

	page := &types.PagedResults[types.Issue]{TotalItems: pageSize * 4, Limit: pageSize}
	for i := 0; i < pageSize; i++ {
		issue := samples.Issue()
		issue.ID += i
		page.Items = append(page.Items, *issue)
	}
	data, err := serializer.SerializePagedResults(s, page)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sample page: %w", err)
	}
	suite.page = data
	suite.sizes = append(suite.sizes, len(data))
	suite.histogram.AddSample(len(data))

	return suite, nil
}

func (suite *benchSuite) tests() []benchTest {
	return []benchTest{
		{name: "serialize", fn: suite.parallel(func(e benchEntity) error {
			_, err := e.handler.Encode(suite.s, e.value)
			return err
		})},
		{name: "deserialize", fn: suite.parallel(func(e benchEntity) error {
			_, err := e.handler.Decode(suite.s, e.data)
			return err
		})},
		{name: "page", fn: suite.parallel(func(benchEntity) error {
			_, err := serializer.DeserializeToPagedResults[types.Issue](suite.s, suite.page)
			return err
		})},
		{name: "count", fn: suite.parallel(func(benchEntity) error {
			_, err := serializer.Count[types.Issue](suite.s, suite.page)
			return err
		})},
	}
}

// parallel runs op over the sample entities round robin
func (suite *benchSuite) parallel(op func(e benchEntity) error) func(b *testing.B) {
	return func(b *testing.B) {
		b.SetParallelism(benchNumThreads)
		b.ReportAllocs()

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				e := suite.entities[counter%len(suite.entities)]
				if err := op(e); err != nil {
					suite.errors.Inc()
				}
				counter++
			}
		})
	}
}

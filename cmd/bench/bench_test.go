package bench

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"json", "xml"}, splitList("json, xml,,"))
	assert.Empty(t, splitList(""))
}

func TestBenchSuite(t *testing.T) {
	for _, s := range []serializer.ISerializer{serializer.NewJSONSerializer(), serializer.NewXMLSerializer()} {
		t.Run(s.Format(), func(t *testing.T) {
			suite, err := newBenchSuite(s, 5)
			require.NoError(t, err)

			assert.Len(t, suite.entities, len(types.EntityTypes()))
			// one document per entity type plus the page
			assert.Len(t, suite.sizes, len(types.EntityTypes())+1)
			assert.Equal(t, int64(len(suite.sizes)), suite.histogram.Count())

			page, err := serializer.DeserializeToPagedResults[types.Issue](s, suite.page)
			require.NoError(t, err)
			assert.Len(t, page.Items, 5)
			assert.Equal(t, 20, page.TotalItems)

			// every operation of the suite succeeds on the prepared samples
			for _, e := range suite.entities {
				_, err := e.handler.Encode(s, e.value)
				require.NoError(t, err, e.handler.Name())
				_, err = e.handler.Decode(s, e.data)
				require.NoError(t, err, e.handler.Name())
			}

			names := make([]string, 0)
			for _, test := range suite.tests() {
				names = append(names, test.name)
			}
			assert.Equal(t, []string{"serialize", "deserialize", "page", "count"}, names)
		})
	}
}

func TestBenchRun(t *testing.T) {
	suite, err := newBenchSuite(serializer.NewJSONSerializer(), 2)
	require.NoError(t, err)

	result := testing.Benchmark(suite.tests()[0].fn)
	assert.Greater(t, result.N, 0)
	assert.Zero(t, suite.errors.Value())
}

func TestWriteResults(t *testing.T) {
	results := []benchResult{
		{Test: "serialize", Format: "json", Result: testing.BenchmarkResult{N: 1000, T: 2000000}},
		{Test: "count", Format: "xml"},
	}

	var out bytes.Buffer
	require.NoError(t, writeResults(&out, results))

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Test", rows[0][0])
	assert.Equal(t, []string{"serialize", "json", "2000", "2µs", "500000"}, rows[1][:5])
	assert.Equal(t, "true", rows[2][8])
}

func TestFormatSizes(t *testing.T) {
	suite, err := newBenchSuite(serializer.NewXMLSerializer(), 3)
	require.NoError(t, err)

	text := formatSizes(suite.sizes, suite.histogram)
	assert.Contains(t, text, "documents")
	assert.Contains(t, text, "p90")
	assert.Contains(t, text, "%")
}

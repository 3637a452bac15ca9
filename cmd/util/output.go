package util

import (
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/rcrowley/go-metrics"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ReadInput reads a document from path, or from stdin when path is empty or "-".
// JSON documents may contain comments and trailing commas.
func ReadInput(path string, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if format == common.FormatJSON {
		data = jsonc.ToJSON(data)
	}
	return data, nil
}

// WriteResult prints v (a *T or *types.PagedResults[T] of h) as yaml or as
// document in format
func WriteResult(w io.Writer, h *EntityHandler, v any, format string, asYAML bool) error {
	if asYAML {
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	s, err := GetOutputSerializer(format)
	if err != nil {
		return err
	}
	out, err := h.Encode(s, v)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// WriteMetrics prints all metrics of a registry
func WriteMetrics(w io.Writer, registry metrics.Registry) {
	fmt.Fprintln(w, "\nMetrics:")
	metrics.WriteOnce(registry, w)
}

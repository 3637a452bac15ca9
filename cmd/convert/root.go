package convert

import (
	"fmt"
	"io"

	"github.com/ValentinKolb/redmine/cmd/util"
	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ConvertCmd converts documents between the wire formats without a server
	ConvertCmd = &cobra.Command{
		Use:   "convert [type]",
		Short: "Convert an entity document between xml, json and yaml",
		Long: `Reads a document of the given entity type (from --file or stdin) and writes it
in another format. JSON input may contain comments and trailing commas.

Examples:
  redmine convert issue --from json --to xml --file issue.jsonc
  curl -s https://redmine.example.com/issues.xml | redmine convert issues --from xml --paged --output yaml`,
		Args:    cobra.ExactArgs(1),
		PreRunE: processConvertConfig,
		RunE:    run,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	key := "from"
	ConvertCmd.Flags().String(key, common.FormatJSON, util.WrapString("Format of the input (json, xml)"))
	key = "to"
	ConvertCmd.Flags().String(key, common.FormatXML, util.WrapString("Format of the output (json, xml)"))
	key = "paged"
	ConvertCmd.Flags().Bool(key, false, util.WrapString("Treat the input as list envelope (total_count, offset, limit and items)"))
	key = "file"
	ConvertCmd.Flags().String(key, "", util.WrapString("Document to convert (default stdin)"))
}

func processConvertConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return util.InitLoggers()
}

func run(cmd *cobra.Command, args []string) error {
	h, err := util.LookupEntity(args[0])
	if err != nil {
		return err
	}

	from := viper.GetString("from")
	data, err := util.ReadInput(viper.GetString("file"), from)
	if err != nil {
		return err
	}

	return Convert(cmd.OutOrStdout(), h, data, Options{
		From:  from,
		To:    viper.GetString("to"),
		Paged: viper.GetBool("paged"),
		YAML:  util.UseYAML(),
	})
}

// Options of a conversion
type Options struct {
	From  string
	To    string
	Paged bool
	YAML  bool
}

// Convert reads data as document of h in opts.From and writes it to w in opts.To
// (or as yaml)
func Convert(w io.Writer, h *util.EntityHandler, data []byte, opts Options) error {
	in, err := serializer.New(opts.From)
	if err != nil {
		return err
	}

	var v any
	if opts.Paged {
		v, err = h.DecodePage(in, data)
	} else {
		v, err = h.Decode(in, data)
	}
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("no %s in input", h.Name())
	}

	return util.WriteResult(w, h, v, opts.To, opts.YAML)
}

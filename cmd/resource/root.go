package resource

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ValentinKolb/redmine/cmd/util"
	"github.com/ValentinKolb/redmine/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	redmine *client.RedmineClient

	// ResourceCommands represents the resource command group
	ResourceCommands = &cobra.Command{
		Use:                "resource",
		Aliases:            []string{"res"},
		Short:              "Read and modify resources of a Redmine server",
		PersistentPreRunE:  setupClient,
		PersistentPostRunE: teardownClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add connection flags to the resource command
	util.SetupClientFlags(ResourceCommands)

	key := "path"
	ResourceCommands.PersistentFlags().String(key, "", util.WrapString("Collection path to use instead of the default of the type, e.g. projects/1/memberships"))
	key = "query"
	ResourceCommands.PersistentFlags().StringArray(key, nil, util.WrapString("Additional query parameter as key=value (repeatable), e.g. status_id=open"))
	key = "metrics"
	ResourceCommands.PersistentFlags().Bool(key, false, util.WrapString("Print the request metrics of the client after the command"))

	// Add subcommands
	ResourceCommands.AddCommand(getCmd)
	ResourceCommands.AddCommand(listCmd)
	ResourceCommands.AddCommand(countCmd)
	ResourceCommands.AddCommand(createCmd)
	ResourceCommands.AddCommand(updateCmd)
	ResourceCommands.AddCommand(deleteCmd)
	ResourceCommands.AddCommand(uploadCmd)
	ResourceCommands.AddCommand(downloadCmd)
}

// setupClient initializes the Redmine client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.InitLoggers(); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	redmine, err = client.NewRedmineClient(*config, t, s)
	return err
}

// teardownClient prints the metrics (if requested) and closes the client
func teardownClient(cmd *cobra.Command, _ []string) error {
	if redmine == nil {
		return nil
	}
	if viper.GetBool("metrics") {
		util.WriteMetrics(cmd.ErrOrStderr(), redmine.Metrics())
	}
	err := redmine.Close()
	redmine = nil
	return err
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// requestOptions builds the options of a call from the --path and --query flags
func requestOptions(cmd *cobra.Command) (*client.RequestOptions, error) {
	params, err := cmd.Flags().GetStringArray("query")
	if err != nil {
		return nil, err
	}

	opts := &client.RequestOptions{
		Path:  viper.GetString("path"),
		Query: url.Values{},
	}
	for _, kv := range params {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", kv)
		}
		opts.Query.Add(key, value)
	}
	return opts, nil
}

// printResult writes v to stdout in the configured output format
func printResult(cmd *cobra.Command, h *util.EntityHandler, v any) error {
	return util.WriteResult(cmd.OutOrStdout(), h, v, redmine.Config().Format, util.UseYAML())
}

// readEntity reads the entity of a create or update command from --file (or stdin)
func readEntity(h *util.EntityHandler) (any, error) {
	format := redmine.Config().Format
	data, err := util.ReadInput(viper.GetString("file"), format)
	if err != nil {
		return nil, err
	}
	s, err := util.GetOutputSerializer(format)
	if err != nil {
		return nil, err
	}
	v, err := h.Decode(s, data)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("no %s in input", h.Name())
	}
	return v, nil
}

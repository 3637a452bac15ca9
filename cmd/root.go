package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ValentinKolb/redmine/cmd/bench"
	"github.com/ValentinKolb/redmine/cmd/convert"
	"github.com/ValentinKolb/redmine/cmd/resource"
	"github.com/ValentinKolb/redmine/cmd/util"
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/client"
	"github.com/spf13/cobra"
)

const (
	Version = "0.4.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "redmine",
		Short: "command line client for the Redmine REST API",
		Long: fmt.Sprintf(`redmine (v%s)

A client for the Redmine REST API written in Go, talking xml or json
through a hand-written codec for every Redmine entity.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of redmine",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "redmine v%s\n", Version)
		},
	}
	typesCmd = &cobra.Command{
		Use:   "types",
		Short: "List the entity types and their resource paths",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tPATH")
			for _, t := range types.EntityTypes() {
				path, ok := client.ResourcePath(t)
				if !ok {
					path = "-"
				}
				fmt.Fprintf(w, "%s\t%s\n", t, path)
			}
			_ = w.Flush()
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(resource.ResourceCommands)
	RootCmd.AddCommand(convert.ConvertCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(typesCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupFormatFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

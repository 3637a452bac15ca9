package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/redmine/cmd/util"
	"github.com/ValentinKolb/redmine/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [type] [id]",
		Short: "Fetches a single entity",
		Long:  "Fetches a single entity. The id may be a numeric id or an identifier (project identifier, wiki page title). Singleton resources (MyAccount) take no id.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.LookupEntity(args[0])
			if err != nil {
				return err
			}
			opts, err := requestOptions(cmd)
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 2 {
				id = args[1]
			}

			v, err := h.Get(cmd.Context(), redmine, id, opts)
			if err != nil {
				return err
			}
			return printResult(cmd, h, v)
		},
	}
	listCmd = &cobra.Command{
		Use:   "list [type]",
		Short: "Lists one page of entities, or all of them with --all",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.LookupEntity(args[0])
			if err != nil {
				return err
			}
			opts, err := requestOptions(cmd)
			if err != nil {
				return err
			}
			if offset := viper.GetInt("offset"); offset > 0 {
				opts.Query.Set("offset", fmt.Sprint(offset))
			}

			page, err := h.List(cmd.Context(), redmine, opts, viper.GetBool("all"))
			if err != nil {
				return err
			}
			return printResult(cmd, h, page)
		},
	}
	countCmd = &cobra.Command{
		Use:   "count [type]",
		Short: "Prints the number of entities matching the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.LookupEntity(args[0])
			if err != nil {
				return err
			}
			opts, err := requestOptions(cmd)
			if err != nil {
				return err
			}

			n, err := h.Count(cmd.Context(), redmine, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	createCmd = &cobra.Command{
		Use:   "create [type]",
		Short: "Creates an entity from a document (--file or stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.LookupEntity(args[0])
			if err != nil {
				return err
			}
			opts, err := requestOptions(cmd)
			if err != nil {
				return err
			}
			v, err := readEntity(h)
			if err != nil {
				return err
			}

			created, err := h.Create(cmd.Context(), redmine, v, opts)
			if err != nil {
				return err
			}
			return printResult(cmd, h, created)
		},
	}
	updateCmd = &cobra.Command{
		Use:   "update [type] [id]",
		Short: "Updates an entity from a document (--file or stdin)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.LookupEntity(args[0])
			if err != nil {
				return err
			}
			opts, err := requestOptions(cmd)
			if err != nil {
				return err
			}
			v, err := readEntity(h)
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 2 {
				id = args[1]
			}

			if err := h.Update(cmd.Context(), redmine, id, v, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated successfully\n", h.Name(), id)
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [type] [id]",
		Short: "Deletes an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := util.LookupEntity(args[0])
			if err != nil {
				return err
			}
			opts, err := requestOptions(cmd)
			if err != nil {
				return err
			}

			if err := h.Delete(cmd.Context(), redmine, args[1], opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted successfully\n", h.Name(), args[1])
			return nil
		},
	}
	uploadCmd = &cobra.Command{
		Use:   "upload [file]",
		Short: "Uploads a file and prints the upload token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			name := viper.GetString("name")
			if name == "" {
				name = filepath.Base(args[0])
			}

			upload, err := client.Upload(cmd.Context(), redmine, data, name)
			if err != nil {
				return err
			}
			h, _ := util.LookupEntity("Upload")
			return printResult(cmd, h, upload)
		},
	}
	downloadCmd = &cobra.Command{
		Use:   "download [content-url] [target]",
		Short: "Downloads the content of an attachment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.Download(cmd.Context(), redmine, args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d bytes written to %s\n", len(data), args[1])
			return nil
		},
	}
)

func init() {
	key := "all"
	listCmd.Flags().Bool(key, false, util.WrapString("Walk all pages instead of fetching one"))
	key = "offset"
	listCmd.Flags().Int(key, 0, util.WrapString("Index of the first item to fetch"))

	key = "file"
	createCmd.Flags().String(key, "", util.WrapString("Document to read the entity from (default stdin)"))
	updateCmd.Flags().String(key, "", util.WrapString("Document to read the entity from (default stdin)"))

	key = "name"
	uploadCmd.Flags().String(key, "", util.WrapString("File name sent to the server (default: base name of the file)"))
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiceai/specs/pkg/api"
	"github.com/spiceai/specs/pkg/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the loaded specs",
	Example: `
specs list
specs list -f finance.csv
specs list --server http://localhost:8010
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend, err := newBackend(ctx)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		specs, err := backend.ListSpecs(ctx)
		if err != nil {
			cmd.Printf("failed to list specs: %s\n", err.Error())
			return
		}

		err = util.MarshalAndPrintTable(cmd.OutOrStdout(), specs)
		if err != nil {
			cmd.Printf("failed to list specs: %s\n", err.Error())
			return
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Shows the attributes of a spec",
	Args:  cobra.ExactArgs(1),
	Example: `
specs show revenue
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend, err := newBackend(ctx)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		s, err := backend.GetSpec(ctx, args[0])
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		printSpec(cmd, s)
	},
}

func printSpec(cmd *cobra.Command, s *api.Spec) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		cmd.Println(err.Error())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}

func init() {
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(showCmd)
}

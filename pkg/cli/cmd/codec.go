package cmd

import (
	"context"
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format <key> <value>",
	Short: "Formats a JSON value as the display string of a spec",
	Args:  cobra.ExactArgs(2),
	Example: `
specs format revenue 1500
specs format age '{"lower": 18, "upper": 24}'
specs format region '["North", "East"]'
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend, err := newBackend(ctx)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		str, err := backend.Format(ctx, args[0], []byte(args[1]))
		if err != nil {
			cmd.Printf("%s: %s\n", aurora.Red("error"), err.Error())
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), str)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <key> <string>",
	Short: "Parses a display string into the JSON value of a spec",
	Args:  cobra.ExactArgs(2),
	Example: `
specs parse revenue "1.5k $"
specs parse age "18 - 24 yrs"
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend, err := newBackend(ctx)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		data, err := backend.Parse(ctx, args[0], args[1])
		if err != nil {
			cmd.Printf("%s: %s\n", aurora.Red("error"), err.Error())
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	},
}

func init() {
	RootCmd.AddCommand(formatCmd)
	RootCmd.AddCommand(parseCmd)
}

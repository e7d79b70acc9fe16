package cmd

import (
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/spiceai/specs/pkg/specfile"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Converts a spec table to a manifest or back",
	Args:  cobra.ExactArgs(2),
	Example: `
specs convert finance.csv .specs/finance.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		specsConfig, err := loadConfiguration()
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		set, err := specfile.Convert(args[0], args[1], specsConfig.ListSeparator)
		if err != nil {
			cmd.Printf("%s: %s\n", aurora.Red("error"), err.Error())
			return
		}

		cmd.Printf("%s %d specs to %s\n", aurora.Green("Converted"), set.Len(), aurora.Blue(args[1]))
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)
}

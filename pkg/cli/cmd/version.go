package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiceai/specs/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Specs CLI version",
	Example: `
specs version
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "CLI version:      %s\n", version.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "Manifest version: %s\n", version.ManifestVersion)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

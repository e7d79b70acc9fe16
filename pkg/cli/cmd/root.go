package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spiceai/specs/pkg/config"
	"github.com/spiceai/specs/pkg/specfile"
)

var (
	fileFlags  []string
	serverFlag string
)

var RootCmd = &cobra.Command{
	Use:   "specs",
	Short: "Specs CLI",
	Long:  "Formats, parses and derives the specs of data fields declared in spec manifests and tables",
}

// Execute adds all child commands to the root command.
func Execute() {
	cobra.OnInitialize(initConfig)

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("specs")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func loadConfiguration() (*config.SpecsConfiguration, error) {
	v := viper.New()
	specsConfig, err := config.LoadConfiguration(v, config.AppPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return specsConfig, nil
}

// The spec files given with --file, or else the configured manifests
func specPaths(specsConfig *config.SpecsConfiguration) []string {
	if len(fileFlags) > 0 {
		return fileFlags
	}
	return specsConfig.ManifestPaths(config.AppPath())
}

func loadSpecs(ctx context.Context, specsConfig *config.SpecsConfiguration) (*specfile.SpecSet, error) {
	return specfile.LoadAll(ctx, specPaths(specsConfig), specsConfig.ListSeparator)
}

func init() {
	RootCmd.PersistentFlags().StringSliceVarP(&fileFlags, "file", "f", nil, "Spec manifest or table to load instead of the configured manifests")
	RootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Base URL of a running 'specs serve' to query instead of local files")
	RootCmd.PersistentFlags().BoolP("help", "h", false, "Prints this help message")
	_ = viper.BindPFlag("server", RootCmd.PersistentFlags().Lookup("server"))
}

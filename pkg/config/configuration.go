package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/spiceai/specs/pkg/constants"
	"github.com/spiceai/specs/pkg/util"
	"gopkg.in/yaml.v2"
)

type SpecsConfiguration struct {
	HttpPort      uint     `json:"http_port,omitempty" mapstructure:"http_port,omitempty" yaml:"http_port,omitempty"`
	ListSeparator string   `json:"list_separator,omitempty" mapstructure:"list_separator,omitempty" yaml:"list_separator,omitempty"`
	Manifests     []string `json:"manifests,omitempty" mapstructure:"manifests,omitempty" yaml:"manifests,omitempty"`
	LogDir        string   `json:"log_dir,omitempty" mapstructure:"log_dir,omitempty" yaml:"log_dir,omitempty"`
	Server        string   `json:"server,omitempty" mapstructure:"server,omitempty" yaml:"server,omitempty"`
}

func LoadDefaultConfiguration() *SpecsConfiguration {
	return &SpecsConfiguration{
		HttpPort:      constants.DefaultHttpPort,
		ListSeparator: constants.DefaultListSeparator,
		Manifests:     []string{filepath.Join(constants.DotSpecs, "specs"+constants.ManifestFileExtension)},
	}
}

// Loads .specs/config.yaml (or .yml) under appDir, substituting SPECS_*
// environment variables. When no file exists the defaults are written to
// .specs/config.yaml and returned.
func LoadConfiguration(v *viper.Viper, appDir string) (*SpecsConfiguration, error) {
	v.SetConfigType("yaml")

	defaults := LoadDefaultConfiguration()
	v.SetDefault("http_port", defaults.HttpPort)
	v.SetDefault("list_separator", defaults.ListSeparator)
	v.SetDefault("manifests", defaults.Manifests)

	configPath := FindConfigPath(appDir)
	if configPath == "" {
		err := SaveConfiguration(defaults, filepath.Join(SpecsPath(appDir), "config.yaml"))
		if err != nil {
			return nil, fmt.Errorf("error initializing %s/config.yaml: %w", constants.DotSpecs, err)
		}
		return defaults, nil
	}

	configBytes, err := util.ReplaceEnvVariablesFromPath(configPath, constants.SpecsEnvVarPrefix)
	if err != nil {
		return nil, err
	}

	err = v.ReadConfig(bytes.NewBuffer(configBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", configPath, err)
	}

	var config *SpecsConfiguration
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", configPath, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration '%s': %w", configPath, err)
	}

	return config, nil
}

func SaveConfiguration(config *SpecsConfiguration, configPath string) error {
	marshalledConfig, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	err = util.MkDirAllInheritPerm(filepath.Dir(configPath))
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, marshalledConfig, 0644)
}

func (c *SpecsConfiguration) ServerBaseUrl() string {
	if c.Server != "" {
		return c.Server
	}
	return fmt.Sprintf("http://localhost:%d", c.HttpPort)
}

// Resolves manifest paths relative to appDir
func (c *SpecsConfiguration) ManifestPaths(appDir string) []string {
	paths := make([]string, len(c.Manifests))
	for i, manifest := range c.Manifests {
		if filepath.IsAbs(manifest) {
			paths[i] = manifest
		} else {
			paths[i] = filepath.Join(appDir, manifest)
		}
	}
	return paths
}

func (c *SpecsConfiguration) validate() error {
	if c.ListSeparator == "" {
		return fmt.Errorf("list_separator must not be empty")
	}
	if c.ListSeparator == "," {
		return fmt.Errorf("list_separator must differ from the CSV delimiter ','")
	}
	return nil
}

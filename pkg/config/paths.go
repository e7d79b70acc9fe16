package config

import (
	"os"
	"path/filepath"

	"github.com/spiceai/specs/pkg/constants"
)

var (
	appPath string
)

func AppPath() string {
	if appPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		appPath = cwd
	}

	return appPath
}

func SpecsPath(appDir string) string {
	return filepath.Join(appDir, constants.DotSpecs)
}

func SpecsLogPath(appDir string) string {
	return filepath.Join(SpecsPath(appDir), "log")
}

// Returns the path of the config file under appDir, or "" when there is none
func FindConfigPath(appDir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		configPath := filepath.Join(SpecsPath(appDir), name)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

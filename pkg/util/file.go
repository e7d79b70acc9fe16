package util

import (
	"os"
	"strings"
)

// We have to manually swap out environment variables,
// as Viper's AutomaticEnv() doesn't work with Unmarshal() and the workarounds do not work for nested structures.
// See https://github.com/spf13/viper/issues/761
func ReplaceEnvVariablesFromPath(filePath string, envVarPrefix string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	contentString := string(content)
	for _, envVarValPair := range os.Environ() {
		if strings.HasPrefix(envVarValPair, envVarPrefix) {
			envVar := strings.SplitN(envVarValPair, "=", 2)[0]
			contentString = strings.ReplaceAll(contentString, envVar, os.Getenv(envVar))
		}
	}

	return []byte(contentString), nil
}

func FileExists(filePath string) bool {
	stat, err := os.Stat(filePath)
	return err == nil && !stat.IsDir()
}

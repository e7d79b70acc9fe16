package tempdir

import (
	"fmt"
	"os"
	"sync"
)

var (
	mu              sync.Mutex
	tempDirectories []string
)

// Creates a uniquely named directory under the system temp directory and
// remembers it for RemoveAllCreatedTempDirectories
func CreateTempDir(purpose string) (string, error) {
	tempDir, err := os.MkdirTemp("", fmt.Sprintf("specs_%s_", purpose))
	if err != nil {
		return "", err
	}

	mu.Lock()
	defer mu.Unlock()
	tempDirectories = append(tempDirectories, tempDir)

	return tempDir, nil
}

func RemoveAllCreatedTempDirectories() error {
	mu.Lock()
	defer mu.Unlock()

	for _, tempDir := range tempDirectories {
		err := os.RemoveAll(tempDir)
		if err != nil {
			return err
		}
	}

	tempDirectories = nil

	return nil
}

package testutils

import (
	"fmt"
	"os"
	"testing"

	"github.com/spiceai/specs/pkg/constants"
)

// Creates the .specs directory in the working directory, failing the test if
// one already exists
func EnsureTestSpecsDirectory(t *testing.T) {
	// Ensure test config directory doesn't exist already so we don't hose it on cleanup
	_, err := os.Stat(constants.DotSpecs)
	if err == nil {
		t.Errorf("%s directory already exists", constants.DotSpecs)
		return
	}

	err = os.MkdirAll(constants.DotSpecs, 0766)
	if err != nil {
		t.Error(err)
		return
	}
}

func CleanupTestSpecsDirectory() {
	err := os.RemoveAll(constants.DotSpecs)
	if err != nil {
		fmt.Println(err)
	}
}

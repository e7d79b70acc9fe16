package version

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Values for these are injected by the build.
var (
	version   = "edge"
	component = "specs"
)

// The newest manifest format this build reads
const ManifestVersion = "v1"

// Version returns the specs version. This is either a semantic version
// number or else, in the case of unreleased code, the string "edge".
func Version() string {
	if version == "edge" {
		return version
	}

	return fmt.Sprintf("v%s", version)
}

func Component() string {
	return component
}

func SetComponent(name string) {
	component = name
}

// Checks that a manifest declares a valid version no newer than ManifestVersion
func CheckManifestVersion(manifestVersion string) error {
	if !semver.IsValid(manifestVersion) {
		return fmt.Errorf("invalid manifest version '%s'", manifestVersion)
	}

	if semver.Compare(semver.Major(manifestVersion), ManifestVersion) > 0 {
		return fmt.Errorf("manifest version '%s' is newer than the supported version '%s'", manifestVersion, ManifestVersion)
	}

	return nil
}

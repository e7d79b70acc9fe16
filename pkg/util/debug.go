package util

import (
	"os"
	"strings"
)

var (
	isDebug *bool
)

func IsDebug() bool {
	if isDebug == nil {
		specsDebug := os.Getenv("SPECS_DEBUG")
		d := specsDebug == "1" || strings.EqualFold(specsDebug, "true")
		isDebug = &d
	}

	return *isDebug
}

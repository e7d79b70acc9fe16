package main

import (
	"github.com/spiceai/specs/pkg/cli/cmd"
	"github.com/spiceai/specs/pkg/version"
)

func main() {
	version.SetComponent("specs")
	cmd.Execute()
}

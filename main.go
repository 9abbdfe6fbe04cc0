package main

import (
	"fmt"
	"os"

	"github.com/mergington/testrun/cmd"
)

// This variable is set via -ldflags during the go build
var version = "dev"

func main() {
	if version == "" {
		fmt.Fprintln(os.Stderr, "testrun was built incorrectly and its version string is empty")
		os.Exit(1)
	}

	cmd.Execute(version)
}

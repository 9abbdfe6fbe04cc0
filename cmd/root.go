package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var version string

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "testrun",
	Short: "Runs the Mergington Activities API test suite with coverage",
	Long: `testrun wraps the project's test command with coverage instrumentation,
prints a success or failure banner once the suite finishes, and exits
non-zero when any test failed so CI picks the failure up.`,
}

// Execute adds all child commands to the root command and runs it.
// The version string comes from the build.
func Execute(buildVersion string) {
	version = buildVersion
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mergington/testrun/lib"
)

// Flags from the command line are set in these variables
var (
	configPath string
	timeout    time.Duration
	verbose    bool
	jsonOutput bool
	debug      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the test suite with coverage and reports the outcome",
	Long: `Invokes the configured test command with coverage instrumentation,
waits for it to finish, and prints a success or failure banner. The exit
code is 0 only when every test passed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTests(cmd); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.PersistentFlags().StringVar(&configPath, "config", lib.DefaultConfigPath, "Path to the runner configuration file")
	runCmd.PersistentFlags().DurationVar(&timeout, "timeout", lib.DefaultTimeout, "Timeout for the whole test run")
	runCmd.PersistentFlags().BoolVar(&verbose, "verbose", true, "Stream test output instead of capturing it")
	runCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON instead of banners")
	runCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func runTests(cmd *cobra.Command) error {
	logger, err := lib.NewLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not set up logging: %s\n", err)
		return err
	}
	defer logger.Sync()

	config, err := lib.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load configuration: %s\n", err)
		return err
	}

	runner := lib.NewRunner(os.Stdout, os.Stderr, lib.RunnerOptions{
		Config:     config,
		Timeout:    effectiveTimeout(cmd.Flags().Changed("timeout"), timeout, config.Timeout),
		Verbose:    verbose,
		JSONOutput: jsonOutput,
		Logger:     logger,
	})
	return runner.Run()
}

// effectiveTimeout resolves the run timeout: an explicit --timeout wins,
// then the config file, then the default.
func effectiveTimeout(flagChanged bool, flagTimeout, configTimeout time.Duration) time.Duration {
	if flagChanged {
		return flagTimeout
	}
	if configTimeout > 0 {
		return configTimeout
	}
	return lib.DefaultTimeout
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"merch-intake/config"
)

var (
	envFile  string
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "merch-intake",
	Short: "Custom merch request intake",
	Long: `Merch Intake collects custom merchandise print requests.

It serves the request API and runs migrations. The terminal front-ends
walk a customer through a request, attach files to a submitted one, or
scroll through the product showcase.`,
	SilenceUsage: true,
}

// Execute runs the command line
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded outside production")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(serveCmd, migrateCmd, wizardCmd, attachCmd, showcaseCmd)
}

// loadConfig reads the configuration and sets up logging. Terminal UIs pass
// quiet so that logs never draw over the screen unless --log-file is set.
func loadConfig(quiet bool) (*config.Config, func(), error) {
	cfg, err := config.LoadFrom(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	config.SetupLogging(cfg, out)
	return cfg, closer, nil
}

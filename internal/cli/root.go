// Package cli implements the inlined command-line interface.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coral-mesh/inlined/internal/logging"
	"github.com/coral-mesh/inlined/pkg/version"
)

// defaultBinary is inspected when no positional argument is given.
const defaultBinary = "a.out"

var (
	logLevel string
	quiet    bool
)

var rootCmd = newReportCmd()

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	// Add subcommands
	rootCmd.AddCommand(newCallSitesCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("inlined version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// newLogger builds the run's root logger from the global flags.
func newLogger() zerolog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logLevel
	if quiet {
		cfg.Level = "error"
	}
	return logging.New(cfg)
}

// binaryArg returns the binary to inspect from the positional arguments.
func binaryArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultBinary
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

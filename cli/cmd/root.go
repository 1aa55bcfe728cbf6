package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	debug      bool

	// diag receives resolver traces; it is built before every command runs.
	diag = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "callsite",
	Short: "Inspect call-site resolution of the decorating logger",
	Long: `callsite resolves the originating file, function and line of a log call
from stack traces and previews the decorated console output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newDiagnostics(debug)
		if err != nil {
			return fmt.Errorf("failed to initialize diagnostics: %w", err)
		}
		diag = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = diag.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "trace every resolution step to stderr")
}

// newDiagnostics creates a development zap logger on stderr.
func newDiagnostics(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

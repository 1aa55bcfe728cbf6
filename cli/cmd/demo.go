package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lognitor/go-callsite/configs"
	"github.com/lognitor/go-callsite/logger"
	"github.com/lognitor/go-callsite/writers"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print one decorated line per enabled method",
	Long: `Load the configuration (defaults, --config file and CALLSITE_ environment
variables) and print a sample line for every enabled method, followed by a line
written through the intercepted standard library log package.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := configs.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if debug {
		cfg.Debug = true
	}
	// the demo lives inside this module, so the module token must not hide it
	if cfg.Filter.Tokens == nil {
		cfg.Filter.Tokens = []string{}
	}

	l := logger.New(writers.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()), cfg)
	defer l.Close()
	l.SetDiagnostics(diag)

	for _, name := range cfg.Methods {
		m, err := logger.ParseMethod(name)
		if err != nil {
			return err
		}
		switch m {
		case logger.LOG:
			l.Log("plain log line")
		case logger.INFO:
			l.Infof("loaded %d enabled methods", len(cfg.Methods))
		case logger.WARN:
			l.Warn("warnings go to stderr")
		case logger.ERROR:
			l.Error(fmt.Errorf("errors %s", "too"))
		case logger.DEBUG:
			l.Debug("multi-line\nmessage")
		}
	}

	std := log.New(cmd.OutOrStdout(), "", 0)
	i := logger.NewInterceptor(l, std)
	if i.Install() {
		std.Print("intercepted standard library log")
		i.Restore()
	}
	return nil
}

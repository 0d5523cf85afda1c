package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/DeusData/dartgraph/internal/config"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	logLevel string
	workers  int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "dartgraph",
		Short: "Extract code entities from Dart sources",
		Long: `dartgraph parses Dart files with tree-sitter and emits functions, classes
and import directives as JSON records for code graph construction.

Examples:
  dartgraph extract lib/main.dart
  dartgraph scan ./my_app
  dartgraph prescan ./my_app
  dartgraph serve`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(flags.logLevel)
		},
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from .dartgraph.yaml, else info)")
	root.PersistentFlags().IntVarP(&flags.workers, "workers", "w", 0, "parallel workers for scan and prescan (default from .dartgraph.yaml, else CPU count)")

	root.AddCommand(newExtractCmd())
	root.AddCommand(newScanCmd(flags))
	root.AddCommand(newPrescanCmd(flags))
	root.AddCommand(newASTCmd())
	root.AddCommand(newServeCmd())
	return root
}

// setupLogging installs a tint handler on stderr. Stdout carries JSON
// output and the MCP stdio transport.
func setupLogging(level string) error {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})))
	return nil
}

// loadConfig reads .dartgraph.yaml from dir and applies flag overrides.
func loadConfig(dir string, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.logLevel == "" && cfg.LogLevel != "" {
		if err := setupLogging(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spec-kit/mood-journal/internal/cli"
	"github.com/spec-kit/mood-journal/internal/config"
	"github.com/spec-kit/mood-journal/internal/observability"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code. Deferred
// cleanup, including the logger flush, happens before main exits.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "moodjournal: %v\n", err)
		return 1
	}

	// The terminal is for the journal; logs go to stderr and stay quiet.
	logCfg := cfg.Logger
	if os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level = "warn"
	}
	if os.Getenv("LOG_OUTPUT") == "" {
		logCfg.Output = "stderr"
	}
	logger, err := observability.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "moodjournal: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.FromConfig(cfg, logger))
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "moodjournal: %s\n", cli.Describe(err))
		return 1
	}
	return 0
}

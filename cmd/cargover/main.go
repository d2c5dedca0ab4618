package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/indaco/cargover/internal/cli"
	"github.com/indaco/cargover/internal/commands/lookup"
	"github.com/indaco/cargover/internal/config"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		var exitErr urfavecli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command with args.
func runCLI(args []string) error {
	return runCLIWith(context.Background(), args, lookup.NewRunner())
}

func runCLIWith(ctx context.Context, args []string, runner *lookup.Runner) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app := cli.New(cfg, runner)
	app.ExitErrHandler = func(context.Context, *urfavecli.Command, error) {}
	return app.Run(ctx, args)
}

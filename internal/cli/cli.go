package cli

import (
	"context"
	"fmt"

	"github.com/indaco/cargover/internal/commands/lookup"
	"github.com/indaco/cargover/internal/config"
	"github.com/indaco/cargover/internal/printer"
	"github.com/indaco/cargover/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command. Positional arguments are the
// package identifiers to look up.
func New(cfg *config.Config, runner *lookup.Runner) *urfavecli.Command {
	flags := append(lookup.Flags(), &urfavecli.BoolFlag{
		Name:        "no-color",
		Usage:       "Disable colored output",
		Destination: &noColorFlag,
	})

	return &urfavecli.Command{
		Name:                   "cargover",
		Version:                fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                  "Find Cargo package versions and the commits that introduced them",
		UsageText:              "cargover [options] <package> [<package>...]",
		ArgsUsage:              "<package>...",
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		Flags:                  flags,
		MutuallyExclusiveFlags: lookup.OutputFlags(),
		Writer:                 runner.Stdout,
		ErrWriter:              runner.Stderr,
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Action: lookup.Action(runner, cfg),
	}
}

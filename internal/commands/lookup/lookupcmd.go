// Package lookup implements the root action of cargover: locate manifests,
// parse them and correlate the requested package versions with commits.
package lookup

import (
	"context"
	"fmt"

	"github.com/indaco/cargover/internal/config"
	"github.com/urfave/cli/v3"
)

// Flags returns the flags understood by the lookup action.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "Directory to scan for manifest files",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Print diagnostic output to stderr",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress error messages",
		},
		&cli.BoolFlag{
			Name:  "no-commit",
			Usage: "Skip correlating versions with the commit that introduced them",
		},
		&cli.BoolFlag{
			Name:    "list",
			Aliases: []string{"l"},
			Usage:   "List the discovered package identifiers and exit",
		},
	}
}

// OutputFlags returns the mutually exclusive output mode flags.
func OutputFlags() []cli.MutuallyExclusiveFlags {
	return []cli.MutuallyExclusiveFlags{
		{
			Flags: [][]cli.Flag{
				{&cli.BoolFlag{Name: "plain", Usage: "Print identifier@file=version@commit lines (default)"}},
				{&cli.BoolFlag{Name: "json", Usage: "Print a single JSON object"}},
			},
		},
	}
}

// Action returns the lookup action bound to runner and the loaded config.
func Action(runner *Runner, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		opts, err := ResolveOptions(cfg, cmd)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}

		code, err := runner.Run(ctx, Request{
			Options:  opts,
			Packages: cmd.Args().Slice(),
			List:     cmd.Bool("list"),
		})
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), code)
		}
		if code != 0 {
			return cli.Exit("", code)
		}
		return nil
	}
}

// ResolveOptions merges command-line flags over the configuration file.
func ResolveOptions(cfg *config.Config, cmd *cli.Command) (config.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return config.Options{}, err
	}

	if cmd.IsSet("root") {
		opts.Root = cmd.String("root")
	}
	switch {
	case cmd.Bool("json"):
		opts.Output = config.OutputJSON
	case cmd.Bool("plain"):
		opts.Output = config.OutputPlain
	}
	opts.Debug = cmd.Bool("debug")
	opts.Quiet = cmd.Bool("quiet")
	if cmd.Bool("no-commit") {
		opts.Commits = false
	}
	opts.NoColor = cmd.Bool("no-color")

	return opts, nil
}

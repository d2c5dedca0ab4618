package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/indaco/cargover/internal/config"
	"github.com/indaco/cargover/internal/core"
	"github.com/indaco/cargover/internal/correlate"
	"github.com/indaco/cargover/internal/discovery"
	"github.com/indaco/cargover/internal/git"
	"github.com/indaco/cargover/internal/logging"
	"github.com/indaco/cargover/internal/manifest"
	"github.com/indaco/cargover/internal/output"
	"github.com/indaco/cargover/internal/printer"
	"github.com/indaco/cargover/internal/tui"
)

// Runner executes the locate, parse and correlate stages once.
type Runner struct {
	FS          core.FileSystem
	Blame       core.GitBlameOperations
	Prompter    tui.Prompter
	Interactive func() bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// NewRunner returns a Runner wired to the real filesystem, git and terminal.
func NewRunner() *Runner {
	return &Runner{
		FS:          core.NewOSFileSystem(),
		Blame:       git.NewOSGitBlameOperations(),
		Prompter:    tui.NewPrompter(),
		Interactive: tui.IsInteractive,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Request is one invocation of the runner.
type Request struct {
	Options  config.Options
	Packages []string
	List     bool
}

// Run executes the request and returns the process exit code. Stage
// failures only raise the exit code; partial results are always printed.
// An error is returned only for cancellation or an output failure.
func (r *Runner) Run(ctx context.Context, req Request) (int, error) {
	opts := req.Options
	logger := logging.New(r.Stderr, opts.Debug, opts.Quiet)
	formatter := output.NewFormatter(opts.Output)
	code := core.ExitOK

	logger.Debug("lookup requested",
		"packages", req.Packages, "output", opts.Output, "root", opts.Root, "commits", opts.Commits)

	canPrompt := !req.List && len(req.Packages) == 0 && r.Interactive != nil && r.Interactive() &&
		opts.Output == config.OutputPlain
	if !req.List && len(req.Packages) == 0 && !canPrompt {
		r.fail(opts, "Package Name is missing!")
		return core.ExitUsage, nil
	}

	// Absolute paths keep directory-derived identifiers meaningful for the root manifest.
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return core.ExitFailure, fmt.Errorf("invalid root %q: %w", opts.Root, err)
	}

	// Scan for manifest files
	locator := discovery.NewLocator(r.FS, discovery.Options{Ext: opts.Ext, Excludes: opts.Excludes}, logger)
	located, err := locator.Locate(ctx, root)
	if err != nil {
		return core.ExitFailure, err
	}
	if !located.Success {
		r.fail(opts, "Manifest search: searching files has failed!")
		code = core.ExitFailure
	}

	// Parse the manifest files
	set, err := manifest.NewParser(r.FS, logger).ParseAll(ctx, located.Files)
	if err != nil {
		return core.ExitFailure, err
	}
	if !set.Success {
		r.fail(opts, "Manifest parsing: parsing packages has failed!")
		code = core.ExitFailure
	}

	if req.List {
		out, err := formatter.FormatList(set)
		if err != nil {
			return core.ExitFailure, err
		}
		if _, err := io.WriteString(r.Stdout, out); err != nil {
			return core.ExitFailure, err
		}
		return code, nil
	}

	packages := req.Packages
	if canPrompt {
		labels := make(map[string]string, len(set.Records))
		for id, rec := range set.Records {
			labels[id] = rec.Path
		}
		packages, err = tui.SelectPackages(r.Prompter, set.IDs(), labels)
		if err != nil {
			if errors.Is(err, tui.ErrNothingSelected) {
				r.fail(opts, err.Error())
				return core.ExitUsage, nil
			}
			return core.ExitFailure, fmt.Errorf("package selection failed: %w", err)
		}
	}

	// Look up the requested packages and their version commits
	svc := correlate.NewService(r.Blame, correlate.Options{Commits: opts.Commits}, logger)
	report, err := svc.Lookup(ctx, set, packages)
	if err != nil {
		return core.ExitFailure, err
	}
	for _, id := range report.Missing {
		r.fail(opts, fmt.Sprintf("Package '%s': Cargo.toml file not found!", id))
	}
	for _, id := range report.Uncorrelated {
		r.warn(opts, fmt.Sprintf("Package '%s': version commit not found!", id))
	}
	if report.Failed() {
		code = core.ExitFailure
	}

	if err := formatter.PrintReport(r.Stdout, report); err != nil {
		return core.ExitFailure, err
	}

	logger.Debug("lookup finished", "exit_code", code)
	return code, nil
}

// fail reports a stage failure on stderr unless quiet.
func (r *Runner) fail(opts config.Options, msg string) {
	if opts.Quiet {
		return
	}
	printer.FprintError(r.Stderr, msg)
}

// warn reports a non-fatal problem on stderr unless quiet.
func (r *Runner) warn(opts config.Options, msg string) {
	if opts.Quiet {
		return
	}
	printer.FprintWarning(r.Stderr, msg)
}

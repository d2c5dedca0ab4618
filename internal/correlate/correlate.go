// Package correlate resolves requested package identifiers to their declared
// version and the commit that introduced the version line.
package correlate

import (
	"context"
	"log/slog"

	"github.com/indaco/cargover/internal/core"
	"github.com/indaco/cargover/internal/git"
	"github.com/indaco/cargover/internal/manifest"
	"github.com/indaco/cargover/internal/semver"
)

// VersionResult is the resolved version of one requested package.
type VersionResult struct {
	ID      string `json:"-"`
	Version string `json:"version"`
	File    string `json:"file"`
	Commit  string `json:"commit"`
}

// Report is the outcome of a lookup run.
type Report struct {
	// Results holds one entry per requested and found identifier, in request order.
	Results []VersionResult

	// Missing lists requested identifiers with no manifest.
	Missing []string

	// Uncorrelated lists identifiers whose version line could not be tied to a commit.
	Uncorrelated []string
}

// Failed reports whether any lookup or commit correlation failed.
func (r *Report) Failed() bool {
	return len(r.Missing) > 0 || len(r.Uncorrelated) > 0
}

// Options tunes the correlator.
type Options struct {
	// Commits enables the line-authorship query. When false every Commit is "".
	Commits bool
}

// Service looks up versions and their commits.
type Service struct {
	blame  core.GitBlameOperations
	opts   Options
	logger *slog.Logger
}

// NewService creates a Service. blame may be nil when commits are disabled.
func NewService(blame core.GitBlameOperations, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if blame == nil {
		opts.Commits = false
	}
	return &Service{blame: blame, opts: opts, logger: logger}
}

// Lookup resolves every requested identifier against set. Missing packages
// and failed correlations are recorded in the report and never stop the run.
// Duplicate requests are resolved once.
func (s *Service) Lookup(ctx context.Context, set *manifest.Set, requested []string) (*Report, error) {
	report := &Report{Results: make([]VersionResult, 0, len(requested))}
	seen := make(map[string]bool, len(requested))

	for _, id := range requested {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		record, ok := set.Get(id)
		if !ok {
			s.logger.Debug("package not found", "package", id)
			report.Missing = append(report.Missing, id)
			continue
		}

		result := VersionResult{
			ID:      id,
			Version: record.Version(),
			File:    record.Path,
		}
		s.logger.Debug("package hit", "package", id, "file", record.Path, "version", result.Version)

		if result.Version != "" && !semver.IsValid(result.Version) {
			s.logger.Debug("version is not a semantic version", "package", id, "version", result.Version)
		}

		// A package without a version has no line to correlate.
		if s.opts.Commits && result.Version != "" {
			commit, err := s.commitFor(ctx, record.Path, result.Version)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				s.logger.Debug("version commit not found", "package", id, "file", record.Path, "error", err)
				report.Uncorrelated = append(report.Uncorrelated, id)
			}
			result.Commit = commit
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}

// commitFor returns the descriptor of the commit that introduced the version line.
func (s *Service) commitFor(ctx context.Context, path, version string) (string, error) {
	out, err := s.blame.Blame(ctx, path)
	if err != nil {
		return "", err
	}

	line := git.VersionLine(version)
	commit, ok := git.FindCommit(out, line)
	if !ok {
		return "", &NoMatchError{Path: path, Line: line}
	}

	s.logger.Debug("version commit",
		"file", path, "commit", commit.Descriptor, "hash", commit.Hash,
		"boundary", commit.Boundary, "annotation", commit.Annotation)
	return commit.Descriptor, nil
}

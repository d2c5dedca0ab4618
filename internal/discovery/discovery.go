package discovery

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/indaco/cargover/internal/core"
)

// Locator finds manifest files under a root directory.
type Locator struct {
	fs     core.FileSystem
	opts   Options
	logger *slog.Logger
}

// NewLocator creates a Locator. An empty extension falls back to core.DefaultManifestExt.
func NewLocator(fs core.FileSystem, opts Options, logger *slog.Logger) *Locator {
	if opts.Ext == "" {
		opts.Ext = core.DefaultManifestExt
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Locator{fs: fs, opts: opts, logger: logger}
}

// Locate walks root recursively and collects every manifest file.
// Files in a directory are collected before its subdirectories are visited.
// A directory that cannot be read marks the result failed and is skipped;
// its siblings are still visited. Only context cancellation aborts the walk.
func (l *Locator) Locate(ctx context.Context, root string) (*Result, error) {
	result := &Result{Success: true, Files: make([]string, 0)}

	if err := l.walkDirectory(ctx, root, result); err != nil {
		return nil, err
	}

	l.logger.Debug("manifest scan finished",
		"root", root, "files", result.Count(), "success", result.Success)
	return result, nil
}

// walkDirectory visits dir and recurses into its subdirectories.
func (l *Locator) walkDirectory(ctx context.Context, dir string, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := l.fs.ReadDir(ctx, dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		l.logger.Error("cannot read directory", "dir", dir, "error", err)
		result.Success = false
		result.Failures = append(result.Failures, Failure{Dir: dir, Err: err})
		return nil
	}

	var subDirs []string
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if l.shouldExclude(name, path) {
			continue
		}

		if entry.IsDir() {
			subDirs = append(subDirs, path)
		} else if filepath.Ext(name) == l.opts.Ext {
			result.Files = append(result.Files, path)
		}
	}

	for _, sub := range subDirs {
		if err := l.walkDirectory(ctx, sub, result); err != nil {
			return err
		}
	}

	return nil
}

// shouldExclude checks if an entry should be skipped.
func (l *Locator) shouldExclude(name, path string) bool {
	if name == ".git" {
		return true
	}

	for _, pattern := range l.opts.Excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

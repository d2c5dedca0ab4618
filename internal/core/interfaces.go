package core

import "context"

// GitBlameOperations runs line-authorship queries against a repository.
type GitBlameOperations interface {
	// Blame returns the raw `git blame` output for the file at path.
	Blame(ctx context.Context, path string) (string, error)
}

package git

import (
	"context"

	"github.com/indaco/cargover/internal/core"
)

// MockGitBlameOperations is a mock implementation of core.GitBlameOperations for testing.
type MockGitBlameOperations struct {
	BlameFn func(ctx context.Context, path string) (string, error)

	// Calls records every path passed to Blame.
	Calls []string
}

// Verify MockGitBlameOperations implements core.GitBlameOperations.
var _ core.GitBlameOperations = (*MockGitBlameOperations)(nil)

// Blame implements core.GitBlameOperations.
func (m *MockGitBlameOperations) Blame(ctx context.Context, path string) (string, error) {
	m.Calls = append(m.Calls, path)
	if m.BlameFn != nil {
		return m.BlameFn(ctx, path)
	}
	return "", nil
}

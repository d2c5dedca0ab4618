package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/indaco/cargover/internal/core"
)

// OSGitBlameOperations implements core.GitBlameOperations using the git binary.
type OSGitBlameOperations struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSGitBlameOperations creates a new OSGitBlameOperations with the default exec.CommandContext.
func NewOSGitBlameOperations() *OSGitBlameOperations {
	return &OSGitBlameOperations{
		execCommand: exec.CommandContext,
	}
}

// Verify OSGitBlameOperations implements core.GitBlameOperations.
var _ core.GitBlameOperations = (*OSGitBlameOperations)(nil)

// Blame runs `git blame` from the directory holding the file, so the
// repository is resolved from the manifest location rather than the caller's cwd.
func (g *OSGitBlameOperations) Blame(ctx context.Context, path string) (string, error) {
	cmd := g.execCommand(ctx, "git", "blame", "--", filepath.Base(path))
	cmd.Dir = filepath.Dir(path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return "", fmt.Errorf("git blame failed for %q: %w", path, err)
	}

	return stdout.String(), nil
}

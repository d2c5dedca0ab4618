package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/cargover/internal/commands/lookup"
	"github.com/indaco/cargover/internal/core"
	"github.com/indaco/cargover/internal/git"
	urfavecli "github.com/urfave/cli/v3"
)

// setupProject writes a small Cargo workspace into a temp dir and chdirs into it.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Cargo.toml":                    "[workspace]\nmembers = [\"sanitizer-lib\"]\n",
		"sanitizer-lib/Cargo.toml":      "[package]\nname = \"text-sanitizer\"\nversion = \"1.5.1\"\n",
		"text-sanitizer_app/Cargo.toml": "[package]\nversion = \"0.3.0\"\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	t.Setenv("CARGOVER_ROOT", "")
	return dir
}

func newTestRunner(blame *git.MockGitBlameOperations) (*lookup.Runner, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &lookup.Runner{
		FS:          core.NewOSFileSystem(),
		Blame:       blame,
		Interactive: func() bool { return false },
		Stdout:      stdout,
		Stderr:      stderr,
	}, stdout, stderr
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var ec urfavecli.ExitCoder
	if !errors.As(err, &ec) {
		t.Fatalf("unexpected non-exit error: %v", err)
	}
	return ec.ExitCode()
}

func TestRunCLI_JSONNoCommit(t *testing.T) {
	dir := setupProject(t)
	blame := &git.MockGitBlameOperations{}
	runner, stdout, _ := newTestRunner(blame)

	err := runCLIWith(context.Background(), []string{"cargover", "--json", "--no-commit", "text-sanitizer", "text-sanitizer_app"}, runner)
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d, err = %v", code, err)
	}

	var got map[string]map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if got["text-sanitizer"]["version"] != "1.5.1" {
		t.Errorf("text-sanitizer = %v", got["text-sanitizer"])
	}
	if got["text-sanitizer_app"]["file"] != filepath.Join(dir, "text-sanitizer_app", "Cargo.toml") {
		t.Errorf("text-sanitizer_app = %v", got["text-sanitizer_app"])
	}
	if len(blame.Calls) != 0 {
		t.Errorf("blame should not run with --no-commit")
	}
}

func TestRunCLI_CombinedShortFlags(t *testing.T) {
	dir := setupProject(t)
	blame := &git.MockGitBlameOperations{
		BlameFn: func(ctx context.Context, path string) (string, error) {
			return `0badc0de (A 2023-01-01 00:00:00 +0000 3) version = "1.5.1"` + "\n", nil
		},
	}
	runner, stdout, stderr := newTestRunner(blame)

	err := runCLIWith(context.Background(), []string{"cargover", "-dq", "text-sanitizer", "ghost"}, runner)
	if code := exitCode(t, err); code != core.ExitFailure {
		t.Errorf("exit code = %d, want %d", code, core.ExitFailure)
	}

	want := filepath.Join(dir, "sanitizer-lib", "Cargo.toml")
	if !strings.Contains(stdout.String(), "text-sanitizer@"+want+"=1.5.1@0badc0de") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "package hit") {
		t.Errorf("expected debug output with -d, got %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "Cargo.toml file not found!") {
		t.Errorf("expected -q to suppress error lines, got %q", stderr.String())
	}
}

func TestRunCLI_MissingPackage(t *testing.T) {
	setupProject(t)
	runner, _, _ := newTestRunner(&git.MockGitBlameOperations{})

	err := runCLIWith(context.Background(), []string{"cargover"}, runner)
	if code := exitCode(t, err); code != core.ExitUsage {
		t.Errorf("exit code = %d, want %d", code, core.ExitUsage)
	}
}

func TestRunCLI_PlainAndJSONConflict(t *testing.T) {
	setupProject(t)
	runner, _, _ := newTestRunner(&git.MockGitBlameOperations{})

	if err := runCLIWith(context.Background(), []string{"cargover", "--plain", "--json", "x"}, runner); err == nil {
		t.Error("expected error for --plain together with --json")
	}
}

func TestRunCLI_ConfigFile(t *testing.T) {
	dir := setupProject(t)
	if err := os.WriteFile(filepath.Join(dir, core.ConfigFileName), []byte("output: json\ncommits: false\nexclude:\n  - sanitizer-lib\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	runner, stdout, _ := newTestRunner(&git.MockGitBlameOperations{})

	err := runCLIWith(context.Background(), []string{"cargover", "--list"}, runner)
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d, err = %v", code, err)
	}

	var files map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if _, ok := files["text-sanitizer"]; ok {
		t.Error("excluded directory should not be listed")
	}
	if len(files) != 2 {
		t.Errorf("files = %v, want workspace and app", files)
	}
}

func TestRunCLI_BadConfig(t *testing.T) {
	dir := setupProject(t)
	if err := os.WriteFile(filepath.Join(dir, core.ConfigFileName), []byte("unknown: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	runner, _, _ := newTestRunner(&git.MockGitBlameOperations{})

	err := runCLIWith(context.Background(), []string{"cargover", "x"}, runner)
	if err == nil || !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

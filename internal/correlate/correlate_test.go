package correlate

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/indaco/cargover/internal/core"
	"github.com/indaco/cargover/internal/git"
	"github.com/indaco/cargover/internal/manifest"
)

func buildSet(t *testing.T, files map[string]string) *manifest.Set {
	t.Helper()
	fs := core.NewMockFileSystem()
	paths := make([]string, 0, len(files))
	for p, c := range files {
		fs.SetFile(p, []byte(c))
		paths = append(paths, p)
	}
	slices.Sort(paths)

	set, err := manifest.NewParser(fs, nil).ParseAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	return set
}

var testFiles = map[string]string{
	"/repo/Cargo.toml":     "[workspace]\nmembers = [\"lib\"]\n",
	"/repo/lib/Cargo.toml": "[package]\nname = \"text-sanitizer\"\nversion = \"1.2.3\"\n",
	"/repo/app/Cargo.toml": "[package]\nname = \"app\"\nversion = \"0.4.0\"\n",
}

const libBlame = `^aaaaaaa (Author 2023-01-01 00:00:00 +0000 1) [package]
^aaaaaaa (Author 2023-01-01 00:00:00 +0000 2) name = "text-sanitizer"
c0ffee00 (Author 2023-02-21 00:00:00 +0000 3) version = "1.2.3"
`

func TestService_Lookup_WithCommits(t *testing.T) {
	set := buildSet(t, testFiles)
	mock := &git.MockGitBlameOperations{
		BlameFn: func(ctx context.Context, path string) (string, error) {
			if path == "/repo/lib/Cargo.toml" {
				return libBlame, nil
			}
			return "", errors.New("fatal: no such path")
		},
	}

	svc := NewService(mock, Options{Commits: true}, nil)
	report, err := svc.Lookup(context.Background(), set, []string{"text-sanitizer", "repo_workspace", "app", "missing"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	want := []VersionResult{
		{ID: "text-sanitizer", Version: "1.2.3", File: "/repo/lib/Cargo.toml", Commit: "c0ffee00"},
		{ID: "repo_workspace", Version: "", File: "/repo/Cargo.toml", Commit: ""},
		{ID: "app", Version: "0.4.0", File: "/repo/app/Cargo.toml", Commit: ""},
	}
	if !slices.Equal(report.Results, want) {
		t.Errorf("Results = %+v\nwant %+v", report.Results, want)
	}
	if slices.Contains(mock.Calls, "/repo/Cargo.toml") {
		t.Error("blame should not run for a package without a version")
	}
	if !slices.Equal(report.Missing, []string{"missing"}) {
		t.Errorf("Missing = %v", report.Missing)
	}
	if !slices.Equal(report.Uncorrelated, []string{"app"}) {
		t.Errorf("Uncorrelated = %v", report.Uncorrelated)
	}
	if !report.Failed() {
		t.Error("expected Failed() to be true")
	}
}

func TestService_Lookup_WithoutCommits(t *testing.T) {
	set := buildSet(t, testFiles)
	mock := &git.MockGitBlameOperations{}

	svc := NewService(mock, Options{Commits: false}, nil)
	report, err := svc.Lookup(context.Background(), set, []string{"app", "app"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if len(mock.Calls) != 0 {
		t.Errorf("blame should not run, got calls %v", mock.Calls)
	}
	if len(report.Results) != 1 {
		t.Fatalf("Results = %d, want 1 (duplicates resolved once)", len(report.Results))
	}
	if report.Results[0].Commit != "" || report.Results[0].Version != "0.4.0" {
		t.Errorf("unexpected result %+v", report.Results[0])
	}
	if report.Failed() {
		t.Error("expected Failed() to be false")
	}
}

func TestService_Lookup_NilBlameDisablesCommits(t *testing.T) {
	set := buildSet(t, testFiles)

	report, err := NewService(nil, Options{Commits: true}, nil).Lookup(context.Background(), set, []string{"text-sanitizer"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if report.Failed() || report.Results[0].Commit != "" {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestService_Lookup_NotFoundOnly(t *testing.T) {
	set := buildSet(t, testFiles)

	report, err := NewService(nil, Options{}, nil).Lookup(context.Background(), set, []string{"nope"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("Results = %+v, want none", report.Results)
	}
	if !report.Failed() {
		t.Error("expected Failed() to be true")
	}
}

func TestService_Lookup_NoMatchError(t *testing.T) {
	set := buildSet(t, testFiles)
	mock := &git.MockGitBlameOperations{
		BlameFn: func(ctx context.Context, path string) (string, error) {
			return `abc12345 (Author 2023-01-01 00:00:00 +0000 3) version = "1.2.2"` + "\n", nil
		},
	}
	svc := NewService(mock, Options{Commits: true}, nil)

	_, err := svc.commitFor(context.Background(), "/repo/lib/Cargo.toml", "1.2.3")
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("commitFor() error = %v, want *NoMatchError", err)
	}
	if noMatch.Path != "/repo/lib/Cargo.toml" {
		t.Errorf("Path = %q", noMatch.Path)
	}

	report, err := svc.Lookup(context.Background(), set, []string{"text-sanitizer"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !slices.Equal(report.Uncorrelated, []string{"text-sanitizer"}) {
		t.Errorf("Uncorrelated = %v", report.Uncorrelated)
	}
}

func TestService_Lookup_Cancelled(t *testing.T) {
	set := buildSet(t, testFiles)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(nil, Options{}, nil).Lookup(ctx, set, []string{"app"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Lookup() error = %v, want context.Canceled", err)
	}
}

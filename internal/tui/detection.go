package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs lists environment variables set by common CI systems.
var ciEnvs = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"CIRCLECI",               // CircleCI
	"TRAVIS",                 // Travis CI
	"JENKINS_HOME",           // Jenkins
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure Pipelines
}

// IsInteractive reports whether prompts may be shown: both stdin and stdout
// must be terminals and no CI environment may be detected.
func IsInteractive() bool {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return false
	}
	return !InCI()
}

// InCI reports whether a CI environment variable is set.
func InCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

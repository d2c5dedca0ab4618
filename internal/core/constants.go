package core

// Exit codes returned by the cargover binary.
const (
	// ExitOK signals that every stage succeeded.
	ExitOK = 0

	// ExitFailure signals a scan, parse, lookup or commit correlation failure.
	// Partial results are still printed.
	ExitFailure = 1

	// ExitUsage signals that no package identifier was requested.
	ExitUsage = 3
)

// DefaultManifestExt is the file extension collected by the locator.
const DefaultManifestExt = ".toml"

// ConfigFileName is the optional project configuration file.
const ConfigFileName = ".cargover.yaml"

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/cargover/internal/core"
)

// OutputMode selects how results are printed.
type OutputMode string

const (
	// OutputPlain prints one identifier@file=version@commit line per result.
	OutputPlain OutputMode = "plain"

	// OutputJSON prints a single JSON object keyed by identifier.
	OutputJSON OutputMode = "json"
)

// ParseOutputMode converts a string to an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case OutputPlain, OutputJSON:
		return OutputMode(s), nil
	case "":
		return OutputPlain, nil
	default:
		return "", fmt.Errorf("invalid output mode %q (want plain or json)", s)
	}
}

// Config is the optional .cargover.yaml file.
type Config struct {
	Root      string   `yaml:"root,omitempty"`
	Output    string   `yaml:"output,omitempty"`
	Commits   *bool    `yaml:"commits,omitempty"`
	Extension string   `yaml:"extension,omitempty"`
	Exclude   []string `yaml:"exclude,omitempty"`
}

// Options is the resolved run configuration threaded through every stage.
type Options struct {
	Root     string
	Output   OutputMode
	Debug    bool
	Quiet    bool
	Commits  bool
	Ext      string
	Excludes []string
	NoColor  bool
}

// Defaults returns the options used when nothing is configured.
func Defaults() Options {
	return Options{
		Root:    ".",
		Output:  OutputPlain,
		Commits: true,
		Ext:     core.DefaultManifestExt,
	}
}

// Options merges cfg over the defaults. A nil cfg yields Defaults().
func (cfg *Config) Options() (Options, error) {
	opts := Defaults()
	if cfg == nil {
		return opts, nil
	}

	if cfg.Root != "" {
		opts.Root = cfg.Root
	}
	mode, err := ParseOutputMode(cfg.Output)
	if err != nil {
		return Options{}, err
	}
	opts.Output = mode
	if cfg.Commits != nil {
		opts.Commits = *cfg.Commits
	}
	if cfg.Extension != "" {
		ext := cfg.Extension
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		opts.Ext = ext
	}
	opts.Excludes = cfg.Exclude

	return opts, nil
}

// LoadConfigFn is kept as a variable so tests can replace it.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	cfg, err := readConfigFile(core.ConfigFileName)
	if err != nil {
		return nil, err
	}

	// Highest priority: ENV variable
	if envRoot := os.Getenv("CARGOVER_ROOT"); envRoot != "" {
		cleanPath := filepath.Clean(envRoot)
		// Reject relative paths with traversal (use absolute paths instead)
		if slices.Contains(strings.Split(cleanPath, string(filepath.Separator)), "..") {
			return nil, fmt.Errorf("invalid CARGOVER_ROOT: path traversal not allowed, use absolute path instead")
		}
		if cfg == nil {
			cfg = &Config{}
		}
		cfg.Root = cleanPath
	}

	return cfg, nil
}

// readConfigFile decodes the YAML file at path. A missing file yields nil.
func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // fallback to default
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

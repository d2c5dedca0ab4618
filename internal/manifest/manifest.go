// Package manifest turns located manifest files into records keyed by
// package identifier.
package manifest

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/indaco/cargover/internal/core"
	"github.com/indaco/cargover/internal/parser"
)

// WorkspaceSuffix is appended to the directory name of workspace manifests.
const WorkspaceSuffix = "_workspace"

// Record is a parsed manifest.
type Record struct {
	// ID is the package identifier the record is stored under.
	ID string

	// Path is the manifest file path.
	Path string

	// DirName is the name of the directory holding the manifest.
	DirName string

	// Content is the decoded manifest.
	Content parser.Document

	// Workspace is true when the manifest declares a workspace instead of a package.
	Workspace bool
}

// Version returns package.version, or "" when the manifest declares none.
func (r *Record) Version() string {
	v, err := r.Content.String(parser.FieldPackageVersion)
	if err != nil {
		return ""
	}
	return v
}

// Failure describes a manifest that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// Set holds every record keyed by identifier.
type Set struct {
	// Success is false when at least one manifest failed to load.
	Success bool

	// Records maps identifiers to their manifest.
	Records map[string]*Record

	// Failures lists the manifests that could not be loaded.
	Failures []Failure
}

// Get returns the record stored under id.
func (s *Set) Get(id string) (*Record, bool) {
	r, ok := s.Records[id]
	return r, ok
}

// IDs returns the stored identifiers sorted lexically.
func (s *Set) IDs() []string {
	return sortedKeys(s.Records)
}

// Parser loads manifests into a Set.
type Parser struct {
	reader *parser.Reader
	logger *slog.Logger
}

// NewParser creates a Parser reading through fs.
func NewParser(fs core.FileSystem, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{reader: parser.NewReader(fs), logger: logger}
}

// ParseAll loads every file. A failing file is recorded and skipped; the
// remaining files are still parsed. Only context cancellation returns an error.
func (p *Parser) ParseAll(ctx context.Context, files []string) (*Set, error) {
	set := &Set{Success: true, Records: make(map[string]*Record, len(files))}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := p.reader.ReadFile(ctx, file)
		if err != nil {
			p.logger.Error("cannot load manifest", "file", file, "error", err)
			set.Success = false
			set.Failures = append(set.Failures, Failure{Path: file, Err: err})
			continue
		}

		record := NewRecord(file, doc)
		p.logger.Debug("manifest loaded", "file", file, "id", record.ID, "dir", record.DirName)
		set.insert(record, p.logger)
	}

	return set, nil
}

// NewRecord derives the identifier of a decoded manifest.
// The declared package.name wins; otherwise the parent directory name is used.
// A manifest with a workspace table and no package table gets WorkspaceSuffix.
func NewRecord(path string, doc parser.Document) *Record {
	dirName := ParentDirName(path)
	record := &Record{
		ID:      dirName,
		Path:    path,
		DirName: dirName,
		Content: doc,
	}

	switch {
	case doc.Has(parser.FieldPackage):
		if name, err := doc.String(parser.FieldPackageName); err == nil && name != "" {
			record.ID = name
		}
	case doc.Has(parser.FieldWorkspace):
		record.ID = dirName + WorkspaceSuffix
		record.Workspace = true
	}

	return record
}

// insert stores record under its identifier. If that key is taken the record
// is stored under its directory name instead, overwriting whatever is there.
func (s *Set) insert(record *Record, logger *slog.Logger) {
	if _, taken := s.Records[record.ID]; !taken {
		s.Records[record.ID] = record
		return
	}

	if prev, taken := s.Records[record.DirName]; taken {
		logger.Debug("identifier collision overwrites existing record",
			"id", record.DirName, "file", record.Path, "replaced", prev.Path)
	} else {
		logger.Debug("identifier collision, storing under directory name",
			"id", record.ID, "fallback", record.DirName, "file", record.Path)
	}
	s.Records[record.DirName] = record
}

// ParentDirName returns the name of the directory containing path.
// It is "" for a bare file name.
func ParentDirName(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return filepath.Base(dir)
}

package parser

import (
	"context"
	"fmt"

	"github.com/indaco/cargover/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// ParseTOML decodes raw TOML data into a Document.
func ParseTOML(data []byte) (Document, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = make(map[string]any)
	}
	return Document(obj), nil
}

// Reader loads manifests through a core.FileSystem.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// ReadFile reads and decodes the TOML manifest at path.
func (r *Reader) ReadFile(ctx context.Context, path string) (Document, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	doc, err := ParseTOML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}
	return doc, nil
}

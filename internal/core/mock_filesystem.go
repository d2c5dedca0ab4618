package core

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Paths are slash separated; directories exist implicitly when a file lives below them.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string][]byte
	readErrors map[string]error
	dirErrors  map[string]error
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string][]byte),
		readErrors: make(map[string]error),
		dirErrors:  make(map[string]error),
	}
}

// Verify MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores content at the given path.
func (m *MockFileSystem) SetFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(name)] = data
}

// SetReadError makes ReadFile fail for the given path.
func (m *MockFileSystem) SetReadError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrors[path.Clean(name)] = err
}

// SetDirError makes ReadDir fail for the given directory.
func (m *MockFileSystem) SetDirError(dir string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirErrors[path.Clean(dir)] = err
}

func (m *MockFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = path.Clean(name)
	if err, ok := m.readErrors[name]; ok {
		return nil, err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) ReadDir(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir = path.Clean(dir)
	if err, ok := m.dirErrors[dir]; ok {
		return nil, err
	}

	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry
	for name, data := range m.files {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		child, _, nested := strings.Cut(rest, "/")
		if seen[child] {
			continue
		}
		seen[child] = true
		entries = append(entries, mockEntry{name: child, dir: nested, size: int64(len(data))})
	}

	if len(entries) == 0 {
		if _, isFile := m.files[dir]; isFile {
			return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fmt.Errorf("not a directory")}
		}
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

// mockEntry serves as both fs.DirEntry and fs.FileInfo.
type mockEntry struct {
	name string
	dir  bool
	size int64
}

func (e mockEntry) Name() string { return e.name }
func (e mockEntry) IsDir() bool  { return e.dir }
func (e mockEntry) Size() int64  { return e.size }

func (e mockEntry) Type() fs.FileMode { return e.Mode().Type() }

func (e mockEntry) Mode() fs.FileMode {
	if e.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}

func (e mockEntry) Info() (fs.FileInfo, error) { return e, nil }
func (e mockEntry) ModTime() time.Time         { return time.Time{} }
func (e mockEntry) Sys() any                   { return nil }

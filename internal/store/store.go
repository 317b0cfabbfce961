// Package store persists a roadmap as an indented JSON state file. Writes
// go to a temp file in the same directory and are renamed into place so a
// crash never leaves a partial state file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raskcli/rask/internal/task"
)

// ErrNotFound is returned by Load when no state file exists yet.
var ErrNotFound = errors.New("state file not found")

// CorruptError reports a state file that exists but cannot be parsed.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt state file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Store reads and writes one roadmap state file.
type Store struct {
	path string
}

// New creates a store bound to the given state file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the bound state file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the state file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and parses the state file. A missing file yields ErrNotFound;
// an unparseable one yields a CorruptError. Loaded roadmaps are normalized
// so fields omitted by older files carry their documented defaults.
func (s *Store) Load() (*task.Roadmap, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var r task.Roadmap
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	r.Normalize()
	return &r, nil
}

// Save serializes the roadmap with indentation and replaces the state file
// atomically.
func (s *Store) Save(r *task.Roadmap) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize roadmap: %w", err)
	}
	return WriteFileAtomic(s.path, append(data, '\n'), 0644)
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place. Rename is atomic on a single filesystem, which is why the
// temp file lives in the target directory.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/succinct"
)

// Local implements Store using a directory on the local file system. Each
// blob is one file; Put goes through a temporary file and a rename so that
// readers never observe a partial blob.
type Local struct {
	root   string
	logger *succinct.Logger
}

// LocalOption configures a Local store.
type LocalOption func(*Local)

// WithLogger sets the logger used for blob lifecycle events.
func WithLogger(l *succinct.Logger) LocalOption {
	return func(s *Local) { s.logger = l }
}

// NewLocal creates a Local store rooted at the given directory, creating it
// if necessary.
func NewLocal(root string, opts ...LocalOption) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	s := &Local{root: root, logger: succinct.NoopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open opens a blob for reading.
func (s *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, name))
}

// Put writes a blob atomically via a temporary file and rename.
func (s *Local) Put(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(s.root, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close blob %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.root, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename blob %q: %w", name, err)
	}
	s.logger.Debug("blob written", "name", name, "bytes", len(data))
	return nil
}

// Delete removes a blob.
func (s *Local) Delete(_ context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		return err
	}
	s.logger.Debug("blob deleted", "name", name)
	return nil
}

// List returns the names of all blobs matching the prefix, sorted.
func (s *Local) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list store root: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Package store persists serialized succinct structures as named blobs.
//
// A Store is a flat namespace of immutable byte blobs. The Memory
// implementation backs tests, Local the file system; Compressed wraps any
// Store with transparent compression. SaveAll and LoadAll move whole sets of
// structures concurrently.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/succinct"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing named immutable blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs matching the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Save serializes s into the blob name.
func Save(ctx context.Context, st Store, name string, s succinct.Serializer) error {
	var buf bytes.Buffer
	if err := s.Serialize(&buf); err != nil {
		return fmt.Errorf("serialize %q: %w", name, err)
	}
	return st.Put(ctx, name, buf.Bytes())
}

// Load restores l from the blob name.
func Load(ctx context.Context, st Store, name string, l succinct.Loader) error {
	rc, err := st.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := l.Load(rc); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	return nil
}

// SaveAll serializes every entry concurrently. The first error aborts the
// remaining writes.
func SaveAll(ctx context.Context, st Store, entries map[string]succinct.Serializer) error {
	g, ctx := errgroup.WithContext(ctx)
	for name, s := range entries {
		g.Go(func() error {
			return Save(ctx, st, name, s)
		})
	}
	return g.Wait()
}

// LoadAll restores every entry concurrently. The first error aborts the
// remaining reads.
func LoadAll(ctx context.Context, st Store, entries map[string]succinct.Loader) error {
	g, ctx := errgroup.WithContext(ctx)
	for name, l := range entries {
		g.Go(func() error {
			return Load(ctx, st, name, l)
		})
	}
	return g.Wait()
}

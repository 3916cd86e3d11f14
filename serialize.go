package succinct

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Serializer is implemented by structures that can write themselves to a
// byte stream.
type Serializer interface {
	Serialize(w io.Writer) error
}

// Loader is implemented by structures that can restore themselves from a
// byte stream previously produced by the matching Serializer.
//
// Support structures additionally require a SetVector call (or the Load
// variant taking the supported vector) after loading.
type Loader interface {
	Load(r io.Reader) error
}

// StoreToFile serializes s into the file at path, creating or truncating it.
func StoreToFile(path string, s Serializer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store to %s: %w", path, err)
	}
	if err := s.Serialize(f); err != nil {
		f.Close()
		return fmt.Errorf("store to %s: %w", path, err)
	}
	return f.Close()
}

// LoadFromFile restores l from the file at path.
func LoadFromFile(path string, l Loader) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load from %s: %w", path, err)
	}
	defer f.Close()
	if err := l.Load(f); err != nil {
		return fmt.Errorf("load from %s: %w", path, err)
	}
	return nil
}

var idCounter atomic.Uint64

// NextID returns a process-wide unique counter value. It is used to
// disambiguate generated resource names (for example temporary keys in a
// store.Store) and has no effect on query correctness.
func NextID() uint64 {
	return idCounter.Add(1)
}

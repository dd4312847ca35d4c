// Package store keeps client-local state (search history, display
// preferences) across sessions. Stores are constructed once at startup over
// an injected Backend and shared by reference; every mutation is persisted
// before it returns.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned by Backend.Load for a key that was never saved.
var ErrNotFound = errors.New("key not found")

// Backend persists opaque values by key.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Backend kinds accepted by OpenBackend.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// OpenBackend opens the backend named by kind rooted at dir.
func OpenBackend(kind, dir string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", KindFile:
		return NewFileBackend(dir)
	case KindSQLite:
		return OpenSQLite(dir)
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", kind)
	}
}

// ---- File ----

// FileBackend stores each key as <dir>/<key>.json. Writes go through a
// temporary file and a rename so a crash never leaves a partial value.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("file backend: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, filepath.Base(key)+".json")
}

func (b *FileBackend) Load(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *FileBackend) Save(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(b.dir, "."+filepath.Base(key)+"-*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("saving %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.Remove(b.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// ---- Memory ----

// MemoryBackend keeps values in process memory. Used by tests and by
// sessions that should leave nothing behind.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Save(key string, value []byte) error {
	b.mu.Lock()
	b.data[key] = append([]byte(nil), value...)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	delete(b.data, key)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

package history

import (
	"fmt"
	"io"
	"path/filepath"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store for backend. For file and sqlite, path is used as
// given, or derived from dataDir when empty. The closer releases the store.
func Open(backend, path, dataDir string) (Store, io.Closer, error) {
	switch backend {
	case BackendFile, "":
		if path == "" {
			path = filepath.Join(dataDir, "history.json")
		}
		return NewFileStore(path), nopCloser{}, nil
	case BackendSQLite:
		if path == "" {
			path = filepath.Join(dataDir, "history.db")
		}
		store, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case BackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", backend)
	}
}

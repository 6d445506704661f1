package store

import (
	"github.com/pkg/errors"
)

const (
	BackendFile    = "file"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// Open returns the store for backend at path.
func Open(backend, path string) (ChainStore, error) {
	switch backend {
	case BackendFile, "":
		if path == "" {
			return nil, errors.New("file store needs a path")
		}
		return NewFileStore(path), nil
	case BackendLevelDB:
		if path == "" {
			return nil, errors.New("leveldb store needs a path")
		}
		return NewLevelDBStore(path, 0, 0)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown store backend %q", backend)
	}
}

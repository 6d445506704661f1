package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"sealchain/blockchain"
	"sealchain/log"
)

// FileStore keeps the ledger as one indented JSON document.
type FileStore struct {
	path string
}

var _ ChainStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save writes to a temporary file in the same directory and renames it over
// the target, so readers see either the old or the new document.
func (s *FileStore) Save(ledger *blockchain.Ledger) error {
	data, err := encodeLedger(ledger)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "rename to %s", s.path)
	}

	log.Info("Ledger saved", "file", s.path, "blocks", ledger.Height(), "bytes", len(data))
	return nil
}

func (s *FileStore) Load() (*blockchain.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	ledger, err := decodeLedger(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", s.path)
	}
	log.Info("Ledger loaded", "file", s.path, "blocks", ledger.Height())
	return ledger, nil
}

func (s *FileStore) Close() error {
	return nil
}

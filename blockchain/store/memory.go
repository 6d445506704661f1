package store

import (
	"errors"
	"sync"

	"sealchain/blockchain"
)

var ErrNothingSaved = errors.New("no ledger has been saved")

// MemoryStore keeps the last saved ledger as an encoded snapshot, so a Load
// goes through the same rebuild as the persistent stores.
type MemoryStore struct {
	snapshot []byte
	mu       sync.RWMutex
}

var _ ChainStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(ledger *blockchain.Ledger) error {
	data, err := encodeLedger(ledger)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = data
	return nil
}

func (m *MemoryStore) Load() (*blockchain.Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snapshot == nil {
		return nil, ErrNothingSaved
	}
	return decodeLedger(m.snapshot)
}

// Snapshot returns the encoded document of the last Save.
func (m *MemoryStore) Snapshot() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]byte(nil), m.snapshot...)
}

func (m *MemoryStore) Close() error {
	return nil
}

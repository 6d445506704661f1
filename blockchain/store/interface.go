package store

import (
	"sealchain/blockchain"
)

// ChainStore persists a whole ledger and restores it.
//
// Load rebuilds each block from its transfers and previous hash, then
// overwrites time, nonce and hash with the persisted values. It never
// returns a partial ledger.
type ChainStore interface {
	Save(ledger *blockchain.Ledger) error
	Load() (*blockchain.Ledger, error)
	Close() error
}

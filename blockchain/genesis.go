package blockchain

import (
	"sealchain/log"
)

// NewGenesisBlock returns the first block of a ledger: no transfers,
// GenesisMarker as previous hash, never mined.
func NewGenesisBlock() *Block {
	genesis := NewBlock(nil, GenesisMarker)
	log.Debug("Genesis block created", "hash", genesis.Hash, "time", formatTimestamp(genesis.Timestamp))
	return genesis
}

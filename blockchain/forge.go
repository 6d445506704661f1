package blockchain

import (
	"fmt"
	"time"
)

var timeNow = time.Now

// unixSeconds converts t to fractional seconds since the epoch.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// NewBlock stamps the current time, builds the transfer Merkle tree and
// stores the unmined seal. Transfers are not validated here; IsValid
// reports invalid ones.
func NewBlock(transfers []Transfer, previousHash string) *Block {
	tsxs := make([]Transfer, len(transfers))
	copy(tsxs, transfers)

	b := &Block{
		Transfers:    tsxs,
		PreviousHash: previousHash,
		Timestamp:    unixSeconds(timeNow()),
		Nonce:        0,
	}
	b.Merkle = BuildMerkleTree(b.transferDigests())
	b.Hash = b.Seal()
	return b
}

func (b *Block) transferDigests() []string {
	digests := make([]string, len(b.Transfers))
	for i := range b.Transfers {
		digests[i] = b.Transfers[i].Digest()
	}
	return digests
}

// AddTransfer appends a validated transfer. The block is not resealed, so
// a sealed block stops being valid until it is mined again.
func (b *Block) AddTransfer(t Transfer) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("add transfer %s -> %s: %w", t.Sender, t.Receiver, err)
	}
	b.Transfers = append(b.Transfers, t)
	if b.Merkle == nil {
		b.Merkle = NewMerkleTree()
	}
	b.Merkle.Append(t.Digest())
	return nil
}

// MerkleRoot returns the root of the transfer tree, ErrEmptyTree for a block
// without transfers.
func (b *Block) MerkleRoot() (string, error) {
	if b.Merkle == nil {
		return "", ErrEmptyTree
	}
	return b.Merkle.Root()
}

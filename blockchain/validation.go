package blockchain

import (
	"errors"
	"fmt"

	"sealchain/log"
	"sealchain/metrics"
)

// Validate checks that the parties differ and the amount is admissible.
func (t *Transfer) Validate() error {
	if t.Sender == t.Receiver {
		return fmt.Errorf("%w: %w (%s)", ErrInvalidTransfer, ErrSameParty, t.Sender)
	}
	if err := t.Amount.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransfer, err)
	}
	return nil
}

// IsValid is the boolean form of Validate.
func (t *Transfer) IsValid() bool {
	return t.Validate() == nil
}

// Verify checks every transfer and the stored hash against a fresh seal.
func (b *Block) Verify() error {
	for i := range b.Transfers {
		if err := b.Transfers[i].Validate(); err != nil {
			return fmt.Errorf("transfer %d: %w", i, err)
		}
	}
	if seal := b.Seal(); seal != b.Hash {
		return fmt.Errorf("%w: stored %s, computed %s", ErrHashMismatch, b.Hash, seal)
	}
	return nil
}

// IsValid is the boolean form of Verify.
func (b *Block) IsValid() bool {
	return b.Verify() == nil
}

// verifyLink checks block against its parent. The genesis block has no
// parent and is only checked through the link from block 1.
func verifyLink(block, parent *Block) error {
	if err := block.Verify(); err != nil {
		return err
	}
	if block.PreviousHash != parent.Hash {
		return fmt.Errorf("%w: previous %s, parent %s", ErrBrokenLink, block.PreviousHash, parent.Hash)
	}
	return nil
}

// verifyBlocks walks the chain from index 1 and stops at the first failure.
func verifyBlocks(blocks []*Block) error {
	for i := 1; i < len(blocks); i++ {
		if err := verifyLink(blocks[i], blocks[i-1]); err != nil {
			metrics.ValidationFailure(failureReason(err))
			log.Warn("VALIDATION block rejected", "height", i, "err", err)
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTransfer):
		return "invalid_transfer"
	case errors.Is(err, ErrHashMismatch):
		return "hash_mismatch"
	case errors.Is(err, ErrBrokenLink):
		return "broken_link"
	default:
		return "other"
	}
}

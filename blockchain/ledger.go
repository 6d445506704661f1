package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/shopspring/decimal"

	"sealchain/log"
	"sealchain/metrics"
)

// Ledger is an append-only chain of sealed blocks plus a commitment tree
// over their hashes. It is safe for concurrent use.
type Ledger struct {
	blocks     []*Block
	commitment *MerkleTree
	mu         sync.RWMutex
}

// NewLedger returns a ledger holding only a fresh genesis block.
func NewLedger() *Ledger {
	l := &Ledger{
		blocks:     make([]*Block, 0, 1),
		commitment: NewMerkleTree(),
	}
	genesis := NewGenesisBlock()
	l.blocks = append(l.blocks, genesis)
	l.commitment.Append(genesis.Hash)
	metrics.SetChainHeight(len(l.blocks))
	return l
}

// RestoreLedger rebuilds a ledger from persisted blocks without mining or
// validating them. The commitment is recomputed from the block hashes.
func RestoreLedger(blocks []*Block) (*Ledger, error) {
	if len(blocks) == 0 {
		return nil, errors.New("cannot restore ledger without blocks")
	}
	l := &Ledger{
		blocks:     make([]*Block, 0, len(blocks)),
		commitment: NewMerkleTree(),
	}
	for i, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("block %d is nil", i)
		}
		l.blocks = append(l.blocks, b)
		l.commitment.Append(b.Hash)
	}
	metrics.SetChainHeight(len(l.blocks))
	return l, nil
}

// AddBlock mines block at difficulty and appends it.
func (l *Ledger) AddBlock(block *Block, difficulty uint) error {
	return l.AddBlockContext(context.Background(), block, difficulty, MiningOptions{})
}

// AddBlockContext mines block with opts and appends it. If mining fails the
// ledger is unchanged. The block is appended as given; linking it to
// Latest() is the caller's job and IsValid reports a broken link.
func (l *Ledger) AddBlockContext(ctx context.Context, block *Block, difficulty uint, opts MiningOptions) error {
	if block == nil {
		return errors.New("block is nil")
	}
	if err := block.MineContext(ctx, difficulty, opts); err != nil {
		return fmt.Errorf("mine block: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.blocks = append(l.blocks, block)
	l.commitment.Append(block.Hash)
	metrics.SetChainHeight(len(l.blocks))
	log.Info("Block appended", "height", len(l.blocks)-1, "hash", block.Hash, "transfers", len(block.Transfers))
	return nil
}

// Latest returns the head block.
func (l *Ledger) Latest() *Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[len(l.blocks)-1]
}

// Blocks returns the chain in order. The slice is a copy; the blocks are shared.
func (l *Ledger) Blocks() []*Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Block(nil), l.blocks...)
}

// Height is the number of blocks, genesis included.
func (l *Ledger) Height() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.blocks)
}

// Commitment returns a copy of the tree over block hashes.
func (l *Ledger) Commitment() *MerkleTree {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.commitment.Clone()
}

// Snapshot returns the chain and a copy of its commitment taken under one
// lock, so the tree always covers exactly the returned blocks.
func (l *Ledger) Snapshot() ([]*Block, *MerkleTree) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Block(nil), l.blocks...), l.commitment.Clone()
}

// CommitmentRoot returns the root of the tree over block hashes.
func (l *Ledger) CommitmentRoot() (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.commitment.Root()
}

// Verify checks every block after genesis: transfers valid, stored hash equal
// to its seal, previous hash equal to the parent's hash.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return verifyBlocks(l.blocks)
}

// IsValid is the boolean form of Verify.
func (l *Ledger) IsValid() bool {
	return l.Verify() == nil
}

// walkTransfers calls fn for every transfer in chain order.
func (l *Ledger) walkTransfers(fn func(t *Transfer)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.blocks {
		for i := range b.Transfers {
			fn(&b.Transfers[i])
		}
	}
}

func applyTransfer(balance decimal.Decimal, identity string, t *Transfer) decimal.Decimal {
	if t.Sender == identity {
		balance = balance.Sub(t.Amount.Decimal)
	}
	if t.Receiver == identity {
		balance = balance.Add(t.Amount.Decimal)
	}
	return balance
}

// BalanceOf sums everything identity received minus everything it sent.
func (l *Ledger) BalanceOf(identity string) decimal.Decimal {
	balance := decimal.Zero
	l.walkTransfers(func(t *Transfer) {
		balance = applyTransfer(balance, identity, t)
	})
	return balance
}

// BalanceExtrema returns the lowest and highest running balance of identity,
// starting from zero and observed after every transfer.
func (l *Ledger) BalanceExtrema(identity string) (min, max decimal.Decimal) {
	balance := decimal.Zero
	min, max = balance, balance
	l.walkTransfers(func(t *Transfer) {
		balance = applyTransfer(balance, identity, t)
		if balance.LessThan(min) {
			min = balance
		}
		if balance.GreaterThan(max) {
			max = balance
		}
	})
	return min, max
}

// Participants returns every identity that sent or received a transfer.
func (l *Ledger) Participants() mapset.Set {
	persons := mapset.NewThreadUnsafeSet()
	l.walkTransfers(func(t *Transfer) {
		persons.Add(t.Sender)
		persons.Add(t.Receiver)
	})
	return persons
}

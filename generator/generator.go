// Package generator builds random transfers and ledgers for tests and the
// generate command.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"sealchain/blockchain"
)

// Identities returns count names of the form "user-00".
func Identities(count int) []string {
	if count < 0 {
		count = 0
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("user-%02d", i)
	}
	return ids
}

// RandomTransfers draws count valid transfers between distinct identities,
// amounts between 0.01 and 100.00.
func RandomTransfers(r *rand.Rand, identities []string, count int) ([]blockchain.Transfer, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative transfer count %d", count)
	}
	if count == 0 {
		return []blockchain.Transfer{}, nil
	}
	if len(identities) < 2 {
		return nil, fmt.Errorf("need at least 2 identities to generate transfers, got %d", len(identities))
	}

	transfers := make([]blockchain.Transfer, 0, count)
	for i := 0; i < count; i++ {
		from := r.Intn(len(identities))
		to := r.Intn(len(identities))
		for to == from {
			to = r.Intn(len(identities))
		}

		cents := int64(r.Intn(10000) + 1)
		transfers = append(transfers, blockchain.Transfer{
			Sender:   identities[from],
			Receiver: identities[to],
			Amount:   blockchain.Amount{Decimal: decimal.New(cents, -2)},
		})
	}
	return transfers, nil
}

// Params sizes a generated ledger.
type Params struct {
	Blocks            int
	TransfersPerBlock int
	Identities        int
	Difficulty        uint
	Mining            blockchain.MiningOptions
}

// Ledger mines p.Blocks random blocks on top of a fresh genesis block.
func Ledger(ctx context.Context, r *rand.Rand, p Params) (*blockchain.Ledger, error) {
	switch {
	case p.Blocks < 0:
		return nil, fmt.Errorf("negative block count %d", p.Blocks)
	case p.TransfersPerBlock < 0:
		return nil, fmt.Errorf("negative transfers per block %d", p.TransfersPerBlock)
	case p.Identities < 0:
		return nil, fmt.Errorf("negative identity count %d", p.Identities)
	}
	identities := Identities(p.Identities)
	ledger := blockchain.NewLedger()

	for i := 0; i < p.Blocks; i++ {
		transfers, err := RandomTransfers(r, identities, p.TransfersPerBlock)
		if err != nil {
			return nil, err
		}
		block := blockchain.NewBlock(transfers, ledger.Latest().Hash)
		if err := ledger.AddBlockContext(ctx, block, p.Difficulty, p.Mining); err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
	}
	return ledger, nil
}

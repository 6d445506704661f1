package blockchain

import (
	"math/big"
)

var sixteen = big.NewInt(16)

// ExpectedWork is the mean number of seals needed to reach difficulty:
// 16^difficulty.
func ExpectedWork(difficulty uint) *big.Int {
	return new(big.Int).Exp(sixteen, big.NewInt(int64(difficulty)), nil)
}

// TotalWork sums the expected work of every block after genesis, measured by
// the leading zeros each hash actually achieved.
func (l *Ledger) TotalWork() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := new(big.Int)
	for _, b := range l.blocks[1:] {
		total.Add(total, ExpectedWork(LeadingZeros(b.Hash)))
	}
	return total
}

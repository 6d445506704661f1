package blockchain

import (
	"testing"
	"time"
)

// fixedClock pins block timestamps for the duration of a test.
func fixedClock(t *testing.T, sec, nsec int64) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return time.Unix(sec, nsec) }
	t.Cleanup(func() { timeNow = prev })
}

func transfer(sender, receiver string, amount int64) Transfer {
	return Transfer{Sender: sender, Receiver: receiver, Amount: AmountFromInt(amount)}
}

func scenarioTransfers() []Transfer {
	return []Transfer{
		transfer("Alice", "Bob", 50),
		transfer("Bob", "Charlie", 20),
		transfer("Charlie", "Alice", 30),
	}
}

// scenarioLedger is genesis plus one block of scenarioTransfers at difficulty 2.
func scenarioLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	block := NewBlock(scenarioTransfers(), l.Latest().Hash)
	if err := l.AddBlock(block, 2); err != nil {
		t.Fatalf("AddBlock() failed: %v", err)
	}
	return l
}

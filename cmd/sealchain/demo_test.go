package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealchain/blockchain/store"
	"sealchain/params"
)

func assertBalances(t *testing.T, rows []balanceRow) {
	t.Helper()
	want := map[string]int64{"Alice": -20, "Bob": 30, "Charlie": -10}
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.True(t, r.Balance.Equal(decimal.NewFromInt(want[r.Identity])), "%s: %s", r.Identity, r.Balance)
	}
}

func TestRunDemo(t *testing.T) {
	stores := map[string]store.ChainStore{
		"memory": store.NewMemoryStore(),
		"file":   store.NewFileStore(filepath.Join(t.TempDir(), "blockchain.json")),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			report, err := runDemo(context.Background(), params.DefaultConfig(), s, false)
			require.NoError(t, err)

			assert.True(t, report.Valid)
			assert.True(t, report.LoadedValid)
			assertBalances(t, report.Balances)
			assertBalances(t, report.LoadedBalances)

			assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, report.Participants)
			assert.True(t, report.Min.Equal(decimal.NewFromInt(-50)))
			assert.True(t, report.Max.IsZero())

			require.Len(t, report.BlockRoots, 2)
			assert.Empty(t, report.BlockRoots[0].Root)
			assert.Len(t, report.BlockRoots[1].Root, 64)
			assert.Len(t, report.ChainRoot, 64)
		})
	}
}

func TestRunDemoParallel(t *testing.T) {
	config := params.DefaultConfig()
	config.Mining.Workers = 4
	config.Mining.Difficulty = 3

	report, err := runDemo(context.Background(), config, store.NewMemoryStore(), false)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.True(t, report.LoadedValid)
}

func TestRunDemoExhausted(t *testing.T) {
	config := params.DefaultConfig()
	config.Mining.Difficulty = 64
	config.Mining.MaxAttempts = 16

	_, err := runDemo(context.Background(), config, store.NewMemoryStore(), false)
	assert.Error(t, err)
}

package store

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealchain/blockchain"
)

func scenarioLedger(t *testing.T) *blockchain.Ledger {
	t.Helper()
	l := blockchain.NewLedger()
	txs := []blockchain.Transfer{
		{Sender: "Alice", Receiver: "Bob", Amount: blockchain.AmountFromInt(50)},
		{Sender: "Bob", Receiver: "Charlie", Amount: blockchain.AmountFromInt(20)},
		{Sender: "Charlie", Receiver: "Alice", Amount: blockchain.MustAmount("30.5")},
	}
	require.NoError(t, l.AddBlock(blockchain.NewBlock(txs, l.Latest().Hash), 2))
	require.NoError(t, l.AddBlock(blockchain.NewBlock(nil, l.Latest().Hash), 1))
	return l
}

func assertSameLedger(t *testing.T, want, got *blockchain.Ledger) {
	t.Helper()
	require.Equal(t, want.Height(), got.Height())
	assert.Equal(t, want.IsValid(), got.IsValid())

	for _, p := range want.Participants().ToSlice() {
		id := p.(string)
		assert.True(t, want.BalanceOf(id).Equal(got.BalanceOf(id)), "balance of %s", id)
	}
	assert.True(t, want.Participants().Equal(got.Participants()))

	wantBlocks, gotBlocks := want.Blocks(), got.Blocks()
	for i := range wantBlocks {
		assert.Equal(t, wantBlocks[i].Hash, gotBlocks[i].Hash, "block %d", i)
		assert.Equal(t, wantBlocks[i].Nonce, gotBlocks[i].Nonce, "block %d", i)
		assert.Equal(t, wantBlocks[i].Timestamp, gotBlocks[i].Timestamp, "block %d", i)
	}

	wantRoot, err := want.CommitmentRoot()
	require.NoError(t, err)
	gotRoot, err := got.CommitmentRoot()
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestStoresRoundTrip(t *testing.T) {
	dir := t.TempDir()
	leveldb, err := NewLevelDBStore(filepath.Join(dir, "chaindata"), 0, 0)
	require.NoError(t, err)

	stores := map[string]ChainStore{
		"file":    NewFileStore(filepath.Join(dir, "blockchain.json")),
		"memory":  NewMemoryStore(),
		"leveldb": leveldb,
	}
	ledger := scenarioLedger(t)
	require.True(t, ledger.IsValid())

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			require.NoError(t, s.Save(ledger))
			loaded, err := s.Load()
			require.NoError(t, err)
			assertSameLedger(t, ledger, loaded)
			assert.True(t, loaded.IsValid())
		})
	}
}

func TestRoundTripPreservesInvalidity(t *testing.T) {
	ledger := scenarioLedger(t)
	ledger.Blocks()[1].Transfers[0].Amount = blockchain.AmountFromInt(49)
	require.False(t, ledger.IsValid())

	s := NewFileStore(filepath.Join(t.TempDir(), "tampered.json"))
	require.NoError(t, s.Save(ledger))
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.False(t, loaded.IsValid())
	assert.ErrorIs(t, loaded.Verify(), blockchain.ErrHashMismatch)
}

func TestFileDocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockchain.json")
	ledger := scenarioLedger(t)
	require.NoError(t, NewFileStore(path).Save(ledger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "chain")
	assert.Contains(t, doc, "merkle_tree")

	chain := doc["chain"].([]interface{})
	require.Len(t, chain, 3)
	genesis := chain[0].(map[string]interface{})
	assert.Equal(t, blockchain.GenesisMarker, genesis["previous_hash"])
	assert.Empty(t, genesis["transfers"])

	block := chain[1].(map[string]interface{})
	for _, key := range []string{"transfers", "previous_hash", "time", "nonce", "hash", "merkle_tree"} {
		assert.Contains(t, block, key)
	}
	tx := block["transfers"].([]interface{})[2].(map[string]interface{})
	assert.Equal(t, "Charlie", tx["sender"])
	assert.Equal(t, 30.5, tx["amount"])

	tree := block["merkle_tree"].(map[string]interface{})
	assert.Len(t, tree["transfers"], 3)
	assert.Len(t, tree["merkle_tree"], 6)

	commitment := doc["merkle_tree"].(map[string]interface{})
	assert.Len(t, commitment["transfers"], 3)
}

func TestFileLoadFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileStore(filepath.Join(dir, "missing.json")).Load()
	assert.Error(t, err)

	write := func(name, body string) *FileStore {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return NewFileStore(path)
	}

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"chain": [`},
		{"no blocks", `{"chain": []}`},
		{"quoted amount", `{"chain": [{"transfers": [{"sender": "a", "receiver": "b", "amount": "5"}], "previous_hash": "0", "time": 1.5, "nonce": 0, "hash": "x"}]}`},
		{"huge exponent amount", `{"chain": [{"transfers": [{"sender": "a", "receiver": "b", "amount": 1e30000000}], "previous_hash": "0", "time": 1.5, "nonce": 0, "hash": "x"}]}`},
		{"non numeric amount", `{"chain": [{"transfers": [{"sender": "a", "receiver": "b", "amount": true}], "previous_hash": "0", "time": 1.5, "nonce": 0, "hash": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := write(tt.name+".json", tt.body).Load()
			assert.Error(t, err)
			assert.Nil(t, ledger)
		})
	}
}

func TestLoadOverwritesRebuiltFields(t *testing.T) {
	doc := `{"chain": [
		{"transfers": [], "previous_hash": "0", "time": 1700000000.25, "nonce": 0, "hash": "genesis-hash"},
		{"transfers": [{"sender": "a", "receiver": "b", "amount": 2.5}], "previous_hash": "genesis-hash", "time": 1700000001, "nonce": 42, "hash": "block-hash"}
	]}`
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	ledger, err := NewFileStore(path).Load()
	require.NoError(t, err)

	blocks := ledger.Blocks()
	assert.Equal(t, 1700000000.25, blocks[0].Timestamp)
	assert.Equal(t, "block-hash", blocks[1].Hash)
	assert.Equal(t, uint64(42), blocks[1].Nonce)
	assert.True(t, ledger.BalanceOf("b").Equal(decimal.RequireFromString("2.5")))
	assert.False(t, ledger.IsValid())
}

func TestLevelDBShrinkingSave(t *testing.T) {
	s, err := NewLevelDBStore(filepath.Join(t.TempDir(), "chaindata"), 0, 0)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(scenarioLedger(t)))
	short := blockchain.NewLedger()
	require.NoError(t, s.Save(short))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Height())

	_, err = s.db.Get(blockKey(1), nil)
	assert.Error(t, err)
}

func TestLevelDBEmpty(t *testing.T) {
	s, err := NewLevelDBStore(filepath.Join(t.TempDir(), "chaindata"), 0, 0)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load()
	assert.Error(t, err)
}

func TestLevelDBCorruptHeight(t *testing.T) {
	s, err := NewLevelDBStore(filepath.Join(t.TempDir(), "chaindata"), 0, 0)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(scenarioLedger(t)))
	height := make([]byte, 8)
	binary.BigEndian.PutUint64(height, 1<<63)
	require.NoError(t, s.db.Put(heightKey, height, nil))

	ledger, err := s.Load()
	assert.Error(t, err)
	assert.Nil(t, ledger)
}

func TestSaveWhileAppending(t *testing.T) {
	ledger := blockchain.NewLedger()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.NoError(t, ledger.AddBlock(blockchain.NewBlock(nil, ledger.Latest().Hash), 0))
		}
	}()
	for i := 0; i < 100; i++ {
		require.NoError(t, s.Save(ledger))

		var doc ledgerRecord
		require.NoError(t, json.Unmarshal(s.Snapshot(), &doc))
		assert.Len(t, doc.MerkleTree.Transfers, len(doc.Chain))
	}
	wg.Wait()

	require.NoError(t, s.Save(ledger))
	loaded, err := s.Load()
	require.NoError(t, err)
	assertSameLedger(t, ledger, loaded)
}

func TestMemoryStoreNothingSaved(t *testing.T) {
	_, err := NewMemoryStore().Load()
	assert.ErrorIs(t, err, ErrNothingSaved)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendFile, filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(BackendLevelDB, filepath.Join(dir, "db"))
	require.NoError(t, err)
	assert.IsType(t, &LevelDBStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open("postgres", "x")
	assert.Error(t, err)
	_, err = Open(BackendFile, "")
	assert.Error(t, err)
}

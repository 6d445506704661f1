package store

import (
	"encoding/json"

	"github.com/pkg/errors"

	"sealchain/blockchain"
)

// treeRecord is the persisted form of a Merkle tree: its leaves and every
// node in construction order.
type treeRecord struct {
	Transfers  []string `json:"transfers"`
	MerkleTree []string `json:"merkle_tree"`
}

type blockRecord struct {
	Transfers    []blockchain.Transfer `json:"transfers"`
	PreviousHash string                `json:"previous_hash"`
	Time         float64               `json:"time"`
	Nonce        uint64                `json:"nonce"`
	Hash         string                `json:"hash"`
	MerkleTree   treeRecord            `json:"merkle_tree"`
}

type ledgerRecord struct {
	Chain      []blockRecord `json:"chain"`
	MerkleTree treeRecord    `json:"merkle_tree"`
}

func newTreeRecord(t *blockchain.MerkleTree) treeRecord {
	if t == nil {
		return treeRecord{Transfers: []string{}, MerkleTree: []string{}}
	}
	return treeRecord{Transfers: t.Leaves(), MerkleTree: t.Nodes()}
}

func newBlockRecord(b *blockchain.Block) blockRecord {
	transfers := b.Transfers
	if transfers == nil {
		transfers = []blockchain.Transfer{}
	}
	return blockRecord{
		Transfers:    transfers,
		PreviousHash: b.PreviousHash,
		Time:         b.Timestamp,
		Nonce:        b.Nonce,
		Hash:         b.Hash,
		MerkleTree:   newTreeRecord(b.Merkle),
	}
}

// block rebuilds the block from transfers and previous hash, then restores
// the persisted time, nonce and hash. The transfer tree is the rebuilt one.
func (r *blockRecord) block() *blockchain.Block {
	b := blockchain.NewBlock(r.Transfers, r.PreviousHash)
	b.Timestamp = r.Time
	b.Nonce = r.Nonce
	b.Hash = r.Hash
	return b
}

func newLedgerRecord(l *blockchain.Ledger) ledgerRecord {
	blocks, commitment := l.Snapshot()
	rec := ledgerRecord{
		Chain:      make([]blockRecord, 0, len(blocks)),
		MerkleTree: newTreeRecord(commitment),
	}
	for _, b := range blocks {
		rec.Chain = append(rec.Chain, newBlockRecord(b))
	}
	return rec
}

func (r *ledgerRecord) ledger() (*blockchain.Ledger, error) {
	if len(r.Chain) == 0 {
		return nil, errors.New("ledger document has no blocks")
	}
	blocks := make([]*blockchain.Block, 0, len(r.Chain))
	for i := range r.Chain {
		blocks = append(blocks, r.Chain[i].block())
	}
	return blockchain.RestoreLedger(blocks)
}

func encodeLedger(l *blockchain.Ledger) ([]byte, error) {
	data, err := json.MarshalIndent(newLedgerRecord(l), "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "encode ledger")
	}
	return data, nil
}

func decodeLedger(data []byte) (*blockchain.Ledger, error) {
	var rec ledgerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "decode ledger")
	}
	return rec.ledger()
}

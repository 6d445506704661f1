package store

import (
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"sealchain/blockchain"
	"sealchain/log"
)

const (
	// minCache is the minimum memory in megabytes given to leveldb read and
	// write caching.
	minCache = 16

	// minHandles is the minimum number of open file handles.
	minHandles = 16
	// maxPrealloc caps the block slice reserved before reading.
	maxPrealloc = 1024
)

var (
	heightKey   = []byte("h")
	blockPrefix = []byte("b")
)

// LevelDBStore keeps one JSON block record per key, indexed by height.
type LevelDBStore struct {
	path string
	db   *goleveldb.DB
}

var _ ChainStore = (*LevelDBStore)(nil)

// NewLevelDBStore opens or creates the database at path, recovering it if
// it is corrupted.
func NewLevelDBStore(path string, cache, handles int) (*LevelDBStore, error) {
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}
	options := &opt.Options{
		Filter:                 filter.NewBloomFilter(10),
		DisableSeeksCompaction: true,
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
	}
	log.Info("Opening leveldb", "database", path, "cache", cache, "handles", handles)

	db, err := goleveldb.OpenFile(path, options)
	if dberrors.IsCorrupted(err) {
		log.Warn("Recovering corrupted leveldb", "database", path, "err", err)
		db, err = goleveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s", path)
	}
	return &LevelDBStore{path: path, db: db}, nil
}

func blockKey(height uint64) []byte {
	key := make([]byte, len(blockPrefix)+8)
	copy(key, blockPrefix)
	binary.BigEndian.PutUint64(key[len(blockPrefix):], height)
	return key
}

func (s *LevelDBStore) storedHeight() (uint64, error) {
	data, err := s.db.Get(heightKey, nil)
	if errors.Is(err, dberrors.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read height")
	}
	if len(data) != 8 {
		return 0, errors.Errorf("height record has %d bytes, want 8", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// Save replaces the stored chain in a single batch.
func (s *LevelDBStore) Save(ledger *blockchain.Ledger) error {
	previous, err := s.storedHeight()
	if err != nil {
		return err
	}

	blocks := ledger.Blocks()
	batch := new(goleveldb.Batch)
	for i, b := range blocks {
		data, err := json.Marshal(newBlockRecord(b))
		if err != nil {
			return errors.Wrapf(err, "encode block %d", i)
		}
		batch.Put(blockKey(uint64(i)), data)
	}
	for h := uint64(len(blocks)); h < previous; h++ {
		batch.Delete(blockKey(h))
	}
	height := make([]byte, 8)
	binary.BigEndian.PutUint64(height, uint64(len(blocks)))
	batch.Put(heightKey, height)

	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "write batch")
	}
	log.Info("Ledger saved", "database", s.path, "blocks", len(blocks))
	return nil
}

func (s *LevelDBStore) Load() (*blockchain.Ledger, error) {
	height, err := s.storedHeight()
	if err != nil {
		return nil, err
	}
	if height == 0 {
		return nil, errors.Errorf("no ledger stored in %s", s.path)
	}

	// height comes from disk; a corrupt record fails on the first missing key.
	blocks := make([]*blockchain.Block, 0, min(height, maxPrealloc))
	for h := uint64(0); h < height; h++ {
		data, err := s.db.Get(blockKey(h), nil)
		if err != nil {
			return nil, errors.Wrapf(err, "read block %d", h)
		}
		var rec blockRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, errors.Wrapf(err, "decode block %d", h)
		}
		blocks = append(blocks, rec.block())
	}

	ledger, err := blockchain.RestoreLedger(blocks)
	if err != nil {
		return nil, err
	}
	log.Info("Ledger loaded", "database", s.path, "blocks", height)
	return ledger, nil
}

// Close flushes pending writes and releases the database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

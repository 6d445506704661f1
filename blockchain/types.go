package blockchain

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// GenesisMarker is the previous hash carried by the first block.
	GenesisMarker = "0"

	// AmountPrecision is the number of fractional digits an amount may carry.
	AmountPrecision = 8

	// MaxDifficulty is the length of a hex encoded sha256 digest.
	MaxDifficulty = 64
)

// MaxAmount bounds a single transfer.
var MaxAmount = decimal.New(1, 15)

var (
	ErrInvalidTransfer   = errors.New("invalid transfer")
	ErrSameParty         = errors.New("sender and receiver are the same identity")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrEmptyTree         = errors.New("merkle tree has no leaves")
	ErrSearchExhausted   = errors.New("nonce search exhausted")
	ErrDifficultyTooHigh = errors.New("difficulty exceeds digest length")
	ErrHashMismatch      = errors.New("stored hash does not match seal")
	ErrBrokenLink        = errors.New("previous hash does not match parent")
)

// Amount is a fixed-point transfer value.
type Amount struct {
	decimal.Decimal
}

// Transfer moves Amount from Sender to Receiver.
type Transfer struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   Amount `json:"amount"`
}

// Block groups transfers under a proof-of-work seal.
//
// The Merkle tree is built over the transfer digests but is not an input of
// Seal.
type Block struct {
	Transfers    []Transfer  `json:"transfers"`
	PreviousHash string      `json:"previous_hash"`
	Timestamp    float64     `json:"time"`
	Nonce        uint64      `json:"nonce"`
	Hash         string      `json:"hash"`
	Merkle       *MerkleTree `json:"-"`
}

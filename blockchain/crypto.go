package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// Digest returns the hex encoded sha256 of the concatenated parts.
func Digest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Digest hashes sender, receiver and amount text, unseparated and in that order.
func (t *Transfer) Digest() string {
	return Digest(t.Sender, t.Receiver, t.Amount.String())
}

// formatTimestamp renders seconds in the shortest decimal form that
// round-trips, e.g. 1700000000.123456. Whole seconds keep a ".0" suffix.
func formatTimestamp(ts float64) string {
	s := strconv.FormatFloat(ts, 'f', -1, 64)
	if math.IsInf(ts, 0) || math.IsNaN(ts) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

// sealPrefix is every seal input except the nonce.
func (b *Block) sealPrefix() []byte {
	buf := make([]byte, 0, len(b.Transfers)*64+len(b.PreviousHash)+32)
	for i := range b.Transfers {
		buf = append(buf, b.Transfers[i].Digest()...)
	}
	buf = append(buf, b.PreviousHash...)
	buf = append(buf, formatTimestamp(b.Timestamp)...)
	return buf
}

// sealWithNonce hashes prefix || nonce. scratch is reused between calls.
func sealWithNonce(prefix []byte, nonce uint64, scratch []byte) (string, []byte) {
	scratch = append(scratch[:0], prefix...)
	scratch = strconv.AppendUint(scratch, nonce, 10)
	sum := sha256.Sum256(scratch)
	return hex.EncodeToString(sum[:]), scratch
}

// Seal recomputes the block hash from transfers, previous hash, timestamp
// and nonce.
func (b *Block) Seal() string {
	hash, _ := sealWithNonce(b.sealPrefix(), b.Nonce, nil)
	return hash
}

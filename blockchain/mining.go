package blockchain

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sealchain/log"
	"sealchain/metrics"
)

// progressInterval is how many attempts a worker makes between progress
// reports and cancellation checks.
const progressInterval = 4096

// MiningOptions tune MineContext. The zero value is a sequential search
// with no attempt ceiling.
type MiningOptions struct {
	// Workers > 1 splits the nonce space between goroutines.
	Workers int
	// MaxAttempts caps the number of nonces tried; 0 means unbounded.
	MaxAttempts uint64
	// Progress, when set, receives attempt counts as the search runs. With
	// several workers it is called from their goroutines.
	Progress func(attempts uint64)
}

// Mine searches for a nonce whose seal has difficulty leading zero hex
// characters. It blocks until one is found.
func (b *Block) Mine(difficulty uint) error {
	return b.MineContext(context.Background(), difficulty, MiningOptions{})
}

// MineContext is Mine with cancellation, an attempt ceiling and optional
// parallel workers. The current nonce is tried first, then nonce+1 and so on;
// the smallest satisfying nonce is kept whatever the worker count. On error
// the block is left untouched.
func (b *Block) MineContext(ctx context.Context, difficulty uint, opts MiningOptions) error {
	if difficulty > MaxDifficulty {
		return fmt.Errorf("%w: %d > %d", ErrDifficultyTooHigh, difficulty, MaxDifficulty)
	}
	start := time.Now()
	log.Debug("MINING start", "difficulty", difficulty, "workers", opts.Workers, "nonce", b.Nonce)

	limit := uint64(math.MaxUint64) - b.Nonce
	if opts.MaxAttempts > 0 && opts.MaxAttempts < limit {
		limit = opts.MaxAttempts
	}

	var (
		nonce uint64
		hash  string
		err   error
	)
	if opts.Workers > 1 {
		nonce, hash, err = searchParallel(ctx, b.sealPrefix(), b.Nonce, limit, difficulty, opts)
	} else {
		nonce, hash, err = searchSequential(ctx, b.sealPrefix(), b.Nonce, limit, difficulty, opts.Progress)
	}
	if err != nil {
		log.Warn("MINING aborted", "difficulty", difficulty, "err", err)
		return err
	}

	b.Nonce = nonce
	b.Hash = hash
	metrics.ObserveBlockMined(time.Since(start))
	log.Info("MINING sealed block", "difficulty", difficulty, "nonce", nonce, "hash", hash, "elapsed", time.Since(start))
	return nil
}

func searchSequential(ctx context.Context, prefix []byte, first, limit uint64, difficulty uint, progress func(uint64)) (uint64, string, error) {
	var (
		hash    string
		scratch []byte
	)
	for i := uint64(0); i < limit; i++ {
		nonce := first + i
		hash, scratch = sealWithNonce(prefix, nonce, scratch)
		if HashMeetsDifficulty(hash, difficulty) {
			metrics.AddMiningAttempts(i%progressInterval + 1)
			return nonce, hash, nil
		}
		if (i+1)%progressInterval == 0 {
			metrics.AddMiningAttempts(progressInterval)
			if progress != nil {
				progress(i + 1)
			}
			if err := ctx.Err(); err != nil {
				return 0, "", err
			}
		}
	}
	metrics.AddMiningAttempts(limit % progressInterval)
	return 0, "", fmt.Errorf("%w after %d attempts", ErrSearchExhausted, limit)
}

// searchParallel gives worker w the offsets w, w+n, w+2n, ... A worker stops
// once its next offset exceeds the best offset found so far, so every offset
// below the winner has been tried by someone.
func searchParallel(ctx context.Context, prefix []byte, first, limit uint64, difficulty uint, opts MiningOptions) (uint64, string, error) {
	workers := uint64(opts.Workers)
	var (
		best     atomic.Uint64
		attempts atomic.Uint64
		hashes   = make([]string, workers)
	)
	best.Store(math.MaxUint64)

	g, gctx := errgroup.WithContext(ctx)
	for w := uint64(0); w < workers; w++ {
		w := w
		g.Go(func() error {
			var (
				hash    string
				scratch []byte
				local   uint64
			)
			for off := w; off < limit && off < best.Load(); off += workers {
				hash, scratch = sealWithNonce(prefix, first+off, scratch)
				local++
				if HashMeetsDifficulty(hash, difficulty) {
					for {
						cur := best.Load()
						if off >= cur || best.CompareAndSwap(cur, off) {
							break
						}
					}
					hashes[w] = hash
					break
				}
				if local%progressInterval == 0 {
					total := attempts.Add(progressInterval)
					metrics.AddMiningAttempts(progressInterval)
					if opts.Progress != nil {
						opts.Progress(total)
					}
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if off > math.MaxUint64-workers {
					break
				}
			}
			metrics.AddMiningAttempts(local % progressInterval)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, "", err
	}

	off := best.Load()
	if off == math.MaxUint64 {
		if err := ctx.Err(); err != nil {
			return 0, "", err
		}
		return 0, "", fmt.Errorf("%w after %d attempts", ErrSearchExhausted, limit)
	}
	return first + off, hashes[off%workers], nil
}

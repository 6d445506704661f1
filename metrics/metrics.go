// Package metrics exposes prometheus collectors for mining and validation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sealchain"

var (
	miningAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mining_attempts_total",
		Help:      "Number of seals computed while searching for a nonce.",
	})
	blocksMined = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocks_mined_total",
		Help:      "Number of blocks that completed proof-of-work.",
	})
	miningDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mining_duration_seconds",
		Help:      "Wall time of successful nonce searches.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Chain verifications that failed, by reason.",
	}, []string{"reason"})
	chainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chain_height",
		Help:      "Number of blocks in the most recently touched ledger.",
	})

	// Registry holds every sealchain collector.
	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(miningAttempts, blocksMined, miningDuration, validationFailures, chainHeight)
}

func AddMiningAttempts(n uint64) {
	if n > 0 {
		miningAttempts.Add(float64(n))
	}
}

func ObserveBlockMined(elapsed time.Duration) {
	blocksMined.Inc()
	miningDuration.Observe(elapsed.Seconds())
}

func ValidationFailure(reason string) {
	validationFailures.WithLabelValues(reason).Inc()
}

func SetChainHeight(height int) {
	chainHeight.Set(float64(height))
}

// Handler serves the registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Serve blocks serving Handler on addr under /metrics.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

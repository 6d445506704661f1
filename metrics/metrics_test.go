package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(miningAttempts)
	AddMiningAttempts(0)
	AddMiningAttempts(42)
	assert.Equal(t, before+42, testutil.ToFloat64(miningAttempts))

	mined := testutil.ToFloat64(blocksMined)
	ObserveBlockMined(3 * time.Millisecond)
	assert.Equal(t, mined+1, testutil.ToFloat64(blocksMined))

	ValidationFailure("hash_mismatch")
	assert.GreaterOrEqual(t, testutil.ToFloat64(validationFailures.WithLabelValues("hash_mismatch")), float64(1))

	SetChainHeight(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(chainHeight))
}

func TestHandlerExposesCollectors(t *testing.T) {
	SetChainHeight(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sealchain_chain_height 2")
	assert.Contains(t, rec.Body.String(), "sealchain_mining_attempts_total")
}

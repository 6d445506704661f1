package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFieldsJSON(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(4, true, false)
	SetOutput(&buf)

	Info("block appended", "height", 3, "hash", "00ab")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "block appended", entry["msg"])
	assert.Equal(t, float64(3), entry["height"])
	assert.Equal(t, "00ab", entry["hash"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(3, false, false)
	SetOutput(&buf)

	Debug("hidden", "k", 1)
	Info("hidden too")
	assert.Zero(t, buf.Len())

	Warn("shown", "k", 1)
	assert.Contains(t, buf.String(), "shown")
}

func TestOddFieldCountKeepsPairs(t *testing.T) {
	entry := WithFields("a", 1, "dangling")
	assert.Equal(t, 1, entry.Data["a"])
	assert.Len(t, entry.Data, 1)
}

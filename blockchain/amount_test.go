package blockchain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer", in: "50", want: "50"},
		{name: "fraction", in: "12.5", want: "12.5"},
		{name: "trailing zeros are dropped", in: "7.500", want: "7.5"},
		{name: "smallest unit", in: "0.00000001", want: "0.00000001"},
		{name: "maximum", in: "1000000000000000", want: "1000000000000000"},
		{name: "zero", in: "0", wantErr: true},
		{name: "negative", in: "-3", wantErr: true},
		{name: "too precise", in: "0.000000001", wantErr: true},
		{name: "too large", in: "1000000000000000.1", wantErr: true},
		{name: "not a number", in: "fifty", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "scientific", in: "5e1", want: "50"},
		{name: "huge exponent", in: "1e30000000", wantErr: true},
		{name: "tiny exponent", in: "1e-30000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAmountJSON(t *testing.T) {
	data, err := json.Marshal(MustAmount("12.5"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", string(data))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte("20"), &a))
	assert.Equal(t, "20", a.String())

	err = json.Unmarshal([]byte(`"20"`), &a)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = json.Unmarshal([]byte(`true`), &a)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`1e30000000`), &a)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, "20", a.String())
}

func TestMustAmountPanics(t *testing.T) {
	assert.Panics(t, func() { MustAmount("-1") })
}

package blockchain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// maxExponent bounds the decimal exponent of a parsed amount, so text such
// as 1e30000000 is refused before it is ever expanded.
const maxExponent = 32

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Decimal{}, fmt.Errorf("%w: exponent %d out of range [-%d,%d]", ErrInvalidAmount, exp, maxExponent, maxExponent)
	}
	return d, nil
}

// NewAmount parses a decimal string such as "50" or "12.5".
func NewAmount(s string) (Amount, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Amount{}, err
	}
	a := Amount{d}
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}

// MustAmount is NewAmount for literals known to be valid.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromInt returns a whole-unit amount. It is not validated.
func AmountFromInt(n int64) Amount {
	return Amount{decimal.NewFromInt(n)}
}

// Validate checks sign, range and precision.
func (a Amount) Validate() error {
	if !a.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, a.String())
	}
	if a.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds maximum %s", ErrInvalidAmount, a.String(), MaxAmount.String())
	}
	if !a.Equal(a.Truncate(AmountPrecision)) {
		return fmt.Errorf("%w: %s has more than %d fractional digits", ErrInvalidAmount, a.String(), AmountPrecision)
	}
	return nil
}

// MarshalJSON encodes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts JSON numbers only; quoted amounts are rejected.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return fmt.Errorf("%w: amount must be a JSON number, got string %s", ErrInvalidAmount, data)
	}
	d, err := parseDecimal(string(data))
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

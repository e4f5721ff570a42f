package kernel

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityScale is the number of fractional digits a shipped or planned
// quantity may carry.
const QuantityScale = 2

// ErrInvalidQuantity is returned for non-numeric, non-positive or over-precise quantities.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Quantity is a positive decimal amount of material (tons) with at most two
// fractional digits. No rounding is ever applied: a value carrying more
// precision is rejected rather than silently changed.
type Quantity struct {
	value decimal.Decimal
}

// NewQuantity validates d and wraps it.
func NewQuantity(d decimal.Decimal) (Quantity, error) {
	if !d.IsPositive() {
		return Quantity{}, fmt.Errorf("%w: %s is not greater than 0", ErrInvalidQuantity, d.String())
	}
	if !d.Equal(d.Truncate(QuantityScale)) {
		return Quantity{}, fmt.Errorf("%w: %s has more than %d fractional digits",
			ErrInvalidQuantity, d.String(), QuantityScale)
	}
	return Quantity{value: d}, nil
}

// ParseQuantity parses a decimal string such as "25.75".
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q is not a number", ErrInvalidQuantity, s)
	}
	return NewQuantity(d)
}

// Decimal returns the underlying value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// String formats the quantity with exactly two fractional digits.
func (q Quantity) String() string {
	return q.value.StringFixed(QuantityScale)
}

// IsEqual compares by numeric value, so 25.5 equals 25.50.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value.Equal(other.value)
}

// Validate rejects the zero value.
func (q Quantity) Validate() error {
	if !q.value.IsPositive() {
		return fmt.Errorf("%w: quantity must be created via NewQuantity or ParseQuantity", ErrInvalidQuantity)
	}
	return nil
}

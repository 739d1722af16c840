// Package moneypkg provides a fixed-point monetary amount stored in minor units.
package moneypkg

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept by an Amount.
const Places = 2

var (
	// ErrInvalidAmount indicates that the input is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrPrecision indicates that the input has more fractional digits than an Amount keeps.
	ErrPrecision = errors.New("amount has too many decimal places")
	// ErrOutOfRange indicates that the input does not fit into an Amount.
	ErrOutOfRange = errors.New("amount out of range")
)

// maxMajorDigits bounds the integer digits of any in-range amount.
const maxMajorDigits = 19

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Amount is a monetary value held as an integer count of minor units (cents).
//
// The zero value is a valid zero amount.
type Amount struct {
	minor int64
}

// Zero is the zero amount.
var Zero = Amount{}

// FromMinor returns the amount for the given number of minor units.
func FromMinor(minor int64) Amount {
	return Amount{minor: minor}
}

// Parse converts a decimal major-unit string such as "4000.30" into an Amount.
//
// Input is never rounded: more than Places fractional digits is an error.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}

	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Meant for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return a
}

// FromDecimal converts a decimal in major units into an Amount.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsZero() {
		return Zero, nil
	}

	// Rescaling costs 10^|exponent|, so reject what cannot fit before doing any.
	exp := int64(d.Exponent())
	digits := int64(len(d.Coefficient().Text(10)))
	if d.Sign() < 0 {
		digits--
	}

	switch {
	case exp > 0 && exp+digits > maxMajorDigits:
		return Zero, ErrOutOfRange
	case exp < -Places && -exp-Places >= digits:
		return Zero, ErrPrecision
	}

	if !d.Equal(d.Truncate(Places)) {
		return Zero, ErrPrecision
	}

	minor := d.Shift(Places)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return Zero, ErrOutOfRange
	}

	return Amount{minor: minor.IntPart()}, nil
}

// Minor returns the amount in minor units.
func (a Amount) Minor() int64 {
	return a.minor
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.minor, -Places)
}

// String renders the amount in major units with exactly Places fractional digits.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Places)
}

// Add returns a+b, or ErrOutOfRange when the sum does not fit into an Amount.
func (a Amount) Add(b Amount) (Amount, error) {
	if (b.minor > 0 && a.minor > math.MaxInt64-b.minor) ||
		(b.minor < 0 && a.minor < math.MinInt64-b.minor) {
		return Zero, ErrOutOfRange
	}

	return Amount{minor: a.minor + b.minor}, nil
}

// Sub returns a-b, or ErrOutOfRange when the difference does not fit into an Amount.
func (a Amount) Sub(b Amount) (Amount, error) {
	if (b.minor < 0 && a.minor > math.MaxInt64+b.minor) ||
		(b.minor > 0 && a.minor < math.MinInt64+b.minor) {
		return Zero, ErrOutOfRange
	}

	return Amount{minor: a.minor - b.minor}, nil
}

// Neg returns -a. The smallest Amount has no positive counterpart.
func (a Amount) Neg() (Amount, error) {
	if a.minor == math.MinInt64 {
		return Zero, ErrOutOfRange
	}

	return Amount{minor: -a.minor}, nil
}

// Cmp returns -1, 0 or +1 depending on whether a is less than, equal to or greater than b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.minor < b.minor:
		return -1
	case a.minor > b.minor:
		return 1
	}

	return 0
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.minor < b.minor
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.minor == 0
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a.minor < 0
}

// MulRound multiplies the amount by factor and rounds the result half away from zero
// to the nearest minor unit, e.g. a 1.5% fee is MulRound(decimal.RequireFromString("0.015")).
func (a Amount) MulRound(factor decimal.Decimal) (Amount, error) {
	return FromDecimal(a.Decimal().Mul(factor).Round(Places))
}

// MarshalJSON encodes the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes the amount from a decimal string or number.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

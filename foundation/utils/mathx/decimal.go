// File: decimal.go
// Title: Decimal Arithmetic Implementation
// Description: Implements exact decimal arithmetic for price calculations.
//              Values are held as big.Rat so that multiplying a unit price by
//              a quantity and summing line totals never drifts the way float64
//              arithmetic does.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core decimal operations
// - 2025-07-26 v0.1.1: Enhanced String() method for display purposes
// - 2026-10-16 v0.2.0: Integer-only rounding, zero value usable, JSON support

package mathx

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// RoundingMode defines how decimal numbers should be rounded
type RoundingMode int

const (
	// RoundingModeHalfUp rounds 0.5 away from zero (commercial rounding)
	RoundingModeHalfUp RoundingMode = iota

	// RoundingModeDown always rounds toward zero
	RoundingModeDown
)

// maxDisplayPlaces bounds String() for non-terminating fractions
const maxDisplayPlaces = 8

// Decimal represents a decimal number with arbitrary precision.
// The zero value is 0.
type Decimal struct {
	value *big.Rat
}

// NewDecimal creates a new Decimal from a string such as "123.45" or "100"
func NewDecimal(s string) (Decimal, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal format: %q", s)
	}
	return Decimal{value: rat}, nil
}

// MustNewDecimal creates a new Decimal from a string, panicking on error
func MustNewDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDecimalFromFloat creates a Decimal from the shortest decimal text that
// round-trips f, so 0.1 becomes exactly 1/10 rather than its binary value.
func NewDecimalFromFloat(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("invalid decimal value: %v", f)
	}
	return NewDecimal(strconv.FormatFloat(f, 'f', -1, 64))
}

// Zero returns a decimal representing zero
func Zero() Decimal {
	return Decimal{value: new(big.Rat)}
}

func (d Decimal) rat() *big.Rat {
	if d.value == nil {
		return new(big.Rat)
	}
	return d.value
}

// Add returns the sum of d and other
func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Add(d.rat(), other.rat())}
}

// Multiply returns the product of d and other
func (d Decimal) Multiply(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Mul(d.rat(), other.rat())}
}

// IsZero returns true if d equals zero
func (d Decimal) IsZero() bool {
	return d.rat().Sign() == 0
}

// Compare returns -1 if d < other, 0 if d == other, +1 if d > other
func (d Decimal) Compare(other Decimal) int {
	return d.rat().Cmp(other.rat())
}

// Equal returns true if d equals other
func (d Decimal) Equal(other Decimal) bool {
	return d.Compare(other) == 0
}

// Round rounds to the given number of decimal places
func (d Decimal) Round(places int, mode RoundingMode) Decimal {
	if places < 0 {
		places = 0
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)

	// scaled = num * 10^places / denom, remainder decides the rounding
	num := new(big.Int).Mul(d.rat().Num(), scale)
	denom := d.rat().Denom()
	quo, rem := new(big.Int).QuoRem(num, denom, new(big.Int))

	if mode == RoundingModeHalfUp && rem.Sign() != 0 {
		twiceRem := new(big.Int).Abs(rem)
		twiceRem.Lsh(twiceRem, 1)
		if twiceRem.Cmp(denom) >= 0 {
			if num.Sign() < 0 {
				quo.Sub(quo, big.NewInt(1))
			} else {
				quo.Add(quo, big.NewInt(1))
			}
		}
	}

	return Decimal{value: new(big.Rat).SetFrac(quo, scale)}
}

// StringFixed returns the value rounded half-up to a fixed number of places
func (d Decimal) StringFixed(places int) string {
	if places < 0 {
		places = 0
	}
	return d.Round(places, RoundingModeHalfUp).rat().FloatString(places)
}

// String returns the shortest exact decimal representation, e.g. "20" or
// "4.75". Non-terminating fractions are cut at eight places.
func (d Decimal) String() string {
	r := d.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	places, exact := terminatingPlaces(r.Denom())
	if !exact {
		places = maxDisplayPlaces
	}
	s := r.FloatString(places)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// terminatingPlaces reports how many fractional digits a fraction with the
// given denominator needs, and false if its expansion never terminates
func terminatingPlaces(denom *big.Int) (int, bool) {
	rest := new(big.Int).Set(denom)
	mod := new(big.Int)
	count := func(p int64) int {
		n := 0
		prime := big.NewInt(p)
		for {
			q, m := new(big.Int).QuoRem(rest, prime, mod)
			if m.Sign() != 0 {
				return n
			}
			rest = q
			n++
		}
	}
	twos, fives := count(2), count(5)
	if rest.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	if twos > fives {
		return twos, true
	}
	return fives, true
}

// Float64 returns the nearest float64
func (d Decimal) Float64() float64 {
	f, _ := d.rat().Float64()
	return f
}

// MarshalJSON renders the decimal as a JSON number, exact for every
// terminating fraction
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string
func (d *Decimal) UnmarshalJSON(data []byte) error {
	parsed, err := NewDecimal(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

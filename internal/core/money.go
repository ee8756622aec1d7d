// Package core provides money parsing and handling utilities.
//
// Amounts are kept in integer cents so that totals derived from a quantity
// and a unit price are exact. Decimal arithmetic that can leave the cent grid
// (averages, shares) goes through shopspring/decimal and is rounded back.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents. It is never negative.
type Money struct {
	Cents int64
}

var maxCents = decimal.NewFromInt(1<<63 - 1)

// ParseMoney converts a decimal string to Money with half-up rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Zero is a
// valid price; signs, exponents and thousands separators are rejected.
//
// Examples:
//
//	ParseMoney("12.34")  -> 1234
//	ParseMoney("12,345") -> 1235
//	ParseMoney("100.0")  -> 10000
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case r < '0' || r > '9':
			return Money{}, ErrInvalidAmount
		}
	}
	if dots > 1 || s == "." {
		return Money{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// MoneyFromDecimal rounds a decimal amount (in currency units) to cents.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Shift(2).Round(0).IntPart()}
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Mul returns the amount multiplied by a unit count.
func (m Money) Mul(n int) Money {
	return Money{Cents: m.Cents * int64(n)}
}

// MulChecked is Mul that fails with ErrInvalidAmount instead of leaving the
// representable cent range. n must not be negative.
func (m Money) MulChecked(n int) (Money, error) {
	if n < 0 || (n > 0 && m.Cents > math.MaxInt64/int64(n)) {
		return Money{}, ErrInvalidAmount
	}
	return m.Mul(n), nil
}

// AddChecked is Add that fails with ErrInvalidAmount on overflow.
func (m Money) AddChecked(o Money) (Money, error) {
	if o.Cents > math.MaxInt64-m.Cents {
		return Money{}, ErrInvalidAmount
	}
	return m.Add(o), nil
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Reais returns the value as a float64 for display purposes only.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the plain on-disk form: two decimals, no symbol, no grouping.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Package valueobject contains domain value objects for the back-office system.
package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyAmount is returned when a monetary field holds no value.
	ErrEmptyAmount = errors.New("amount is empty")

	// ErrNegativeAmount is returned when a monetary field is below zero.
	ErrNegativeAmount = errors.New("amount is negative")
)

// RawAmount is a monetary value as held by the record store.
// Records are loosely typed, so the value may be empty or not a number at all.
type RawAmount string

// NewRawAmount formats a decimal as a RawAmount.
func NewRawAmount(d decimal.Decimal) RawAmount {
	return RawAmount(d.String())
}

// IsEmpty reports whether no value is present.
func (a RawAmount) IsEmpty() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Decimal parses the amount.
func (a RawAmount) Decimal() (decimal.Decimal, error) {
	if a.IsEmpty() {
		return decimal.Zero, ErrEmptyAmount
	}
	return decimal.NewFromString(strings.TrimSpace(string(a)))
}

// NonNegative parses the amount and rejects values below zero.
func (a RawAmount) NonNegative() (decimal.Decimal, error) {
	d, err := a.Decimal()
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

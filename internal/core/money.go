// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from user input.
// Amounts are decimal.Decimal values so that sums and shares never pick up
// binary floating point error.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to an amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Zero is a
// legal amount; negative values, signs, exponents and anything non-numeric are
// rejected with a *ValidationError.
//
// Examples:
//
//	ParseAmount("8200")   -> 8200, nil
//	ParseAmount("12,50")  -> 12.5, nil
//	ParseAmount("-1")     -> error (ErrNegativeAmount)
//	ParseAmount("abc")    -> error (ErrInvalidAmount)
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Value: raw, Err: ErrInvalidAmount}
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, &ValidationError{Field: "amount", Value: raw, Err: ErrNegativeAmount}
	}
	if strings.HasPrefix(s, "+") || strings.ContainsAny(s, "eE") {
		return decimal.Zero, &ValidationError{Field: "amount", Value: raw, Err: ErrInvalidAmount}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Value: raw, Err: ErrInvalidAmount}
	}
	return d, nil
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}

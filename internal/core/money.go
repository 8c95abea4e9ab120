// Package core provides money parsing and handling utilities.
//
// Amounts are stored as plain floating point values (the store column is
// REAL). Parsing goes through decimal arithmetic; rendering rounds the
// stored binary value, so 2.675 shows as 2.67.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseUserAmount parses a decimal amount as typed by the user.
//
// Surrounding whitespace is ignored. No currency symbol or thousands
// separator is stripped: "$12" and "1,200" are rejected. Signed values and
// exponent notation are accepted.
//
// Examples:
//
//	ParseUserAmount("12.5")  -> 12.5, nil
//	ParseUserAmount("-3")    -> -3, nil
//	ParseUserAmount("$12")   -> 0, ErrInvalidAmount
func ParseUserAmount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, text)
	}
	return d.InexactFloat64(), nil
}

// RenderAmount formats amount as the currency symbol immediately followed
// by the value fixed to two decimal places, e.g. "$12.50" or "$-3.00".
// Tiny negatives keep their sign: -0.001 renders as "$-0.00".
func RenderAmount(amount float64, currencySymbol string) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, amount)
}

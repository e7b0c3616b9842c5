package models

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice extracts the amount from a display price such as "₹80",
// "Rs. 1,299" or "45/-".
func ParsePrice(display string) (decimal.Decimal, error) {
	s := strings.TrimFunc(display, func(r rune) bool { return !unicode.IsDigit(r) })
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return amount, nil
}

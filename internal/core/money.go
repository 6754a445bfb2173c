// Package core holds the expense record, input validation and the monthly
// aggregation. Nothing in here touches storage.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the precision amounts are kept and stored at.
const AmountPlaces = 2

// ParseAmount converts user input into a positive amount rounded to cents.
//
// Surrounding whitespace is ignored. The checks run in order and the first
// failure wins:
//
//	""      -> ErrEmptyAmount
//	"12,50" -> ErrInvalidAmountFormat
//	"1e5"   -> ErrInvalidAmountFormat
//	"0.004" -> ErrNonPositiveAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	// Exponents would let a few characters expand into an unbounded number.
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	d = d.Round(AmountPlaces)
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}

// FormatAmount renders d with exactly two fractional digits, rounding half
// away from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// HasLineBreak reports whether s contains a carriage return or line feed.
// Stored records are one per line, so text fields must not.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

// NewExpense validates raw form input and builds a record from it. Category
// is taken as given; description is trimmed and may be empty. Neither may
// span more than one line.
func NewExpense(amountText, category, dateText, description string) (Expense, error) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return Expense{}, err
	}
	date := strings.TrimSpace(dateText)
	if !IsDateShape(date) {
		return Expense{}, ErrInvalidDateFormat
	}
	description = strings.TrimSpace(description)
	if HasLineBreak(category) || HasLineBreak(description) {
		return Expense{}, ErrMultilineText
	}
	return Expense{
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
	}, nil
}

package core

import (
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	Food          = "Food"
	Transport     = "Transport"
	Bills         = "Bills"
	Shopping      = "Shopping"
	Entertainment = "Entertainment"
	Other         = "Other"
)

type (
	// Expense is one recorded expense. Records have no identity of their own;
	// callers address them by position in an ordered slice.
	Expense struct {
		Amount      decimal.Decimal
		Category    string
		Date        string // YYYY-MM-DD
		Description string
	}

	// MonthTotal is the summed amount of every expense dated in one month.
	MonthTotal struct {
		Month string // YYYY-MM, or "" for dates shorter than seven characters
		Total decimal.Decimal
	}
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Categories returns the fixed set offered by the entry form, in display order.
func Categories() []string {
	return []string{Food, Transport, Bills, Shopping, Entertainment, Other}
}

// IsDateShape reports whether s looks like YYYY-MM-DD. Calendar validity is
// not checked: "2024-13-99" passes.
func IsDateShape(s string) bool {
	return datePattern.MatchString(s)
}

// Validate checks the record invariants: a positive amount and a date of the
// right shape. Category and description are free text on a single line.
func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !IsDateShape(e.Date) {
		return ErrInvalidDateFormat
	}
	if HasLineBreak(e.Category) || HasLineBreak(e.Description) {
		return ErrMultilineText
	}
	return nil
}

// Equal compares two expenses with amounts rounded to two decimals, which is
// the precision the stores keep.
func (e Expense) Equal(o Expense) bool {
	return e.Amount.Round(AmountPlaces).Equal(o.Amount.Round(AmountPlaces)) &&
		e.Category == o.Category &&
		e.Date == o.Date &&
		e.Description == o.Description
}

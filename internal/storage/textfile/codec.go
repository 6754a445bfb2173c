package textfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

const (
	separator = ","
	numFields = 4
)

var (
	errMissingFields = errors.New("expected amount,category,date,description")
	errLineBreak     = errors.New("field contains a line break")
)

// encodeLine renders e as amount,category,date,description. Nothing is
// escaped: a separator inside category shifts the fields on the next load.
// A line break anywhere would split the record, so it is refused.
func encodeLine(e core.Expense) (string, error) {
	if core.HasLineBreak(e.Category) || core.HasLineBreak(e.Date) || core.HasLineBreak(e.Description) {
		return "", errLineBreak
	}
	return strings.Join([]string{
		core.FormatAmount(e.Amount),
		e.Category,
		e.Date,
		e.Description,
	}, separator), nil
}

// decodeLine parses one stored line. Everything after the third separator
// belongs to the description.
func decodeLine(line string) (core.Expense, error) {
	parts := strings.SplitN(line, separator, numFields)
	if len(parts) < numFields {
		return core.Expense{}, errMissingFields
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", parts[0], err)
	}
	return core.Expense{
		Amount:      amount,
		Category:    parts[1],
		Date:        parts[2],
		Description: parts[3],
	}, nil
}

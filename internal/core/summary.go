package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthKey returns the YYYY-MM prefix of date, or "" when date is shorter
// than seven characters.
func MonthKey(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// MonthlyTotals sums amounts per month key. The result is sorted
// chronologically; the "" key, if present, sorts first.
func MonthlyTotals(expenses []Expense) ([]MonthTotal, error) {
	if len(expenses) == 0 {
		return nil, ErrEmptyDataset
	}

	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		key := MonthKey(e.Date)
		sums[key] = sums[key].Add(e.Amount)
	}

	out := make([]MonthTotal, 0, len(sums))
	for month, total := range sums {
		out = append(out, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// FormatReport renders totals as the plain-text monthly report, one line per
// month, each total prefixed by symbol.
func FormatReport(totals []MonthTotal, symbol string) string {
	var b strings.Builder
	b.WriteString("Monthly Expense Report:\n\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "%s : %s%s\n", t.Month, symbol, FormatAmount(t.Total))
	}
	return b.String()
}

// Package storage defines the persistence port for expense records. Backends
// live in subpackages: textfile (the canonical line format), sqlite and memory.
package storage

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

// Store persists the whole ordered list of expenses. Save always replaces the
// previous content in full; there is no incremental update.
type Store interface {
	// Load returns the stored records in order. A store that does not exist
	// yet yields an empty slice and a nil error.
	Load(ctx context.Context) ([]core.Expense, error)
	// Save replaces the stored records with expenses.
	Save(ctx context.Context, expenses []core.Expense) error
}

// ErrCorrupt is matched by every CorruptError.
var ErrCorrupt = errors.New("corrupt store")

// CorruptError reports a record that could not be parsed. Loads that hit one
// return no records at all.
type CorruptError struct {
	Source string // file path or table name
	Line   int    // 1-based record position
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt store %s at record %d: %v", e.Source, e.Line, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

// PersistenceError reports a failed write-through. The mutation that
// triggered it has been undone, so memory still matches the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Error saving expenses: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Tracker owns the ordered expense list for one session and writes it
// through to a storage.Store after every change.
type Tracker struct {
	mu       sync.Mutex
	store    storage.Store
	logger   *log.Logger
	expenses []core.Expense
}

// NewTracker loads the store once. A store that cannot be read, corrupt or
// otherwise, is logged and the session starts empty.
func NewTracker(ctx context.Context, store storage.Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	t := &Tracker{
		store: store,
		logger: logger.WithComponent(log.ComponentTracker).
			With(log.FieldSessionID, uuid.NewString()),
	}

	expenses, err := store.Load(ctx)
	switch {
	case err == nil:
		t.expenses = expenses
		t.logger.InfoContext(ctx, "Loaded expenses", log.FieldCount, len(expenses))
	case errors.Is(err, storage.ErrCorrupt):
		t.logger.WarnContext(ctx, "Store is corrupt, starting with no expenses",
			log.NewFields().WithOperation(log.OpLoad).WithErrorType(log.ErrorTypeCorruption).WithError(err).ToSlice()...)
	default:
		t.logger.WarnContext(ctx, "Store could not be read, starting with no expenses",
			log.NewFields().WithOperation(log.OpLoad).WithErrorType(log.ErrorTypePersistence).WithError(err).ToSlice()...)
	}
	if t.expenses == nil {
		t.expenses = []core.Expense{}
	}
	return t
}

// AddExpense validates form input, appends the record and saves. Validation
// failures are *core.ValidationError and change nothing. A failed save is
// returned as *PersistenceError and the append is undone.
func (t *Tracker) AddExpense(ctx context.Context, amountText, category, dateText, description string) error {
	e, err := core.NewExpense(amountText, category, dateText, description)
	if err != nil {
		t.logger.DebugContext(ctx, "Expense rejected",
			log.NewFields().WithOperation(log.OpValidate).WithErrorType(log.ErrorTypeValidation).WithError(err).ToSlice()...)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.expenses = append(t.expenses, e)
	if err := t.store.Save(ctx, t.expenses); err != nil {
		t.expenses = t.expenses[:len(t.expenses)-1]
		return t.persistenceFailure(ctx, log.OpAdd, err)
	}

	t.logger.InfoContext(ctx, "Expense added",
		log.NewFields().WithOperation(log.OpAdd).WithExpense(e).WithMonth(core.MonthKey(e.Date)).WithCount(len(t.expenses)).ToSlice()...)
	return nil
}

// DeleteExpense removes the record at index and saves. An index outside the
// list, including -1 for "no selection", yields core.ErrNothingSelected.
func (t *Tracker) DeleteExpense(ctx context.Context, index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.expenses) {
		t.logger.DebugContext(ctx, "Delete without selection",
			log.NewFields().WithOperation(log.OpDelete).WithErrorType(log.ErrorTypeSelection).WithIndex(index).ToSlice()...)
		return core.ErrNothingSelected
	}

	removed := t.expenses[index]
	next := make([]core.Expense, 0, len(t.expenses)-1)
	next = append(next, t.expenses[:index]...)
	next = append(next, t.expenses[index+1:]...)

	if err := t.store.Save(ctx, next); err != nil {
		return t.persistenceFailure(ctx, log.OpDelete, err)
	}
	t.expenses = next

	t.logger.InfoContext(ctx, "Expense deleted",
		log.NewFields().WithOperation(log.OpDelete).WithIndex(index).WithExpense(removed).WithCount(len(t.expenses)).ToSlice()...)
	return nil
}

// ListExpenses returns a copy of the records in display order.
func (t *Tracker) ListExpenses() []core.Expense {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Debug("Listed expenses", log.FieldOperation, log.OpList, log.FieldCount, len(t.expenses))
	return append([]core.Expense{}, t.expenses...)
}

// MonthlyReport returns per-month totals in chronological order, or
// core.ErrEmptyDataset when there is nothing recorded. The store is not read.
func (t *Tracker) MonthlyReport() ([]core.MonthTotal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	totals, err := core.MonthlyTotals(t.expenses)
	if err != nil {
		t.logger.Info("Monthly report requested with no expenses",
			log.NewFields().WithOperation(log.OpReport).WithErrorType(log.ErrorTypeEmptyDataset).ToSlice()...)
		return nil, err
	}
	t.logger.Debug("Monthly report built",
		log.NewFields().WithOperation(log.OpReport).WithCount(len(totals)).
			WithMonth(totals[len(totals)-1].Month).ToSlice()...)
	return totals, nil
}

// Categories returns the choices offered by the entry form.
func (t *Tracker) Categories() []string {
	return core.Categories()
}

// Len returns the number of records.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.expenses)
}

func (t *Tracker) persistenceFailure(ctx context.Context, op string, err error) error {
	t.logger.ErrorContext(ctx, "Failed to save expenses",
		log.NewFields().WithOperation(op).WithErrorType(log.ErrorTypePersistence).WithError(err).ToSlice()...)
	return &PersistenceError{Op: op, Err: err}
}

// Package memory is a process-local storage.Store used by tests and by the
// "memory" backend for throwaway sessions.
package memory

import (
	"context"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
	saves int
}

var _ storage.Store = (*Store)(nil)

// New returns a store seeded with a copy of items.
func New(items ...core.Expense) *Store {
	return &Store{items: append([]core.Expense(nil), items...)}
}

// Load returns a copy of the stored records.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense{}, s.items...), nil
}

// Save replaces the stored records with a copy of expenses.
func (s *Store) Save(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Expense(nil), expenses...)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

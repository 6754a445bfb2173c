package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

func TestMemoryStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := New()
	got, err := s.Load(ctx)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("unexpected empty load: got=%v err=%v", got, err)
	}

	in := []core.Expense{{Amount: decimal.NewFromInt(3), Category: core.Food, Date: "2024-01-01"}}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].Category = "mutated"

	got, _ = s.Load(ctx)
	if len(got) != 1 || got[0].Category != core.Food {
		t.Fatalf("store must keep its own copy: %v", got)
	}
	got[0].Category = "mutated"
	again, _ := s.Load(ctx)
	if again[0].Category != core.Food {
		t.Fatalf("load must return a copy: %v", again)
	}
	if s.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", s.Saves())
	}
}

func TestNewSeeds(t *testing.T) {
	s := New(core.Expense{Amount: decimal.NewFromInt(1), Date: "2024-01-01"}, core.Expense{Amount: decimal.NewFromInt(2), Date: "2024-01-02"})
	got, _ := s.Load(context.Background())
	if len(got) != 2 || got[1].Date != "2024-01-02" {
		t.Fatalf("unexpected seed: %v", got)
	}
}

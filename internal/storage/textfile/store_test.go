package textfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

func sample() []core.Expense {
	return []core.Expense{
		{Amount: decimal.RequireFromString("100"), Category: core.Food, Date: "2024-01-10", Description: "groceries"},
		{Amount: decimal.RequireFromString("12.345"), Category: core.Transport, Date: "2024-01-20", Description: ""},
		{Amount: decimal.RequireFromString("30.5"), Category: core.Bills, Date: "2024-02-01", Description: "power, water"},
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.csv"))

	got, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveWritesCanonicalLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	s := New(path)

	require.NoError(t, s.Save(context.Background(), sample()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"100.00,Food,2024-01-10,groceries\n"+
			"12.35,Transport,2024-01-20,\n"+
			"30.50,Bills,2024-02-01,power, water\n",
		string(raw))
}

func TestRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "expenses.csv"))
	ctx := context.Background()
	want := sample()

	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d: want %+v got %+v", i, want[i], got[i])
	}

	// Saving what was loaded reproduces the same bytes.
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, got))
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSaveEmptyTruncates(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "expenses.csv"))
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sample()))

	require.NoError(t, s.Save(ctx, nil))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadCorruptAmountReturnsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	content := "10.00,Food,2024-01-01,ok\nabc,Food,2024-01-02,bad\n5.00,Other,2024-01-03,ok\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := New(path).Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCorrupt)
	assert.Nil(t, got)
	var ce *storage.CorruptError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Line)
	assert.Equal(t, path, ce.Source)
}

func TestLoadShortLineIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(path, []byte("10.00,Food,2024-01-01\n"), 0o644))

	_, err := New(path).Load(context.Background())

	assert.ErrorIs(t, err, storage.ErrCorrupt)
}

func TestLoadToleratesBlankLinesAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(path, []byte("10.00,Food,2024-01-01,a\r\n\r\n7,Other,2024-01-02,b\r\n"), 0o644))

	got, err := New(path).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Description)
	assert.Equal(t, "b", got[1].Description)
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(7)))
}

func TestSaveFailureKeepsPreviousContent(t *testing.T) {
	cases := []struct {
		name   string
		rename func(string, string) error
		write  []core.Expense
	}{
		{
			name:   "rename fails",
			rename: func(string, string) error { return errors.New("device busy") },
			write:  sample()[:1],
		},
		{
			name:  "record with line break",
			write: []core.Expense{{Amount: decimal.NewFromInt(1), Category: core.Food, Date: "2024-03-01", Description: "a\nb"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "expenses.csv")
			s := New(path)
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, sample()))
			before, err := os.ReadFile(path)
			require.NoError(t, err)

			if tc.rename != nil {
				renameFile = tc.rename
				t.Cleanup(func() { renameFile = os.Rename })
			}
			require.Error(t, s.Save(ctx, tc.write))

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "expenses.csv", entries[0].Name())

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Len(t, got, len(sample()))
		})
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "expenses.csv"))
	require.NoError(t, s.Save(context.Background(), sample()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "expenses.csv", entries[0].Name())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, New("").Path())
}

func TestSaveFailedRenameRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "expenses.csv")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	err := New(target).Save(context.Background(), sample())

	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

// Package textfile stores expenses as one comma-separated line per record.
package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "expenses.csv"

// renameFile replaces the target with the finished temp file.
var renameFile = os.Rename

type Store struct {
	path string
}

var _ storage.Store = (*Store)(nil)

func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load implements storage.Store.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	var (
		out    []core.Expense
		lineNo int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := decodeLine(line)
		if err != nil {
			return nil, &storage.CorruptError{Source: s.path, Line: lineNo, Err: err}
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if out == nil {
		out = []core.Expense{}
	}

	slog.DebugContext(ctx, "Loaded expenses from file", "path", s.path, "count", len(out))
	return out, nil
}

// Save implements storage.Store. The new content goes to a temporary file in
// the same directory which then replaces the target, so a failed write leaves
// the previous file untouched.
func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	w := bufio.NewWriter(tmp)
	for i, e := range expenses {
		line, err := encodeLine(e)
		if err != nil {
			tmp.Close()
			cleanup()
			return fmt.Errorf("encode record %d: %w", i+1, err)
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			cleanup()
			return fmt.Errorf("write temp file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := renameFile(tmpPath, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace store: %w", err)
	}

	slog.DebugContext(ctx, "Saved expenses to file", "path", s.path, "count", len(expenses))
	return nil
}

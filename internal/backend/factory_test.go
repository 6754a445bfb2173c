package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/config"
	"expensetracker/internal/log"
	"expensetracker/internal/storage/memory"
	"expensetracker/internal/storage/sqlite"
	"expensetracker/internal/storage/textfile"
)

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{StoreBackend: "sqlite", ExpensesFile: "a.csv", SQLiteDBPath: "b.db"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, FilePath: "a.csv", SQLiteDBPath: "b.db"}, cfg)

	_, err = FromAppConfig(&config.Config{StoreBackend: "redis"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: FileBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "nope"}.Validate())
	assert.Len(t, GetBackendTypes(), 3)
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(log.Discard())
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: FileBackend, FilePath: filepath.Join(dir, "e.csv")})
		require.NoError(t, err)
		assert.IsType(t, &textfile.Store{}, res.Store)
		assert.Nil(t, res.Cleanup)
	})

	t.Run("sqlite", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "e.db")})
		require.NoError(t, err)
		assert.IsType(t, &sqlite.Repository{}, res.Store)
		require.NotNil(t, res.Cleanup)
		assert.NoError(t, res.Cleanup())
	})

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, res.Store)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := f.CreateBackend(ctx, Config{Type: "nope"})
		assert.Error(t, err)
	})
}

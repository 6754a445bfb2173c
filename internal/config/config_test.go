package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		StoreBackend:   "file",
		ExpensesFile:   "expenses.csv",
		SQLiteDBPath:   "./data/expenses.db",
		LogLevel:       "info",
		LogFormat:      "text",
		LogFile:        "expenses.log",
		CurrencySymbol: "₹",
	}
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid file backend",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid sqlite backend",
			mutate:  func(c *Config) { c.StoreBackend = "sqlite" },
			wantErr: false,
		},
		{
			name:    "valid memory backend with empty paths",
			mutate:  func(c *Config) { c.StoreBackend = "memory"; c.ExpensesFile = ""; c.SQLiteDBPath = "" },
			wantErr: false,
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.StoreBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid store backend 'postgres': must be one of [file sqlite memory]",
		},
		{
			name:        "file backend missing path",
			mutate:      func(c *Config) { c.ExpensesFile = " " },
			wantErr:     true,
			errorString: "expenses file path cannot be empty when using file backend",
		},
		{
			name:        "file backend path is a directory",
			mutate:      func(c *Config) { c.ExpensesFile = dir },
			wantErr:     true,
			errorString: "is a directory",
		},
		{
			name:        "file backend parent missing",
			mutate:      func(c *Config) { c.ExpensesFile = filepath.Join(dir, "missing", "x.csv") },
			wantErr:     true,
			errorString: "does not exist",
		},
		{
			name:        "sqlite backend missing path",
			mutate:      func(c *Config) { c.StoreBackend = "sqlite"; c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be 'text' or 'json'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error but got nil")
					return
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want error containing %v", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "nope"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Count(err.Error(), "\n- ") != 2 {
		t.Fatalf("expected two bullet points, got %q", err.Error())
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"STORE_BACKEND", "EXPENSES_FILE", "SQLITE_DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "CURRENCY_SYMBOL"} {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}

		cfg := Load()

		if cfg.StoreBackend != "file" || cfg.ExpensesFile != "expenses.csv" || cfg.SQLiteDBPath != "./data/expenses.db" {
			t.Errorf("unexpected storage defaults: %+v", cfg)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "text" || cfg.LogFile != "expenses.log" {
			t.Errorf("unexpected logging defaults: %+v", cfg)
		}
		if cfg.CurrencySymbol != "₹" {
			t.Errorf("unexpected currency default %q", cfg.CurrencySymbol)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "sqlite")
		t.Setenv("EXPENSES_FILE", "/tmp/e.csv")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("CURRENCY_SYMBOL", "")

		cfg := Load()

		if cfg.StoreBackend != "sqlite" || cfg.ExpensesFile != "/tmp/e.csv" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
			t.Errorf("unexpected overrides: %+v", cfg)
		}
		if cfg.CurrencySymbol != "" {
			t.Errorf("explicitly empty currency symbol should be kept, got %q", cfg.CurrencySymbol)
		}
	})
}

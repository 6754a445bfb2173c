// Package cli provides the start-up helpers used by cmd/expenses: env file,
// configuration, logger and store initialization.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"expensetracker/internal/backend"
	"expensetracker/internal/config"
	"expensetracker/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger from cfg and makes it the slog
// default. Output goes to cfg.LogFile because the terminal belongs to the
// UI; an empty LogFile discards logs. The returned closer releases the file.
func SetupLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    out,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger, closer, nil
}

// LoadAndValidateConfig loads configuration and validates it. The file
// logger depends on the result, so failures are logged to stderr.
func LoadAndValidateConfig() (*config.Config, error) {
	return loadAndValidateConfig(log.New(log.DefaultConfig()))
}

func loadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithComponent(log.ComponentConfig).Error("Configuration validation failed",
			log.NewFields().WithOperation(log.OpValidate).WithErrorType(log.ErrorTypeConfiguration).WithError(err).ToSlice()...)
		return nil, err
	}
	return cfg, nil
}

// InitStore creates the configured store.
func InitStore(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize store",
			log.NewFields().WithOperation(log.OpStartup).WithError(err).ToSlice()...)
		return nil, err
	}
	return res, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

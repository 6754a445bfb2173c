package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cli"
	"expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development (ignored when absent)
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := cli.SetupLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := cli.InitStore(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", log.FieldError, err)
			}
		}()
	}

	tracker := services.NewTracker(ctx, res.Store, logger)
	program := tea.NewProgram(tui.New(ctx, tracker, cfg.CurrencySymbol, logger), tea.WithAltScreen())

	logger.Info("Starting expense tracker",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.StoreBackend,
		log.FieldCount, tracker.Len())

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
			program.Quit()
		case <-done:
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("Expense tracker stopped with error", log.FieldError, err)
		return err
	}
	logger.Info("Expense tracker stopped")
	return nil
}

// Package cli provides common CLI initialization utilities shared by
// cmd/ledger, cmd/ledger-worker and cmd/ledgerctl.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ledger/internal/backend"
	"ledger/internal/config"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/storage"
)

// SetupLogger builds the structured logger described by LOG_LEVEL and
// LOG_FORMAT and installs it as the slog default.
func SetupLogger(component string) *applog.Logger {
	level, err := applog.ParseLevel(os.Getenv("LOG_LEVEL"))
	cfg := applog.DefaultConfig()
	cfg.Level = level
	cfg.Component = component
	if os.Getenv("LOG_FORMAT") == "json" {
		cfg.Format = "json"
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	if err != nil {
		logger.Warn("Ignoring LOG_LEVEL", applog.FieldError, err)
	}
	return logger
}

// LoadEnvFile reads ./.env when present. A missing file is normal outside
// development.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the environment and exits the process with
// status 1 when any setting is invalid.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	err := cfg.Validate()
	if err == nil {
		return cfg
	}
	logger.Error("Refusing to start with invalid configuration", applog.FieldError, err)
	os.Exit(1)
	return nil
}

// App is an opened ledger with its persistence wiring.
type App struct {
	Ledger    *ledger.Ledger
	Persister *storage.Persister
	Backend   *backend.BackendResult
}

// OpenLedger creates the configured backend, loads the persisted ledger and
// wires change notifications into the persister.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	var opts []storage.PersisterOption
	if hook := backend.NotifyHook(res.Notifier, logger); hook != nil {
		opts = append(opts, storage.WithOnSaved(hook))
	}
	persister := storage.NewPersister(res.Store, opts...)

	ids, err := ledger.NewIDGenerator(cfg.SnowflakeNode)
	if err != nil {
		persister.Close(ctx)
		res.Cleanup()
		return nil, fmt.Errorf("create id generator: %w", err)
	}
	l, err := ledger.New(persister, ledger.Options{IDs: ids, ViewCacheSize: cfg.ViewCacheSize})
	if err != nil {
		persister.Close(ctx)
		res.Cleanup()
		return nil, err
	}
	n := l.Load(ctx)
	logger.InfoContext(ctx, "Ledger opened",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpLoad,
		applog.FieldBackend, cfg.Backend,
		applog.FieldEntryCount, n)

	return &App{Ledger: l, Persister: persister, Backend: res}, nil
}

// Close writes any pending snapshot and releases the backend.
func (a *App) Close(ctx context.Context) error {
	a.Persister.Close(ctx)
	return a.Backend.Cleanup()
}

// GracefulShutdown returns a context cancelled by SIGINT or SIGTERM. After
// the signal, cleanup runs with timeout to finish and done is closed.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		<-ctx.Done()
		stop()
		logger.Info("Stopping", applog.FieldOperation, "shutdown", "reason", context.Cause(ctx))

		drainCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if cleanup != nil {
			cleanup(drainCtx)
		}
		if errors.Is(drainCtx.Err(), context.DeadlineExceeded) {
			logger.Warn("Shutdown did not finish in time", "timeout", timeout)
			return
		}
		logger.Info("Stopped")
	}()

	return ctx, done
}

// WaitForShutdown returns once ctx is cancelled and cleanup has finished.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}

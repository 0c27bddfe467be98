package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"ledger/internal/cli"
	apphttp "ledger/internal/http"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	app, err := cli.OpenLedger(context.Background(), cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to open ledger", applog.FieldError, err, applog.FieldBackend, cfg.Backend)
		os.Exit(1)
	}

	form := ledger.NewForm(app.Ledger, nil)
	srv := apphttp.NewServer(":"+cfg.Port, app.Ledger, form, logger.WithComponent(applog.ComponentHTTP))

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if err := app.Close(ctx); err != nil {
			logger.Error("Backend cleanup error", applog.FieldError, err)
		}
	})

	logger.Info("Starting ledger server",
		"port", cfg.Port,
		applog.FieldBackend, cfg.Backend,
		applog.FieldEntryCount, app.Ledger.Len())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"ledger/internal/config"
	"ledger/internal/core"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Backend = config.BackendFile
	cfg.LedgerFile = filepath.Join(t.TempDir(), "data", "ledger.json")
	cfg.AMQPURL = ""
	return cfg
}

func TestOpenLedgerPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := OpenLedger(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}
	if app.Ledger.Len() != 0 {
		t.Fatalf("fresh ledger has %d entries", app.Ledger.Len())
	}
	if app.Backend.Notifier != nil {
		t.Fatalf("notifier should be nil without AMQP_URL")
	}
	added, err := app.Ledger.Add(core.Draft{
		Date:        core.NewDate(2024, 5, 1),
		CompanyName: "Acme",
		Category:    core.Sales,
		Credit:      core.AmountFromInt(250),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := app.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenLedger(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close(ctx)

	got, ok := reopened.Ledger.Find(added.ID)
	if !ok || got.CompanyName != "Acme" || got.Balance.StringFixed(2) != "250.00" {
		t.Fatalf("reloaded entry = %+v (found=%v)", got, ok)
	}

	next, err := reopened.Ledger.Add(core.Draft{
		Date:        core.NewDate(2024, 5, 2),
		CompanyName: "Globex",
		Category:    core.Rent,
		Debit:       core.AmountFromInt(50),
	})
	if err != nil {
		t.Fatalf("Add after reopen: %v", err)
	}
	if next.ID <= added.ID {
		t.Fatalf("id %d not above reloaded id %d", next.ID, added.ID)
	}
}

func TestOpenLedgerRejectsInvalidBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend = "postgres"
	if _, err := OpenLedger(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSetupLoggerFallsBackOnBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "json")
	logger := SetupLogger("test")
	if logger.Component() != "test" {
		t.Fatalf("component = %q", logger.Component())
	}
}

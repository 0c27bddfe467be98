package backend

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"ledger/internal/config"
)

func TestBackendType(t *testing.T) {
	for _, bt := range GetBackendTypes() {
		if !bt.IsValid() {
			t.Errorf("%s should be valid", bt)
		}
	}
	if BackendType("sheets").IsValid() {
		t.Error("sheets is not a ledger backend")
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	app := &config.Config{Backend: "sqlite", SQLiteDBPath: "x.db", LedgerKey: "k", AMQPURL: "amqp://h/"}
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.LedgerKey != "k" || cfg.AMQPURL != "amqp://h/" {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{Backend: "bogus"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file", Config{Type: FileBackend, LedgerFile: "l.json"}, false},
		{"file without path", Config{Type: FileBackend}, true},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: "l.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"unknown", Config{Type: "nope"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"memory", Config{Type: MemoryBackend}},
		{"file", Config{Type: FileBackend, LedgerFile: filepath.Join(dir, "ledger.json")}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "ledger.db"), LedgerKey: "ledgerEntries"}},
	}
	f := NewFactory(nil)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.CreateBackend(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			defer res.Cleanup()

			if res.Notifier != nil {
				t.Error("notifier should be nil without AMQP")
			}
			if err := res.Store.Save(ctx, []byte(`[]`)); err != nil {
				t.Fatal(err)
			}
			if data, err := res.Store.Load(ctx); err != nil || string(data) != `[]` {
				t.Errorf("Load = %s, %v", data, err)
			}
		})
	}
}

func TestCreateBackendInvalid(t *testing.T) {
	if _, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: FileBackend}); err == nil {
		t.Fatal("expected validation error")
	}
}

type fakeNotifier struct {
	calls []uint64
	err   error
}

func (n *fakeNotifier) PublishLedgerChanged(_ context.Context, revision uint64, _ int) error {
	n.calls = append(n.calls, revision)
	return n.err
}

func TestNotifyHook(t *testing.T) {
	if NotifyHook(nil, nil) != nil {
		t.Error("nil notifier should give nil hook")
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := &fakeNotifier{}
	hook := NotifyHook(n, logger)

	hook(context.Background(), 3, 10)
	if len(n.calls) != 1 || n.calls[0] != 3 {
		t.Fatalf("calls = %v", n.calls)
	}
	if buf.Len() != 0 {
		t.Errorf("successful publish should not log: %s", buf.String())
	}

	n.err = errors.New("broker down")
	hook(context.Background(), 4, 11)
	if !strings.Contains(buf.String(), "Failed to publish ledger change") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

// Package worker mirrors persisted ledger snapshots into a spreadsheet.
package worker

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/storage"
)

// Mirror receives the full, balance-recomputed entry list.
type Mirror interface {
	Mirror(ctx context.Context, entries []core.Entry) error
}

// SheetsSyncWorker reads the shared ledger snapshot and pushes it to a
// Mirror. Snapshots identical to the last pushed one are skipped.
type SheetsSyncWorker struct {
	store  storage.BlobStore
	mirror Mirror

	mu         sync.Mutex
	lastDigest [sha256.Size]byte
	synced     bool
	syncs      int
}

func NewSheetsSyncWorker(store storage.BlobStore, mirror Mirror) *SheetsSyncWorker {
	return &SheetsSyncWorker{store: store, mirror: mirror}
}

// HandleLedgerChanged processes one change notification from AMQP.
func (w *SheetsSyncWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	slog.InfoContext(ctx, "Processing ledger changed message",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldRevision, msg.Revision,
		applog.FieldEntryCount, msg.EntryCount)
	return w.SyncNow(ctx)
}

// SyncNow mirrors the current snapshot. A missing snapshot mirrors an empty
// ledger. A malformed one is reported and leaves the sheet untouched.
func (w *SheetsSyncWorker) SyncNow(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := w.store.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		data, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	digest := sha256.Sum256(data)
	if w.synced && digest == w.lastDigest {
		slog.DebugContext(ctx, "Snapshot unchanged, skipping sync",
			applog.FieldComponent, applog.ComponentWorker)
		return nil
	}

	entries, err := storage.DecodeEntries(data)
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	entries = ledger.Recompute(entries)

	if err := w.mirror.Mirror(ctx, entries); err != nil {
		return fmt.Errorf("mirror entries: %w", err)
	}
	w.lastDigest = digest
	w.synced = true
	w.syncs++

	slog.InfoContext(ctx, "Ledger mirrored to spreadsheet",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldOperation, applog.OpSync,
		applog.FieldEntryCount, len(entries))
	return nil
}

// Syncs reports how many snapshots were pushed.
func (w *SheetsSyncWorker) Syncs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.syncs
}

// Run calls SyncNow every interval until ctx is done. It backs up the
// notification path when messages are lost or AMQP is not configured.
func (w *SheetsSyncWorker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.SyncNow(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sync failed",
					applog.FieldComponent, applog.ComponentWorker,
					applog.FieldError, err)
			}
		}
	}
}

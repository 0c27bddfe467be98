package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

// SavedFunc is told about every snapshot that reached the store.
type SavedFunc func(ctx context.Context, seq uint64, entryCount int)

// Persister connects the ledger to a BlobStore. Schedule encodes the
// snapshot and returns at once; a background goroutine writes the most
// recent snapshot, so intermediate snapshots may be skipped. Write failures
// are logged and not retried.
type Persister struct {
	store        BlobStore
	writeTimeout time.Duration
	onSaved      SavedFunc

	mu      sync.Mutex
	pending []byte
	count   int
	seq     uint64

	writeMu sync.Mutex
	written uint64

	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	closing sync.Once
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithOnSaved registers a hook run after each successful write.
func WithOnSaved(fn SavedFunc) PersisterOption {
	return func(p *Persister) { p.onSaved = fn }
}

// WithWriteTimeout bounds a single store write.
func WithWriteTimeout(d time.Duration) PersisterOption {
	return func(p *Persister) { p.writeTimeout = d }
}

// NewPersister starts the background writer.
func NewPersister(store BlobStore, opts ...PersisterOption) *Persister {
	p := &Persister{
		store:        store,
		writeTimeout: 10 * time.Second,
		wake:         make(chan struct{}, 1),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run()
	return p
}

// Load reads and decodes the persisted collection. Missing or malformed
// state yields an empty collection.
func (p *Persister) Load(ctx context.Context) []core.Entry {
	data, err := p.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		slog.InfoContext(ctx, "No persisted ledger, starting empty",
			applog.FieldComponent, applog.ComponentStorage)
		return []core.Entry{}
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read persisted ledger, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldError, err)
		return []core.Entry{}
	}
	entries, err := DecodeEntries(data)
	if err != nil {
		slog.WarnContext(ctx, "Malformed persisted ledger, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldBytes, len(data),
			applog.FieldError, err)
		return []core.Entry{}
	}
	return entries
}

// Schedule queues a full snapshot for writing.
func (p *Persister) Schedule(entries []core.Entry) {
	data, err := EncodeEntries(entries)
	if err != nil {
		slog.Error("Failed to encode ledger snapshot",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldError, err)
		return
	}

	p.mu.Lock()
	p.pending = data
	p.count = len(entries)
	p.seq++
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Flush writes any pending snapshot before returning.
func (p *Persister) Flush(ctx context.Context) {
	p.writePending(ctx)
}

// Close stops the background writer after writing what is pending.
func (p *Persister) Close(ctx context.Context) {
	p.closing.Do(func() { close(p.quit) })
	select {
	case <-p.done:
	case <-ctx.Done():
	}
	p.writePending(ctx)
}

// Written reports the sequence number of the last snapshot written.
func (p *Persister) Written() uint64 {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.written
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.writePending(context.Background())
		case <-p.quit:
			return
		}
	}
}

func (p *Persister) writePending(ctx context.Context) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	data, count, seq := p.pending, p.count, p.seq
	p.pending = nil
	p.mu.Unlock()
	if data == nil {
		return
	}

	wctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()
	if err := p.store.Save(wctx, data); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger snapshot",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldOperation, applog.OpSave,
			applog.FieldRevision, seq,
			applog.FieldError, err)
		return
	}
	p.written = seq
	slog.DebugContext(ctx, "Ledger snapshot persisted",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldRevision, seq,
		applog.FieldEntryCount, count,
		applog.FieldBytes, len(data))

	if p.onSaved != nil {
		p.onSaved(ctx, seq, count)
	}
}

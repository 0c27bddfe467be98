// Package ledger implements the entry store, the running-balance engine, the
// filtered views and the report figures of a single bookkeeping ledger.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ledger/internal/cache"
	"ledger/internal/core"
	applog "ledger/internal/log"
)

// Persistence is the durable side of the ledger. Load must fail soft and
// return an empty collection on missing or malformed state. Schedule hands
// over a complete snapshot and must not block.
type Persistence interface {
	Load(ctx context.Context) []core.Entry
	Schedule(entries []core.Entry)
}

// Options tunes a Ledger. Zero values pick defaults.
type Options struct {
	IDs           *IDGenerator
	ViewCacheSize int
}

type viewKey struct {
	revision uint64
	search   string
	category string
}

// Ledger owns the ordered entry collection. Every mutation validates,
// swaps in a fully recomputed collection and schedules a snapshot write
// while holding the write lock, so readers never see a partial update.
type Ledger struct {
	mu       sync.RWMutex
	entries  []core.Entry
	revision uint64
	ids      *IDGenerator
	store    Persistence
	views    *cache.LRUCache[viewKey, []core.Entry]
}

// New creates an empty ledger. store may be nil for a volatile ledger.
func New(store Persistence, opts Options) (*Ledger, error) {
	ids := opts.IDs
	if ids == nil {
		var err error
		if ids, err = NewIDGenerator(0); err != nil {
			return nil, fmt.Errorf("create id generator: %w", err)
		}
	}
	size := opts.ViewCacheSize
	if size <= 0 {
		size = 32
	}
	return &Ledger{
		ids:   ids,
		store: store,
		views: cache.NewLRUCache[viewKey, []core.Entry](size),
	}, nil
}

// Load replaces the in-memory collection with the persisted one. Balances
// are recomputed and the id floor is raised past every loaded id. Nothing is
// written back.
func (l *Ledger) Load(ctx context.Context) int {
	if l.store == nil {
		return 0
	}
	loaded := l.store.Load(ctx)
	for _, e := range loaded {
		l.ids.Observe(e.ID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = Recompute(loaded)
	l.bump()

	slog.InfoContext(ctx, "Ledger loaded",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldEntryCount, len(l.entries))
	return len(l.entries)
}

// Entries returns a copy of the collection in sequence order.
func (l *Ledger) Entries() []core.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]core.Entry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Revision increases on every mutation and load.
func (l *Ledger) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// Find returns the entry with the given id.
func (l *Ledger) Find(id int64) (core.Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i], true
	}
	return core.Entry{}, false
}

// Add validates the draft and appends it under a fresh id.
func (l *Ledger) Add(d core.Draft) (core.Entry, error) {
	if err := d.Validate(); err != nil {
		return core.Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]core.Entry, len(l.entries), len(l.entries)+1)
	copy(next, l.entries)
	next = append(next, d.Entry(l.ids.Next()))
	l.commit(next)

	added := l.entries[len(l.entries)-1]
	slog.Debug("Entry added",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldEntryID, added.ID,
		applog.FieldCategory, added.Category,
		applog.FieldRevision, l.revision)
	return added, nil
}

// Edit replaces the fields of the entry with the given id, keeping its id
// and position. It reports false, and changes nothing, when the id is absent.
func (l *Ledger) Edit(id int64, d core.Draft) (bool, error) {
	if err := d.Validate(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		slog.Debug("Edit of unknown entry ignored",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldEntryID, id)
		return false, nil
	}
	next := append([]core.Entry(nil), l.entries...)
	next[i] = d.Entry(id)
	l.commit(next)

	slog.Debug("Entry updated",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldEntryID, id,
		applog.FieldRevision, l.revision)
	return true, nil
}

// Delete removes the entry with the given id. It reports false when the id
// is absent.
func (l *Ledger) Delete(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]core.Entry, 0, len(l.entries)-1)
	next = append(next, l.entries[:i]...)
	next = append(next, l.entries[i+1:]...)
	l.commit(next)

	slog.Debug("Entry deleted",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldEntryID, id,
		applog.FieldRevision, l.revision)
	return true
}

// ReplaceAll swaps in a whole collection, recomputing balances and
// scheduling a snapshot write.
func (l *Ledger) ReplaceAll(entries []core.Entry) {
	for _, e := range entries {
		l.ids.Observe(e.ID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.commit(append([]core.Entry(nil), entries...))
}

// View is a filtered view together with the collection size and revision
// it was taken from.
type View struct {
	Entries  []core.Entry
	Total    int
	Revision uint64
}

// Filter returns the filtered view of the current collection. Results are
// memoised per revision, search term and category filter.
func (l *Ledger) Filter(searchTerm, categoryFilter string) []core.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filterLocked(searchTerm, categoryFilter)
}

// View is Filter plus Len and Revision read under a single lock.
func (l *Ledger) View(searchTerm, categoryFilter string) View {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return View{
		Entries:  l.filterLocked(searchTerm, categoryFilter),
		Total:    len(l.entries),
		Revision: l.revision,
	}
}

func (l *Ledger) filterLocked(searchTerm, categoryFilter string) []core.Entry {
	key := viewKey{revision: l.revision, search: searchTerm, category: categoryFilter}
	if view, ok := l.views.Get(key); ok {
		return append([]core.Entry(nil), view...)
	}
	view := Filter(l.entries, searchTerm, categoryFilter)
	l.views.Set(key, view)
	return append([]core.Entry(nil), view...)
}

// Summary summarises the whole collection.
func (l *Ledger) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Summarize(l.entries)
}

// FilteredSummary summarises the filtered view.
func (l *Ledger) FilteredSummary(searchTerm, categoryFilter string) Summary {
	return Summarize(l.Filter(searchTerm, categoryFilter))
}

// commit must be called with the write lock held.
func (l *Ledger) commit(next []core.Entry) {
	l.entries = Recompute(next)
	l.bump()
	if l.store != nil {
		l.store.Schedule(append([]core.Entry(nil), l.entries...))
	}
}

func (l *Ledger) bump() {
	l.revision++
	l.views.Purge()
}

func (l *Ledger) indexOf(id int64) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

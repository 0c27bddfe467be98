package backend

import (
	"context"

	"ledger/internal/storage"
)

// BackendType names where the ledger snapshot lives.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// pathFor reports, per backend, which Config field must be set and how to
// describe it when missing. Memory needs nothing.
var pathFor = map[BackendType]struct {
	field string
	get   func(Config) string
}{
	MemoryBackend: {},
	FileBackend:   {"LEDGER_FILE", func(c Config) string { return c.LedgerFile }},
	SQLiteBackend: {"SQLITE_DB_PATH", func(c Config) string { return c.SQLiteDBPath }},
}

func (bt BackendType) String() string { return string(bt) }

func (bt BackendType) IsValid() bool {
	_, ok := pathFor[bt]
	return ok
}

// GetBackendTypes lists the supported backends in a stable order.
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, FileBackend, SQLiteBackend}
}

// Notifier announces a persisted snapshot to other processes.
type Notifier interface {
	PublishLedgerChanged(ctx context.Context, revision uint64, entryCount int) error
}

type CleanupFunc func() error

// BackendResult is what a Factory hands back. Notifier is nil unless AMQP was
// configured and the broker answered.
type BackendResult struct {
	Store    storage.BlobStore
	Notifier Notifier
	Cleanup  CleanupFunc
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Package storage persists the ledger as a single serialized blob.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by BlobStore.Load when nothing has been saved yet.
var ErrNotFound = errors.New("ledger state not found")

// BlobStore is a key-value slot holding the serialized entry collection.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

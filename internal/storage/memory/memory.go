package memory

import (
	"context"
	"sync"

	"ledger/internal/storage"
)

// Store keeps the ledger blob in process memory.
type Store struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

var _ storage.BlobStore = (*Store)(nil)

func New() *Store { return &Store{} }

// NewWithData seeds the store, e.g. with a fixture.
func NewWithData(data []byte) *Store {
	return &Store{data: append([]byte(nil), data...)}
}

func (s *Store) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), s.data...), nil
}

func (s *Store) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Store) Close() error { return nil }

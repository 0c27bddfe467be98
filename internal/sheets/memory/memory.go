package memory

import (
	"context"
	"sync"

	"ledger/internal/sheets"
)

// Store is an in-process sheet, used when no spreadsheet is configured and
// in tests.
type Store struct {
	mu     sync.Mutex
	rows   [][]string
	writes int
	err    error
}

var _ sheets.RowReplacer = (*Store)(nil)

func New() *Store { return &Store{} }

func (s *Store) ReplaceRows(_ context.Context, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.rows = cloneRows(rows)
	s.writes++
	return nil
}

// Rows returns a copy of the current sheet content.
func (s *Store) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.rows)
}

// Writes reports how many ReplaceRows calls succeeded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// FailWith makes subsequent writes return err. A nil err clears it.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

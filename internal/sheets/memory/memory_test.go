package memory

import (
	"context"
	"errors"
	"testing"
)

func TestReplaceRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	rows := [][]string{{"Date", "Balance"}, {"2025-01-01", "100.00"}}
	if err := s.ReplaceRows(ctx, rows); err != nil {
		t.Fatal(err)
	}
	rows[1][1] = "mutated"

	got := s.Rows()
	if len(got) != 2 || got[1][1] != "100.00" {
		t.Fatalf("rows not copied: %v", got)
	}

	if err := s.ReplaceRows(ctx, [][]string{{"Date", "Balance"}}); err != nil {
		t.Fatal(err)
	}
	if got := s.Rows(); len(got) != 1 {
		t.Fatalf("replace should drop old rows, got %v", got)
	}
	if s.Writes() != 2 {
		t.Fatalf("writes = %d", s.Writes())
	}
}

func TestReplaceRowsFailure(t *testing.T) {
	s := New()
	boom := errors.New("quota exceeded")
	s.FailWith(boom)

	if err := s.ReplaceRows(context.Background(), [][]string{{"x"}}); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if s.Writes() != 0 || len(s.Rows()) != 0 {
		t.Fatal("failed write must not change the sheet")
	}
}

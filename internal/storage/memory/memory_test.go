package memory

import (
	"context"
	"errors"
	"testing"

	"ledger/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.Load(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	buf := []byte(`[1]`)
	if err := s.Save(ctx, buf); err != nil {
		t.Fatal(err)
	}
	buf[1] = '9'
	data, err := s.Load(ctx)
	if err != nil || string(data) != `[1]` {
		t.Fatalf("store aliased caller buffer: %s %v", data, err)
	}
	if s.Saves() != 1 {
		t.Fatalf("saves = %d", s.Saves())
	}

	seeded := NewWithData([]byte(`[]`))
	if data, err := seeded.Load(ctx); err != nil || string(data) != `[]` {
		t.Fatalf("seeded Load = %s, %v", data, err)
	}
}

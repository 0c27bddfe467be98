package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

type fakeStore struct {
	mu        sync.Mutex
	initial   []core.Entry
	snapshots [][]core.Entry
}

func (f *fakeStore) Load(context.Context) []core.Entry { return f.initial }

func (f *fakeStore) Schedule(entries []core.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, entries)
}

func (f *fakeStore) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}

func newTestLedger(t *testing.T, store Persistence) *Ledger {
	t.Helper()
	l, err := New(store, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func credit(v int64) core.Draft {
	return core.Draft{Date: core.NewDate(2025, 1, 1), Category: core.Sales, CompanyName: "Acme", Credit: core.AmountFromInt(v)}
}

func debit(v int64) core.Draft {
	return core.Draft{Date: core.NewDate(2025, 1, 1), Category: core.Purchase, CompanyName: "Globex", Debit: core.AmountFromInt(v)}
}

func mustAdd(t *testing.T, l *Ledger, d core.Draft) core.Entry {
	t.Helper()
	e, err := l.Add(d)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return e
}

func balances(entries []core.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Balance.String()
	}
	return out
}

func assertBalances(t *testing.T, entries []core.Entry, want ...string) {
	t.Helper()
	got := balances(entries)
	if len(got) != len(want) {
		t.Fatalf("balances = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("balances = %v, want %v", got, want)
		}
	}
}

func TestAddComputesRunningBalance(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)

	mustAdd(t, l, credit(100))
	mustAdd(t, l, debit(40))
	mustAdd(t, l, credit(10))

	entries := l.Entries()
	assertBalances(t, entries, "100", "60", "70")

	s := Summarize(entries)
	if s.TotalCredit.String() != "110" || s.TotalDebit.String() != "40" || s.EndingBalance.String() != "70" {
		t.Fatalf("summary = %+v", s)
	}
	if store.writes() != 3 {
		t.Fatalf("expected a snapshot per mutation, got %d", store.writes())
	}
}

func TestAddPrefixSumProperty(t *testing.T) {
	l := newTestLedger(t, nil)
	drafts := []core.Draft{credit(5), debit(3), debit(7), credit(12), credit(1), debit(20)}
	for n, d := range drafts {
		mustAdd(t, l, d)
		entries := l.Entries()
		if len(entries) != n+1 {
			t.Fatalf("len = %d, want %d", len(entries), n+1)
		}
		for i := range entries {
			sum := decimal.Zero
			for _, e := range entries[:i+1] {
				sum = sum.Add(e.Credit.Value()).Sub(e.Debit.Value())
			}
			if !entries[i].Balance.Equal(sum) {
				t.Fatalf("after %d adds, balance[%d] = %s, want %s", n+1, i, entries[i].Balance, sum)
			}
		}
	}
}

func TestAddRejectsCreditAndDebit(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	mustAdd(t, l, credit(100))

	d := credit(50)
	d.Debit = core.AmountFromInt(20)
	_, err := l.Add(d)

	var verr *core.ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, core.ErrCreditAndDebit) {
		t.Fatalf("expected credit/debit validation error, got %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("collection changed: len = %d", l.Len())
	}
	if store.writes() != 1 {
		t.Fatalf("rejected add must not persist, writes = %d", store.writes())
	}
}

func TestAddRejectsMissingFields(t *testing.T) {
	l := newTestLedger(t, nil)
	noCompany := credit(1)
	noCompany.CompanyName = ""
	noCategory := credit(1)
	noCategory.Category = ""
	for _, d := range []core.Draft{noCompany, noCategory} {
		if _, err := l.Add(d); err == nil {
			t.Fatalf("expected error for %+v", d)
		}
	}
	if l.Len() != 0 {
		t.Fatalf("len = %d", l.Len())
	}
}

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	l := newTestLedger(t, nil)
	var last int64
	for i := 0; i < 50; i++ {
		e := mustAdd(t, l, credit(1))
		if e.ID <= last {
			t.Fatalf("id %d not greater than %d", e.ID, last)
		}
		last = e.ID
	}
	// ids are never reused after deletion
	l.Delete(last)
	if e := mustAdd(t, l, credit(1)); e.ID <= last {
		t.Fatalf("id %d reused after delete of %d", e.ID, last)
	}
}

func TestDeleteMiddleEntry(t *testing.T) {
	l := newTestLedger(t, nil)
	mustAdd(t, l, credit(100))
	mid := mustAdd(t, l, debit(40))
	mustAdd(t, l, credit(10))

	if !l.Delete(mid.ID) {
		t.Fatal("delete reported not found")
	}
	assertBalances(t, l.Entries(), "100", "110")
}

func TestDeleteMatchesNeverExisted(t *testing.T) {
	drafts := []core.Draft{credit(30), debit(5), credit(8), debit(11), credit(2)}
	for k := range drafts {
		l := newTestLedger(t, nil)
		var ids []int64
		for _, d := range drafts {
			ids = append(ids, mustAdd(t, l, d).ID)
		}
		before := l.Entries()
		l.Delete(ids[k])

		without := append(append([]core.Draft(nil), drafts[:k]...), drafts[k+1:]...)
		ref := newTestLedger(t, nil)
		for _, d := range without {
			mustAdd(t, ref, d)
		}

		after := l.Entries()
		assertBalances(t, after, balances(ref.Entries())...)
		for i := 0; i < k; i++ {
			if !after[i].Balance.Equal(before[i].Balance) {
				t.Fatalf("k=%d: balance before deleted position changed at %d", k, i)
			}
		}
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	mustAdd(t, l, credit(1))
	rev := l.Revision()

	if l.Delete(987654321) {
		t.Fatal("unknown delete reported success")
	}
	if l.Len() != 1 || l.Revision() != rev || store.writes() != 1 {
		t.Fatalf("unknown delete mutated state")
	}
}

func TestEditKeepsPositionAndRecomputes(t *testing.T) {
	l := newTestLedger(t, nil)
	first := mustAdd(t, l, credit(100))
	mid := mustAdd(t, l, debit(40))
	mustAdd(t, l, credit(10))

	found, err := l.Edit(mid.ID, debit(90))
	if err != nil || !found {
		t.Fatalf("Edit = %v, %v", found, err)
	}
	entries := l.Entries()
	if entries[1].ID != mid.ID || entries[0].ID != first.ID {
		t.Fatalf("edit moved the entry: %+v", entries)
	}
	assertBalances(t, entries, "100", "10", "20")

	// a debit may become a credit
	if _, err := l.Edit(mid.ID, credit(5)); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	assertBalances(t, l.Entries(), "100", "105", "115")
}

func TestEditUnknownAndInvalid(t *testing.T) {
	l := newTestLedger(t, nil)
	e := mustAdd(t, l, credit(100))

	found, err := l.Edit(e.ID+1000, credit(1))
	if err != nil || found {
		t.Fatalf("unknown edit = %v, %v", found, err)
	}
	if l.Len() != 1 {
		t.Fatalf("unknown edit created an entry")
	}

	bad := credit(1)
	bad.Debit = core.AmountFromInt(1)
	if _, err := l.Edit(e.ID, bad); !errors.Is(err, core.ErrCreditAndDebit) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := l.Entries()[0].Credit.String(); got != "100" {
		t.Fatalf("invalid edit mutated entry: credit = %s", got)
	}
}

func TestLoadRecomputesAndRaisesIDFloor(t *testing.T) {
	stale := decimal.NewFromInt(999)
	big := int64(1) << 62
	store := &fakeStore{initial: []core.Entry{
		{ID: 10, Date: core.NewDate(2024, 1, 1), Category: core.Sales, CompanyName: "A", Credit: core.AmountFromInt(100), Balance: stale},
		{ID: big, Date: core.NewDate(2024, 1, 1), Category: core.Rent, CompanyName: "B", Debit: core.LenientAmount("oops"), Balance: stale},
		{ID: 12, Date: core.NewDate(2023, 1, 1), Category: core.Rent, CompanyName: "C", Debit: core.AmountFromInt(30), Balance: stale},
	}}
	l := newTestLedger(t, store)
	if n := l.Load(context.Background()); n != 3 {
		t.Fatalf("Load = %d", n)
	}
	assertBalances(t, l.Entries(), "100", "100", "70")
	if store.writes() != 0 {
		t.Fatalf("load must not write back")
	}
	if e := mustAdd(t, l, credit(1)); e.ID <= big {
		t.Fatalf("id %d does not exceed loaded id %d", e.ID, big)
	}
}

func TestReplaceAll(t *testing.T) {
	store := &fakeStore{}
	l := newTestLedger(t, store)
	mustAdd(t, l, credit(1))

	l.ReplaceAll([]core.Entry{
		{ID: 1, Date: core.NewDate(2024, 1, 1), Category: core.Sales, CompanyName: "A", Credit: core.AmountFromInt(7)},
		{ID: 2, Date: core.NewDate(2024, 1, 2), Category: core.Sales, CompanyName: "A", Debit: core.AmountFromInt(2)},
	})
	assertBalances(t, l.Entries(), "7", "5")
	if store.writes() != 2 {
		t.Fatalf("writes = %d", store.writes())
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := newTestLedger(t, nil)
	mustAdd(t, l, credit(1))
	entries := l.Entries()
	entries[0].CompanyName = "mutated"
	if l.Entries()[0].CompanyName != "Acme" {
		t.Fatal("Entries exposed internal state")
	}
}

func TestConcurrentMutationsAreSerialised(t *testing.T) {
	l := newTestLedger(t, &fakeStore{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = l.Add(credit(2))
		}()
		go func() {
			defer wg.Done()
			_ = l.Filter("acme", core.AllCategories)
		}()
	}
	wg.Wait()
	entries := l.Entries()
	if len(entries) != 20 || entries[19].Balance.String() != "40" {
		t.Fatalf("len=%d last=%s", len(entries), entries[len(entries)-1].Balance)
	}
}

func TestViewIsConsistentUnderMutation(t *testing.T) {
	l := newTestLedger(t, &fakeStore{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_, _ = l.Add(credit(1))
		}
	}()

	for {
		v := l.View("", core.AllCategories)
		if len(v.Entries) != v.Total {
			t.Fatalf("view of %d entries reports total %d at revision %d", len(v.Entries), v.Total, v.Revision)
		}
		select {
		case <-done:
			v = l.View("", core.AllCategories)
			if v.Total != 50 || v.Revision != l.Revision() {
				t.Fatalf("final view = total %d revision %d", v.Total, v.Revision)
			}
			return
		default:
		}
	}
}

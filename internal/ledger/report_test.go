package ledger

import (
	"testing"

	"ledger/internal/core"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalCredit.IsZero() || !s.TotalDebit.IsZero() || !s.EndingBalance.IsZero() {
		t.Fatalf("empty summary = %+v", s)
	}
}

func TestSummarizeFilteredCarriesGlobalBalance(t *testing.T) {
	entries := sampleEntries() // balances 100, 60, 70, 65
	sales := Filter(entries, "", "Sales")

	s := Summarize(sales)
	if s.TotalCredit.String() != "110" || s.TotalDebit.String() != "0" {
		t.Fatalf("totals = %+v", s)
	}
	// the last Sales entry sits at global balance 70, not 110 - 0
	if s.EndingBalance.String() != "70" {
		t.Fatalf("ending balance = %s, want 70", s.EndingBalance)
	}
}

func TestSummarizeIgnoresNonNumericAmounts(t *testing.T) {
	entries := Recompute([]core.Entry{
		{ID: 1, Credit: core.LenientAmount("abc")},
		{ID: 2, Debit: core.LenientAmount("15")},
		{ID: 3, Credit: core.LenientAmount("20.5")},
	})
	s := Summarize(entries)
	if s.TotalCredit.String() != "20.5" || s.TotalDebit.String() != "15" || s.EndingBalance.String() != "5.5" {
		t.Fatalf("summary = %+v", s)
	}
}

func TestLedgerSummaries(t *testing.T) {
	l := newTestLedger(t, nil)
	mustAdd(t, l, credit(100))
	mustAdd(t, l, debit(40))
	mustAdd(t, l, credit(10))

	full := l.Summary()
	if full.TotalCredit.String() != "110" || full.TotalDebit.String() != "40" || full.EndingBalance.String() != "70" {
		t.Fatalf("summary = %+v", full)
	}
	globex := l.FilteredSummary("globex", core.AllCategories)
	if globex.TotalDebit.String() != "40" || globex.EndingBalance.String() != "60" {
		t.Fatalf("filtered summary = %+v", globex)
	}
}

package ledger

import (
	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// Summary holds the report figures of an entry subset.
type Summary struct {
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
}

// Summarize totals the credits and debits of entries. EndingBalance is the
// running balance of the last entry, carried from the whole ledger, so for a
// filtered subset it is generally not TotalCredit minus TotalDebit.
func Summarize(entries []core.Entry) Summary {
	s := Summary{
		TotalCredit:   decimal.Zero,
		TotalDebit:    decimal.Zero,
		EndingBalance: decimal.Zero,
	}
	for _, e := range entries {
		s.TotalCredit = s.TotalCredit.Add(e.Credit.Value())
		s.TotalDebit = s.TotalDebit.Add(e.Debit.Value())
	}
	if n := len(entries); n > 0 {
		s.EndingBalance = entries[n-1].Balance
	}
	return s
}

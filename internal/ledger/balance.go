package ledger

import (
	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// Recompute returns a copy of entries with every Balance set to the running
// total of credits minus debits, in sequence order. Stored balances are
// ignored. Absent amounts contribute zero and text amounts their numeric
// prefix.
func Recompute(entries []core.Entry) []core.Entry {
	out := make([]core.Entry, len(entries))
	running := decimal.Zero
	for i, e := range entries {
		running = running.Add(e.Effect())
		e.Balance = running
		out[i] = e
	}
	return out
}

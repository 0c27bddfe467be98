package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"ledger/internal/core"
)

// entryRecord is the persisted shape of an entry. Amounts may arrive as
// strings, numbers, null or be missing entirely. Balance is derived, so any
// stored value is accepted on read and ignored.
type entryRecord struct {
	ID          json.Number     `json:"id"`
	Date        core.Date       `json:"date"`
	Particular  string          `json:"particular"`
	Category    string          `json:"category"`
	CompanyName string          `json:"companyName"`
	Credit      core.Amount     `json:"credit"`
	Debit       core.Amount     `json:"debit"`
	Balance     json.RawMessage `json:"balance"`
}

// EncodeEntries serializes the whole collection as a JSON array.
func EncodeEntries(entries []core.Entry) ([]byte, error) {
	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		records[i] = entryRecord{
			ID:          json.Number(strconv.FormatInt(e.ID, 10)),
			Date:        e.Date,
			Particular:  e.Particular,
			Category:    string(e.Category),
			CompanyName: e.CompanyName,
			Credit:      e.Credit,
			Debit:       e.Debit,
			Balance:     json.RawMessage(e.Balance.String()),
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode entries: %w", err)
	}
	return data, nil
}

// DecodeEntries parses a persisted collection. Stored balances are dropped;
// callers recompute them. Blank input or null is an empty collection.
func DecodeEntries(data []byte) ([]core.Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []core.Entry{}, nil
	}
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	entries := make([]core.Entry, len(records))
	for i, r := range records {
		id, err := parseID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("decode entry %d: %w", i, err)
		}
		entries[i] = core.Entry{
			ID:          id,
			Date:        r.Date,
			Particular:  r.Particular,
			Category:    core.Category(r.Category),
			CompanyName: r.CompanyName,
			Credit:      r.Credit,
			Debit:       r.Debit,
		}
	}
	return entries, nil
}

func parseID(n json.Number) (int64, error) {
	if n == "" {
		return 0, fmt.Errorf("missing id")
	}
	if id, err := n.Int64(); err == nil {
		return id, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("invalid id %q", n)
	}
	return int64(f), nil
}

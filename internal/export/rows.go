// Package export renders ledger entries into spreadsheet rows, xlsx
// workbooks, PDF reports and share text.
package export

import (
	"errors"

	"ledger/internal/core"
)

// ErrEmptyExport is returned by every export and share operation when there
// is nothing to render. No artifact is produced in that case.
var ErrEmptyExport = errors.New("no entries to export")

// Header labels the spreadsheet and report columns.
var Header = []string{"Date", "Company Name", "Particular", "Category", "Credit", "Debit", "Balance"}

// SpreadsheetRows returns the header followed by one row per entry in the
// order given. Absent amounts are blank cells.
func SpreadsheetRows(entries []core.Entry) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date.String(),
			e.CompanyName,
			e.Particular,
			string(e.Category),
			e.Credit.String(),
			e.Debit.String(),
			core.FormatFixed(e.Balance),
		})
	}
	return rows
}

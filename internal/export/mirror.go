package export

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/sheets"
)

// SheetsMirror keeps a spreadsheet in step with the ledger. Unlike the file
// exports it accepts an empty ledger and leaves just the header row.
type SheetsMirror struct {
	sheet sheets.RowReplacer
}

func NewSheetsMirror(sheet sheets.RowReplacer) *SheetsMirror {
	return &SheetsMirror{sheet: sheet}
}

// Mirror replaces the sheet content with the rows of entries.
func (m *SheetsMirror) Mirror(ctx context.Context, entries []core.Entry) error {
	return m.sheet.ReplaceRows(ctx, SpreadsheetRows(entries))
}

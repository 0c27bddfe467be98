package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ledger/internal/core"
)

const (
	// SheetName is the worksheet the entries are written to.
	SheetName = "Ledger"
	// XLSXFileName is the artifact name used by WriteXLSXFile.
	XLSXFileName = "ledger.xlsx"
)

// WriteXLSX writes entries as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, entries []core.Entry) error {
	f, err := buildWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteXLSXFile saves the workbook as ledger.xlsx under dir and returns its path.
func WriteXLSXFile(dir string, entries []core.Entry) (string, error) {
	f, err := buildWorkbook(entries)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, XLSXFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func buildWorkbook(entries []core.Entry) (*excelize.File, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyExport
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{
			e.Date.String(),
			e.CompanyName,
			e.Particular,
			string(e.Category),
			amountCell(e.Credit),
			amountCell(e.Debit),
			e.Balance.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// amountCell keeps numbers numeric so spreadsheet formulas work on them.
// Text that never parsed as a number is written verbatim.
func amountCell(a core.Amount) any {
	if !a.IsSet() {
		return nil
	}
	if err := a.Validate(); err != nil {
		return a.String()
	}
	return a.Value().InexactFloat64()
}

package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

// BundleResult holds the paths of the artifacts written by Bundle.
type BundleResult struct {
	XLSXPath string
	PDFPath  string
}

// Bundle writes the xlsx workbook and the PDF report of entries into dir
// concurrently. Either failure cancels the other write.
func Bundle(ctx context.Context, dir string, entries []core.Entry, now time.Time) (BundleResult, error) {
	if len(entries) == 0 {
		return BundleResult{}, ErrEmptyExport
	}
	report, err := BuildReport(entries, now)
	if err != nil {
		return BundleResult{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BundleResult{}, fmt.Errorf("create export directory: %w", err)
	}

	var res BundleResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		path, err := WriteXLSXFile(dir, entries)
		res.XLSXPath = path
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		path, err := WritePDFFile(dir, report)
		res.PDFPath = path
		return err
	})
	if err := g.Wait(); err != nil {
		return BundleResult{}, err
	}

	slog.InfoContext(ctx, "Export bundle written",
		applog.FieldComponent, applog.ComponentExport,
		applog.FieldOperation, applog.OpExport,
		applog.FieldEntryCount, len(entries),
		"xlsx", res.XLSXPath,
		"pdf", res.PDFPath)
	return res, nil
}

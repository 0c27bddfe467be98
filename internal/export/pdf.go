package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 14.0
	rowHeight    = 7.0
	footerHeight = 20.0
)

var columnWidths = []float64{20, 30, 42, 22, 22, 22, 24}

// WritePDF renders the report as an A4 document to w.
func WritePDF(w io.Writer, r Report) error {
	doc := renderPDF(r)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// WritePDFFile saves the report under dir using its FileName and returns the path.
func WritePDFFile(dir string, r Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, r.FileName())
	doc := renderPDF(r)
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func renderPDF(r Report) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, footerHeight)
	doc.AliasNbPages("{nb}")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetY(-footerHeight + 5)
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(102, 102, 102)
		doc.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 1, "L", false, 0, "")
		doc.CellFormat(0, 5, ReportFooter, "", 0, "L", false, 0, "")
	})

	doc.AddPage()
	pageW, pageH := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(51, 51, 51)
	doc.Text(pageMargin, 20, tr(r.Title))

	doc.SetFont("Helvetica", "I", 16)
	doc.SetTextColor(76, 175, 80)
	doc.Text(pageMargin, 30, tr("Company: "+r.Company))

	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(102, 102, 102)
	doc.Text(pageMargin, 40, r.DateLine())

	doc.SetDrawColor(200, 200, 200)
	doc.Line(pageMargin, 45, pageW-pageMargin, 45)
	doc.SetY(50)

	drawHeader := func() {
		doc.SetFont("Helvetica", "B", 10)
		doc.SetFillColor(76, 175, 80)
		doc.SetTextColor(255, 255, 255)
		for i, h := range r.Header {
			doc.CellFormat(columnWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
	}
	drawRow := func(cells []string, n int, bold bool) {
		if doc.GetY()+rowHeight > pageH-footerHeight {
			doc.AddPage()
			drawHeader()
		}
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.SetTextColor(51, 51, 51)
		if n%2 == 0 {
			doc.SetFillColor(249, 249, 249)
		} else {
			doc.SetFillColor(241, 241, 241)
		}
		for i, c := range cells {
			align := "C"
			if i >= 4 {
				align = "R"
			}
			doc.CellFormat(columnWidths[i], rowHeight, fit(doc, tr(c), columnWidths[i]-2), "1", 0, align, true, 0, "")
		}
		doc.Ln(-1)
	}

	drawHeader()
	for i, row := range r.Rows {
		drawRow(row, i, false)
	}
	drawRow(r.SummaryRow, len(r.Rows), true)
	return doc
}

// fit shortens s with an ellipsis until it fits in width.
func fit(doc *fpdf.Fpdf, s string, width float64) string {
	if doc.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 {
		s = strings.TrimRight(s[:len(s)-1], " ")
		if doc.GetStringWidth(s+"...") <= width {
			return s + "..."
		}
	}
	return ""
}

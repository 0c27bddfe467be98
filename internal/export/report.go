package export

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ledger/internal/core"
	"ledger/internal/ledger"
)

const (
	ReportTitle    = "Company Ledger Report"
	ReportFooter   = "Generated via Company Ledger App"
	UnknownCompany = "Unknown"

	reportDateLayout = "01/02/2006"
	longDateLayout   = "January 02, 2006"
)

var (
	unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)
	dotRuns         = regexp.MustCompile(`\.{2,}`)
)

// Report is the data behind the PDF export: the formatted table rows of a
// filtered view plus its summary figures.
type Report struct {
	Title       string
	Company     string
	GeneratedOn time.Time
	Header      []string
	Rows        [][]string
	SummaryRow  []string
	Summary     ledger.Summary
}

// BuildReport formats entries for the PDF report. The company shown is the
// one of the first entry.
func BuildReport(entries []core.Entry, now time.Time) (Report, error) {
	if len(entries) == 0 {
		return Report{}, ErrEmptyExport
	}

	company := entries[0].CompanyName
	if company == "" {
		company = UnknownCompany
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			formatDate(e.Date, reportDateLayout),
			e.CompanyName,
			e.Particular,
			string(e.Category),
			reportAmount(e.Credit),
			reportAmount(e.Debit),
			rupees(core.FormatFixed(e.Balance)),
		})
	}

	sum := ledger.Summarize(entries)
	return Report{
		Title:       ReportTitle,
		Company:     company,
		GeneratedOn: now,
		Header:      append([]string(nil), Header...),
		Rows:        rows,
		SummaryRow: []string{
			"", "Summary", "", "",
			rupees(core.FormatFixed(sum.TotalCredit)),
			rupees(core.FormatFixed(sum.TotalDebit)),
			rupees(core.FormatFixed(sum.EndingBalance)),
		},
		Summary: sum,
	}, nil
}

// FileName is the download name of the report, e.g. "Acme_Corp_ledger-report.pdf".
// The company part never contains a path separator or a "..".
func (r Report) FileName() string {
	return fileSafe(r.Company) + "_ledger-report.pdf"
}

func fileSafe(name string) string {
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = dotRuns.ReplaceAllString(name, "_")
	name = strings.Trim(filepath.Base(name), "._")
	if name == "" {
		return UnknownCompany
	}
	return name
}

// DateLine is the "Generated on" line under the title.
func (r Report) DateLine() string {
	return "Generated on: " + r.GeneratedOn.Format(longDateLayout)
}

func formatDate(d core.Date, layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(layout)
}

// reportAmount prints stored text that is not a number as it was entered.
func reportAmount(a core.Amount) string {
	switch {
	case !a.IsSet():
		return "-"
	case a.Validate() != nil:
		return a.String()
	}
	return rupees(core.FormatFixed(a.Value()))
}

// The PDF core fonts have no rupee glyph.
func rupees(s string) string { return "Rs. " + s }

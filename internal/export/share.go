package export

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"ledger/internal/core"
	"ledger/internal/ledger"
)

const whatsAppBase = "https://wa.me/?text="

// ShareMessage builds the text summary of the whole ledger. Callers pass
// every entry, not a filtered view.
func ShareMessage(entries []core.Entry, now time.Time) (string, error) {
	if len(entries) == 0 {
		return "", ErrEmptyExport
	}
	sum := ledger.Summarize(entries)

	var b strings.Builder
	b.WriteString("🏢 Company Ledger Summary\n")
	fmt.Fprintf(&b, "📅 %s\n\n", now.Format(longDateLayout))
	fmt.Fprintf(&b, "💰 Total Credit: ₹%s\n", core.FormatFixed(sum.TotalCredit))
	fmt.Fprintf(&b, "💸 Total Debit: ₹%s\n", core.FormatFixed(sum.TotalDebit))
	fmt.Fprintf(&b, "📊 Current Balance: ₹%s\n\n", core.FormatFixed(sum.EndingBalance))
	b.WriteString(ReportFooter)
	return b.String(), nil
}

// WhatsAppURL returns the wa.me link that opens a chat prefilled with message.
func WhatsAppURL(message string) string {
	return whatsAppBase + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

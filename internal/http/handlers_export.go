package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"ledger/internal/export"
	applog "ledger/internal/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportXLSX downloads the filtered view as a workbook.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	search, category := viewQuery(r)
	entries := s.ledger.Filter(search, category)

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, entries); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.logExport(r, "xlsx", len(entries), buf.Len())
	writeAttachment(w, xlsxContentType, export.XLSXFileName, buf.Bytes())
}

// handleExportPDF downloads the filtered view as a report.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	search, category := viewQuery(r)
	entries := s.ledger.Filter(search, category)

	report, err := export.BuildReport(entries, s.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, report); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.logExport(r, "pdf", len(entries), buf.Len())
	writeAttachment(w, "application/pdf", report.FileName(), buf.Bytes())
}

// handleShare returns the summary text of the whole ledger and its
// WhatsApp link. Filters do not apply.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	msg, err := export.ShareMessage(s.ledger.Entries(), s.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Share link generated",
		applog.FieldOperation, applog.OpShare)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": msg,
		"url":     export.WhatsAppURL(msg),
	})
}

func (s *Server) logExport(r *http.Request, format string, entries, size int) {
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Export generated",
		applog.FieldComponent, applog.ComponentExport,
		applog.FieldOperation, applog.OpExport,
		"format", format,
		applog.FieldEntryCount, entries,
		applog.FieldBytes, size)
}

func writeAttachment(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

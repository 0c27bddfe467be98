package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"ledger/internal/core"
	"ledger/internal/export"
	"ledger/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type entryResponse struct {
	ID          int64         `json:"id,string"`
	Date        core.Date     `json:"date"`
	Particular  string        `json:"particular"`
	Category    core.Category `json:"category"`
	CompanyName string        `json:"companyName"`
	Credit      core.Amount   `json:"credit"`
	Debit       core.Amount   `json:"debit"`
	Balance     string        `json:"balance"`
}

type summaryResponse struct {
	TotalCredit   string            `json:"totalCredit"`
	TotalDebit    string            `json:"totalDebit"`
	EndingBalance string            `json:"endingBalance"`
	Display       map[string]string `json:"display"`
}

type draftResponse struct {
	Mode     string     `json:"mode"`
	TargetID int64      `json:"targetId,omitempty,string"`
	Draft    core.Draft `json:"draft"`
}

func newEntryResponse(e core.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Particular:  e.Particular,
		Category:    e.Category,
		CompanyName: e.CompanyName,
		Credit:      e.Credit,
		Debit:       e.Debit,
		Balance:     core.FormatFixed(e.Balance),
	}
}

func newEntryList(entries []core.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = newEntryResponse(e)
	}
	return out
}

func newSummaryResponse(s ledger.Summary) summaryResponse {
	return summaryResponse{
		TotalCredit:   core.FormatFixed(s.TotalCredit),
		TotalDebit:    core.FormatFixed(s.TotalDebit),
		EndingBalance: core.FormatFixed(s.EndingBalance),
		Display: map[string]string{
			"totalCredit":   core.FormatINR(s.TotalCredit),
			"totalDebit":    core.FormatINR(s.TotalDebit),
			"endingBalance": core.FormatINR(s.EndingBalance),
		},
	}
}

func newDraftResponse(st ledger.FormState) draftResponse {
	switch v := st.(type) {
	case ledger.Editing:
		return draftResponse{Mode: "editing", TargetID: v.TargetID, Draft: v.Draft}
	default:
		return draftResponse{Mode: "composing", Draft: st.Fields()}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, errorResponse{Error: msg, Field: field})
}

// writeDomainError maps validation and empty-export errors to client
// errors and anything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error(), verr.Field)
	case errors.Is(err, export.ErrEmptyExport):
		writeError(w, http.StatusConflict, err.Error(), "")
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error", "")
	}
}

// decodeDraft reads a JSON draft body. Unknown fields are ignored and a
// missing date becomes the current day.
func (s *Server) decodeDraft(w http.ResponseWriter, r *http.Request) (core.Draft, bool) {
	var d core.Draft
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err), "")
		return core.Draft{}, false
	}
	if d.Date.IsZero() {
		d.Date = core.DateOf(s.now())
	}
	return d, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid entry id %q", raw), "id")
		return 0, false
	}
	return id, true
}

// viewQuery reads the search term and category filter of a view request.
func viewQuery(r *http.Request) (search, category string) {
	q := r.URL.Query()
	search = q.Get("search")
	category = q.Get("category")
	if category == "" {
		category = core.AllCategories
	}
	return search, category
}

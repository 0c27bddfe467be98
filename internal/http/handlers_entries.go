package http

import (
	"net/http"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	search, category := viewQuery(r)
	v := s.ledger.View(search, category)
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":  newEntryList(v.Entries),
		"count":    len(v.Entries),
		"total":    v.Total,
		"revision": v.Revision,
	})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDraft(w, r)
	if !ok {
		return
	}
	e, err := s.ledger.Add(d)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Entry created",
		applog.NewFields().WithOperation(applog.OpCreate).WithEntry(e.ID, string(e.Category), e.CompanyName).ToSlice()...)
	writeJSON(w, http.StatusCreated, newEntryResponse(e))
}

// handleUpdateEntry replaces an entry. An unknown id is a no-op answered
// with 204, since the caller's view was merely stale.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, ok := s.decodeDraft(w, r)
	if !ok {
		return
	}
	found, err := s.ledger.Edit(id, d)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	e, _ := s.ledger.Find(id)
	writeJSON(w, http.StatusOK, newEntryResponse(e))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if s.ledger.Delete(id) {
		applog.FromContext(r.Context()).InfoContext(r.Context(), "Entry deleted",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldEntryID, id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	search, category := viewQuery(r)
	writeJSON(w, http.StatusOK, newSummaryResponse(s.ledger.FilteredSummary(search, category)))
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	cats := core.Categories()
	filters := make([]string, 0, len(cats)+1)
	filters = append(filters, core.AllCategories)
	for _, c := range cats {
		filters = append(filters, string(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": cats,
		"filters":    filters,
	})
}

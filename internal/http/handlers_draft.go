package http

import (
	"net/http"

	"ledger/internal/ledger"
)

func (s *Server) handleGetDraft(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newDraftResponse(s.form.State()))
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDraft(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newDraftResponse(s.form.Update(d)))
}

func (s *Server) handleResetDraft(w http.ResponseWriter, _ *http.Request) {
	s.form.Compose()
	writeJSON(w, http.StatusOK, newDraftResponse(s.form.State()))
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.form.BeginEdit(id) {
		writeError(w, http.StatusNotFound, "entry not found", "id")
		return
	}
	writeJSON(w, http.StatusOK, newDraftResponse(s.form.State()))
}

// handleSaveDraft commits the form. Adding answers 201, editing 200, and
// an edit whose target vanished 204.
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	_, editing := s.form.State().(ledger.Editing)
	e, err := s.form.Save()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	switch {
	case e.ID == 0:
		w.WriteHeader(http.StatusNoContent)
	case editing:
		writeJSON(w, http.StatusOK, newEntryResponse(e))
	default:
		writeJSON(w, http.StatusCreated, newEntryResponse(e))
	}
}

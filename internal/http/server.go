// Package http serves the ledger over a local JSON API: entry CRUD, the
// shared draft form, filtered summaries, exports and the share link.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ledger/internal/ledger"
	applog "ledger/internal/log"
)

const (
	mutationsPerMinute = 60
	maxBodyBytes       = 1 << 20
)

type Server struct {
	http.Server
	ledger  *ledger.Ledger
	form    *ledger.Form
	logger  *applog.Logger
	limiter *rateLimiter
	now     func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, l *ledger.Ledger, form *ledger.Form, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	s := &Server{
		ledger:  l,
		form:    form,
		logger:  logger,
		limiter: newRateLimiter(mutationsPerMinute, time.Minute),
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("GET /entries", s.handleListEntries)
	mux.HandleFunc("POST /entries", s.handleCreateEntry)
	mux.HandleFunc("PUT /entries/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /entries/{id}", s.handleDeleteEntry)
	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /categories", s.handleCategories)

	mux.HandleFunc("GET /draft", s.handleGetDraft)
	mux.HandleFunc("PUT /draft", s.handleUpdateDraft)
	mux.HandleFunc("DELETE /draft", s.handleResetDraft)
	mux.HandleFunc("POST /draft/edit/{id}", s.handleBeginEdit)
	mux.HandleFunc("POST /draft/save", s.handleSaveDraft)

	mux.HandleFunc("GET /export/xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /export/pdf", s.handleExportPDF)
	mux.HandleFunc("GET /share", s.handleShare)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           applog.Middleware(logger)(s.withSecurity(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

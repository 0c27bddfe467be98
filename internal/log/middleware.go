package log

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type ContextKey string

const (
	LoggerContextKey ContextKey = "logger"

	// RequestIDHeader carries the request id in and out.
	RequestIDHeader = "X-Request-ID"
)

// FromContext returns the request logger, or one over slog.Default tagged
// "unknown" when none was attached.
func FromContext(ctx context.Context) *Logger {
	if lg, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return lg
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}

func WithLogger(ctx context.Context, lg *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, lg)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Middleware gives every request its own logger, bound to the request id,
// and writes one line per completed request.
func Middleware(base *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = newRequestID()
			}
			w.Header().Set(RequestIDHeader, id)

			lg := base.WithComponent(ComponentHTTP).With(FieldRequestID, id)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(WithLogger(r.Context(), lg)))

			attrs := NewFields().
				WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery).
				WithHTTPResponse(rec.status, time.Since(began))
			lg.Log(r.Context(), levelFor(rec.status), "HTTP request completed", attrs.ToSlice()...)
		})
	}
}

func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "req_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return "req_" + hex.EncodeToString(b[:])
}

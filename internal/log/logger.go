package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger that stamps every record with the component it
// belongs to (http, storage, worker...).
type Logger struct {
	*slog.Logger
	component string
}

type Config struct {
	Level     slog.Level
	Format    string // text | json
	Component string
	Output    io.Writer
	// Handler, when set, wins over Format and Output.
	Handler slog.Handler
}

func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Format: "text", Component: ComponentApp, Output: os.Stdout}
}

// ParseLevel maps debug/info/warn/error to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func New(cfg Config) *Logger {
	h := cfg.Handler
	if h == nil {
		w := cfg.Output
		if w == nil {
			w = os.Stdout
		}
		opts := &slog.HandlerOptions{Level: cfg.Level}
		switch cfg.Format {
		case "json":
			h = slog.NewJSONHandler(w, opts)
		default:
			h = slog.NewTextHandler(w, opts)
		}
	}
	return &Logger{Logger: slog.New(h), component: cfg.Component}
}

func (lg *Logger) With(args ...any) *Logger {
	return &Logger{Logger: lg.Logger.With(args...), component: lg.component}
}

// WithComponent keeps the attributes already bound and swaps the component.
func (lg *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: lg.Logger, component: component}
}

func (lg *Logger) Component() string { return lg.component }

// Log is the single sink behind the level helpers.
func (lg *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	lg.Logger.Log(ctx, level, msg, append([]any{FieldComponent, lg.component}, args...)...)
}

func (lg *Logger) Debug(msg string, args ...any) { lg.Log(context.Background(), slog.LevelDebug, msg, args...) }
func (lg *Logger) Info(msg string, args ...any)  { lg.Log(context.Background(), slog.LevelInfo, msg, args...) }
func (lg *Logger) Warn(msg string, args ...any)  { lg.Log(context.Background(), slog.LevelWarn, msg, args...) }
func (lg *Logger) Error(msg string, args ...any) { lg.Log(context.Background(), slog.LevelError, msg, args...) }

func (lg *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	lg.Log(ctx, slog.LevelDebug, msg, args...)
}

func (lg *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	lg.Log(ctx, slog.LevelInfo, msg, args...)
}

func (lg *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	lg.Log(ctx, slog.LevelWarn, msg, args...)
}

func (lg *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	lg.Log(ctx, slog.LevelError, msg, args...)
}

// SetDefault installs lg behind the package-level slog functions.
func SetDefault(lg *Logger) { slog.SetDefault(lg.Logger) }

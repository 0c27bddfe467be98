package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	applog "ledger/internal/log"
)

// Storage backends for the ledger snapshot.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendFile, BackendSQLite}

type Config struct {
	// HTTP Server
	Port string

	// Logging
	LogLevel  string
	LogFormat string

	// Ledger storage
	Backend       string
	LedgerFile    string
	SQLiteDBPath  string
	LedgerKey     string
	ViewCacheSize int
	SnowflakeNode int64

	// Exports
	ExportDir string

	// AMQP change notifications, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror, disabled when GoogleSpreadsheetID is empty
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Worker
	SyncInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Backend:       strings.ToLower(getEnv("LEDGER_BACKEND", BackendFile)),
		LedgerFile:    getEnv("LEDGER_FILE", "./data/ledger.json"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/ledger.db"),
		LedgerKey:     getEnv("LEDGER_KEY", "ledgerEntries"),
		ViewCacheSize: getEnvInt("VIEW_CACHE_SIZE", 32),
		SnowflakeNode: int64(getEnvInt("SNOWFLAKE_NODE", 1)),

		ExportDir: getEnv("EXPORT_DIR", "./exports"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_changed"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Ledger"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		SyncInterval: getEnvDuration("SYNC_INTERVAL", 30*time.Second),
	}
}

// AMQPEnabled reports whether change notifications are configured.
func (c *Config) AMQPEnabled() bool { return c.AMQPURL != "" }

// SheetsEnabled reports whether the spreadsheet mirror is configured.
func (c *Config) SheetsEnabled() bool { return c.GoogleSpreadsheetID != "" }

// problems accumulates every configuration mistake so a single run reports
// all of them.
type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var p problems

	switch port, err := strconv.Atoi(c.Port); {
	case err != nil:
		p.addf("PORT %q is not a number", c.Port)
	case port < 1 || port > 65535:
		p.addf("PORT %d is outside 1-65535", port)
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		p.addf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		p.addf("LOG_FORMAT %q is not text or json", c.LogFormat)
	}

	switch c.Backend {
	case BackendMemory:
	case BackendFile:
		if c.LedgerFile == "" {
			p.addf("LEDGER_FILE is required by the file backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			p.addf("SQLITE_DB_PATH is required by the sqlite backend")
		}
		if c.LedgerKey == "" {
			p.addf("LEDGER_KEY is required by the sqlite backend")
		}
	default:
		p.addf("LEDGER_BACKEND %q is not one of %s", c.Backend, strings.Join(validBackends, ", "))
	}

	if c.ViewCacheSize < 1 || c.ViewCacheSize > 10000 {
		p.addf("VIEW_CACHE_SIZE %d is outside 1-10000", c.ViewCacheSize)
	}
	if c.SnowflakeNode < 0 || c.SnowflakeNode > 1023 {
		p.addf("SNOWFLAKE_NODE %d is outside 0-1023", c.SnowflakeNode)
	}
	if c.ExportDir == "" {
		p.addf("EXPORT_DIR must not be empty")
	}

	if c.AMQPEnabled() {
		u, err := url.Parse(c.AMQPURL)
		switch {
		case err != nil:
			p.addf("AMQP_URL does not parse: %v", err)
		case u.Scheme != "amqp" && u.Scheme != "amqps":
			p.addf("AMQP_URL scheme %q is not amqp or amqps", u.Scheme)
		}
		if c.AMQPExchange == "" {
			p.addf("AMQP_EXCHANGE is required when AMQP_URL is set")
		}
		if c.AMQPQueue == "" {
			p.addf("AMQP_QUEUE is required when AMQP_URL is set")
		}
	}

	if c.SheetsEnabled() {
		if c.GoogleSheetName == "" {
			p.addf("GOOGLE_SHEET_NAME is required when GOOGLE_SPREADSHEET_ID is set")
		}
		if f := c.GoogleServiceAccountFile; f != "" {
			if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
				p.addf("GOOGLE_SERVICE_ACCOUNT_FILE %s does not exist", f)
			}
		}
	}

	if c.SyncInterval < time.Second || c.SyncInterval > 24*time.Hour {
		p.addf("SYNC_INTERVAL %v is outside 1s-24h", c.SyncInterval)
	}

	if len(p) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n- %s", strings.Join(p, "\n- "))
}

// env returns the parsed value of key, or def when it is unset or does not
// parse.
func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func getEnv(key, def string) string {
	return env(key, def, func(s string) (string, error) { return s, nil })
}

func getEnvInt(key string, def int) int { return env(key, def, strconv.Atoi) }

func getEnvDuration(key string, def time.Duration) time.Duration {
	return env(key, def, time.ParseDuration)
}

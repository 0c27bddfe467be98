package backend

import (
	"errors"
	"fmt"

	"ledger/internal/config"
)

// Config selects a backend and carries the settings it and the optional
// change notifier need.
type Config struct {
	Type BackendType

	LedgerFile   string
	SQLiteDBPath string
	LedgerKey    string

	// Empty AMQPURL disables notifications.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig narrows the process configuration down to the storage and
// messaging settings.
func FromAppConfig(app *config.Config) (Config, error) {
	if app == nil {
		return Config{}, errors.New("backend: nil application config")
	}
	c := Config{
		Type:         BackendType(app.Backend),
		LedgerFile:   app.LedgerFile,
		SQLiteDBPath: app.SQLiteDBPath,
		LedgerKey:    app.LedgerKey,
		AMQPURL:      app.AMQPURL,
		AMQPExchange: app.AMQPExchange,
		AMQPQueue:    app.AMQPQueue,
	}
	if !c.Type.IsValid() {
		return Config{}, fmt.Errorf("backend: unknown type %q", app.Backend)
	}
	return c, nil
}

func (c Config) Validate() error {
	req, ok := pathFor[c.Type]
	if !ok {
		return fmt.Errorf("backend: unknown type %q", c.Type)
	}
	if req.get != nil && req.get(c) == "" {
		return fmt.Errorf("backend %s: %s must be set", c.Type, req.field)
	}
	return nil
}

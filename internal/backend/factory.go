package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger/internal/amqp"
	applog "ledger/internal/log"
	"ledger/internal/storage"
	"ledger/internal/storage/file"
	"ledger/internal/storage/memory"
	"ledger/internal/storage/sqlite"
)

// DefaultFactory opens the store named by Config.Type and, when asked, dials AMQP.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend opens the snapshot store and, if configured, the AMQP
// notifier. An unreachable broker is logged and the backend runs without
// notifications.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := f.createStore(config)
	if err != nil {
		return nil, err
	}
	res := &BackendResult{Store: store}

	var client *amqp.Client
	if config.AMQPURL != "" {
		client, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without notifications",
				applog.FieldComponent, applog.ComponentBackend,
				applog.FieldError, err)
			client = nil
		} else {
			res.Notifier = client
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	res.Cleanup = func() error {
		var errs []error
		if client != nil {
			errs = append(errs, client.Close())
		}
		errs = append(errs, store.Close())
		return errors.Join(errs...)
	}

	f.logger.InfoContext(ctx, "Initialized ledger backend",
		applog.FieldComponent, applog.ComponentBackend,
		applog.FieldBackend, config.Type.String(),
		"amqp_enabled", res.Notifier != nil)
	return res, nil
}

func (f *DefaultFactory) createStore(config Config) (storage.BlobStore, error) {
	switch config.Type {
	case MemoryBackend:
		return memory.New(), nil
	case FileBackend:
		s, err := file.New(config.LedgerFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		return s, nil
	case SQLiteBackend:
		s, err := sqlite.New(config.SQLiteDBPath, config.LedgerKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// NotifyHook adapts n to the persister's saved hook. Publish failures are
// logged and never reach the ledger.
func NotifyHook(n Notifier, logger *slog.Logger) storage.SavedFunc {
	if n == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, seq uint64, entryCount int) {
		if err := n.PublishLedgerChanged(ctx, seq, entryCount); err != nil {
			logger.WarnContext(ctx, "Failed to publish ledger change",
				applog.FieldComponent, applog.ComponentAMQP,
				applog.FieldRevision, seq,
				applog.FieldError, err)
		}
	}
}

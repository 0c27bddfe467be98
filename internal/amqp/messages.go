package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangedMessage announces that a new ledger snapshot was persisted.
// It carries no entries: consumers read the snapshot from the shared store.
type LedgerChangedMessage struct {
	Revision   uint64    `json:"revision"`
	EntryCount int       `json:"entry_count"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(revision uint64, entryCount int) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		Revision:   revision,
		EntryCount: entryCount,
		Timestamp:  time.Now(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

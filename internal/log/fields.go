package log

import (
	"maps"
	"slices"
	"time"
)

// Attribute keys shared by every component.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldEntryID    = "entry_id"
	FieldEntryCount = "entry_count"
	FieldCategory   = "category"
	FieldCompany    = "company"
	FieldRevision   = "revision"
	FieldBackend    = "backend"
	FieldBytes      = "bytes"
	FieldFile       = "file"
)

const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentExport  = "export"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)

// Values for FieldOperation.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpLoad   = "load"
	OpSave   = "save"
	OpSync   = "sync"
	OpExport = "export"
	OpShare  = "share"
)

// LogFields collects attributes fluently before handing them to slog.
type LogFields map[string]any

func NewFields() LogFields { return LogFields{} }

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithEntry(id int64, category, company string) LogFields {
	f[FieldEntryID] = id
	f[FieldCategory] = category
	f[FieldCompany] = company
	return f
}

func (f LogFields) WithHTTPRequest(method, path, query string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	return f
}

// WithHTTPResponse records the status, the latency in milliseconds and
// whether the status is below 400.
func (f LogFields) WithHTTPResponse(status int, d time.Duration) LogFields {
	f[FieldStatusCode] = status
	f[FieldDuration] = d.Milliseconds()
	f[FieldSuccess] = status < 400
	return f
}

// ToSlice flattens f into key/value pairs ordered by key.
func (f LogFields) ToSlice() []any {
	out := make([]any, 0, 2*len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		out = append(out, k, f[k])
	}
	return out
}

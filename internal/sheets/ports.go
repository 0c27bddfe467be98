package sheets

import "context"

// RowReplacer overwrites the whole content of a sheet with rows.
type RowReplacer interface {
	ReplaceRows(ctx context.Context, rows [][]string) error
}

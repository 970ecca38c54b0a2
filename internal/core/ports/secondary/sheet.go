package secondary

import "context"

// SheetStore resolves writable sheets in a backing tabular store.
type SheetStore interface {
	// Name identifies the backend in logs and health output
	Name() string

	// OpenSheet returns a handle to the named sheet of the store identified
	// by storeID, or an error when either cannot be resolved
	OpenSheet(ctx context.Context, storeID, sheetName string) (Sheet, error)

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
}

// Sheet is an append-only table.
type Sheet interface {
	// AppendRow writes cells as one new row after the last existing row
	AppendRow(ctx context.Context, cells []interface{}) error
}

package ingest

import (
	"context"

	"gitlab.com/static-ip-db.net/internal/domain"
)

// IIngestService appends request payloads to their route's sheet
type IIngestService interface {
	// Routes returns the configured routes in declaration order
	Routes() []domain.Route

	// Submit parses body and appends one row to the sheet behind routeName.
	// Every failure is returned as an *errs.IngestError.
	Submit(ctx context.Context, routeName string, body []byte) error

	// Ready reports whether the backing store is reachable
	Ready(ctx context.Context) error
}

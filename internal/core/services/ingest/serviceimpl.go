package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gitlab.com/static-ip-db.net/internal/config"
	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/ports/secondary"
	"gitlab.com/static-ip-db.net/internal/domain"
	"gitlab.com/static-ip-db.net/internal/global/reqctx"
	"gitlab.com/static-ip-db.net/internal/static/errs"
)

var _ IIngestService = &IngestService{}

type IngestService struct {
	store      secondary.SheetStore
	clock      primary.Clock
	routes     []domain.Route
	routeIndex map[string]domain.Route
	dateLayout string
	timeLayout string
	logger     primary.Logger
}

func NewIngestService(
	store secondary.SheetStore,
	clock primary.Clock,
	routes []domain.Route,
	clockCfg *config.ClockConfig,
	logger primary.Logger,
) *IngestService {
	index := make(map[string]domain.Route, len(routes))
	for _, r := range routes {
		index[r.Name] = r
	}
	return &IngestService{
		store:      store,
		clock:      clock,
		routes:     routes,
		routeIndex: index,
		dateLayout: clockCfg.DateLayout,
		timeLayout: clockCfg.TimeLayout,
		logger:     logger,
	}
}

func (s *IngestService) Routes() []domain.Route {
	out := make([]domain.Route, len(s.routes))
	copy(out, s.routes)
	return out
}

func (s *IngestService) Submit(ctx context.Context, routeName string, body []byte) error {
	route, ok := s.routeIndex[routeName]
	if !ok {
		return errs.Lookup(fmt.Errorf("%w: %s", errs.ErrRouteNotFound, routeName))
	}

	log := s.logger.With("requestId", reqctx.RequestID(ctx), "route", route.Name)

	payload, err := decodePayload(body)
	if err != nil {
		log.Warn("Failed to parse submission", "error", err)
		return errs.Parse(err)
	}

	sub := s.buildSubmission(route, payload)
	log = log.With("store", s.store.Name(), "spreadsheetId", route.StoreID, "sheet", route.SheetName)

	sheet, err := s.store.OpenSheet(ctx, route.StoreID, route.SheetName)
	if err != nil {
		log.Error("Failed to open sheet", "error", err)
		return errs.Lookup(err)
	}

	if err := sheet.AppendRow(ctx, sub.Cells); err != nil {
		log.Error("Failed to append row", "error", err)
		return errs.Append(err)
	}

	log.Info("Row appended", "submittedAt", sub.SubmittedAt.Format(time.RFC3339))
	return nil
}

func (s *IngestService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// buildSubmission lays out the row in column order: every route field, then
// date and time taken from a single clock reading.
func (s *IngestService) buildSubmission(route domain.Route, payload map[string]interface{}) domain.Submission {
	now := s.clock.Now()
	cells := make(domain.Row, 0, len(route.Fields)+2)
	for _, field := range route.Fields {
		cells = append(cells, cellValue(payload[field]))
	}
	cells = append(cells, now.Format(s.dateLayout), now.Format(s.timeLayout))
	return domain.Submission{Route: route, Cells: cells, SubmittedAt: now}
}

// decodePayload parses body as a single JSON value. Fields are read from an
// object; any other non-null value yields no fields at all.
func decodePayload(body []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errs.ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level JSON value")
		}
		return nil, err
	}

	switch t := v.(type) {
	case nil:
		return nil, errs.ErrNullBody
	case map[string]interface{}:
		return t, nil
	default:
		return map[string]interface{}{}, nil
	}
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case string, bool, json.Number:
		return t
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	}
}

package ingest

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/services/ingest"
	"gitlab.com/static-ip-db.net/internal/domain"
	"gitlab.com/static-ip-db.net/internal/global/reqctx"
	"gitlab.com/static-ip-db.net/internal/handlers/response"
	"gitlab.com/static-ip-db.net/internal/static/errs"
)

// IngestHandler handles submission requests
type IngestHandler struct {
	ingestService ingest.IIngestService
	maxBodyBytes  int64
	logger        primary.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestService ingest.IIngestService, maxBodyBytes int64, logger primary.Logger) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// RegisterRoutes registers one POST endpoint per configured route
func (h *IngestHandler) RegisterRoutes(router *mux.Router) {
	for _, route := range h.ingestService.Routes() {
		router.HandleFunc("/api/ingest/"+route.Name, h.Submit(route.Name)).Methods(http.MethodPost)
	}
	router.HandleFunc("/api/routes", h.ListRoutes).Methods(http.MethodGet)
}

// Submit appends the request body to the route's sheet. Every outcome is
// reported with HTTP 200 and an Ack body.
func (h *IngestHandler) Submit(routeName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
		if err != nil {
			err = errs.Parse(err)
			h.logger.With("requestId", reqctx.RequestID(r.Context()), "route", routeName).
				Warn("Failed to read request body", "error", err)
			response.WriteAck(w, domain.AckError(err))
			return
		}

		if err := h.ingestService.Submit(r.Context(), routeName, body); err != nil {
			response.WriteAck(w, domain.AckError(err))
			return
		}
		response.WriteAck(w, domain.AckSuccess())
	}
}

// ListRoutes describes the configured routes and their column order
func (h *IngestHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes := h.ingestService.Routes()
	views := make([]RouteView, 0, len(routes))
	for _, route := range routes {
		views = append(views, newRouteView(route))
	}
	response.WriteSuccess(w, ListRoutesResponse{Routes: views})
}

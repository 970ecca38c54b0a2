package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/handlers/response"
)

const readyTimeout = 2 * time.Second

// Checker reports whether the backing store can take writes
type Checker interface {
	Ready(ctx context.Context) error
}

type StatusResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
	Error  string `json:"error,omitempty"`
}

type HealthHandler struct {
	checker   Checker
	storeName string
	logger    primary.Logger
}

func NewHealthHandler(checker Checker, storeName string, logger primary.Logger) *HealthHandler {
	return &HealthHandler{
		checker:   checker,
		storeName: storeName,
		logger:    logger,
	}
}

func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Live).Methods(http.MethodGet)
	router.HandleFunc("/readyz", h.Ready).Methods(http.MethodGet)
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, StatusResponse{Status: "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.checker.Ready(ctx); err != nil {
		h.logger.Warn("Store not ready", "store", h.storeName, "error", err)
		response.WriteJSON(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "unavailable",
			Store:  h.storeName,
			Error:  err.Error(),
		})
		return
	}
	response.WriteSuccess(w, StatusResponse{Status: "ok", Store: h.storeName})
}

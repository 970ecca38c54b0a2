package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/domain"
	"gitlab.com/static-ip-db.net/internal/global/reqctx"
	"gitlab.com/static-ip-db.net/internal/handlers/response"
)

const (
	RequestIDHeader = "X-Request-Id"

	// IngestPathPrefix marks the routes whose failures are reported in-band
	IngestPathPrefix = "/api/ingest/"
)

type MiddlewareProvider struct {
	logger primary.Logger
}

func New(logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{logger: logger}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

// RequestID reads X-Request-Id or generates one, stores it in the request
// context and echoes it back.
func (m *MiddlewareProvider) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), rid)))
	})
}

// AccessLog logs method, path, status and latency of every request
func (m *MiddlewareProvider) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Info("Request handled",
			"requestId", reqctx.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency", time.Since(start).String(),
		)
	})
}

// Recover turns a panic on an ingest route into an in-band error
// acknowledgment; any other route answers 500.
func (m *MiddlewareProvider) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				m.logger.Error("Recovered from panic",
					"requestId", reqctx.RequestID(r.Context()), "path", r.URL.Path, "panic", p)
				if rec.wroteHeader {
					return
				}
				if strings.HasPrefix(r.URL.Path, IngestPathPrefix) {
					response.WriteAck(rec, domain.AckError(fmt.Errorf("internal error: %v", p)))
					return
				}
				response.WriteError(rec, response.ErrorMessage{
					Message:    http.StatusText(http.StatusInternalServerError),
					StatusCode: http.StatusInternalServerError,
				})
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

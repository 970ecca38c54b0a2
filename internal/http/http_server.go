package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"gitlab.com/static-ip-db.net/internal/config"
	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/services/ingest"
	"gitlab.com/static-ip-db.net/internal/handlers"
	"gitlab.com/static-ip-db.net/internal/handlers/health"
	ingesthandler "gitlab.com/static-ip-db.net/internal/handlers/ingest"
)

type ServiceProvider struct {
	ingestService ingest.IIngestService
	storeName     string
}

func NewServiceProvider(ingestService ingest.IIngestService, storeName string) *ServiceProvider {
	return &ServiceProvider{
		ingestService: ingestService,
		storeName:     storeName,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	cfg             *config.ServerConfig
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(cfg *config.ServerConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		cfg:             cfg,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.ingestService == nil {
		return errors.New("ingest service is required")
	}

	r := mux.NewRouter()
	mw := handlers.New(s.logger)
	r.Use(mw.RequestID, mw.AccessLog, mw.Recover)

	ingesthandler.
		NewIngestHandler(s.ServiceProvider.ingestService, s.cfg.MaxBodyBytes, s.logger).
		RegisterRoutes(r)
	health.
		NewHealthHandler(s.ServiceProvider.ingestService, s.ServiceProvider.storeName, s.logger).
		RegisterRoutes(r)

	s.router = r
	return nil
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.cfg.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}
	return nil
}

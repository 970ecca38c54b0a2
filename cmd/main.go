package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"gitlab.com/static-ip-db.net/internal/adapter/clock"
	"gitlab.com/static-ip-db.net/internal/adapter/google/sheetsport"
	"gitlab.com/static-ip-db.net/internal/adapter/memory/memoryport"
	"gitlab.com/static-ip-db.net/internal/adapter/redis/sheetport"
	"gitlab.com/static-ip-db.net/internal/adapter/sql/sheetrepository"
	"gitlab.com/static-ip-db.net/internal/config"
	"gitlab.com/static-ip-db.net/internal/core/ports/primary"
	"gitlab.com/static-ip-db.net/internal/core/ports/secondary"
	"gitlab.com/static-ip-db.net/internal/core/services/ingest"
	logger2 "gitlab.com/static-ip-db.net/internal/global/logger"
	http2 "gitlab.com/static-ip-db.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg, err := config.NewSystemConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger2.Configure(sysCfg.LogLevel, sysCfg.DebugMode)
	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()

	logger2.Info("Starting static ip ingest service", "store", sysCfg.StoreConfig.Backend,
		"routes", len(sysCfg.RoutesConfig.Routes))

	for _, r := range sysCfg.RoutesConfig.Routes {
		logger2.Debug("Route configured", "route", r.Name, "spreadsheetId", r.StoreID,
			"sheet", r.SheetName, "columns", r.Columns())
	}

	ctxBg := context.Background()

	// SECONDARY PORTS
	store, closeStore, err := setupStore(ctxBg, sysCfg, logger)
	if err != nil {
		logger2.Error("Failed to set up store", "backend", sysCfg.StoreConfig.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	//services
	ingestSvc := ingest.NewIngestService(
		store,
		clock.NewSystemClock(sysCfg.ClockConfig.Location),
		sysCfg.RoutesConfig.Routes,
		sysCfg.ClockConfig,
		logger,
	)
	serviceProvider := http2.NewServiceProvider(ingestSvc, store.Name())

	//server
	httpServer := http2.NewServer(sysCfg.ServerConfig, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	httpServer.Start(ctxBg)

	<-quit
	logger2.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger2.Warn("Server did not shut down cleanly", "error", err)
	}

	logger2.Info("successfully shutdown server")
}

// setupStore builds the SheetStore for the configured backend and returns a
// func releasing its connections.
func setupStore(ctx context.Context, cfg *config.AppConfig, logger primary.Logger) (secondary.SheetStore, func(), error) {
	noop := func() {}

	switch cfg.StoreConfig.Backend {
	case config.BackendSheets:
		store, err := sheetsport.New(ctx, cfg.SheetsConfig, logger)
		if err != nil {
			return nil, noop, err
		}
		return store.WithPingTarget(cfg.RoutesConfig.Routes[0].StoreID), noop, nil

	case config.BackendPostgres:
		return setupSQLStore(ctx, sheetrepository.DialectPostgres, cfg.PostgresConfig.Url, cfg.PostgresConfig.Schema, logger)

	case config.BackendSqlite:
		return setupSQLStore(ctx, sheetrepository.DialectSqlite, cfg.SqliteConfig.Path, "main", logger)

	case config.BackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Url,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return sheetport.NewSheetRepository(redisClient, logger), func() { _ = redisClient.Close() }, nil

	case config.BackendMemory:
		store := memoryport.New()
		for _, r := range cfg.RoutesConfig.Routes {
			store.AddSheet(r.StoreID, r.SheetName)
		}
		return store, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreConfig.Backend)
}

func setupSQLStore(ctx context.Context, dialect sheetrepository.Dialect, dsn, schema string, logger primary.Logger) (secondary.SheetStore, func(), error) {
	db, err := sheetrepository.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open %s: %w", dialect, err)
	}
	repo := sheetrepository.New(db, dialect, schema, logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, func() {}, err
	}
	return repo, func() { _ = db.Close() }, nil
}

// InitReader loads <env>.env when an environment name is passed, otherwise
// .env if one exists.
func InitReader() {
	if len(os.Args) >= 2 {
		environment := os.Args[1]
		if err := godotenv.Load(environment + ".env"); err != nil {
			log.Fatalf("Error loading %s.env file", environment)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Error loading .env file: %v", err)
		}
	}
}

// Command server runs the work-order operations backend: the session proxy in
// front of the warehouse API plus the local monitoring annotation store.
//
// Startup order matters: env → config → logging → tracing → database →
// upstream client → HTTP server. Shutdown reverses it, draining in-flight
// requests before the database and the trace exporter are closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/prasetyow/wo-ops-backend/docs"
	"github.com/prasetyow/wo-ops-backend/internal/config"
	httpapi "github.com/prasetyow/wo-ops-backend/internal/http"
	"github.com/prasetyow/wo-ops-backend/internal/observability"
	"github.com/prasetyow/wo-ops-backend/internal/repo"
	"github.com/prasetyow/wo-ops-backend/internal/sysutil"
	"github.com/prasetyow/wo-ops-backend/internal/warehouse"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// shutdownGrace caps how long a draining server may hold the process.
const shutdownGrace = 10 * time.Second

// @title        WO Ops Backend API
// @version      1.0
// @description  Session proxy and monitoring annotation store for warehouse work orders.
//
// @BasePath     /api
func main() {
	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenPostgres(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	wh, err := warehouse.New(cfg.Warehouse.BaseURL, cfg.Warehouse.CasesPath, cfg.Warehouse.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("warehouse client init failed")
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, wh, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("upstream", cfg.Warehouse.BaseURL).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	drainCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error().Err(err).Msg("server drain failed")
	}
	if err := repo.Close(db); err != nil {
		log.Error().Err(err).Msg("database close failed")
	}
	if err := shutdownOTel(drainCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	log.Info().Msg("bye")
}

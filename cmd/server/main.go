// Command server runs the helpdesk HTTP service: the ticket JSON API plus
// the server-rendered pages, backed by a relational database.
//
// Configuration is sourced from environment variables (optionally via a
// local .env file); see internal/config for the recognized keys.
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

	// Side-effect import registering the generated swagger spec.
	_ "github.com/supportgen/go-helpdesk-backend/docs"
	"github.com/supportgen/go-helpdesk-backend/internal/config"
	httpapi "github.com/supportgen/go-helpdesk-backend/internal/http"
	"github.com/supportgen/go-helpdesk-backend/internal/observability"
	"github.com/supportgen/go-helpdesk-backend/internal/repo"
	"github.com/supportgen/go-helpdesk-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title          Helpdesk API
// @version        1.0
// @description    Support ticket tracking service: JSON API and server-rendered pages.
// @BasePath       /
func main() {
	// Local development convenience; absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	gin.SetMode(cfg.GinMode)

	db, err := repo.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("database connection failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	if cfg.DB.Seed {
		if err := repo.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Fatal().Err(err).Msg("gorm tracing setup failed")
		}
	}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, db, cfg); err != nil {
		log.Fatal().Err(err).Msg("route registration failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("helpdesk server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

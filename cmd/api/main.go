package main

import (
	"database/sql"
	"errors"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/chakronwork/SmartStay/internal/adapters/gemini"
	server "github.com/chakronwork/SmartStay/internal/adapters/http_server"
	"github.com/chakronwork/SmartStay/internal/adapters/observability"
	redisad "github.com/chakronwork/SmartStay/internal/adapters/redis"
	"github.com/chakronwork/SmartStay/internal/app"
	"github.com/chakronwork/SmartStay/internal/domain"
	"github.com/chakronwork/SmartStay/internal/shared"
	mysqlrepo "github.com/chakronwork/SmartStay/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// the chat relay stays up without a credential; it answers every
	// message with the missing-key error until one is configured
	var assistant domain.Assistant
	if client, err := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.GeminiModel, 5); err == nil {
		assistant = client
	} else if !errors.Is(err, gemini.ErrMissingKey) {
		log.Fatal().Err(err).Msg("failed to initialize Gemini client")
	}

	auth := app.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)
	handlers := &server.Handlers{
		Catalog:  app.NewCatalogService(repo, repo, cache, cfg.CacheTTL),
		Bookings: app.NewBookingService(repo, repo, cache, cfg.CacheTTL),
		Rooms:    app.NewRoomAdminService(repo, cache, cfg.CacheTTL),
		Auth:     auth,
		Chat:     app.NewChatService(assistant, cache, cfg.ChatMemTTL),
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "tourflow/internal/adapters/http_server"
	"tourflow/internal/adapters/observability"
	redisad "tourflow/internal/adapters/redis"
	"tourflow/internal/adapters/weather"
	"tourflow/internal/app"
	"tourflow/internal/shared"
	mysqlrepo "tourflow/internal/storage/mysql"
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

	handlers := &server.Handlers{
		Auth:     app.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL),
		Catalog:  app.NewCatalogService(repo, cache, cfg.CacheTTL),
		Bookings: app.NewBookingService(repo, repo),
		Reviews:  app.NewReviewService(repo, repo, repo, cache),
		Payments: app.NewPaymentService(repo),
		Stats:    app.NewStatsService(repo),
		Weather:  weather.New(cfg.WeatherBase, cfg.WeatherKey, 5),
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

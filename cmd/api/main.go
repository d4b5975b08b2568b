// cmd/api/main.go
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/clashclient/clash"
	"github.com/briangreenhill/clashclient/internal/config"
	"github.com/briangreenhill/clashclient/internal/http/routes"
	"github.com/briangreenhill/clashclient/lookups"
)

func main() {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	logger = logger.Level(cfg.Level())
	if !cfg.HasToken() {
		logger.Warn().Msg("CLASH_API_TOKEN is not set; every lookup will fail")
	}

	// Response cache
	store, err := cfg.NewStore(logger.With().Str("component", "cache").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("cache error")
	}

	// API client
	client, err := clash.New(cfg,
		clash.WithCache(store),
		clash.WithLogger(logger.With().Str("component", "clash").Logger()),
		clash.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("client error")
	}

	// Router / server
	s := routes.New(routes.ServerOptions{
		Lookups:    lookups.Default(client),
		Cache:      store,
		Logger:     logger,
		AdminToken: cfg.AdminToken,
	})

	logger.Info().Str("port", cfg.Port).Bool("cache", store.Enabled()).Msg("starting gateway")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: s.Router, ReadHeaderTimeout: 10 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

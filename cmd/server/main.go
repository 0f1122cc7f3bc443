// cmd/server/main.go
// This is the entry point for the Match Explorer API server.
// The server proxies three read-only lookups (competitions, matches, match events) to the
// StatsBomb open-data set and serves the front-end bundle from the static root.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/trentd187/match-explorer/internal/cache"
	"github.com/trentd187/match-explorer/internal/config"
	"github.com/trentd187/match-explorer/internal/logger"
	"github.com/trentd187/match-explorer/internal/metrics"
	"github.com/trentd187/match-explorer/internal/server"
	"github.com/trentd187/match-explorer/internal/statsbomb"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Init(cfg.LogLevel, cfg.Env); err != nil {
		log.Fatal().Err(err).Msg("failed to initialise logger")
	}

	// Metrics are optional; a nil collector leaves /metrics unregistered.
	var collector *metrics.Collector
	var observer statsbomb.Observer
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector()
		observer = collector
	}

	// Pick where open-data documents come from: a local checkout wins over the URL.
	var src statsbomb.Source
	if cfg.StatsBomb.DataDir != "" {
		src = statsbomb.NewDirSource(cfg.StatsBomb.DataDir)
		log.Info().Str("dir", cfg.StatsBomb.DataDir).Msg("reading StatsBomb data from disk")
	} else {
		src = statsbomb.NewHTTPSource(cfg.StatsBomb.DataURL, cfg.StatsBomb.Timeout)
		log.Info().Str("url", cfg.StatsBomb.DataURL).Msg("fetching StatsBomb data over HTTP")
	}

	var provider statsbomb.Provider = statsbomb.NewClient(src, observer)
	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.MaxBytes, cfg.Cache.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create provider cache")
		}
		defer c.Close()
		log.Info().Dur("ttl", c.TTL()).Int64("max_bytes", cfg.Cache.MaxBytes).Msg("provider cache enabled")
		provider = statsbomb.NewCached(provider, c, observer)
	}

	app := server.New(server.Options{
		Provider:   provider,
		StaticRoot: cfg.Static,
		Metrics:    collector,
	})

	// Shut down gracefully on Ctrl+C or a container stop, letting in-flight requests finish.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.Error().Err(err).Msg("shutdown did not complete cleanly")
		}
	}()

	// Listen blocks until the server stops; it's called exactly once.
	log.Info().Str("addr", cfg.Addr()).Str("static_root", cfg.Static).Msg("starting server")
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package main is the entry point for the Lookalike server.
//
// Lookalike serves content-based product recommendations over a REST
// API. Clients open a session, upload a product catalog as CSV, and
// query lookalikes for a product or a user's purchase history. The
// similarity model is built eagerly at upload time: TF-IDF over
// product descriptions, truncated SVD reduction, and an all-pairs
// cosine similarity matrix held in memory for the session's lifetime.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (Koanf v2)
//  2. Session store: in-memory sessions with TTL expiry and a cap
//  3. Recommendation engine: the TF-IDF/SVD/similarity pipeline
//  4. HTTP router: Chi with CORS, rate limiting, and Prometheus metrics
//  5. Supervisor tree: suture supervising the HTTP server and the
//     session janitor
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (LOOKALIKE_* — see internal/config)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests to complete,
// and stops the background services.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lookalike-labs/lookalike/internal/api"
	"github.com/lookalike-labs/lookalike/internal/config"
	"github.com/lookalike-labs/lookalike/internal/logging"
	"github.com/lookalike-labs/lookalike/internal/recommend"
	"github.com/lookalike-labs/lookalike/internal/session"
	"github.com/lookalike-labs/lookalike/internal/supervisor"
	"github.com/lookalike-labs/lookalike/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Int("components", cfg.Recommend.Components).
		Int("max_sessions", cfg.Session.MaxSessions).
		Msg("Starting Lookalike")

	store := session.NewStore(cfg.Session, logging.Logger())
	engine := recommend.NewEngine(cfg.Recommend, logging.Logger())
	router := api.NewRouter(store, engine, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Context for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddBackgroundService(session.NewJanitor(store))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lookalike-labs/lookalike/internal/config"
	"github.com/lookalike-labs/lookalike/internal/middleware"
	"github.com/lookalike-labs/lookalike/internal/recommend"
	"github.com/lookalike-labs/lookalike/internal/session"
)

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
	mux     *chi.Mux
}

// NewRouter builds the full HTTP surface from the application
// configuration.
func NewRouter(store *session.Store, engine *recommend.Engine, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	r := &Router{
		handler: NewHandler(store, engine, cfg),
		mw:      NewChiMiddleware(mwConfig),
	}
	r.mux = r.setupChi()
	return r
}

// ServeHTTP makes Router an http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// http.Handler middleware shape.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// setupChi composes the global middleware stack and mounts all routes.
func (rt *Router) setupChi() *chi.Mux {
	r := chi.NewRouter()

	// Global stack. Order matters: request ID first so every later
	// log line carries it, recovery before anything that can panic.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.mw.CORS())

	h := rt.handler

	// Health endpoints: permissive rate limit for monitoring probes.
	r.Group(func(r chi.Router) {
		r.Use(rt.mw.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Embedded single-page UI.
	r.Get("/", h.Index)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Post("/sessions", h.CreateSession)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", h.DeleteSession)

			// Uploads trigger a full model build; keep them on a
			// stricter limit than reads.
			r.With(rt.mw.RateLimitUpload()).Post("/catalog", h.UploadCatalog)
			r.Get("/catalog/preview", h.PreviewCatalog)

			r.Get("/users", h.ListUsers)
			r.Get("/users/{userID}/purchases", h.UserPurchases)
			r.Get("/users/{userID}/recommendations", h.UserRecommendations)

			r.Get("/suggest", h.Suggest)
			r.Get("/products/{productID}/recommendations", h.ProductRecommendations)
			r.Post("/products/{productID}/filtered", h.FilteredRecommendations)
			r.Get("/products/{productID}/pricechart", h.PriceChart)

			r.Get("/popular", h.Popular)
			r.Get("/brands", h.Brands)
		})
	})

	return r
}

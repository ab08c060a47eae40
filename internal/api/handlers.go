// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package api provides the HTTP surface: Chi routing, middleware
// composition, and the JSON handlers over the session store and the
// recommendation engine.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lookalike-labs/lookalike/internal/config"
	"github.com/lookalike-labs/lookalike/internal/recommend"
	"github.com/lookalike-labs/lookalike/internal/session"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	store     *session.Store
	engine    *recommend.Engine
	config    *config.Config
	startTime time.Time
}

// NewHandler creates the handler set.
func NewHandler(store *session.Store, engine *recommend.Engine, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
	}
}

// session resolves the {sessionID} URL parameter to a live session,
// writing the error response itself when the session is unknown.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	s, err := h.store.Get(id)
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}
	return s, true
}

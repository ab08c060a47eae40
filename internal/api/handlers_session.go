// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lookalike-labs/lookalike/internal/logging"
)

// CreateSession handles POST /api/v1/sessions.
// Creates a fresh working session and returns its ID.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s := h.store.Create()

	logging.Ctx(r.Context()).Info().
		Str("session_id", s.ID).
		Int("active_sessions", h.store.Len()).
		Msg("Session created")

	respondSuccess(w, map[string]interface{}{
		"session_id": s.ID,
		"created_at": s.CreatedAt,
		"ttl":        h.store.Config().TTL.String(),
	}, started)
}

// DeleteSession handles DELETE /api/v1/sessions/{sessionID}.
// Drops the session and everything built inside it.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id := chi.URLParam(r, "sessionID")
	if err := h.store.Delete(id); err != nil {
		respondDomainError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("session_id", sanitizeLogValue(id)).
		Msg("Session deleted")

	respondSuccess(w, map[string]interface{}{"deleted": true}, started)
}

// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package api

import (
	"net/http"
	"time"

	"github.com/lookalike-labs/lookalike/internal/models"
)

// Version is the application version, overridable at link time.
var Version = "dev"

// Health handles GET /health with a full status report.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:    "healthy",
			Version:   Version,
			Uptime:    time.Since(h.startTime).Round(time.Second).String(),
			Timestamp: time.Now(),
			Sessions:  h.store.Len(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /health/live. Liveness: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /health/ready. Readiness mirrors liveness:
// all state is in-memory, so a running process can always serve.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"status": "ready", "sessions": h.store.Len()},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

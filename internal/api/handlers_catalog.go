// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lookalike-labs/lookalike/internal/catalog"
	"github.com/lookalike-labs/lookalike/internal/logging"
	"github.com/lookalike-labs/lookalike/internal/metrics"
	"github.com/lookalike-labs/lookalike/internal/models"
	"github.com/lookalike-labs/lookalike/internal/recommend"
	"github.com/lookalike-labs/lookalike/internal/session"
)

// buildTimeout bounds a full catalog parse + model build.
const buildTimeout = 60 * time.Second

// UploadCatalog handles POST /api/v1/sessions/{sessionID}/catalog.
// Accepts a multipart CSV upload, parses it, builds the similarity
// model, and swaps both into the session atomically.
func (h *Handler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if !s.AllowRebuild() {
		respondDomainError(w, session.ErrRebuildThrottled)
		return
	}
	if !s.TryBuild() {
		respondDomainError(w, recommend.ErrBuildInProgress)
		return
	}
	defer s.EndBuild()

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Catalog.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_UPLOAD",
			"expected a multipart upload with a 'file' field", err)
		return
	}
	defer file.Close()

	cat, err := catalog.Load(file, catalog.LoadOptions{
		Source:  header.Filename,
		MaxRows: h.config.Catalog.MaxRows,
	})
	if err != nil {
		metrics.RecordCatalogLoad("error", 0)
		respondDomainError(w, err)
		return
	}
	metrics.RecordCatalogLoad("success", cat.Len())

	ctx, cancel := context.WithTimeout(r.Context(), buildTimeout)
	defer cancel()
	model, err := h.engine.Build(ctx, cat)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	s.SetModel(cat, model)

	logging.Ctx(r.Context()).Info().
		Str("session_id", s.ID).
		Str("source", sanitizeLogValue(header.Filename)).
		Int("rows", cat.Len()).
		Int("vocab_size", model.VocabSize()).
		Int("components", model.Components()).
		Dur("build_time", model.BuildDuration()).
		Msg("Catalog uploaded and model built")

	respondSuccess(w, models.BuildInfo{
		Rows:        cat.Len(),
		VocabSize:   model.VocabSize(),
		Components:  model.Components(),
		BuildTimeMS: model.BuildDuration().Milliseconds(),
	}, started)
}

// PreviewCatalog handles GET /api/v1/sessions/{sessionID}/catalog/preview.
// Returns the first rows of the loaded catalog.
func (h *Handler) PreviewCatalog(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, _, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	rows := getIntParam(r, "rows", h.config.Catalog.PreviewRows)
	respondSuccess(w, map[string]interface{}{
		"source":    cat.Source(),
		"loaded_at": cat.LoadedAt(),
		"rows":      cat.Len(),
		"preview":   cat.Preview(rows),
	}, started)
}

// ListUsers handles GET /api/v1/sessions/{sessionID}/users.
// Returns the distinct user IDs present in the catalog.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, _, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, map[string]interface{}{"users": cat.Users()}, started)
}

// UserPurchases handles GET /api/v1/sessions/{sessionID}/users/{userID}/purchases.
// Returns the catalog rows attributed to the user and remembers the
// selection for later recommendation calls.
func (h *Handler) UserPurchases(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, _, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	userID := chi.URLParam(r, "userID")
	purchases, err := cat.PurchasesByUser(userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	s.SelectUser(userID)

	respondSuccess(w, map[string]interface{}{
		"user_id":   userID,
		"purchases": purchases,
	}, started)
}

// Brands handles GET /api/v1/sessions/{sessionID}/brands.
// Returns the distinct brand names in the catalog, sorted.
func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, _, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, map[string]interface{}{"brands": cat.Brands()}, started)
}

// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package api

import (
	"errors"
	"net/http"

	"github.com/lookalike-labs/lookalike/internal/catalog"
	"github.com/lookalike-labs/lookalike/internal/recommend"
	"github.com/lookalike-labs/lookalike/internal/session"
)

// respondDomainError maps domain sentinel errors to HTTP status codes
// and stable error codes. Unrecognized errors become a 500
// INTERNAL_ERROR without leaking internals to the client.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrMalformedInput):
		respondError(w, http.StatusBadRequest, "MALFORMED_INPUT", err.Error(), nil)
	case errors.Is(err, catalog.ErrInvalidIdentifier):
		respondError(w, http.StatusBadRequest, "INVALID_IDENTIFIER", err.Error(), nil)
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, catalog.ErrNoMatch):
		respondError(w, http.StatusNotFound, "NO_MATCH", err.Error(), nil)
	case errors.Is(err, recommend.ErrEmptyVocabulary):
		respondError(w, http.StatusUnprocessableEntity, "EMPTY_VOCABULARY", err.Error(), nil)
	case errors.Is(err, recommend.ErrEmptyCatalog):
		respondError(w, http.StatusUnprocessableEntity, "EMPTY_CATALOG", err.Error(), nil)
	case errors.Is(err, recommend.ErrBuildInProgress):
		respondError(w, http.StatusConflict, "BUILD_IN_PROGRESS", err.Error(), nil)
	case errors.Is(err, recommend.ErrNotBuilt), errors.Is(err, session.ErrNoCatalog):
		respondError(w, http.StatusConflict, "NOT_BUILT", "upload a catalog before requesting recommendations", nil)
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "SESSION_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, session.ErrRebuildThrottled):
		respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", err)
	}
}

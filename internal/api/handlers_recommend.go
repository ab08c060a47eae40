// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lookalike-labs/lookalike/internal/catalog"
	"github.com/lookalike-labs/lookalike/internal/models"
	"github.com/lookalike-labs/lookalike/internal/recommend"
)

// Suggest handles GET /api/v1/sessions/{sessionID}/suggest?q=.
// Free-text lookup over product descriptions; a query that matches a
// category instead of a description reports that in the error details.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query().Get("q")
	limit := getIntParam(r, "limit", h.config.Catalog.SuggestLimit)

	hits, kind, err := cat.Suggest(query, limit)
	if errors.Is(err, catalog.ErrNoMatch) {
		message := "no products match the query"
		if kind == catalog.MatchCategory {
			message = "the query matches a category; search by product description instead"
		}
		respondJSON(w, http.StatusNotFound, &models.APIResponse{
			Status: "error",
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    "NO_MATCH",
				Message: message,
				Details: map[string]interface{}{"match_kind": string(kind)},
			},
		})
		return
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"query":      query,
		"match_kind": string(kind),
		"products":   hits,
	}, started)
}

// ProductRecommendations handles
// GET /api/v1/sessions/{sessionID}/products/{productID}/recommendations?k=.
func (h *Handler) ProductRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, model, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	productID := chi.URLParam(r, "productID")
	k := getIntParam(r, "k", h.engine.Config().DefaultK)

	result, err := h.engine.Recommend(model, productID, k)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondResult(w, result, started)
}

// filteredRequest is the POST body for FilteredRecommendations. Either
// the numeric bounds or the UI band labels may be supplied; labels win
// when both are present.
type filteredRequest struct {
	MinPrice    float64 `json:"min_price" validate:"gte=0"`
	MaxPrice    float64 `json:"max_price" validate:"gte=0"`
	MinRating   float64 `json:"min_rating" validate:"gte=0,lte=5"`
	PriceBand   string  `json:"price_band" validate:"omitempty,max=64"`
	RatingFloor string  `json:"rating_floor" validate:"omitempty,max=64"`
	Brand       string  `json:"brand" validate:"omitempty,max=128"`
	K           int     `json:"k" validate:"gte=0,lte=500"`
}

// FilteredRecommendations handles
// POST /api/v1/sessions/{sessionID}/products/{productID}/filtered.
// Runs the full pipeline: top-K, dedup, price/rating filter, then the
// optional brand merge.
func (h *Handler) FilteredRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, model, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req filteredRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"request body must be valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	spec := recommend.FilterSpec{
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinRating: req.MinRating,
	}
	if band := strings.TrimSpace(req.PriceBand); band != "" {
		minP, maxP, err := recommend.ParsePriceBand(band)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
				"unrecognized price band", err)
			return
		}
		spec.MinPrice, spec.MaxPrice = minP, maxP
	}
	if floor := strings.TrimSpace(req.RatingFloor); floor != "" {
		minR, err := recommend.ParseRatingFloor(floor)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
				"unrecognized rating floor", err)
			return
		}
		spec.MinRating = minR
	}

	productID := chi.URLParam(r, "productID")
	k := req.K
	if k <= 0 {
		k = h.engine.Config().DefaultK
	}

	result, err := h.engine.FilterAndMerge(model, productID, k, spec, req.Brand)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondResult(w, result, started)
}

// PriceChart handles
// GET /api/v1/sessions/{sessionID}/products/{productID}/pricechart.
// Returns brand/price points for the query product's recommendations,
// shaped for the UI's comparison chart.
func (h *Handler) PriceChart(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, model, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	productID := chi.URLParam(r, "productID")
	k := getIntParam(r, "k", h.engine.Config().DefaultK)

	result, err := h.engine.Recommend(model, productID, k)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	points := make([]models.ChartPoint, 0, len(result.Items))
	for _, item := range result.Items {
		points = append(points, models.ChartPoint{
			Brand:         item.Product.Brand,
			OriginalPrice: item.Product.OriginalPrice,
			DiscountPrice: item.Product.DiscountPrice,
		})
	}
	respondSuccess(w, map[string]interface{}{
		"fallback": result.Fallback,
		"points":   points,
	}, started)
}

// queryFilterSpec reads the optional price/rating filters from query
// parameters. Band and floor labels win over the numeric bounds, as in
// the POST body.
func queryFilterSpec(q url.Values) (recommend.FilterSpec, bool, error) {
	var spec recommend.FilterSpec
	active := false
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"min_price", &spec.MinPrice},
		{"max_price", &spec.MaxPrice},
		{"min_rating", &spec.MinRating},
	} {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return spec, false, fmt.Errorf("invalid %s %q", f.name, raw)
		}
		*f.dst = v
		active = true
	}
	if band := strings.TrimSpace(q.Get("price_band")); band != "" {
		minP, maxP, err := recommend.ParsePriceBand(band)
		if err != nil {
			return spec, false, err
		}
		spec.MinPrice, spec.MaxPrice = minP, maxP
		active = true
	}
	if floor := strings.TrimSpace(q.Get("rating_floor")); floor != "" {
		minR, err := recommend.ParseRatingFloor(floor)
		if err != nil {
			return spec, false, err
		}
		spec.MinRating = minR
		active = true
	}
	return spec, active, nil
}

// UserRecommendations handles
// GET /api/v1/sessions/{sessionID}/users/{userID}/recommendations.
// Seeds the similarity lookup with each of the user's purchases; the
// same price/rating filters as the product pipeline apply when given
// as query parameters.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, model, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	spec, filtered, err := queryFilterSpec(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"unrecognized filter parameter", err)
		return
	}

	userID := chi.URLParam(r, "userID")
	var result recommend.Result
	if filtered {
		result, err = h.engine.FilterPurchases(model, userID, h.engine.Config().PurchaseK, spec)
	} else {
		result, err = h.engine.RecommendForPurchases(model, userID, h.engine.Config().PurchaseK)
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}
	s.SelectUser(userID)
	respondResult(w, result, started)
}

// Popular handles GET /api/v1/sessions/{sessionID}/popular.
// Returns the highly-rated, heavily-reviewed shelf.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, model, err := s.Model()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	result, err := h.engine.PopularShelf(model)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondResult(w, result, started)
}

// respondResult writes a recommendation result in the standard shape.
func respondResult(w http.ResponseWriter, result recommend.Result, started time.Time) {
	respondSuccess(w, map[string]interface{}{
		"fallback": result.Fallback,
		"items":    result.Items,
	}, started)
}

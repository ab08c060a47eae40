// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lookalike-labs/lookalike/internal/catalog"
	"github.com/lookalike-labs/lookalike/internal/metrics"
)

// Engine runs similarity builds and read-side recommendation operations.
// It is stateless across builds; models it produces are immutable, so
// reads need no locking. Sessions serialize their own rebuilds.
type Engine struct {
	config Config
	logger zerolog.Logger
}

// NewEngine creates an engine with defaults applied to cfg.
func NewEngine(cfg Config, logger zerolog.Logger) *Engine {
	return &Engine{
		config: cfg.withDefaults(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// Config returns the engine configuration after defaulting.
func (e *Engine) Config() Config { return e.config }

// Build vectorizes the catalog descriptions, reduces them, and computes
// the all-pairs similarity matrix eagerly. It checks ctx between stages
// so an abandoned upload does not burn a core.
func (e *Engine) Build(ctx context.Context, cat *catalog.Catalog) (*Model, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	start := time.Now()
	n := cat.Len()

	docs := make([]string, n)
	for i := 0; i < n; i++ {
		docs[i] = cat.At(i).Description
	}
	tf, err := vectorize(docs)
	if err != nil {
		return nil, fmt.Errorf("vectorizing %d descriptions: %w", n, err)
	}
	if err := contextCancelled(ctx); err != nil {
		return nil, err
	}

	var sim *Matrix
	components := 0
	if n == 1 {
		// A single product is trivially similar to itself only.
		sim = &Matrix{n: 1, scores: [][]float64{{1}}}
	} else {
		// Component count leaves one dimension of slack so the
		// reduction stays a strict projection.
		target := e.config.Components
		if target > n-1 {
			target = n - 1
		}
		reduced := reduceDimensions(tf.rows, tf.vocabSize, target)
		if err := contextCancelled(ctx); err != nil {
			return nil, err
		}
		if len(reduced) > 0 {
			components = len(reduced[0])
		}
		sim = newSimilarityMatrix(reduced)
	}
	if err := contextCancelled(ctx); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.SimilarityBuildDuration.Observe(elapsed.Seconds())
	metrics.SimilarityMatrixSize.Set(float64(n))
	e.logger.Info().
		Int("products", n).
		Int("vocab_size", tf.vocabSize).
		Int("components", components).
		Dur("duration", elapsed).
		Msg("Similarity model built")

	return &Model{
		catalog:       cat,
		similarity:    sim,
		vocabSize:     tf.vocabSize,
		components:    components,
		builtAt:       time.Now().UTC(),
		buildDuration: elapsed,
	}, nil
}

// Recommend returns the k products most similar to the identified one.
// An empty candidate pool (single-product catalog) falls back to the
// popular shelf.
func (e *Engine) Recommend(model *Model, productID string, k int) (Result, error) {
	if model == nil {
		return Result{}, ErrNotBuilt
	}
	if k <= 0 {
		k = e.config.DefaultK
	}
	row, err := model.catalog.Index(productID)
	if err != nil {
		return Result{}, err
	}
	metrics.RecommendationRequests.WithLabelValues("product").Inc()
	items := model.topK(row, k)
	if len(items) == 0 {
		return e.fallback(model), nil
	}
	return Result{Items: items}, nil
}

// RecommendForPurchases unions the per-seed top-K lists over a user's
// purchase history, in purchase order, deduplicated. Each seed excludes
// only itself; a product the user already owns can still surface from
// another seed's list.
func (e *Engine) RecommendForPurchases(model *Model, userID string, kPerSeed int) (Result, error) {
	if model == nil {
		return Result{}, ErrNotBuilt
	}
	if kPerSeed <= 0 {
		kPerSeed = e.config.PurchaseK
	}
	purchases, err := model.catalog.PurchasesByUser(userID)
	if err != nil {
		return Result{}, err
	}
	metrics.RecommendationRequests.WithLabelValues("purchases").Inc()

	var items []Scored
	for _, seed := range purchases {
		items = append(items, model.topK(seed.Row, kPerSeed)...)
	}
	items = Dedup(items)
	if len(items) == 0 {
		return e.fallback(model), nil
	}
	return Result{Items: items}, nil
}

// FilterPurchases applies the price/rating filters to the deduplicated
// purchase-seeded union, falling back to the popular shelf when nothing
// survives.
func (e *Engine) FilterPurchases(model *Model, userID string, kPerSeed int, spec FilterSpec) (Result, error) {
	res, err := e.RecommendForPurchases(model, userID, kPerSeed)
	if err != nil {
		return Result{}, err
	}
	if res.Fallback {
		return res, nil
	}
	items := Filter(res.Items, spec)
	if len(items) == 0 {
		return e.fallback(model), nil
	}
	return Result{Items: items}, nil
}

// FilterAndMerge runs the full post-selection pipeline for a product:
// top-K selection, dedup, price/rating filtering, optional brand merge
// scoped to the query product's individual category, and the popular
// fallback when everything is filtered away.
func (e *Engine) FilterAndMerge(model *Model, productID string, k int, spec FilterSpec, brand string) (Result, error) {
	if model == nil {
		return Result{}, ErrNotBuilt
	}
	if k <= 0 {
		k = e.config.DefaultK
	}
	row, err := model.catalog.Index(productID)
	if err != nil {
		return Result{}, err
	}
	metrics.RecommendationRequests.WithLabelValues("filtered").Inc()

	items := Dedup(model.topK(row, k))
	items = Filter(items, spec)
	if brand != "" {
		items = MergeBrand(items, model.catalog, brand, model.catalog.At(row).IndividualCategory, e.config.BrandMergeLimit)
	}
	if len(items) == 0 {
		return e.fallback(model), nil
	}
	return Result{Items: items}, nil
}

// PopularShelf returns the catalog's popular products directly.
func (e *Engine) PopularShelf(model *Model) (Result, error) {
	if model == nil {
		return Result{}, ErrNotBuilt
	}
	metrics.RecommendationRequests.WithLabelValues("popular").Inc()
	return Result{
		Items: Popular(model.catalog, e.config.PopularMinRating, e.config.PopularMinReviews, e.config.PopularLimit),
	}, nil
}

func (e *Engine) fallback(model *Model) Result {
	metrics.FallbackServed.Inc()
	e.logger.Debug().Msg("Recommendation pipeline empty, serving popular fallback")
	return Result{
		Items:    Popular(model.catalog, e.config.PopularMinRating, e.config.PopularMinReviews, e.config.PopularLimit),
		Fallback: true,
	}
}

// contextCancelled reports ctx cancellation as its error, or nil.
func contextCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

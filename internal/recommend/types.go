// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package recommend implements the content-based similarity pipeline:
// TF-IDF vectorization of product descriptions, truncated SVD reduction,
// an eagerly built all-pairs cosine similarity matrix, top-K selection,
// and the filter/merge/fallback stages applied to selections.
//
// A Model is immutable once built and safe for concurrent readers. The
// Engine serializes builds and exposes the read-side operations.
package recommend

import (
	"time"

	"github.com/lookalike-labs/lookalike/internal/catalog"
)

// Scored pairs a product with its similarity score against the query
// product (cosine in reduced space, [-1, 1], in practice [0, 1]).
type Scored struct {
	Product catalog.Product `json:"product"`
	Score   float64         `json:"score"`
}

// Model is one immutable similarity build over a catalog snapshot.
type Model struct {
	catalog    *catalog.Catalog
	similarity *Matrix

	// vocabSize is the number of distinct terms after stop-word removal.
	vocabSize int

	// components is the realized reduction dimensionality, capped by
	// catalog size and vocabulary size.
	components int

	builtAt       time.Time
	buildDuration time.Duration
}

// Catalog returns the catalog snapshot this model was built from.
func (m *Model) Catalog() *catalog.Catalog { return m.catalog }

// Similarity returns the all-pairs similarity matrix.
func (m *Model) Similarity() *Matrix { return m.similarity }

// VocabSize returns the vocabulary size of the TF-IDF stage.
func (m *Model) VocabSize() int { return m.vocabSize }

// Components returns the realized SVD component count.
func (m *Model) Components() int { return m.components }

// BuiltAt returns when the build finished.
func (m *Model) BuiltAt() time.Time { return m.builtAt }

// BuildDuration returns how long the build took.
func (m *Model) BuildDuration() time.Duration { return m.buildDuration }

// Result is a recommendation set handed to the presentation layer.
type Result struct {
	// Items are the recommended products, best first.
	Items []Scored `json:"items"`

	// Fallback is true when the primary pipeline produced nothing and
	// Items holds popular products instead (scores are zero then).
	Fallback bool `json:"fallback"`
}

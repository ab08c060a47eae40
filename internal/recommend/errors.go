// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import "errors"

var (
	// ErrEmptyVocabulary indicates no usable terms survived tokenization
	// and stop-word removal across the whole catalog.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// ErrNotBuilt indicates a recommendation was requested before a
	// similarity model was built.
	ErrNotBuilt = errors.New("similarity model not built")

	// ErrBuildInProgress indicates a concurrent rebuild attempt on the
	// same session was rejected.
	ErrBuildInProgress = errors.New("similarity build already in progress")

	// ErrEmptyCatalog indicates a build was attempted on a catalog with
	// no products.
	ErrEmptyCatalog = errors.New("empty catalog")
)

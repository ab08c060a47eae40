// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package catalog

import "errors"

// Sentinel errors for catalog loading and lookup. Callers classify with
// errors.Is; the API layer maps each to a stable error code.
var (
	// ErrMalformedInput indicates the uploaded CSV is unreadable or is
	// missing one of the required columns.
	ErrMalformedInput = errors.New("malformed catalog input")

	// ErrInvalidIdentifier indicates a product identifier that cannot be
	// canonicalized to a decimal integer string.
	ErrInvalidIdentifier = errors.New("invalid product identifier")

	// ErrProductNotFound indicates an identifier absent from the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrNoMatch indicates a search or filter produced zero results.
	ErrNoMatch = errors.New("no matching products")
)

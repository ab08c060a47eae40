// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package catalog

import (
	"fmt"
	"strings"
)

// MatchKind classifies a suggestion query that returned no description
// matches, so the UI can steer the user.
type MatchKind string

const (
	// MatchDescription means description matches were found.
	MatchDescription MatchKind = "description"

	// MatchCategory means the query matched only category labels; the
	// caller should ask for a description instead.
	MatchCategory MatchKind = "category"

	// MatchNone means the query matched nothing at all.
	MatchNone MatchKind = "none"
)

// Searcher finds products by free text. The engine's similarity pipeline
// sits behind this boundary so the matching strategy can change without
// touching callers.
type Searcher interface {
	// Suggest returns up to limit products whose description contains
	// query (case-insensitive), in catalog order. A query with no
	// description match reports its MatchKind alongside ErrNoMatch.
	Suggest(query string, limit int) ([]Product, MatchKind, error)
}

// DefaultSuggestLimit bounds suggestion lists shown for a free-text query.
const DefaultSuggestLimit = 20

var _ Searcher = (*Catalog)(nil)

// Suggest implements Searcher with case-insensitive substring matching
// over Description.
func (c *Catalog) Suggest(query string, limit int) ([]Product, MatchKind, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, MatchNone, fmt.Errorf("empty query: %w", ErrNoMatch)
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	var out []Product
	for i := range c.products {
		if strings.Contains(strings.ToLower(c.products[i].Description), q) {
			out = append(out, c.products[i])
			if len(out) == limit {
				break
			}
		}
	}
	if len(out) > 0 {
		return out, MatchDescription, nil
	}

	// No description hit. Distinguish a category-shaped query from a
	// plain miss so the UI can prompt for a description instead.
	for i := range c.products {
		p := &c.products[i]
		if strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.IndividualCategory), q) {
			return nil, MatchCategory, fmt.Errorf("query %q matches a category, not a description: %w", query, ErrNoMatch)
		}
	}
	return nil, MatchNone, fmt.Errorf("query %q: %w", query, ErrNoMatch)
}

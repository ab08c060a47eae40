// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lookalike-labs/lookalike/internal/catalog"
)

// FilterSpec narrows a recommendation set. Zero values for MaxPrice and
// MinRating mean "unbounded"; MinPrice 0 is a valid lower bound.
type FilterSpec struct {
	MinPrice  float64 `json:"min_price" validate:"gte=0"`
	MaxPrice  float64 `json:"max_price" validate:"gte=0"`
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=5"`
}

// Dedup removes duplicate product IDs from items, keeping the first
// occurrence and preserving order.
func Dedup(items []Scored) []Scored {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		if _, dup := seen[it.Product.ID]; dup {
			continue
		}
		seen[it.Product.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Filter keeps items whose discount price falls inside [MinPrice,
// MaxPrice] and whose rating is at least MinRating, preserving order.
// Both conditions must hold.
func Filter(items []Scored, spec FilterSpec) []Scored {
	maxPrice := spec.MaxPrice
	if maxPrice <= 0 {
		maxPrice = float64(1<<63 - 1)
	}
	out := items[:0:0]
	for _, it := range items {
		p := it.Product
		if p.DiscountPrice < spec.MinPrice || p.DiscountPrice > maxPrice {
			continue
		}
		if p.Rating < spec.MinRating {
			continue
		}
		out = append(out, it)
	}
	return out
}

// MergeBrand appends to items up to limit products of the given brand
// whose individual category matches indivCategory, in catalog order.
// Brand and category compare exactly, matching the catalog's spelling.
// Products already present in items are skipped, so the merged set never
// contains duplicates.
func MergeBrand(items []Scored, cat *catalog.Catalog, brand, indivCategory string, limit int) []Scored {
	if brand == "" || limit <= 0 {
		return items
	}
	present := make(map[string]struct{}, len(items))
	for _, it := range items {
		present[it.Product.ID] = struct{}{}
	}
	added := 0
	for _, p := range cat.Products() {
		if added == limit {
			break
		}
		if p.Brand != brand {
			continue
		}
		if p.IndividualCategory != indivCategory {
			continue
		}
		if _, dup := present[p.ID]; dup {
			continue
		}
		present[p.ID] = struct{}{}
		items = append(items, Scored{Product: p})
		added++
	}
	return items
}

// Popular thresholds mirror the storefront's "bestsellers" shelf.
const (
	DefaultPopularMinRating  = 4.0
	DefaultPopularMinReviews = 900
	DefaultPopularLimit      = 10
)

// Popular returns the catalog's popular products: rating strictly above
// minRating and review count strictly above minReviews, ordered by review
// count descending (stable on catalog order), capped at limit. It backs
// every empty recommendation or filter result.
func Popular(cat *catalog.Catalog, minRating float64, minReviews, limit int) []Scored {
	var picks []catalog.Product
	for _, p := range cat.Products() {
		if p.Rating > minRating && p.Reviews > minReviews {
			picks = append(picks, p)
		}
	}
	sort.SliceStable(picks, func(a, b int) bool {
		return picks[a].Reviews > picks[b].Reviews
	})
	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}
	out := make([]Scored, len(picks))
	for i, p := range picks {
		out[i] = Scored{Product: p}
	}
	return out
}

// ParsePriceBand reads storefront price band labels of the form
// "1000 to 2000" into a FilterSpec price range.
func ParsePriceBand(band string) (minPrice, maxPrice float64, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(band)), " to ", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed price band %q", band)
	}
	minPrice, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed price band %q", band)
	}
	maxPrice, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || maxPrice < minPrice {
		return 0, 0, fmt.Errorf("malformed price band %q", band)
	}
	return minPrice, maxPrice, nil
}

// ParseRatingFloor reads storefront rating labels of the form
// "3 and above" into a minimum rating.
func ParseRatingFloor(label string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.TrimSuffix(s, " and above")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f > 5 {
		return 0, fmt.Errorf("malformed rating floor %q", label)
	}
	return f, nil
}

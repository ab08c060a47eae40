// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package catalog loads and indexes product catalogs uploaded as CSV.
//
// A Catalog is an ordered, immutable snapshot of one upload: row order is
// preserved exactly as read, identifiers are canonicalized once at load
// time, and lookup structures are built eagerly. Catalogs are safe for
// concurrent readers; they are never mutated after Load returns.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product is a single catalog row.
type Product struct {
	// ID is the canonical product identifier ("007.0" loads as "7").
	ID string `json:"id"`

	// UserID attributes the row to the purchasing user, when known.
	UserID string `json:"user_id,omitempty"`

	// Brand is the product's brand name.
	Brand string `json:"brand"`

	// Description is the free-text description the similarity engine
	// vectorizes.
	Description string `json:"description"`

	// Category is the top-level category (e.g. "Western").
	Category string `json:"category"`

	// IndividualCategory is the finer-grained category (e.g. "jeans").
	IndividualCategory string `json:"individual_category"`

	// OriginalPrice is the undiscounted price in rupees.
	OriginalPrice float64 `json:"original_price"`

	// DiscountPrice is the discounted price in rupees. Filters apply to
	// this field.
	DiscountPrice float64 `json:"discount_price"`

	// Rating is the average customer rating, 0 when unrated.
	Rating float64 `json:"rating"`

	// Reviews is the review count.
	Reviews int `json:"reviews"`

	// URL links to the product page.
	URL string `json:"url,omitempty"`

	// DiscountOffer is the free-text offer label (e.g. "50% OFF").
	DiscountOffer string `json:"discount_offer,omitempty"`

	// Row is the zero-based position of this product in the catalog,
	// which is also its row in the similarity matrix.
	Row int `json:"-"`
}

// Catalog is an immutable snapshot of one uploaded product dataset.
type Catalog struct {
	products []Product
	byID     map[string]int // canonical ID -> first row bearing it
	source   string
	loadedAt time.Time
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns all products in upload order. Callers must not modify
// the returned slice.
func (c *Catalog) Products() []Product { return c.products }

// Source returns the name the catalog was loaded under (typically the
// uploaded filename).
func (c *Catalog) Source() string { return c.source }

// LoadedAt returns the load timestamp.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// At returns the product at row i.
func (c *Catalog) At(i int) Product { return c.products[i] }

// Index resolves a canonical identifier to its row. When duplicate IDs
// exist in the source data the first occurrence wins.
func (c *Catalog) Index(id string) (int, error) {
	i, ok := c.byID[id]
	if !ok {
		return 0, fmt.Errorf("product %q: %w", id, ErrProductNotFound)
	}
	return i, nil
}

// Get resolves a canonical identifier to its product.
func (c *Catalog) Get(id string) (Product, error) {
	i, err := c.Index(id)
	if err != nil {
		return Product{}, err
	}
	return c.products[i], nil
}

// Users returns the distinct user IDs in first-seen order, skipping rows
// without one.
func (c *Catalog) Users() []string {
	seen := make(map[string]struct{})
	var users []string
	for i := range c.products {
		id := c.products[i].UserID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		users = append(users, id)
	}
	return users
}

// PurchasesByUser returns the products attributed to userID in upload
// order. An unknown user yields ErrNoMatch.
func (c *Catalog) PurchasesByUser(userID string) ([]Product, error) {
	var out []Product
	for i := range c.products {
		if c.products[i].UserID == userID {
			out = append(out, c.products[i])
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNoMatch)
	}
	return out, nil
}

// Brands returns the distinct brand names in first-seen order.
func (c *Catalog) Brands() []string {
	seen := make(map[string]struct{})
	var brands []string
	for i := range c.products {
		b := c.products[i].Brand
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	return brands
}

// Preview returns the first n products, or all of them when n exceeds the
// catalog size. n <= 0 yields an empty slice.
func (c *Catalog) Preview(n int) []Product {
	if n <= 0 {
		return nil
	}
	if n > len(c.products) {
		n = len(c.products)
	}
	out := make([]Product, n)
	copy(out, c.products[:n])
	return out
}

// CanonicalID normalizes a raw product identifier. Identifiers arriving as
// floats ("16253814.0") or with surrounding whitespace reduce to their
// plain decimal form. Non-numeric input is rejected with
// ErrInvalidIdentifier.
func CanonicalID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty identifier: %w", ErrInvalidIdentifier)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("identifier %q: %w", raw, ErrInvalidIdentifier)
	}
	n := int64(f)
	if float64(n) != f {
		return "", fmt.Errorf("identifier %q is not integral: %w", raw, ErrInvalidIdentifier)
	}
	return strconv.FormatInt(n, 10), nil
}

// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

// Config tunes the similarity pipeline. Zero values take the defaults
// applied by NewEngine.
type Config struct {
	// Components is the target SVD dimensionality. The realized count
	// is capped by catalog and vocabulary size.
	Components int `koanf:"components" json:"components" validate:"gte=0,lte=1000"`

	// DefaultK is the recommendation count for a selected product.
	DefaultK int `koanf:"default_k" json:"default_k" validate:"gte=0,lte=100"`

	// PurchaseK is the per-seed recommendation count when recommending
	// from a user's purchase history.
	PurchaseK int `koanf:"purchase_k" json:"purchase_k" validate:"gte=0,lte=100"`

	// BrandMergeLimit caps how many same-brand products a brand merge
	// may append.
	BrandMergeLimit int `koanf:"brand_merge_limit" json:"brand_merge_limit" validate:"gte=0,lte=100"`

	// PopularMinRating / PopularMinReviews / PopularLimit control the
	// popular-products fallback shelf.
	PopularMinRating  float64 `koanf:"popular_min_rating" json:"popular_min_rating" validate:"gte=0,lte=5"`
	PopularMinReviews int     `koanf:"popular_min_reviews" json:"popular_min_reviews" validate:"gte=0"`
	PopularLimit      int     `koanf:"popular_limit" json:"popular_limit" validate:"gte=0,lte=100"`
}

// Pipeline defaults, matching the storefront's tuning.
const (
	DefaultComponents = 100
	DefaultK          = 12
	DefaultPurchaseK  = 2
	DefaultBrandMerge = 4
)

// withDefaults fills zero-valued fields.
func (c Config) withDefaults() Config {
	if c.Components <= 0 {
		c.Components = DefaultComponents
	}
	if c.DefaultK <= 0 {
		c.DefaultK = DefaultK
	}
	if c.PurchaseK <= 0 {
		c.PurchaseK = DefaultPurchaseK
	}
	if c.BrandMergeLimit <= 0 {
		c.BrandMergeLimit = DefaultBrandMerge
	}
	if c.PopularMinRating <= 0 {
		c.PopularMinRating = DefaultPopularMinRating
	}
	if c.PopularMinReviews <= 0 {
		c.PopularMinReviews = DefaultPopularMinReviews
	}
	if c.PopularLimit <= 0 {
		c.PopularLimit = DefaultPopularLimit
	}
	return c
}

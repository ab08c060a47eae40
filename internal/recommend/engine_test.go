// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lookalike-labs/lookalike/internal/catalog"
)

// row formats one catalog CSV data row for tests.
func row(id, user, brand, description, category, indivCategory string, orig, disc, rating float64, reviews int) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%v,%v,%v,%d,https://example.com/%s,10%% OFF",
		id, user, brand, description, category, indivCategory, orig, disc, rating, reviews, id)
}

// mustCatalog loads a catalog from test rows.
func mustCatalog(t *testing.T, rows ...string) *catalog.Catalog {
	t.Helper()
	csv := "Product_id,UserID,BrandName,Description,Category,Individual_category,OriginalPrice (in Rs),DiscountPrice (in Rs),Ratings,Reviews,URL,DiscountOffer\n" +
		strings.Join(rows, "\n")
	cat, err := catalog.Load(strings.NewReader(csv), catalog.LoadOptions{Source: "test"})
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return cat
}

func testEngine() *Engine {
	return NewEngine(Config{}, zerolog.Nop())
}

// shirtCatalog has three near-identical shirts and two unrelated
// products, so similarity ordering is predictable.
func shirtCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return mustCatalog(t,
		row("1", "alice", "Roadster", "red solid cotton shirt", "Western", "shirts", 999, 499, 4.2, 1200),
		row("2", "bob", "Roadster", "blue solid cotton shirt", "Western", "shirts", 999, 549, 4.4, 2000),
		row("3", "bob", "Levis", "green solid cotton shirt", "Western", "shirts", 1299, 899, 3.9, 600),
		row("4", "alice", "HRX", "running mesh sports shoes", "Sports", "shoes", 2999, 1999, 4.6, 3000),
		row("5", "carol", "Mast", "leather office wallet", "Accessories", "wallets", 799, 399, 4.1, 950),
	)
}

func buildModel(t *testing.T, e *Engine, cat *catalog.Catalog) *Model {
	t.Helper()
	model, err := e.Build(context.Background(), cat)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return model
}

func TestBuild_EmptyCatalog(t *testing.T) {
	e := testEngine()
	if _, err := e.Build(context.Background(), nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyCatalog", err)
	}
}

func TestBuild_EmptyVocabulary(t *testing.T) {
	e := testEngine()
	cat := mustCatalog(t,
		row("1", "u", "A", "the and of", "W", "s", 100, 50, 4, 10),
		row("2", "u", "A", "a an", "W", "s", 100, 50, 4, 10),
	)
	_, err := e.Build(context.Background(), cat)
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("Build() error = %v, want ErrEmptyVocabulary", err)
	}
}

func TestBuild_CanceledContext(t *testing.T) {
	e := testEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Build(ctx, shirtCatalog(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuild_SingleProduct(t *testing.T) {
	e := testEngine()
	cat := mustCatalog(t, row("1", "u", "A", "red cotton shirt", "W", "shirts", 100, 50, 4, 10))

	model := buildModel(t, e, cat)
	if model.Similarity().Size() != 1 {
		t.Fatalf("Size() = %d, want 1", model.Similarity().Size())
	}
	if model.Similarity().At(0, 0) != 1 {
		t.Errorf("At(0,0) = %v, want 1", model.Similarity().At(0, 0))
	}
}

func TestBuild_ComponentsCapped(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	// Five products leave at most four components regardless of the
	// configured target.
	if model.Components() > 4 {
		t.Errorf("Components() = %d, want <= 4", model.Components())
	}
	if model.VocabSize() == 0 {
		t.Error("VocabSize() = 0, want > 0")
	}
}

func TestRecommend_Ordering(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	result, err := e.Recommend(model, "1", 4)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if result.Fallback {
		t.Fatal("Fallback = true, want direct recommendations")
	}
	if len(result.Items) != 4 {
		t.Fatalf("len(Items) = %d, want 4", len(result.Items))
	}

	// The other shirts must outrank shoes and wallet.
	first, second := result.Items[0].Product.ID, result.Items[1].Product.ID
	if !((first == "2" && second == "3") || (first == "3" && second == "2")) {
		t.Errorf("top items = %v, %v; want the two other shirts", first, second)
	}
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].Score > result.Items[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestRecommend_ExcludesSelf(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	result, err := e.Recommend(model, "1", 100)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Items) != 4 {
		t.Fatalf("len(Items) = %d, want n-1 = 4", len(result.Items))
	}
	for _, it := range result.Items {
		if it.Product.ID == "1" {
			t.Error("query product appeared in its own recommendations")
		}
	}
}

func TestRecommend_UnknownProduct(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	_, err := e.Recommend(model, "9999", 5)
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("Recommend() error = %v, want ErrProductNotFound", err)
	}
}

func TestRecommend_NilModel(t *testing.T) {
	e := testEngine()
	if _, err := e.Recommend(nil, "1", 5); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("Recommend(nil) error = %v, want ErrNotBuilt", err)
	}
}

func TestRecommend_SingleProductFallsBack(t *testing.T) {
	e := testEngine()
	cat := mustCatalog(t, row("1", "u", "A", "red cotton shirt", "W", "shirts", 100, 50, 4.5, 2000))
	model := buildModel(t, e, cat)

	result, err := e.Recommend(model, "1", 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !result.Fallback {
		t.Error("Fallback = false, want true for an empty candidate pool")
	}
	// The lone product qualifies for the popular shelf.
	if len(result.Items) != 1 || result.Items[0].Product.ID != "1" {
		t.Errorf("fallback items = %v, want the popular shelf", result.Items)
	}
}

func TestRecommendForPurchases(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	// alice's seeds are 1 and 4 in purchase order; each seed excludes
	// only itself from its own top-2.
	result, err := e.RecommendForPurchases(model, "alice", 2)
	if err != nil {
		t.Fatalf("RecommendForPurchases() error = %v", err)
	}
	if result.Fallback {
		t.Fatal("Fallback = true, want seeded recommendations")
	}
	seen := map[string]int{}
	for _, it := range result.Items {
		seen[it.Product.ID]++
	}
	// The shirt seed's top-2 are the other similar shirts.
	for _, id := range []string{"2", "3"} {
		if seen[id] == 0 {
			t.Errorf("product %s missing from the seeded union", id)
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("product %s appeared %d times, want deduplicated", id, n)
		}
	}
}

func TestRecommendForPurchases_KeepsOwnedFromOtherSeeds(t *testing.T) {
	e := testEngine()
	cat := mustCatalog(t,
		row("1", "alice", "Roadster", "red solid cotton shirt", "Western", "shirts", 999, 499, 4.2, 1200),
		row("2", "alice", "Roadster", "blue solid cotton shirt", "Western", "shirts", 999, 549, 4.4, 2000),
		row("3", "bob", "Levis", "green solid cotton shirt", "Western", "shirts", 1299, 899, 3.9, 600),
		row("4", "bob", "HRX", "running mesh sports shoes", "Sports", "shoes", 2999, 1999, 4.6, 3000),
	)
	model := buildModel(t, e, cat)

	result, err := e.RecommendForPurchases(model, "alice", 2)
	if err != nil {
		t.Fatalf("RecommendForPurchases() error = %v", err)
	}
	// Seed 1 contributes {2, 3} and seed 2 contributes {1, 3}: the
	// union keeps alice's own shirts surfaced by the other seed, and
	// 3 is deduplicated.
	seen := map[string]bool{}
	for _, it := range result.Items {
		seen[it.Product.ID] = true
	}
	for _, id := range []string{"1", "2", "3"} {
		if !seen[id] {
			t.Errorf("product %s missing from the seeded union", id)
		}
	}
	if len(result.Items) != 3 {
		t.Errorf("items = %d, want 3 after dedup", len(result.Items))
	}
}

func TestFilterPurchases(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	result, err := e.FilterPurchases(model, "alice", 2, FilterSpec{MinRating: 4.0})
	if err != nil {
		t.Fatalf("FilterPurchases() error = %v", err)
	}
	if result.Fallback {
		t.Fatal("Fallback = true, want filtered seeded recommendations")
	}
	for _, it := range result.Items {
		if it.Product.Rating < 4.0 {
			t.Errorf("product %s rating %.1f below the floor", it.Product.ID, it.Product.Rating)
		}
		if it.Product.ID == "3" {
			t.Error("product 3 rates 3.9 and should be filtered out")
		}
	}
}

func TestFilterPurchases_FallbackWhenFilteredAway(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	result, err := e.FilterPurchases(model, "alice", 2, FilterSpec{MinRating: 5})
	if err != nil {
		t.Fatalf("FilterPurchases() error = %v", err)
	}
	if !result.Fallback {
		t.Error("Fallback = false, want the popular shelf when nothing survives")
	}
	if len(result.Items) == 0 {
		t.Error("fallback items empty, want the popular shelf")
	}
}

func TestRecommendForPurchases_UnknownUser(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	_, err := e.RecommendForPurchases(model, "mallory", 2)
	if !errors.Is(err, catalog.ErrNoMatch) {
		t.Errorf("error = %v, want ErrNoMatch", err)
	}
}

func TestFilterAndMerge(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	// Price range keeps only the other solid shirts under 900.
	spec := FilterSpec{MinPrice: 500, MaxPrice: 900, MinRating: 0}
	result, err := e.FilterAndMerge(model, "1", 4, spec, "")
	if err != nil {
		t.Fatalf("FilterAndMerge() error = %v", err)
	}
	if result.Fallback {
		t.Fatal("Fallback = true, want filtered results")
	}
	for _, it := range result.Items {
		p := it.Product
		if p.DiscountPrice < 500 || p.DiscountPrice > 900 {
			t.Errorf("product %s price %v outside filter", p.ID, p.DiscountPrice)
		}
	}
}

func TestFilterAndMerge_BrandMergeExcludesPresent(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	// Product 2 (Roadster shirt) ranks in the top-K for product 1; the
	// brand merge for Roadster shirts must not append it a second time.
	result, err := e.FilterAndMerge(model, "1", 4, FilterSpec{}, "Roadster")
	if err != nil {
		t.Fatalf("FilterAndMerge() error = %v", err)
	}
	seen := map[string]int{}
	for _, it := range result.Items {
		seen[it.Product.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("product %s appeared %d times after brand merge", id, n)
		}
	}
}

func TestFilterAndMerge_FallbackWhenFilteredAway(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	// No product costs over 100000.
	spec := FilterSpec{MinPrice: 100000}
	result, err := e.FilterAndMerge(model, "1", 4, spec, "")
	if err != nil {
		t.Fatalf("FilterAndMerge() error = %v", err)
	}
	if !result.Fallback {
		t.Fatal("Fallback = false, want popular fallback")
	}
	if len(result.Items) == 0 {
		t.Error("fallback should serve the popular shelf")
	}
}

func TestPopularShelf(t *testing.T) {
	e := testEngine()
	model := buildModel(t, e, shirtCatalog(t))

	result, err := e.PopularShelf(model)
	if err != nil {
		t.Fatalf("PopularShelf() error = %v", err)
	}
	// Rating > 4.0 and reviews > 900: products 4, 2, 1, 5 by review count.
	want := []string{"4", "2", "1", "5"}
	if !equalIDs(ids(result.Items), want) {
		t.Errorf("PopularShelf = %v, want %v", ids(result.Items), want)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Components != DefaultComponents {
		t.Errorf("Components = %d, want %d", cfg.Components, DefaultComponents)
	}
	if cfg.DefaultK != DefaultK {
		t.Errorf("DefaultK = %d, want %d", cfg.DefaultK, DefaultK)
	}
	if cfg.PurchaseK != DefaultPurchaseK {
		t.Errorf("PurchaseK = %d, want %d", cfg.PurchaseK, DefaultPurchaseK)
	}
	if cfg.PopularMinRating != DefaultPopularMinRating {
		t.Errorf("PopularMinRating = %v, want %v", cfg.PopularMinRating, DefaultPopularMinRating)
	}
}

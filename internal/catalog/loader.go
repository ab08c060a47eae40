// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxRows caps how many data rows a single upload may contribute.
// Rows past the cap are ignored, not rejected.
const DefaultMaxRows = 10000

// Required CSV header names, exactly as exported by the upstream dataset.
const (
	colProductID     = "Product_id"
	colUserID        = "UserID"
	colBrand         = "BrandName"
	colDescription   = "Description"
	colCategory      = "Category"
	colIndivCategory = "Individual_category"
	colOriginalPrice = "OriginalPrice (in Rs)"
	colDiscountPrice = "DiscountPrice (in Rs)"
	colRatings       = "Ratings"
	colReviews       = "Reviews"
	colURL           = "URL"
	colDiscountOffer = "DiscountOffer"
)

var requiredColumns = []string{
	colProductID, colUserID, colBrand, colDescription, colCategory,
	colIndivCategory, colOriginalPrice, colDiscountPrice, colRatings,
	colReviews, colURL, colDiscountOffer,
}

// LoadOptions tunes catalog parsing.
type LoadOptions struct {
	// Source names the upload for logs and metadata (typically the
	// filename). Optional.
	Source string

	// MaxRows caps retained data rows; zero means DefaultMaxRows.
	MaxRows int
}

// Load parses a product catalog CSV. The header row must contain every
// required column (extra columns are ignored). A row whose identifier
// fails canonicalization aborts the load with ErrInvalidIdentifier;
// unparsable numeric cells become zero values instead.
func Load(r io.Reader, opts LoadOptions) (*Catalog, error) {
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows handled per-cell below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w: %v", ErrMalformedInput, err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		byID:     make(map[string]int),
		source:   opts.Source,
		loadedAt: time.Now().UTC(),
	}
	for len(cat.products) < maxRows {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w: %v", len(cat.products)+2, ErrMalformedInput, err)
		}
		id, err := CanonicalID(cell(record, cols[colProductID]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(cat.products)+2, err)
		}
		p := Product{
			ID:                 id,
			UserID:             strings.TrimSpace(cell(record, cols[colUserID])),
			Brand:              strings.TrimSpace(cell(record, cols[colBrand])),
			Description:        strings.TrimSpace(cell(record, cols[colDescription])),
			Category:           strings.TrimSpace(cell(record, cols[colCategory])),
			IndividualCategory: strings.TrimSpace(cell(record, cols[colIndivCategory])),
			OriginalPrice:      parsePrice(cell(record, cols[colOriginalPrice])),
			DiscountPrice:      parsePrice(cell(record, cols[colDiscountPrice])),
			Rating:             parseFloat(cell(record, cols[colRatings])),
			Reviews:            parseCount(cell(record, cols[colReviews])),
			URL:                strings.TrimSpace(cell(record, cols[colURL])),
			DiscountOffer:      strings.TrimSpace(cell(record, cols[colDiscountOffer])),
			Row:                len(cat.products),
		}
		if _, dup := cat.byID[p.ID]; !dup {
			cat.byID[p.ID] = p.Row
		}
		cat.products = append(cat.products, p)
	}

	return cat, nil
}

// indexColumns maps required column names to their positions, rejecting a
// header that misses any of them.
func indexColumns(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}
	cols := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns %v: %w", missing, ErrMalformedInput)
	}
	return cols, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// parsePrice reads a rupee amount, tolerating currency prefixes and
// thousands separators ("Rs. 1,299").
func parsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.ReplaceAll(s, ",", "")
	return parseFloat(s)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseCount reads an integer count, accepting float-formatted cells
// ("1213.0") as exported by some spreadsheet tools.
func parseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

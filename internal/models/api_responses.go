// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package models holds the wire types shared by all HTTP endpoints.
package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by every HTTP
// endpoint, for both success and error cases.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "fallback": false},
//	  "metadata": {
//	    "timestamp": "2026-09-01T12:00:00Z",
//	    "query_time_ms": 45
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "PRODUCT_NOT_FOUND",
//	    "message": "product \"99\" not found"
//	  },
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
//
// Fields:
//   - Timestamp: server time when the response was generated (RFC3339)
//   - QueryTimeMS: handler execution time in milliseconds
//   - Rows: catalog rows involved, on catalog-shaped responses
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Rows        int       `json:"rows,omitempty"`
}

// APIError is the structured error payload.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - MALFORMED_INPUT: unreadable catalog upload
//   - INVALID_IDENTIFIER: product ID fails canonicalization
//   - PRODUCT_NOT_FOUND / SESSION_NOT_FOUND / NO_MATCH
//   - EMPTY_VOCABULARY: catalog descriptions carry no usable terms
//   - BUILD_IN_PROGRESS / NOT_BUILT
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Sessions  int       `json:"sessions"`
}

// BuildInfo summarizes a similarity build for upload responses.
type BuildInfo struct {
	Rows        int   `json:"rows"`
	VocabSize   int   `json:"vocab_size"`
	Components  int   `json:"components"`
	BuildTimeMS int64 `json:"build_time_ms"`
}

// ChartPoint is one product's entry in the price-comparison chart: the
// brand labels the x-axis, the two prices form the series.
type ChartPoint struct {
	Brand         string  `json:"brand"`
	OriginalPrice float64 `json:"original_price"`
	DiscountPrice float64 `json:"discount_price"`
}

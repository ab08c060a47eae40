// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package config defines the application configuration and loads it from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/lookalike-labs/lookalike/internal/recommend"
	"github.com/lookalike-labs/lookalike/internal/session"
	"github.com/lookalike-labs/lookalike/internal/validation"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server" json:"server"`
	Catalog   CatalogConfig    `koanf:"catalog" json:"catalog"`
	Recommend recommend.Config `koanf:"recommend" json:"recommend"`
	Session   session.Config   `koanf:"session" json:"session"`
	Security  SecurityConfig   `koanf:"security" json:"security"`
	Logging   LoggingConfig    `koanf:"logging" json:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" json:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" json:"port" validate:"gte=1,lte=65535"`

	// ReadTimeout / WriteTimeout bound request handling. WriteTimeout
	// must cover a full similarity build on upload.
	ReadTimeout  time.Duration `koanf:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout" json:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout"`
}

// CatalogConfig holds catalog ingestion settings.
type CatalogConfig struct {
	// MaxRows caps retained rows per upload.
	MaxRows int `koanf:"max_rows" json:"max_rows" validate:"gte=1,lte=1000000"`

	// MaxUploadBytes caps the multipart upload size.
	MaxUploadBytes int64 `koanf:"max_upload_bytes" json:"max_upload_bytes" validate:"gte=1024"`

	// PreviewRows is the default dataset preview length.
	PreviewRows int `koanf:"preview_rows" json:"preview_rows" validate:"gte=1,lte=1000"`

	// SuggestLimit caps free-text suggestion lists.
	SuggestLimit int `koanf:"suggest_limit" json:"suggest_limit" validate:"gte=1,lte=500"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	// CORSOrigins lists allowed origins; "*" allows all.
	CORSOrigins []string `koanf:"cors_origins" json:"cors_origins"`

	// RateLimitReqs / RateLimitWindow shape the default per-IP limit.
	RateLimitReqs   int           `koanf:"rate_limit_reqs" json:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" json:"rate_limit_window"`

	// RateLimitDisabled turns rate limiting off entirely.
	RateLimitDisabled bool `koanf:"rate_limit_disabled" json:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" json:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" json:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller" json:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Catalog: CatalogConfig{
			MaxRows:        10000,
			MaxUploadBytes: 32 << 20, // 32MB
			PreviewRows:    10,
			SuggestLimit:   20,
		},
		Recommend: recommend.Config{
			Components:        100,
			DefaultK:          12,
			PurchaseK:         2,
			BrandMergeLimit:   4,
			PopularMinRating:  4.0,
			PopularMinReviews: 900,
			PopularLimit:      10,
		},
		Session: session.DefaultConfig(),
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %s", verr.Error())
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive")
	}
	return nil
}

// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package session owns the per-client working state: the uploaded
// catalog, the similarity model built from it, and the user selection.
// Sessions are in-memory only and expire after a TTL of inactivity.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lookalike-labs/lookalike/internal/catalog"
	"github.com/lookalike-labs/lookalike/internal/metrics"
	"github.com/lookalike-labs/lookalike/internal/recommend"
)

var (
	// ErrSessionNotFound indicates an unknown or expired session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoCatalog indicates an operation that needs a catalog before
	// one was uploaded.
	ErrNoCatalog = errors.New("no catalog loaded in session")

	// ErrRebuildThrottled indicates the per-session catalog upload
	// limiter rejected a rebuild.
	ErrRebuildThrottled = errors.New("catalog rebuild rate exceeded")
)

// Session is one client's working state. The catalog and model fields
// are replaced wholesale on re-upload; readers take the session mutex
// only long enough to grab the current pointers.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	catalog  *catalog.Catalog
	model    *recommend.Model
	userID   string

	// rebuilds throttles catalog uploads into this session.
	rebuilds *rate.Limiter

	// buildMu serializes this session's catalog rebuilds. Other
	// sessions build independently.
	buildMu sync.Mutex
}

// TryBuild claims the session's build slot. A false return means a
// rebuild is already running; the caller reports busy instead of
// queueing.
func (s *Session) TryBuild() bool {
	return s.buildMu.TryLock()
}

// EndBuild releases the build slot claimed by TryBuild.
func (s *Session) EndBuild() {
	s.buildMu.Unlock()
}

// Touch marks the session as active now.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen returns the last activity timestamp.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// AllowRebuild reports whether another catalog upload may proceed now.
func (s *Session) AllowRebuild() bool {
	return s.rebuilds.Allow()
}

// SetModel installs a freshly built catalog and model, invalidating any
// previous ones.
func (s *Session) SetModel(cat *catalog.Catalog, model *recommend.Model) {
	s.mu.Lock()
	s.catalog = cat
	s.model = model
	s.userID = ""
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// Model returns the current catalog and model, or ErrNoCatalog before
// the first successful upload.
func (s *Session) Model() (*catalog.Catalog, *recommend.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == nil {
		return nil, nil, ErrNoCatalog
	}
	return s.catalog, s.model, nil
}

// SelectUser records the user whose purchase history seeds
// recommendations.
func (s *Session) SelectUser(userID string) {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
}

// SelectedUser returns the currently selected user ID, if any.
func (s *Session) SelectedUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Config tunes the session store.
type Config struct {
	// TTL is how long an idle session survives.
	TTL time.Duration `koanf:"ttl" json:"ttl"`

	// SweepInterval is how often the janitor scans for expired
	// sessions.
	SweepInterval time.Duration `koanf:"sweep_interval" json:"sweep_interval"`

	// MaxSessions caps live sessions; creating past the cap evicts the
	// longest-idle session.
	MaxSessions int `koanf:"max_sessions" json:"max_sessions" validate:"gte=0"`

	// RebuildsPerMinute / RebuildBurst throttle catalog uploads per
	// session.
	RebuildsPerMinute float64 `koanf:"rebuilds_per_minute" json:"rebuilds_per_minute" validate:"gte=0"`
	RebuildBurst      int     `koanf:"rebuild_burst" json:"rebuild_burst" validate:"gte=0"`
}

// DefaultConfig returns production session defaults.
func DefaultConfig() Config {
	return Config{
		TTL:               30 * time.Minute,
		SweepInterval:     time.Minute,
		MaxSessions:       100,
		RebuildsPerMinute: 6,
		RebuildBurst:      3,
	}
}

// Store is the concurrent session registry.
type Store struct {
	config Config
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a session store.
func NewStore(cfg Config, logger zerolog.Logger) *Store {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = def.SweepInterval
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if cfg.RebuildsPerMinute <= 0 {
		cfg.RebuildsPerMinute = def.RebuildsPerMinute
	}
	if cfg.RebuildBurst <= 0 {
		cfg.RebuildBurst = def.RebuildBurst
	}
	return &Store{
		config:   cfg,
		logger:   logger.With().Str("component", "session").Logger(),
		sessions: make(map[string]*Session),
	}
}

// Config returns the store configuration after defaulting.
func (st *Store) Config() Config { return st.config }

// Create registers a new session, evicting the longest-idle one when the
// cap is reached.
func (st *Store) Create() *Session {
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		lastSeen:  time.Now(),
		rebuilds:  rate.NewLimiter(rate.Limit(st.config.RebuildsPerMinute/60), st.config.RebuildBurst),
	}

	st.mu.Lock()
	if len(st.sessions) >= st.config.MaxSessions {
		st.evictOldestLocked()
	}
	st.sessions[s.ID] = s
	count := len(st.sessions)
	st.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	st.logger.Info().Str("session_id", s.ID).Int("active", count).Msg("Session created")
	return s
}

// Get returns a live session and refreshes its activity timestamp.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Touch()
	return s, nil
}

// Delete removes a session.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	count := len(st.sessions)
	st.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	metrics.ActiveSessions.Set(float64(count))
	return nil
}

// Len returns the live session count.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// SweepExpired removes sessions idle past the TTL and returns how many
// were removed.
func (st *Store) SweepExpired() int {
	cutoff := time.Now().Add(-st.config.TTL)

	st.mu.Lock()
	var expired []string
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(st.sessions, id)
	}
	count := len(st.sessions)
	st.mu.Unlock()

	if len(expired) > 0 {
		metrics.ActiveSessions.Set(float64(count))
		metrics.SessionsExpired.Add(float64(len(expired)))
		st.logger.Info().Int("expired", len(expired)).Int("active", count).Msg("Expired sessions swept")
	}
	return len(expired)
}

// evictOldestLocked drops the longest-idle session. Caller holds st.mu.
func (st *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range st.sessions {
		seen := s.LastSeen()
		if oldestID == "" || seen.Before(oldest) {
			oldestID = id
			oldest = seen
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
		metrics.SessionsEvicted.Inc()
		st.logger.Warn().Str("session_id", oldestID).Msg("Session cap reached, evicted longest-idle session")
	}
}

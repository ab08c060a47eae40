// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package session

import (
	"context"
	"time"
)

// Janitor periodically sweeps expired sessions. It runs as a supervised
// service under the application's suture tree.
type Janitor struct {
	store *Store
}

// NewJanitor creates a janitor for the store.
func NewJanitor(store *Store) *Janitor {
	return &Janitor{store: store}
}

// Serve implements suture.Service. It sweeps on the configured interval
// until the context is cancelled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.store.Config().SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.store.SweepExpired()
		}
	}
}

// String identifies the service in supervisor logs.
func (j *Janitor) String() string {
	return "session-janitor"
}

// Package store persists retired players durably and serves ranked
// leaderboard queries.
package store

import "context"

// Champion is the durable record of one retired player, decoupled from the
// root package's in-memory type so this package has no upward dependency.
type Champion struct {
	Name      string
	Score     int
	PlayTimeS float64
}

// Store is the leaderboard's durable backing. Save failures are logged and
// swallowed by the caller; Top failures propagate to the HTTP layer.
type Store interface {
	Save(ctx context.Context, c Champion) error
	Top(ctx context.Context, start, maxItems int) ([]Champion, error)
	Close() error
}

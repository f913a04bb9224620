package domain

import "context"

// Database defines lifecycle operations for the underlying store.
// Each implementation owns its own migration files and strategy, so the
// backend stays swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

package storage

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
)

// migrations are applied in order; the index of the last applied one is kept in PRAGMA user_version.
//
//nolint:gochecknoglobals // Read-only schema history.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS song_cache (
		id INTEGER PRIMARY KEY,
		detail TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_song_cache_expires_at ON song_cache (expires_at)`,
	`CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// migrate brings the schema up to date inside a single transaction.
func migrate(ctx context.Context, db *dbx.DB) error {
	var version int

	if err := db.NewQuery("PRAGMA user_version").WithContext(ctx).Row(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version >= len(migrations) {
		return nil
	}

	err := db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		for i := version; i < len(migrations); i++ {
			if _, err := tx.NewQuery(migrations[i]).WithContext(ctx).Execute(); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}

		// PRAGMA does not accept bound parameters.
		_, err := tx.NewQuery(fmt.Sprintf("PRAGMA user_version = %d", len(migrations))).WithContext(ctx).Execute()

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

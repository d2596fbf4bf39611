package storage

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/pocketbase/dbx"
)

const (
	// songTable is the song detail cache table name.
	songTable = "song_cache"
	// lookupChunkSize bounds the number of bound parameters per IN clause.
	lookupChunkSize = 500
)

// SongEntry is one row of the song detail cache.
type SongEntry struct {
	// ID is the track id.
	ID int64 `db:"id"`
	// Detail is the serialized song detail.
	Detail string `db:"detail"`
	// ExpiresAt is the expiry timestamp in epoch milliseconds.
	ExpiresAt int64 `db:"expires_at"`
}

// SongStats summarizes the song detail cache.
type SongStats struct {
	// Total is the number of rows.
	Total int64
	// Expired is the number of rows whose expiry has passed.
	Expired int64
	// SoonestExpiry is the earliest expiry, zero when the table is empty.
	SoonestExpiry time.Time
	// LatestExpiry is the latest expiry, zero when the table is empty.
	LatestExpiry time.Time
}

// SongRepository reads and writes the song_cache table.
type SongRepository struct {
	db *DB
}

// NewSongRepository creates and returns a new instance of SongRepository.
func NewSongRepository(db *DB) *SongRepository {
	return &SongRepository{db: db}
}

// GetUnexpired returns the serialized details of ids whose entry expires strictly after now.
func (r *SongRepository) GetUnexpired(ctx context.Context, ids []int64, now time.Time) (map[int64]string, error) {
	handle, err := r.db.handle()
	if err != nil {
		return nil, err
	}

	result := make(map[int64]string, len(ids))

	for chunk := range slices.Chunk(ids, lookupChunkSize) {
		values := make([]any, len(chunk))
		for i, id := range chunk {
			values[i] = id
		}

		var rows []SongEntry

		err = handle.Select("id", "detail", "expires_at").
			From(songTable).
			Where(dbx.In("id", values...)).
			AndWhere(dbx.NewExp("expires_at > {:now}", dbx.Params{"now": now.UnixMilli()})).
			WithContext(ctx).
			All(&rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read song cache: %w", err)
		}

		for _, row := range rows {
			result[row.ID] = row.Detail
		}
	}

	return result, nil
}

// Put inserts or replaces entries in a single transaction.
func (r *SongRepository) Put(ctx context.Context, entries []SongEntry) error {
	if len(entries) == 0 {
		return nil
	}

	handle, err := r.db.handle()
	if err != nil {
		return err
	}

	err = handle.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		query := tx.NewQuery(
			"INSERT INTO song_cache (id, detail, expires_at) VALUES ({:id}, {:detail}, {:expires_at}) " +
				"ON CONFLICT(id) DO UPDATE SET detail = excluded.detail, expires_at = excluded.expires_at").
			WithContext(ctx).
			Prepare()

		defer query.Close()

		for _, entry := range entries {
			_, err := query.Bind(dbx.Params{
				"id":         entry.ID,
				"detail":     entry.Detail,
				"expires_at": entry.ExpiresAt,
			}).Execute()
			if err != nil {
				return fmt.Errorf("song %d: %w", entry.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write song cache: %w", err)
	}

	return nil
}

// PurgeExpired deletes every entry whose expiry is at or before now.
func (r *SongRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.delete(ctx, dbx.NewExp("expires_at <= {:now}", dbx.Params{"now": now.UnixMilli()}))
}

// Clear deletes every entry.
func (r *SongRepository) Clear(ctx context.Context) (int64, error) {
	return r.delete(ctx, nil)
}

func (r *SongRepository) delete(ctx context.Context, where dbx.Expression) (int64, error) {
	handle, err := r.db.handle()
	if err != nil {
		return 0, err
	}

	result, err := handle.Delete(songTable, where).WithContext(ctx).Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to purge song cache: %w", err)
	}

	return result.RowsAffected()
}

// Stats summarizes the table relative to now.
func (r *SongRepository) Stats(ctx context.Context, now time.Time) (*SongStats, error) {
	handle, err := r.db.handle()
	if err != nil {
		return nil, err
	}

	var total, expired, soonest, latest int64

	err = handle.NewQuery(
		"SELECT COUNT(*), "+
			"COALESCE(SUM(CASE WHEN expires_at <= {:now} THEN 1 ELSE 0 END), 0), "+
			"COALESCE(MIN(expires_at), 0), COALESCE(MAX(expires_at), 0) "+
			"FROM song_cache").
		Bind(dbx.Params{"now": now.UnixMilli()}).
		WithContext(ctx).
		Row(&total, &expired, &soonest, &latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read song cache stats: %w", err)
	}

	stats := &SongStats{Total: total, Expired: expired}

	if total > 0 {
		stats.SoonestExpiry = time.UnixMilli(soonest)
		stats.LatestExpiry = time.UnixMilli(latest)
	}

	return stats, nil
}

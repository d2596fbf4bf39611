package songcache

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/storage"
	"github.com/oshokin/ncm-player/internal/utils"
)

// Service resolves song details by id.
type Service interface {
	// GetSongDetails returns one entry per id in input order; unresolved ids are nil.
	GetSongDetails(ctx context.Context, ids []int64) ([]*ncm.SongDetail, error)
	// Stats summarizes the persistent cache.
	Stats(ctx context.Context) (*storage.SongStats, error)
	// Purge removes every cached entry and returns the number removed.
	Purge(ctx context.Context) (int64, error)
	// Flush waits for scheduled cache writes to finish.
	Flush()
	// Close flushes pending writes and rejects further lookups.
	Close() error
}

// Repository is the persistent store behind the cache.
type Repository interface {
	// GetUnexpired returns serialized details of ids that expire strictly after now.
	GetUnexpired(ctx context.Context, ids []int64, now time.Time) (map[int64]string, error)
	// Put inserts or replaces entries.
	Put(ctx context.Context, entries []storage.SongEntry) error
	// PurgeExpired deletes entries whose expiry is at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	// Clear deletes every entry.
	Clear(ctx context.Context) (int64, error)
	// Stats summarizes the store relative to now.
	Stats(ctx context.Context, now time.Time) (*storage.SongStats, error)
}

// ServiceImpl implements Service on top of a Repository and the API gateway.
type ServiceImpl struct {
	// client is the API gateway used for cache misses.
	client ncm.Client
	// repo is the persistent cache.
	repo Repository
	// ttl is the lifetime of a written entry.
	ttl time.Duration
	// batchSize is the maximum number of ids per remote request.
	batchSize int
	// now returns the current time.
	now func() time.Time

	// mu guards closed, and orders writes.Go under the read lock before writes.Wait under the write lock.
	mu     sync.RWMutex
	closed bool
	// writes tracks in-flight cache writes.
	writes sync.WaitGroup
}

// Option customizes a ServiceImpl.
type Option func(*ServiceImpl)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceImpl) {
		s.now = now
	}
}

// songDetailRequest is one entry of the song detail "c" parameter.
type songDetailRequest struct {
	ID int64 `json:"id"`
}

// NewService creates a service without touching the store. Open is the usual entry point.
func NewService(cfg *config.Config, client ncm.Client, repo Repository, options ...Option) *ServiceImpl {
	ttl := cfg.ParsedSongCacheTTL
	if ttl <= 0 {
		ttl = config.DefaultSongCacheTTL
	}

	s := &ServiceImpl{
		client:    client,
		repo:      repo,
		ttl:       ttl,
		batchSize: utils.SafeInt64ToInt(cfg.SongDetailBatchSize),
		now:       time.Now,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Open creates a service and runs Init, so no lookup is served before expired entries are purged.
func Open(ctx context.Context, cfg *config.Config, client ncm.Client, repo Repository, options ...Option) (Service, error) {
	s := NewService(cfg, client, repo, options...)

	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Init purges expired entries.
func (s *ServiceImpl) Init(ctx context.Context) error {
	purged, err := s.repo.PurgeExpired(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to purge expired songs: %w", err)
	}

	if purged > 0 {
		logger.Debugf(ctx, "Purged %d expired song cache entries", purged)
	}

	return nil
}

// GetSongDetails returns one entry per id in input order; unresolved ids are nil.
func (s *ServiceImpl) GetSongDetails(ctx context.Context, ids []int64) ([]*ncm.SongDetail, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	result := make([]*ncm.SongDetail, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	unique := utils.Unique(ids)

	found, err := s.lookup(ctx, unique)
	if err != nil {
		return nil, err
	}

	remaining := make([]int64, 0, len(unique)-len(found))

	for _, id := range unique {
		if _, ok := found[id]; !ok {
			remaining = append(remaining, id)
		}
	}

	logger.Debugf(ctx, "Song details: %d requested, %d cached, %d to fetch", len(ids), len(found), len(remaining))

	if len(remaining) > 0 {
		fetched, err := s.fetch(ctx, remaining)
		if err != nil {
			return nil, err
		}

		for id, song := range fetched {
			found[id] = song
		}

		s.scheduleWrite(ctx, fetched)
	}

	for i, id := range ids {
		result[i] = found[id]
	}

	return result, nil
}

// Stats summarizes the persistent cache.
func (s *ServiceImpl) Stats(ctx context.Context) (*storage.SongStats, error) {
	return s.repo.Stats(ctx, s.now())
}

// Purge waits for pending writes and removes every cached entry.
func (s *ServiceImpl) Purge(ctx context.Context) (int64, error) {
	s.Flush()

	return s.repo.Clear(ctx)
}

// Flush waits for scheduled cache writes to finish.
// Lookups that want to schedule a write block until the wait is over.
func (s *ServiceImpl) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes.Wait()
}

// Close flushes pending writes and rejects further lookups.
func (s *ServiceImpl) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.Flush()

	return nil
}

func (s *ServiceImpl) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.closed
}

// lookup reads unexpired entries. Rows that no longer decode are treated as misses.
func (s *ServiceImpl) lookup(ctx context.Context, ids []int64) (map[int64]*ncm.SongDetail, error) {
	rows, err := s.repo.GetUnexpired(ctx, ids, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to read song cache: %w", err)
	}

	found := make(map[int64]*ncm.SongDetail, len(rows))

	for id, raw := range rows {
		var song ncm.SongDetail
		if err := json.Unmarshal([]byte(raw), &song); err != nil {
			logger.Warnf(ctx, "Dropping unreadable cache entry for song %d: %v", id, err)

			continue
		}

		found[id] = &song
	}

	return found, nil
}

// fetch requests ids from the remote service in batches and keeps only songs that were asked for.
func (s *ServiceImpl) fetch(ctx context.Context, ids []int64) (map[int64]*ncm.SongDetail, error) {
	rawURL := s.client.URL(ncm.SongDetailPath)

	batches, err := ncm.FetchBatches(ctx, ids, s.batchSize,
		func(ctx context.Context, batch []int64) ([]*ncm.SongDetail, error) {
			requested, err := json.Marshal(utils.Map(batch, func(id int64) songDetailRequest {
				return songDetailRequest{ID: id}
			}))
			if err != nil {
				return nil, fmt.Errorf("failed to serialize song ids: %w", err)
			}

			response, err := ncm.Fetch[ncm.SongDetailResponse](ctx, s.client, rawURL,
				map[string]string{"c": string(requested)})
			if err != nil {
				return nil, err
			}

			return response.Songs, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch song details: %w", err)
	}

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	fetched := make(map[int64]*ncm.SongDetail, len(ids))

	for _, batch := range batches {
		for _, song := range batch {
			if song == nil {
				continue
			}

			if _, ok := wanted[song.ID]; ok {
				fetched[song.ID] = song
			}
		}
	}

	return fetched, nil
}

// scheduleWrite stores fetched songs in the background. Failures are logged only.
func (s *ServiceImpl) scheduleWrite(ctx context.Context, songs map[int64]*ncm.SongDetail) {
	if len(songs) == 0 {
		return
	}

	expiresAt := s.now().Add(s.ttl).UnixMilli()
	entries := make([]storage.SongEntry, 0, len(songs))

	for id, song := range songs {
		detail, err := json.Marshal(song)
		if err != nil {
			logger.Warnf(ctx, "Failed to serialize song %d for caching: %v", id, err)

			continue
		}

		entries = append(entries, storage.SongEntry{ID: id, Detail: string(detail), ExpiresAt: expiresAt})
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return
	}

	writeCtx := context.WithoutCancel(ctx)

	s.writes.Go(func() {
		if err := s.repo.Put(writeCtx, entries); err != nil {
			logger.Errorf(writeCtx, "Failed to cache %d songs: %v", len(entries), err)

			return
		}

		logger.Debugf(writeCtx, "Cached %d songs", len(entries))
	})
}

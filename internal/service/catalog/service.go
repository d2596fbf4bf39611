package catalog

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/utils"
)

// Service provides read access to the remote catalog.
type Service interface {
	// PlaylistDetail returns a playlist with all of its track ids.
	PlaylistDetail(ctx context.Context, id int64) (*ncm.Playlist, error)
	// RecommendResource returns the daily recommended playlists of the session.
	RecommendResource(ctx context.Context) ([]ncm.RecommendedPlaylist, error)
	// Account returns the account of the session.
	Account(ctx context.Context) (*ncm.AccountResponse, error)
	// Search looks up songs by keyword.
	Search(ctx context.Context, keyword string, limit, offset int) (*ncm.SearchResult, error)
	// SongURLs resolves playback sources for ids at the given audio level.
	SongURLs(ctx context.Context, ids []int64, level string) ([]*ncm.SongURL, error)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	// client is the API gateway.
	client ncm.Client
	// playlists caches playlist details by id.
	playlists *expirable.LRU[int64, *ncm.Playlist]
}

const (
	// playlistCacheSize is the number of playlists kept in memory.
	playlistCacheSize = 64
	// playlistCacheTTL is how long a playlist is served from memory.
	playlistCacheTTL = 5 * time.Minute
	// playlistTrackLimit asks the endpoint for every track id of a playlist.
	playlistTrackLimit = 100000
	// searchTypeSong selects song results.
	searchTypeSong = 1
	// DefaultSearchLimit is the page size used when none is given.
	DefaultSearchLimit = 30
	// songURLEncodeType is the preferred container of playback sources.
	songURLEncodeType = "flac"
)

// NewService creates and returns a new instance of ServiceImpl.
func NewService(client ncm.Client) Service {
	return &ServiceImpl{
		client:    client,
		playlists: expirable.NewLRU[int64, *ncm.Playlist](playlistCacheSize, nil, playlistCacheTTL),
	}
}

// PlaylistDetail returns a playlist with all of its track ids.
func (s *ServiceImpl) PlaylistDetail(ctx context.Context, id int64) (*ncm.Playlist, error) {
	if playlist, ok := s.playlists.Get(id); ok {
		logger.Debugf(ctx, "Playlist %d served from memory", id)

		return playlist, nil
	}

	response, err := ncm.Fetch[ncm.PlaylistDetailResponse](ctx, s.client, s.client.URL(ncm.PlaylistDetailPath),
		map[string]any{
			"id": id,
			"n":  playlistTrackLimit,
			"s":  0,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %d: %w", id, err)
	}

	if response.Playlist == nil {
		return nil, fmt.Errorf("%w: %d", ErrPlaylistNotFound, id)
	}

	s.playlists.Add(id, response.Playlist)

	return response.Playlist, nil
}

// RecommendResource returns the daily recommended playlists of the session.
func (s *ServiceImpl) RecommendResource(ctx context.Context) ([]ncm.RecommendedPlaylist, error) {
	response, err := ncm.Fetch[ncm.RecommendResourceResponse](ctx, s.client, s.client.URL(ncm.RecommendResourcePath), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}

	return response.Recommend, nil
}

// Account returns the account of the session.
func (s *ServiceImpl) Account(ctx context.Context) (*ncm.AccountResponse, error) {
	response, err := ncm.Fetch[ncm.AccountResponse](ctx, s.client, s.client.URL(ncm.AccountPath), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	return response, nil
}

// Search looks up songs by keyword. A non-positive limit uses DefaultSearchLimit.
func (s *ServiceImpl) Search(ctx context.Context, keyword string, limit, offset int) (*ncm.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	response, err := ncm.Fetch[ncm.SearchResponse](ctx, s.client, s.client.URL(ncm.SearchPath),
		map[string]any{
			"s":      keyword,
			"type":   searchTypeSong,
			"limit":  limit,
			"offset": max(offset, 0),
			"total":  true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", keyword, err)
	}

	return &response.Result, nil
}

// SongURLs resolves playback sources for ids at the given audio level.
func (s *ServiceImpl) SongURLs(ctx context.Context, ids []int64, level string) ([]*ncm.SongURL, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idList := "[" + strings.Join(utils.Map(ids, func(id int64) string {
		return strconv.FormatInt(id, 10)
	}), ",") + "]"

	response, err := ncm.Fetch[ncm.SongURLResponse](ctx, s.client, s.client.URL(ncm.SongURLPath),
		map[string]any{
			"ids":        idList,
			"level":      level,
			"encodeType": songURLEncodeType,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve song urls: %w", err)
	}

	return response.Data, nil
}

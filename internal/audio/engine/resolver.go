package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/oshokin/ncm-player/internal/client/ncm"
)

// SourceResolver turns a track id into a playable source.
type SourceResolver interface {
	Resolve(ctx context.Context, trackID int64) (string, error)
}

// SongURLFetcher resolves playback URLs. catalog.Service satisfies it.
type SongURLFetcher interface {
	SongURLs(ctx context.Context, ids []int64, level string) ([]*ncm.SongURL, error)
}

// CatalogResolver resolves sources through the song URL endpoint at a fixed audio level.
type CatalogResolver struct {
	fetcher SongURLFetcher
	level   string
}

// NewCatalogResolver creates and returns a new instance of CatalogResolver.
func NewCatalogResolver(fetcher SongURLFetcher, level string) *CatalogResolver {
	return &CatalogResolver{fetcher: fetcher, level: level}
}

// Resolve returns the playback URL of trackID.
func (r *CatalogResolver) Resolve(ctx context.Context, trackID int64) (string, error) {
	urls, err := r.fetcher.SongURLs(ctx, []int64{trackID}, r.level)
	if err != nil {
		return "", err
	}

	for _, u := range urls {
		if u != nil && u.ID == trackID && u.URL != "" {
			return u.URL, nil
		}
	}

	return "", fmt.Errorf("%w: song %d", ErrSourceUnavailable, trackID)
}

// Identity is the engine's own cookie header, replaced by setCookie.
// It satisfies ncm.IdentityProvider so the engine gateway reads it per request.
type Identity struct {
	cookie atomic.Pointer[string]
}

// NewIdentity creates an anonymous identity.
func NewIdentity() *Identity {
	return new(Identity)
}

// CookieHeader returns the current cookie header.
func (i *Identity) CookieHeader() string {
	if cookie := i.cookie.Load(); cookie != nil {
		return *cookie
	}

	return ""
}

// Set replaces the cookie header.
func (i *Identity) Set(cookie string) {
	i.cookie.Store(&cookie)
}

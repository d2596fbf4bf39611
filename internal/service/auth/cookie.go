package auth

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/session"
)

// sessionCookies returns the site cookies in session format, or nil when the page is gone.
func (b *RodBrowser) sessionCookies(ctx context.Context) (cookies []session.Cookie) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "sessionCookies panic recovered: %v", r)

			cookies = nil
		}
	}()

	networkCookies, err := b.page.Cookies([]string{musicHomeURL})
	if err != nil {
		logger.Debugf(ctx, "Failed to read cookies: %v", err)

		return nil
	}

	return convertCookies(networkCookies, time.Now())
}

// convertCookies maps browser cookies to the export format of the desktop client.
func convertCookies(networkCookies []*proto.NetworkCookie, now time.Time) []session.Cookie {
	cookies := make([]session.Cookie, 0, len(networkCookies))
	accessed := float64(now.UnixMilli())

	for _, c := range networkCookies {
		if c == nil || c.Name == "" {
			continue
		}

		cookies = append(cookies, session.Cookie{
			Creation:   accessed,
			Domain:     c.Domain,
			Expires:    float64(c.Expires),
			HasExpires: flag(!c.Session),
			Httponly:   flag(c.HTTPOnly),
			LastAccess: accessed,
			Name:       c.Name,
			Path:       c.Path,
			Secure:     flag(c.Secure),
			URL:        musicHomeURL,
			Value:      c.Value,
		})
	}

	return cookies
}

func flag(v bool) float64 {
	if v {
		return 1
	}

	return 0
}

package auth

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/session"
)

// allowedLoginDomains are the sites the login flow may visit, including subdomains.
var allowedLoginDomains = []string{"163.com", "126.net", "netease.com"}

// waitForUserLogin navigates to the login page and waits for the session cookie.
func (b *RodBrowser) waitForUserLogin(ctx context.Context) ([]session.Cookie, error) {
	logger.Infof(ctx, "Opening %s", musicLoginURL)

	if err := navigationPause.sleep(ctx); err != nil {
		return nil, err
	}

	if err := b.page.Navigate(musicLoginURL); err != nil {
		return nil, fmt.Errorf("failed to open login page: %w", err)
	}

	if err := navigationPause.sleep(ctx); err != nil {
		return nil, err
	}

	b.wanderCursor(ctx)

	logger.Info(ctx, "Log in inside the browser window: scan the QR code with the mobile app "+
		"or pick another method. The window closes by itself once the session cookie is captured.")

	cookies, err := b.waitForLoginComplete(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Login completed successfully!")

	return cookies, nil
}

// waitForLoginComplete polls the site cookies until MUSIC_U appears.
func (b *RodBrowser) waitForLoginComplete(ctx context.Context) ([]session.Cookie, error) {
	timeout := time.NewTimer(b.maxWait)
	defer timeout.Stop()

	ticker := time.NewTicker(loginPollInterval)
	defer ticker.Stop()

	var lastURL string

	for {
		currentURL, err := b.pageURL(ctx)
		if err != nil {
			return nil, err
		}

		if currentURL != lastURL {
			logger.Debugf(ctx, "Login page at %s", currentURL)

			lastURL = currentURL
		}

		if err = validateLoginURL(currentURL); err != nil {
			return nil, err
		}

		if cookies := b.sessionCookies(ctx); slices.ContainsFunc(cookies, isAuthCookie) {
			return cookies, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout.C:
			return nil, fmt.Errorf("%w: waited for %v", ErrLoginTimeout, b.maxWait)
		case <-ticker.C:
		}
	}
}

// validateLoginURL validates that the user hasn't navigated away from allowed domains.
func validateLoginURL(currentURL string) error {
	if currentURL == "" || strings.HasPrefix(currentURL, "about:") {
		return nil
	}

	parsed, err := url.Parse(currentURL)
	if err != nil {
		return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
	}

	host := strings.ToLower(parsed.Hostname())

	for _, domain := range allowedLoginDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}

	return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
}

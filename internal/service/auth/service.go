package auth

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"slices"

	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/session"
)

// AuthCookieName is the cookie that marks an authenticated session.
const AuthCookieName = "MUSIC_U"

// Service establishes and clears the session identity.
type Service interface {
	// LoginWithCredential stores a pasted cookie export and returns the number of cookies.
	LoginWithCredential(ctx context.Context, raw string) (int, error)
	// LoginWithBrowser runs an interactive browser login and stores its cookies.
	LoginWithBrowser(ctx context.Context) (int, error)
	// Logout forgets the stored identity.
	Logout(ctx context.Context) error
}

// IdentityStore is the writable side of the session store.
type IdentityStore interface {
	// Set persists cookies and makes them current.
	Set(ctx context.Context, cookies []session.Cookie) error
	// Reset forgets the identity.
	Reset(ctx context.Context) error
}

// Browser drives an interactive login and returns the resulting cookies.
type Browser interface {
	Login(ctx context.Context) ([]session.Cookie, error)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	// store receives the identity.
	store IdentityStore
	// browser runs interactive logins; nil disables LoginWithBrowser.
	browser Browser
}

// NewService creates an authentication service. browser may be nil.
func NewService(store IdentityStore, browser Browser) *ServiceImpl {
	return &ServiceImpl{
		store:   store,
		browser: browser,
	}
}

// LoginWithCredential parses raw and stores the cookies.
// A credential without MUSIC_U is stored anyway; the session stays anonymous.
func (s *ServiceImpl) LoginWithCredential(ctx context.Context, raw string) (int, error) {
	cookies, err := session.ParseCookies(raw)
	if err != nil {
		return 0, err
	}

	if !slices.ContainsFunc(cookies, isAuthCookie) {
		logger.Warnf(ctx, "Credential has no %s cookie, requests will be anonymous", AuthCookieName)
	}

	return s.storeCookies(ctx, cookies)
}

// LoginWithBrowser runs an interactive browser login and stores its cookies.
func (s *ServiceImpl) LoginWithBrowser(ctx context.Context) (int, error) {
	if s.browser == nil {
		return 0, ErrBrowserUnavailable
	}

	logger.Info(ctx, "Starting browser-based authentication")

	cookies, err := s.browser.Login(ctx)
	if err != nil {
		return 0, fmt.Errorf("login failed: %w", err)
	}

	if !slices.ContainsFunc(cookies, isAuthCookie) {
		return 0, ErrAuthCookieNotFound
	}

	return s.storeCookies(ctx, cookies)
}

// Logout forgets the stored identity.
func (s *ServiceImpl) Logout(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	logger.Info(ctx, "Session identity removed")

	return nil
}

func (s *ServiceImpl) storeCookies(ctx context.Context, cookies []session.Cookie) (int, error) {
	if err := s.store.Set(ctx, cookies); err != nil {
		return 0, fmt.Errorf("failed to store identity: %w", err)
	}

	logger.Infof(ctx, "Stored %d cookies", len(cookies))

	return len(cookies), nil
}

func isAuthCookie(c session.Cookie) bool {
	return c.Name == AuthCookieName && c.Value != ""
}

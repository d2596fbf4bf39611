package auth

import "errors"

var (
	// ErrLoginTimeout is returned when login takes too long.
	ErrLoginTimeout = errors.New("login timeout exceeded")

	// ErrBrowserClosed is returned when the browser is closed by the user.
	ErrBrowserClosed = errors.New("browser was closed by user")

	// ErrNavigatedAway is returned when the user navigates away from the login flow.
	ErrNavigatedAway = errors.New("user navigated away from login flow")

	// ErrAuthCookieNotFound is returned when the session cookie is missing from a credential.
	ErrAuthCookieNotFound = errors.New("MUSIC_U cookie not found - login may have failed")

	// ErrBrowserUnavailable is returned by LoginWithBrowser when no browser is configured.
	ErrBrowserUnavailable = errors.New("browser login is not available")
)

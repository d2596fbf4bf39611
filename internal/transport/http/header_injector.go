package http

import (
	"net/http"
)

// IdentityProvider supplies the cookie header of the current session.
// It is consulted on every request so identity writes are never served stale.
type IdentityProvider interface {
	// CookieHeader returns the serialized cookie set, empty when unauthenticated.
	CookieHeader() string
}

// ClientHeaders are the fixed headers the desktop client sends.
type ClientHeaders struct {
	// UserAgent is applied unless the caller already set one.
	UserAgent string
	// Origin is always applied when non-empty.
	Origin string
}

// DesktopHeaders returns the headers of the desktop client.
func DesktopHeaders() ClientHeaders {
	return ClientHeaders{
		UserAgent: DefaultUserAgent,
		Origin:    DefaultOrigin,
	}
}

// HeaderInjector stamps every outgoing request with the client headers and the session cookie.
type HeaderInjector struct {
	next     http.RoundTripper
	identity IdentityProvider
	headers  ClientHeaders
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
// identity may be nil for anonymous clients.
func NewHeaderInjector(next http.RoundTripper, identity IdentityProvider, headers ClientHeaders) http.RoundTripper {
	return &HeaderInjector{
		next:     next,
		identity: identity,
		headers:  headers,
	}
}

// RoundTrip works on a clone, the caller's headers are never mutated.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	req = req.Clone(req.Context())

	if t.headers.UserAgent != "" && req.Header.Get(userAgentHeader) == "" {
		req.Header.Set(userAgentHeader, t.headers.UserAgent)
	}

	if t.headers.Origin != "" {
		req.Header.Set(originHeader, t.headers.Origin)
	}

	var cookie string
	if t.identity != nil {
		cookie = t.identity.CookieHeader()
	}

	if cookie != "" {
		req.Header.Set(cookieHeader, cookie)
	}

	return t.next.RoundTrip(req)
}

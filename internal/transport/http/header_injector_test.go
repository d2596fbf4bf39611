package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIdentity struct {
	header atomic.Value
}

func (s *stubIdentity) CookieHeader() string {
	v, _ := s.header.Load().(string)

	return v
}

func newHeaderEchoServer(t *testing.T) (*httptest.Server, chan http.Header) {
	t.Helper()

	received := make(chan http.Header, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Clone()

		w.WriteHeader(http.StatusNoContent)
	}))

	t.Cleanup(server.Close)

	return server, received
}

func doGet(t *testing.T, transport http.RoundTripper, url string, header http.Header) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)

	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
}

// TestHeaderInjector_RoundTrip tests that desktop headers are stamped on every request.
func TestHeaderInjector_RoundTrip(t *testing.T) {
	t.Parallel()

	server, received := newHeaderEchoServer(t)

	identity := &stubIdentity{}
	identity.header.Store("a=1")

	transport := NewHeaderInjector(http.DefaultTransport, identity, DesktopHeaders())

	doGet(t, transport, server.URL, nil)

	headers := <-received
	assert.Equal(t, "a=1", headers.Get("Cookie"))
	assert.Equal(t, "orpheus://orpheus", headers.Get("Origin"))
	assert.Equal(t, DefaultUserAgent, headers.Get("User-Agent"))

	// Identity is read per request, so a write between calls is picked up.
	identity.header.Store("MUSIC_U=abc; __csrf=def")

	doGet(t, transport, server.URL, nil)

	headers = <-received
	assert.Equal(t, "MUSIC_U=abc; __csrf=def", headers.Get("Cookie"))
}

// TestHeaderInjector_Anonymous tests requests without identity and with a caller user-agent.
func TestHeaderInjector_Anonymous(t *testing.T) {
	t.Parallel()

	server, received := newHeaderEchoServer(t)

	transport := NewHeaderInjector(http.DefaultTransport, &stubIdentity{}, DesktopHeaders())

	doGet(t, transport, server.URL, http.Header{"User-Agent": []string{"custom"}})

	headers := <-received
	assert.Empty(t, headers.Get("Cookie"))
	assert.Equal(t, "custom", headers.Get("User-Agent"))
}

// TestHeaderInjector_DoesNotMutateRequest tests that the caller's request is left untouched.
func TestHeaderInjector_DoesNotMutateRequest(t *testing.T) {
	t.Parallel()

	server, received := newHeaderEchoServer(t)

	identity := &stubIdentity{}
	identity.header.Store("a=1")

	transport := NewHeaderInjector(http.DefaultTransport, identity, DesktopHeaders())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	<-received

	assert.Empty(t, req.Header.Get("Cookie"))
	assert.Empty(t, req.Header.Get("Origin"))
}

// TestHeaderInjector_EmptyHeaders tests that zero client headers add nothing.
func TestHeaderInjector_EmptyHeaders(t *testing.T) {
	t.Parallel()

	server, received := newHeaderEchoServer(t)

	transport := NewHeaderInjector(http.DefaultTransport, nil, ClientHeaders{})

	doGet(t, transport, server.URL, nil)

	headers := <-received
	assert.Empty(t, headers.Get("Origin"))
	assert.Empty(t, headers.Get("Cookie"))
	assert.Equal(t, "Go-http-client/1.1", headers.Get("User-Agent"))
}

// TestHeaderInjector_NilRequest tests the nil request guard.
func TestHeaderInjector_NilRequest(t *testing.T) {
	t.Parallel()

	transport := NewHeaderInjector(http.DefaultTransport, nil, ClientHeaders{})

	//nolint:bodyclose // No response is returned for a nil request.
	resp, err := transport.RoundTrip(nil)
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

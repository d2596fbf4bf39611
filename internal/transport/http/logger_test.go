package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/ncm-player/internal/eapi"
	"github.com/oshokin/ncm-player/internal/logger"
)

// TestLogTransport_DecryptsEAPI tests that eapi calls are logged in plain form
// and that the caller still receives the untouched response body.
func TestLogTransport_DecryptsEAPI(t *testing.T) {
	// Don't run in parallel: the log level is process-wide.
	originalLevel := logger.Level()
	defer logger.SetLevel(originalLevel)

	logger.SetLevel(zapcore.DebugLevel)

	cipherText := eapi.Encrypt([]byte(`{"code":200,"songs":[]}`))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write(cipherText)
	}))
	t.Cleanup(server.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	form := url.Values{}
	form.Set(eapi.ParamsField, eapi.EncryptForRequest("/api/v3/song/detail", []byte(`{"c":"[]"}`)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		server.URL+"/eapi/v3/song/detail", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := NewLogTransport(http.DefaultTransport, 0).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, cipherText, body)

	entries := logs.FilterMessage("API call").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/eapi/v3/song/detail", fields["path"])
	assert.Equal(t, `/api/v3/song/detail {"c":"[]"}`, fields["request"])
	assert.Equal(t, `{"code":200,"songs":[]}`, fields["response"])
}

// TestLogTransport_NilRequest tests the nil request guard.
func TestLogTransport_NilRequest(t *testing.T) {
	t.Parallel()

	//nolint:bodyclose // No response is returned for a nil request.
	resp, err := NewLogTransport(http.DefaultTransport, 0).RoundTrip(nil)
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestLogTransport_Truncate tests that dumps longer than the limit are cut.
func TestLogTransport_Truncate(t *testing.T) {
	t.Parallel()

	transport, ok := NewLogTransport(http.DefaultTransport, 4).(*LogTransport)
	require.True(t, ok)

	assert.Equal(t, "abcd... [truncated]", transport.truncate([]byte("abcdef")))
	assert.Equal(t, "abcd", transport.truncate([]byte("abcd")))

	defaults, ok := NewLogTransport(http.DefaultTransport, 0).(*LogTransport)
	require.True(t, ok)
	assert.Equal(t, uint64(DefaultMaxLogLength), defaults.maxLogLength)
}

// TestBinaryPlaceholder tests the placeholder used for bodies that cannot be shown.
func TestBinaryPlaceholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<binary, 2.0 kB>", binaryPlaceholder(2048))
}

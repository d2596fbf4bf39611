package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/ncm-player/internal/eapi"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/utils"
)

// ErrNilRequest indicates that the HTTP request is nil.
var ErrNilRequest = errors.New("request is nil")

// LogTransport dumps API calls at debug level.
// eapi calls are logged in their decrypted form: the signed path with its payload,
// and the decoded response, since the wire bodies are ciphertext.
type LogTransport struct {
	next         http.RoundTripper
	maxLogLength uint64
}

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip forwards the request untouched when debug logging is off.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	var (
		ctx       = req.Context()
		encrypted = eapi.IsEncryptedPath(req.URL.Path)
		sent      = t.describeRequest(req, encrypted)
		started   = time.Now()
	)

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.DebugKV(ctx, "API call failed",
			"path", req.URL.Path,
			"elapsed", time.Since(started),
			"request", sent,
			"error", err)

		return nil, err
	}

	received := t.describeResponse(resp, encrypted)

	logger.DebugKV(ctx, "API call",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
		"request", sent,
		"response", received)

	return resp, nil
}

func (t *LogTransport) describeRequest(req *http.Request, encrypted bool) string {
	if req.GetBody == nil {
		return ""
	}

	body, err := req.GetBody()
	if err != nil {
		return err.Error()
	}

	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return err.Error()
	}

	if !encrypted {
		if !utils.IsTextContentType(req.Header.Get("Content-Type")) {
			return binaryPlaceholder(len(raw))
		}

		return t.truncate(raw)
	}

	form, err := url.ParseQuery(string(raw))
	if err != nil {
		return err.Error()
	}

	apiPath, payload, err := eapi.DecodeRequest(form.Get(eapi.ParamsField))
	if err != nil {
		return "undecodable params: " + err.Error()
	}

	return t.truncate([]byte(apiPath + " " + string(payload)))
}

// describeResponse buffers the body and puts it back so the caller still reads it whole.
func (t *LogTransport) describeResponse(resp *http.Response, encrypted bool) string {
	if resp.Body == nil || resp.Body == http.NoBody {
		return ""
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()

	resp.Body = io.NopCloser(bytes.NewReader(raw))

	if err != nil {
		return err.Error()
	}

	if encrypted {
		var decoded json.RawMessage
		if err = eapi.DecodeResponse(raw, &decoded); err != nil {
			return binaryPlaceholder(len(raw))
		}

		return t.truncate(decoded)
	}

	if !utils.IsTextContentType(resp.Header.Get("Content-Type")) {
		return binaryPlaceholder(len(raw))
	}

	return t.truncate(raw)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) <= t.maxLogLength {
		return string(data)
	}

	var sb strings.Builder

	sb.Write(data[:t.maxLogLength])
	sb.WriteString("... [truncated]")

	return sb.String()
}

func binaryPlaceholder(size int) string {
	return "<binary, " + humanize.Bytes(uint64(size)) + ">" //nolint:gosec // Lengths are never negative.
}

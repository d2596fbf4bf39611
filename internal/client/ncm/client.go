package ncm

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/eapi"
	"github.com/oshokin/ncm-player/internal/logger"
	http_transport "github.com/oshokin/ncm-player/internal/transport/http"
)

// Client defines the interface of the API gateway.
type Client interface {
	// Request posts payload to rawURL and decodes the response into out (which may be nil).
	Request(ctx context.Context, rawURL string, payload, out any) error
	// URL joins the configured base URL with an API path.
	URL(path string) string
}

// IdentityProvider supplies the cookie header of the current session.
type IdentityProvider = http_transport.IdentityProvider

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// baseURL is the API base URL without a trailing slash.
	baseURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// codec encrypts eapi requests and decodes their responses.
	codec eapi.Codec
}

// Option customizes a ClientImpl.
type Option func(*ClientImpl)

// WithCodec replaces the eapi codec.
func WithCodec(codec eapi.Codec) Option {
	return func(c *ClientImpl) {
		c.codec = codec
	}
}

// responseEnvelope holds the fields every response shares.
type responseEnvelope struct {
	Code    *int   `json:"code"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

// NewClient creates and returns a new instance of ClientImpl.
// identity is consulted on every request, so session writes apply to the next call.
func NewClient(cfg *config.Config, identity IdentityProvider, options ...Option) Client {
	timeout := cfg.ParsedRequestTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	httpClient := &http.Client{
		Transport: http_transport.NewHeaderInjector(
			http_transport.NewLogTransport(http.DefaultTransport, cfg.ParsedMaxLogLength),
			identity,
			http_transport.DesktopHeaders()),
		Timeout: timeout,
	}

	client := &ClientImpl{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: httpClient,
		codec:      eapi.NewCodec(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// URL joins the configured base URL with an API path.
func (c *ClientImpl) URL(path string) string {
	return c.baseURL + path
}

// Request posts payload to rawURL and decodes the response into out.
func (c *ClientImpl) Request(ctx context.Context, rawURL string, payload, out any) error {
	target, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if payload == nil {
		payload = map[string]any{}
	}

	// encoding/json sorts map keys, so equal payloads always serialize identically.
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	encrypted := eapi.IsEncryptedPath(target.Path)

	request, err := c.newRequest(ctx, target, data, encrypted)
	if err != nil {
		return err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", target.Path, err)
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", target.Path, err)
	}

	var decoded json.RawMessage

	decodeErr := c.decode(body, encrypted, &decoded)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		if decodeErr != nil {
			logger.Debugf(ctx, "Undecodable error body from %s: %v", target.Path, decodeErr)

			return fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
		}

		return newAPIError(response.StatusCode, decoded)
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response from %s: %w", target.Path, decodeErr)
	}

	var envelope responseEnvelope
	if err = json.Unmarshal(decoded, &envelope); err == nil && envelope.Code != nil && *envelope.Code != CodeOK {
		return newAPIError(response.StatusCode, decoded)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(decoded, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", target.Path, err)
	}

	return nil
}

func (c *ClientImpl) newRequest(ctx context.Context, target *url.URL, data []byte, encrypted bool) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	if encrypted {
		form := url.Values{}
		form.Set(eapi.ParamsField, c.codec.EncryptForRequest(eapi.ToAPIPath(target.Path), data))

		body = strings.NewReader(form.Encode())
		contentType = formContentType
	} else {
		body = bytes.NewReader(data)
		contentType = jsonContentType
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	request.Header.Set(contentTypeHeader, contentType)

	return request, nil
}

func (c *ClientImpl) decode(body []byte, encrypted bool, out *json.RawMessage) error {
	if encrypted {
		return c.codec.DecodeResponse(body, out)
	}

	return json.Unmarshal(body, out)
}

func newAPIError(statusCode int, body json.RawMessage) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: body}

	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Code != nil {
			apiErr.Code = *envelope.Code
		}

		apiErr.Message = envelope.Message
		if apiErr.Message == "" {
			apiErr.Message = envelope.Msg
		}
	}

	return apiErr
}

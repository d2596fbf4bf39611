package ncm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates a non-2xx status whose body could not be decoded.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrInvalidURL indicates a request URL that cannot be parsed.
	ErrInvalidURL = errors.New("invalid request URL")
)

// Service-level codes carried in the response body.
const (
	// CodeOK is the code of a successful response.
	CodeOK = 200
	// CodeNeedLogin is returned when the endpoint requires an authenticated session.
	CodeNeedLogin = 301
)

// APIError is a structured failure reported by the remote service.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the service-level code from the body.
	Code int
	// Message is the service-level message, if any.
	Message string
	// Body is the decoded JSON body.
	Body json.RawMessage
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d, code %d", e.StatusCode, e.Code)
	}

	return fmt.Sprintf("api error: status %d, code %d: %s", e.StatusCode, e.Code, e.Message)
}

// IsNeedLogin reports whether err is an APIError asking for authentication.
func IsNeedLogin(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.Code == CodeNeedLogin
}

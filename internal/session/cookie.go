package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cookie is one identity cookie in the format exported by the desktop client.
// Field names are kept verbatim because users paste this JSON directly.
type Cookie struct {
	Creation   float64 `json:"Creation"`
	Domain     string  `json:"Domain"`
	Expires    float64 `json:"Expires"`
	HasExpires float64 `json:"HasExpires"`
	Httponly   float64 `json:"Httponly"`
	LastAccess float64 `json:"LastAccess"`
	Name       string  `json:"Name"`
	Path       string  `json:"Path"`
	Secure     float64 `json:"Secure"`
	URL        string  `json:"Url"`
	Value      string  `json:"Value"`
}

// Header serializes cookies as "name=value" pairs joined by "; ".
func Header(cookies []Cookie) string {
	var sb strings.Builder

	for i, c := range cookies {
		if i > 0 {
			sb.WriteString("; ")
		}

		sb.WriteString(c.Name)
		sb.WriteByte('=')
		sb.WriteString(c.Value)
	}

	return sb.String()
}

// ParseCookies parses a pasted credential: a JSON array of Cookie objects.
// The array may also arrive wrapped in a JSON string, as the desktop client stores it.
func ParseCookies(raw string) ([]Cookie, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedCredential)
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCredential, err)
		}

		raw = strings.TrimSpace(inner)
	}

	var cookies []Cookie
	if err := json.Unmarshal([]byte(raw), &cookies); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCredential, err)
	}

	for i, c := range cookies {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: cookie #%d has no name", ErrMalformedCredential, i+1)
		}
	}

	return cookies, nil
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseCookies tests parsing of pasted credentials.
func TestParseCookies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		expected    []Cookie
		expectError bool
	}{
		{
			name: "desktop export",
			raw: `[{"Creation":1700000000,"Domain":".music.163.com","Expires":1800000000,"HasExpires":1,
				"Httponly":1,"LastAccess":1700000001,"Name":"MUSIC_U","Path":"/","Secure":0,
				"Url":"https://music.163.com","Value":"abc"}]`,
			expected: []Cookie{{
				Creation:   1700000000,
				Domain:     ".music.163.com",
				Expires:    1800000000,
				HasExpires: 1,
				Httponly:   1,
				LastAccess: 1700000001,
				Name:       "MUSIC_U",
				Path:       "/",
				URL:        "https://music.163.com",
				Value:      "abc",
			}},
		},
		{
			name:     "string wrapped array",
			raw:      `"[{\"Name\":\"a\",\"Value\":\"1\"}]"`,
			expected: []Cookie{{Name: "a", Value: "1"}},
		},
		{
			name:     "empty array",
			raw:      ` [] `,
			expected: []Cookie{},
		},
		{
			name:        "empty input",
			raw:         "   ",
			expectError: true,
		},
		{
			name:        "not json",
			raw:         "MUSIC_U=abc",
			expectError: true,
		},
		{
			name:        "object instead of array",
			raw:         `{"Name":"a","Value":"1"}`,
			expectError: true,
		},
		{
			name:        "cookie without name",
			raw:         `[{"Name":"a","Value":"1"},{"Value":"2"}]`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cookies, err := ParseCookies(tt.raw)
			if tt.expectError {
				require.ErrorIs(t, err, ErrMalformedCredential)
				assert.Nil(t, cookies)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cookies)
		})
	}
}

// TestHeader tests cookie header serialization.
func TestHeader(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Header(nil))
	assert.Equal(t, "a=1", Header([]Cookie{{Name: "a", Value: "1"}}))
	assert.Equal(t, "MUSIC_U=x; __csrf=y", Header([]Cookie{
		{Name: "MUSIC_U", Value: "x"},
		{Name: "__csrf", Value: "y"},
	}))
}

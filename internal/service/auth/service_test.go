package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_auth "github.com/oshokin/ncm-player/internal/service/auth/mocks"
	"github.com/oshokin/ncm-player/internal/session"
)

const validCredential = `[
	{"Creation":1700000000000,"Domain":".music.163.com","Expires":1900000000,"HasExpires":1,"Httponly":1,
	 "LastAccess":1700000000000,"Name":"MUSIC_U","Path":"/","Secure":0,"Url":"https://music.163.com/","Value":"token"},
	{"Name":"__csrf","Value":"csrf","Domain":".music.163.com","Path":"/"}
]`

// TestLoginWithCredential tests storing a pasted credential.
func TestLoginWithCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		raw           string
		expectStore   bool
		expectedCount int
		expectedErr   error
	}{
		{
			name:          "valid credential",
			raw:           validCredential,
			expectStore:   true,
			expectedCount: 2,
		},
		{
			name:          "credential without MUSIC_U is still stored",
			raw:           `[{"Name":"NMTID","Value":"x"}]`,
			expectStore:   true,
			expectedCount: 1,
		},
		{
			name:        "malformed json",
			raw:         `[{"Name":`,
			expectedErr: session.ErrMalformedCredential,
		},
		{
			name:        "not an array",
			raw:         `{"Name":"MUSIC_U"}`,
			expectedErr: session.ErrMalformedCredential,
		},
		{
			name:        "empty input",
			raw:         "  ",
			expectedErr: session.ErrMalformedCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := mock_auth.NewMockIdentityStore(gomock.NewController(t))

			if tt.expectStore {
				store.EXPECT().Set(gomock.Any(), gomock.Len(tt.expectedCount)).Return(nil)
			}

			count, err := NewService(store, nil).LoginWithCredential(context.Background(), tt.raw)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Zero(t, count)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCount, count)
		})
	}
}

// TestLoginWithCredential_StoreFailure tests that persistence errors are returned.
func TestLoginWithCredential_StoreFailure(t *testing.T) {
	t.Parallel()

	store := mock_auth.NewMockIdentityStore(gomock.NewController(t))
	errDisk := errors.New("disk full")

	store.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errDisk)

	_, err := NewService(store, nil).LoginWithCredential(context.Background(), validCredential)
	require.ErrorIs(t, err, errDisk)
}

// TestLoginWithBrowser tests the interactive login path.
func TestLoginWithBrowser(t *testing.T) {
	t.Parallel()

	authCookies := []session.Cookie{{Name: AuthCookieName, Value: "token"}, {Name: "__csrf", Value: "c"}}
	errClosed := ErrBrowserClosed

	tests := []struct {
		name        string
		cookies     []session.Cookie
		loginErr    error
		expectStore bool
		expectedErr error
	}{
		{
			name:        "session captured",
			cookies:     authCookies,
			expectStore: true,
		},
		{
			name:        "browser closed",
			loginErr:    errClosed,
			expectedErr: ErrBrowserClosed,
		},
		{
			name:        "cookies without session",
			cookies:     []session.Cookie{{Name: AuthCookieName}},
			expectedErr: ErrAuthCookieNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			store := mock_auth.NewMockIdentityStore(ctrl)
			browser := mock_auth.NewMockBrowser(ctrl)

			browser.EXPECT().Login(gomock.Any()).Return(tt.cookies, tt.loginErr)

			if tt.expectStore {
				store.EXPECT().Set(gomock.Any(), tt.cookies).Return(nil)
			}

			count, err := NewService(store, browser).LoginWithBrowser(context.Background())
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.cookies), count)
		})
	}
}

// TestLoginWithBrowser_Unavailable tests the service without a browser.
func TestLoginWithBrowser_Unavailable(t *testing.T) {
	t.Parallel()

	store := mock_auth.NewMockIdentityStore(gomock.NewController(t))

	_, err := NewService(store, nil).LoginWithBrowser(context.Background())
	require.ErrorIs(t, err, ErrBrowserUnavailable)
}

// TestLogout tests clearing the identity.
func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		store := mock_auth.NewMockIdentityStore(gomock.NewController(t))
		store.EXPECT().Reset(gomock.Any()).Return(nil)

		require.NoError(t, NewService(store, nil).Logout(context.Background()))
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		store := mock_auth.NewMockIdentityStore(gomock.NewController(t))
		errLocked := errors.New("database is locked")
		store.EXPECT().Reset(gomock.Any()).Return(errLocked)

		require.ErrorIs(t, NewService(store, nil).Logout(context.Background()), errLocked)
	})
}

// TestValidateLoginURL tests the validateLoginURL function.
func TestValidateLoginURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{name: "music.163.com", url: "https://music.163.com/#/login"},
		{name: "bare domain", url: "https://163.com/"},
		{name: "passport subdomain", url: "https://reg.163.com/naq/findPassword"},
		{name: "static assets domain", url: "https://s1.music.126.net/style/web2/emt/index.html"},
		{name: "blank page", url: "about:blank"},
		{name: "empty", url: ""},
		{name: "different domain", url: "https://google.com", expectError: true},
		{name: "lookalike domain", url: "https://music163.com/", expectError: true},
		{name: "domain in query only", url: "https://evil.com/?next=music.163.com", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateLoginURL(tt.url)
			if tt.expectError {
				require.ErrorIs(t, err, ErrNavigatedAway)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConvertCookies tests the mapping from browser cookies.
func TestConvertCookies(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)

	cookies := convertCookies([]*proto.NetworkCookie{
		{
			Name:     "MUSIC_U",
			Value:    "token",
			Domain:   ".music.163.com",
			Path:     "/",
			Expires:  1_900_000_000,
			HTTPOnly: true,
			Secure:   true,
		},
		{Name: "NMTID", Value: "x", Domain: ".music.163.com", Path: "/", Session: true},
		nil,
		{Name: ""},
	}, now)

	require.Len(t, cookies, 2)

	assert.Equal(t, session.Cookie{
		Creation:   1_700_000_000_000,
		Domain:     ".music.163.com",
		Expires:    1_900_000_000,
		HasExpires: 1,
		Httponly:   1,
		LastAccess: 1_700_000_000_000,
		Name:       "MUSIC_U",
		Path:       "/",
		Secure:     1,
		URL:        musicHomeURL,
		Value:      "token",
	}, cookies[0])

	assert.Zero(t, cookies[1].HasExpires)
	assert.Equal(t, "MUSIC_U=token; NMTID=x", session.Header(cookies))
}

// TestRodBrowser_Cleanup tests that cleanup tolerates an uninitialized browser.
func TestRodBrowser_Cleanup(t *testing.T) {
	t.Parallel()

	browser := NewRodBrowser()

	assert.Equal(t, maxLoginWaitTime, browser.maxWait)
	assert.NotPanics(t, func() {
		browser.cleanup(context.Background())
	})
}

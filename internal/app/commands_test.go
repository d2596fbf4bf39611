package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/constants"
	"github.com/oshokin/ncm-player/internal/session"
)

// TestApp_PrintPlaylist tests listing a playlist.
func TestApp_PrintPlaylist(t *testing.T) {
	t.Parallel()

	_, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))

	var out strings.Builder

	require.NoError(t, a.PrintPlaylist(context.Background(), &out, testPlaylistID))

	assert.Equal(t,
		"Late night by dj\n"+
			"3 songs, 6 分 0 秒\n"+
			"  1. Song 1 - Artist [1:00] (1)\n"+
			"  2. Song 2 - Artist [2:00] (2)\n"+
			"  3. Song 3 - Artist [3:00] (3)\n",
		out.String())
}

// TestApp_PrintSongs tests that unknown songs are reported in place and known ones get cached.
func TestApp_PrintSongs(t *testing.T) {
	t.Parallel()

	fake, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))
	ctx := context.Background()

	var out strings.Builder

	require.NoError(t, a.PrintSongs(ctx, &out, []int64{2, unknownSongID, 1}))
	assert.Equal(t,
		"  1. Song 2 - Artist [2:00] (2)\n"+
			"  2. song 404 not found\n"+
			"  3. Song 1 - Artist [1:00] (1)\n",
		out.String())
	assert.Equal(t, 1, fake.hitCount(ncm.SongDetailPath))

	a.songs.Flush()

	out.Reset()
	require.NoError(t, a.PrintSongs(ctx, &out, []int64{1, 2}))
	assert.Equal(t, 1, fake.hitCount(ncm.SongDetailPath))
	assert.Contains(t, out.String(), "Song 1")
}

// TestApp_LoginLogout tests storing, restoring and removing the identity.
func TestApp_LoginLogout(t *testing.T) {
	t.Parallel()

	fake, server := newFakeNCM(t)
	cfg := newTestConfig(t, server.URL)
	ctx := context.Background()

	first := openTestApp(t, cfg)

	var out strings.Builder

	require.NoError(t, first.PrintAccount(ctx, &out))
	assert.Equal(t, "Not logged in.\n", out.String())

	out.Reset()
	require.NoError(t, first.Login(ctx, &out, LoginOptions{Input: strings.NewReader(testCredential)}, nil))
	assert.Equal(t, "Stored 2 cookies.\nLogged in as Tester (user 99)\nVIP type: 11\n", out.String())
	assert.Equal(t, []string{testCookieHeader}, fake.cookiesFor(ncm.AccountPath))
	require.NoError(t, first.Close())

	// The identity survives a restart.
	second := openTestApp(t, cfg)

	out.Reset()
	require.NoError(t, second.PrintRecommendations(ctx, &out))
	assert.Equal(t, "7\tDaily (30 tracks, 12,345 plays)\n\tMade for you\n", out.String())

	out.Reset()
	require.NoError(t, second.Logout(ctx, &out))
	require.NoError(t, second.PrintAccount(ctx, &out))
	assert.Equal(t, "Logged out.\nNot logged in.\n", out.String())
}

// TestApp_Login_Errors tests login failures.
func TestApp_Login_Errors(t *testing.T) {
	t.Parallel()

	_, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))

	err := a.Login(context.Background(), io.Discard, LoginOptions{Credential: `{"Name":`}, nil)
	require.ErrorIs(t, err, session.ErrMalformedCredential)
	assert.False(t, a.store.IsAuthenticated())

	err = a.Login(context.Background(), io.Discard, LoginOptions{Browser: true}, nil)
	require.Error(t, err)
}

// TestApp_PrintRecommendations_NeedLogin tests the advice on anonymous sessions.
func TestApp_PrintRecommendations_NeedLogin(t *testing.T) {
	t.Parallel()

	_, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))

	err := a.PrintRecommendations(context.Background(), io.Discard)
	require.Error(t, err)
	assert.True(t, ncm.IsNeedLogin(err))
	assert.Contains(t, err.Error(), "ncm-player login")
}

// TestApp_PrintSearch tests search output numbering.
func TestApp_PrintSearch(t *testing.T) {
	t.Parallel()

	_, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))

	var out strings.Builder

	require.NoError(t, a.PrintSearch(context.Background(), &out, "song", 10, 20))
	assert.Equal(t, "1 songs found\n 21. Song 5 - Artist [5:00] (5)\n", out.String())
}

// TestApp_CacheCommands tests cache stats and purge.
func TestApp_CacheCommands(t *testing.T) {
	t.Parallel()

	_, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))
	ctx := context.Background()

	require.NoError(t, a.PrintSongs(ctx, io.Discard, []int64{1, 2}))
	a.songs.Flush()

	var out strings.Builder

	require.NoError(t, a.PrintCacheStats(ctx, &out, time.Now()))
	assert.Contains(t, out.String(), "Database: "+a.db.Path())
	assert.Contains(t, out.String(), "Cached songs: 2 (0 expired)")
	assert.Contains(t, out.String(), "from now")

	out.Reset()
	require.NoError(t, a.PurgeCache(ctx, &out))
	assert.Equal(t, "Removed 2 cached songs.\n", out.String())

	out.Reset()
	require.NoError(t, a.PrintCacheStats(ctx, &out, time.Now()))
	assert.Contains(t, out.String(), "Cached songs: 0 (0 expired)")
	assert.NotContains(t, out.String(), "Next expiry")
}

// TestApp_CloseIsIdempotent tests that the database is closed exactly once.
func TestApp_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	_, server := newFakeNCM(t)
	a := openTestApp(t, newTestConfig(t, server.URL))

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	_, err := a.songs.GetSongDetails(context.Background(), []int64{1})
	require.Error(t, err)
}

// TestSetConfigValue tests writing and validating configuration keys.
func TestSetConfigValue(t *testing.T) {
	t.Parallel()

	const original = "log_level: info\naudio_level: standard\n"

	tests := []struct {
		name            string
		existing        bool
		key             string
		value           string
		expectedErr     error
		expectedContent string
		expectRemoved   bool
	}{
		{
			name:            "valid value",
			existing:        true,
			key:             "audio_level",
			value:           "lossless",
			expectedContent: "log_level: info\naudio_level: lossless\n",
		},
		{
			name:            "invalid value restores the file",
			existing:        true,
			key:             "audio_level",
			value:           "ultra",
			expectedErr:     config.ErrUnknownAudioLevel,
			expectedContent: original,
		},
		{
			name:          "invalid value on a new file removes it",
			key:           "song_detail_batch_size",
			value:         "5000",
			expectedErr:   config.ErrInvalidBatchSize,
			expectRemoved: true,
		},
		{
			name:            "unknown key",
			existing:        true,
			key:             "token",
			value:           "x",
			expectedErr:     config.ErrUnknownConfigKey,
			expectedContent: original,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.existing {
				require.NoError(t, os.WriteFile(configPath, []byte(original), constants.DefaultFilePermissions))
			}

			err := SetConfigValue(configPath, tt.key, tt.value)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			content, readErr := os.ReadFile(configPath)
			if tt.expectRemoved {
				require.ErrorIs(t, readErr, os.ErrNotExist)

				return
			}

			require.NoError(t, readErr)
			assert.Equal(t, tt.expectedContent, string(content))
		})
	}
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/eapi"
)

const (
	testCredential = `[
		{"Name":"MUSIC_U","Value":"token","Domain":".music.163.com","Path":"/","HasExpires":1,"Expires":1900000000},
		{"Name":"__csrf","Value":"csrf","Domain":".music.163.com","Path":"/"}
	]`
	testCookieHeader = "MUSIC_U=token; __csrf=csrf"
	testPlaylistID   = 42
	unknownSongID    = 404
)

// fakeNCM answers the endpoints the commands use with plaintext JSON.
type fakeNCM struct {
	mu      sync.Mutex
	hits    map[string]int
	cookies map[string][]string
}

func newFakeNCM(t *testing.T) (*fakeNCM, *httptest.Server) {
	t.Helper()

	fake := &fakeNCM{
		hits:    make(map[string]int),
		cookies: make(map[string][]string),
	}

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return fake, server
}

func (f *fakeNCM) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.hits[path]
}

func (f *fakeNCM) cookiesFor(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.cookies[path]...)
}

func (f *fakeNCM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookie := r.Header.Get("Cookie")

	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.cookies[r.URL.Path] = append(f.cookies[r.URL.Path], cookie)
	f.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	_, payload, err := eapi.DecodeRequest(r.PostForm.Get(eapi.ParamsField))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	authenticated := strings.Contains(cookie, "MUSIC_U=token")

	var response any

	switch r.URL.Path {
	case ncm.PlaylistDetailPath:
		response = map[string]any{
			"code": 200,
			"playlist": map[string]any{
				"id":       testPlaylistID,
				"name":     "Late night",
				"creator":  map[string]any{"userId": 1, "nickname": "dj"},
				"trackIds": []map[string]int64{{"id": 1}, {"id": 2}, {"id": 3}},
			},
		}
	case ncm.SongDetailPath:
		response, err = songDetailResponse(payload)
	case ncm.AccountPath:
		response = map[string]any{"code": 200}
		if authenticated {
			response = map[string]any{
				"code":    200,
				"account": map[string]any{"id": 99, "vipType": 11},
				"profile": map[string]any{"userId": 99, "nickname": "Tester"},
			}
		}
	case ncm.RecommendResourcePath:
		response = map[string]any{"code": ncm.CodeNeedLogin, "message": "need login"}
		if authenticated {
			response = map[string]any{
				"code": 200,
				"recommend": []map[string]any{
					{"id": 7, "name": "Daily", "copywriter": "Made for you", "trackCount": 30, "playcount": 12345},
				},
			}
		}
	case ncm.SearchPath:
		response = map[string]any{
			"code": 200,
			"result": map[string]any{
				"songCount": 1,
				"songs":     []*ncm.SongDetail{testSong(5)},
			},
		}
	case ncm.SongURLPath:
		response, err = songURLResponse(payload)
	default:
		http.NotFound(w, r)

		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func testSong(id int64) *ncm.SongDetail {
	return &ncm.SongDetail{
		ID:       id,
		Name:     fmt.Sprintf("Song %d", id),
		Artists:  []ncm.Artist{{ID: 1, Name: "Artist"}},
		Duration: id * 60_000,
	}
}

func songDetailResponse(payload []byte) (any, error) {
	var request struct {
		C string `json:"c"`
	}

	if err := json.Unmarshal(payload, &request); err != nil {
		return nil, err
	}

	var ids []struct {
		ID int64 `json:"id"`
	}

	if err := json.Unmarshal([]byte(request.C), &ids); err != nil {
		return nil, err
	}

	songs := make([]*ncm.SongDetail, 0, len(ids))

	for _, id := range ids {
		if id.ID != unknownSongID {
			songs = append(songs, testSong(id.ID))
		}
	}

	return map[string]any{"code": 200, "songs": songs}, nil
}

func songURLResponse(payload []byte) (any, error) {
	var request struct {
		IDs string `json:"ids"`
	}

	if err := json.Unmarshal(payload, &request); err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal([]byte(request.IDs), &ids); err != nil {
		return nil, err
	}

	data := make([]map[string]any, len(ids))
	for i, id := range ids {
		data[i] = map[string]any{"id": id, "url": fmt.Sprintf("https://m.example/%d.mp3", id)}
	}

	return map[string]any{"code": 200, "data": data}, nil
}

func newTestConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()

	dir := t.TempDir()

	cfg, err := config.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	cfg.DatabasePath = filepath.Join(dir, "ncm-player.db")
	cfg.APIBaseURL = serverURL
	cfg.PositionTick = "20ms"

	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

func openTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	a, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, a.Close())
	})

	return a
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

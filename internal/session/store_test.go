package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/ncm-player/internal/constants"
	mock_session "github.com/oshokin/ncm-player/internal/session/mocks"
)

var errDiskFull = errors.New("disk full")

// TestStore_SetNotifiesObservers tests that every write reaches every observer.
func TestStore_SetNotifiesObservers(t *testing.T) {
	t.Parallel()

	var (
		ctx   = context.Background()
		store = NewStore(nil)
		mu    sync.Mutex
		seen  []string
	)

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.CookieHeader())

	unsubscribe := store.Subscribe(func(_ context.Context, cookies []Cookie) {
		mu.Lock()
		defer mu.Unlock()

		seen = append(seen, Header(cookies))
	})

	require.NoError(t, store.Set(ctx, []Cookie{{Name: "a", Value: "1"}}))
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "a=1", store.CookieHeader())

	value, ok := store.Value("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	require.NoError(t, store.Reset(ctx))
	assert.False(t, store.IsAuthenticated())

	unsubscribe()
	unsubscribe()

	require.NoError(t, store.Set(ctx, []Cookie{{Name: "b", Value: "2"}}))

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"a=1", ""}, seen)
}

// TestStore_UnsubscribeIsolated tests that cancelling one observer leaves the others registered.
func TestStore_UnsubscribeIsolated(t *testing.T) {
	t.Parallel()

	var (
		ctx        = context.Background()
		store      = NewStore(nil)
		firstCalls int
		lastCalls  int
	)

	cancelFirst := store.Subscribe(func(context.Context, []Cookie) { firstCalls++ })
	store.Subscribe(func(context.Context, []Cookie) { lastCalls++ })

	cancelFirst()

	require.NoError(t, store.Set(ctx, []Cookie{{Name: "a", Value: "1"}}))

	assert.Zero(t, firstCalls)
	assert.Equal(t, 1, lastCalls)
}

// TestStore_CookiesAreCopied tests that callers cannot mutate the stored set.
func TestStore_CookiesAreCopied(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	input := []Cookie{{Name: "a", Value: "1"}}

	require.NoError(t, store.Set(context.Background(), input))

	input[0].Value = "changed"
	out := store.Cookies()
	out[0].Value = "changed too"

	assert.Equal(t, "a=1", store.CookieHeader())
	assert.Equal(t, "1", store.Cookies()[0].Value)
}

// TestStore_Persistence tests the persister interaction.
func TestStore_Persistence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set saves under the identity key", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		persister := mock_session.NewMockPersister(ctrl)
		persister.EXPECT().
			Save(gomock.Any(), constants.IdentityStorageKey, `[{"Creation":0,"Domain":"","Expires":0,`+
				`"HasExpires":0,"Httponly":0,"LastAccess":0,"Name":"a","Path":"","Secure":0,"Url":"","Value":"1"}]`).
			Return(nil)

		store := NewStore(persister)
		require.NoError(t, store.Set(ctx, []Cookie{{Name: "a", Value: "1"}}))
		assert.Equal(t, "a=1", store.CookieHeader())
	})

	t.Run("failed save keeps previous identity and skips observers", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		persister := mock_session.NewMockPersister(ctrl)
		persister.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errDiskFull)

		store := NewStore(persister)
		notified := false
		store.Subscribe(func(context.Context, []Cookie) { notified = true })

		err := store.Set(ctx, []Cookie{{Name: "a", Value: "1"}})
		require.ErrorIs(t, err, errDiskFull)
		assert.False(t, store.IsAuthenticated())
		assert.False(t, notified)
	})

	t.Run("load restores persisted identity", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		persister := mock_session.NewMockPersister(ctrl)
		persister.EXPECT().
			Load(gomock.Any(), constants.IdentityStorageKey).
			Return(`[{"Name":"MUSIC_U","Value":"x"},{"Name":"__csrf","Value":"y"}]`, true, nil)

		store := NewStore(persister)
		require.NoError(t, store.Load(ctx))
		assert.Equal(t, "MUSIC_U=x; __csrf=y", store.CookieHeader())
	})

	t.Run("load without stored identity", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		persister := mock_session.NewMockPersister(ctrl)
		persister.EXPECT().Load(gomock.Any(), gomock.Any()).Return("", false, nil)

		store := NewStore(persister)
		require.NoError(t, store.Load(ctx))
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("load with corrupted identity", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		persister := mock_session.NewMockPersister(ctrl)
		persister.EXPECT().Load(gomock.Any(), gomock.Any()).Return("{oops", true, nil)

		store := NewStore(persister)
		require.ErrorIs(t, store.Load(ctx), ErrMalformedCredential)
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("reset deletes the identity", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		persister := mock_session.NewMockPersister(ctrl)
		persister.EXPECT().Delete(gomock.Any(), constants.IdentityStorageKey).Return(nil)

		store := NewStore(persister)
		require.NoError(t, store.Reset(ctx))
	})
}

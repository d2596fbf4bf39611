package session

//go:generate $MOCKGEN -source=store.go -destination=mocks/store_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/oshokin/ncm-player/internal/constants"
	"github.com/oshokin/ncm-player/internal/logger"
)

// Persister stores the serialized identity between runs.
type Persister interface {
	// Load returns the value under key; false when absent.
	Load(ctx context.Context, key string) (string, bool, error)
	// Save stores value under key.
	Save(ctx context.Context, key, value string) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
}

// Observer is notified with a copy of the cookie set after every change.
type Observer func(ctx context.Context, cookies []Cookie)

// Store holds the current cookie set.
type Store struct {
	persister Persister

	mu      sync.RWMutex
	cookies []Cookie
	header  string

	observersMu sync.Mutex
	observers   map[uint64]Observer
	nextID      uint64
}

// NewStore creates an empty store. A nil persister keeps the identity in memory only.
func NewStore(persister Persister) *Store {
	return &Store{
		persister: persister,
		observers: make(map[uint64]Observer),
	}
}

// Load replaces the in-memory identity with the persisted one.
// Observers are not notified; callers propagate the initial identity explicitly.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	raw, found, err := s.persister.Load(ctx, constants.IdentityStorageKey)
	if err != nil {
		return fmt.Errorf("failed to load identity: %w", err)
	}

	if !found {
		return nil
	}

	cookies, err := ParseCookies(raw)
	if err != nil {
		return fmt.Errorf("stored identity is unreadable: %w", err)
	}

	s.replace(cookies)

	logger.Debugf(ctx, "Loaded %d cookies from storage", len(cookies))

	return nil
}

// Cookies returns a copy of the current cookie set.
func (s *Store) Cookies() []Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.cookies)
}

// CookieHeader returns the current cookie header, empty when unauthenticated.
func (s *Store) CookieHeader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.header
}

// Value returns the value of the named cookie.
func (s *Store) Value(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cookies {
		if c.Name == name {
			return c.Value, true
		}
	}

	return "", false
}

// IsAuthenticated reports whether any cookie is set.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.cookies) > 0
}

// Set persists cookies, makes them current and notifies observers.
func (s *Store) Set(ctx context.Context, cookies []Cookie) error {
	if s.persister != nil {
		raw, err := json.Marshal(cookies)
		if err != nil {
			return fmt.Errorf("failed to serialize identity: %w", err)
		}

		if err = s.persister.Save(ctx, constants.IdentityStorageKey, string(raw)); err != nil {
			return fmt.Errorf("failed to persist identity: %w", err)
		}
	}

	s.replace(cookies)
	s.notify(ctx)

	return nil
}

// Reset forgets the identity and notifies observers.
func (s *Store) Reset(ctx context.Context) error {
	if s.persister != nil {
		if err := s.persister.Delete(ctx, constants.IdentityStorageKey); err != nil {
			return fmt.Errorf("failed to delete identity: %w", err)
		}
	}

	s.replace(nil)
	s.notify(ctx)

	return nil
}

// Subscribe registers an observer. The returned function unsubscribes it and may be called any number of times.
func (s *Store) Subscribe(observer Observer) func() {
	s.observersMu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.observersMu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.observersMu.Lock()
			delete(s.observers, id)
			s.observersMu.Unlock()
		})
	}
}

func (s *Store) replace(cookies []Cookie) {
	cookies = slices.Clone(cookies)
	header := Header(cookies)

	s.mu.Lock()
	s.cookies = cookies
	s.header = header
	s.mu.Unlock()
}

func (s *Store) notify(ctx context.Context) {
	s.observersMu.Lock()
	observers := make([]Observer, 0, len(s.observers))

	for _, id := range slices.Sorted(maps.Keys(s.observers)) {
		observers = append(observers, s.observers[id])
	}
	s.observersMu.Unlock()

	for _, observer := range observers {
		observer(ctx, s.Cookies())
	}
}

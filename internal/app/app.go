package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/service/catalog"
	"github.com/oshokin/ncm-player/internal/service/songcache"
	"github.com/oshokin/ncm-player/internal/session"
	"github.com/oshokin/ncm-player/internal/storage"
)

// App holds the components shared by every command.
type App struct {
	cfg     *config.Config
	db      *storage.DB
	store   *session.Store
	client  ncm.Client
	songs   songcache.Service
	catalog catalog.Service

	closeOnce sync.Once
	closeErr  error
}

// Open opens the database, restores the stored identity and builds the services.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := storage.Open(ctx, cfg.ParsedDatabasePath)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(storage.NewKV(db))

	// A broken stored identity must not lock the user out of logging in again.
	if err = store.Load(ctx); err != nil {
		logger.Warnf(ctx, "Ignoring stored identity: %v", err)
	}

	client := ncm.NewClient(cfg, store)

	songs, err := songcache.Open(ctx, cfg, client, storage.NewSongRepository(db))
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &App{
		cfg:     cfg,
		db:      db,
		store:   store,
		client:  client,
		songs:   songs,
		catalog: catalog.NewService(client),
	}, nil
}

// Close waits for pending cache writes and closes the database. Later calls return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = errors.Join(a.songs.Close(), a.db.Close())
	})

	return a.closeErr
}

// run opens the application, calls fn and closes the application again.
func run(ctx context.Context, cfg *config.Config, fn func(a *App) error) error {
	a, err := Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open application: %w", err)
	}

	err = fn(a)

	if closeErr := a.Close(); closeErr != nil {
		logger.Warnf(ctx, "Failed to close application: %v", closeErr)
	}

	return err
}

// explain turns well-known remote errors into advice for the user.
func explain(err error) error {
	if ncm.IsNeedLogin(err) {
		return fmt.Errorf("%w (run 'ncm-player login' first)", err)
	}

	return err
}

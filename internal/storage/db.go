package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pocketbase/dbx"
	// Registers the pure-Go "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/oshokin/ncm-player/internal/constants"
	"github.com/oshokin/ncm-player/internal/logger"
)

const (
	// driverName is the database/sql driver registered by modernc.org/sqlite.
	driverName = "sqlite"
	// pragmas are applied to every connection through the DSN.
	pragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
)

// DB wraps the process-wide SQLite handle.
type DB struct {
	// db is the dbx handle used by repositories.
	db *dbx.DB
	// path is the database file location.
	path string
	// closed is set once Close has run.
	closed atomic.Bool
	// closeOnce guards the underlying close.
	closeOnce sync.Once
	// closeErr is the result of the first Close.
	closeErr error
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	handle, err := dbx.Open(driverName, path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if logger.IsDebugLevel() {
		handle.QueryLogFunc = func(ctx context.Context, t time.Duration, query string, _ *sql.Rows, err error) {
			logger.Debugf(ctx, "[%s] %s (err: %v)", t, query, err)
		}
		handle.ExecLogFunc = func(ctx context.Context, t time.Duration, query string, _ sql.Result, err error) {
			logger.Debugf(ctx, "[%s] %s (err: %v)", t, query, err)
		}
	}

	if err = handle.DB().PingContext(ctx); err != nil {
		_ = handle.Close()

		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = migrate(ctx, handle); err != nil {
		_ = handle.Close()

		return nil, err
	}

	logger.Debugf(ctx, "Database opened at %s", path)

	return &DB{db: handle, path: path}, nil
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// handle returns the dbx handle, or ErrClosed after Close.
func (d *DB) handle() (*dbx.DB, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}

	return d.db, nil
}

// Close closes the database. Subsequent calls return the first result.
func (d *DB) Close() error {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		d.closeErr = d.db.Close()
	})

	return d.closeErr
}

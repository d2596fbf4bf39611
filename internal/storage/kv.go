package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
)

// kvTable is the key/value table name.
const kvTable = "kv_store"

// KV is a string key/value store backed by the kv_store table.
type KV struct {
	db *DB
}

// NewKV creates and returns a new instance of KV.
func NewKV(db *DB) *KV {
	return &KV{db: db}
}

// Load returns the value stored under key. The boolean is false when the key is absent.
func (s *KV) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	handle, err := s.db.handle()
	if err != nil {
		return "", false, err
	}

	var value string

	err = handle.Select("value").
		From(kvTable).
		Where(dbx.HashExp{"key": key}).
		WithContext(ctx).
		Row(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to load %q: %w", key, err)
	}

	return value, true, nil
}

// Save stores value under key, replacing any previous value.
func (s *KV) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	handle, err := s.db.handle()
	if err != nil {
		return err
	}

	_, err = handle.NewQuery(
		"INSERT INTO kv_store (key, value) VALUES ({:key}, {:value}) " +
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		Bind(dbx.Params{"key": key, "value": value}).
		WithContext(ctx).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KV) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	handle, err := s.db.handle()
	if err != nil {
		return err
	}

	if _, err = handle.Delete(kvTable, dbx.HashExp{"key": key}).WithContext(ctx).Execute(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	return nil
}

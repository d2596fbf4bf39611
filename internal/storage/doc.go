// Package storage owns the single SQLite database of the process.
//
// The database holds two tables: song_cache, the persistent song detail cache,
// and kv_store, a small key/value table used for the stored identity.
// Open runs schema migrations; Close is safe to call more than once.
package storage

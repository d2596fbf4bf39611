// Package songcache resolves song details through a persistent SQLite cache
// backed by the song detail endpoint. Lookups keep the caller's order and
// leave nil holes for ids the remote service does not know.
package songcache

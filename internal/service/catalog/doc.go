// Package catalog wraps the browse endpoints of the remote service: playlists,
// daily recommendations, search, account info and playback source URLs.
package catalog

// Package utils provides small generic helpers shared across the application:
// slice transforms, deduplication, shuffling, numeric clamping, path expansion
// and content type checks.
package utils

package utils

import (
	"math"
	"math/rand/v2"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based.
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile("^application/x-www-form-urlencoded$"),
}

// SafeInt64ToInt converts an int64 to int, clamping to the platform limits.
func SafeInt64ToInt(val int64) int {
	if val > math.MaxInt {
		return math.MaxInt
	}

	if val < math.MinInt {
		return math.MinInt
	}

	return int(val)
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// Map applies a transformation function to each element of a slice and returns a new slice with the results.
func Map[E, S any](v []E, transformFunc func(E) S) []S {
	result := make([]S, len(v))
	for i := range v {
		result[i] = transformFunc(v[i])
	}

	return result
}

// Unique returns the distinct elements of v in first-seen order.
func Unique[E comparable](v []E) []E {
	seen := make(map[E]struct{}, len(v))
	result := make([]E, 0, len(v))

	for _, item := range v {
		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}

		result = append(result, item)
	}

	return result
}

// Shuffled returns a shuffled copy of v using Fisher-Yates; v is left untouched.
func Shuffled[E any](v []E) []E {
	result := make([]E, len(v))
	copy(result, v)

	for i := len(result) - 1; i > 0; i-- {
		//nolint:gosec // Playback order does not need a cryptographic source.
		j := rand.IntN(i + 1)
		result[i], result[j] = result[j], result[i]
	}

	return result
}

// ExpandPath resolves a leading "~" to the user's home directory and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", os.ErrInvalid
	}

	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}

	return filepath.Abs(trimmed)
}

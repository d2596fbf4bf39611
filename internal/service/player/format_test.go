package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatDuration tests the FormatDuration and FormatDurationLong functions.
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ms           int64
		expected     string
		expectedLong string
	}{
		{name: "zero", ms: 0, expected: "0:00", expectedLong: "0 分 0 秒"},
		{name: "sub-second is truncated", ms: 999, expected: "0:00", expectedLong: "0 分 0 秒"},
		{name: "seconds are padded", ms: 65_000, expected: "1:05", expectedLong: "1 分 5 秒"},
		{name: "just under an hour", ms: 3_599_999, expected: "59:59", expectedLong: "59 分 59 秒"},
		{name: "one hour", ms: 3_600_000, expected: "1:00:00", expectedLong: "1 时 0 分 0 秒"},
		{name: "minutes are padded after hours", ms: 3_723_000, expected: "1:02:03", expectedLong: "1 时 2 分 3 秒"},
		{name: "long playlist", ms: 36_610_000, expected: "10:10:10", expectedLong: "10 时 10 分 10 秒"},
		{name: "negative clamps to zero", ms: -5_000, expected: "0:00", expectedLong: "0 分 0 秒"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, FormatDuration(tt.ms))
			assert.Equal(t, tt.expectedLong, FormatDurationLong(tt.ms))
		})
	}
}

// TestScope tests cancellation of a scope.
func TestScope(t *testing.T) {
	t.Parallel()

	scope := NewScope()
	assert.False(t, scope.Canceled())

	scope.Cancel()
	scope.Cancel()
	assert.True(t, scope.Canceled())
}

package player

import (
	"fmt"
	"time"
)

// FormatDuration renders milliseconds as "m:ss", or "h:mm:ss" from one hour on.
func FormatDuration(ms int64) string {
	h, m, s := splitDuration(ms)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatDurationLong renders milliseconds the way playlist totals are shown: "m 分 s 秒",
// prefixed with "h 时" from one hour on.
func FormatDurationLong(ms int64) string {
	h, m, s := splitDuration(ms)
	if h > 0 {
		return fmt.Sprintf("%d 时 %d 分 %d 秒", h, m, s)
	}

	return fmt.Sprintf("%d 分 %d 秒", m, s)
}

func splitDuration(ms int64) (hours, minutes, seconds int64) {
	total := max(ms, 0) / int64(time.Second/time.Millisecond)

	return total / 3600, total % 3600 / 60, total % 60
}

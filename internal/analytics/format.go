package analytics

import (
	"fmt"
	"strings"
	"time"
)

var units = []struct {
	suffix string
	ms     int64
}{
	{"d", 86_400_000},
	{"h", 3_600_000},
	{"m", 60_000},
	{"s", 1_000},
}

// FormatDuration renders ms using its two most significant non-zero units,
// for example "3d 4h", "2h" or "45s". Anything under a second is "0s".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	parts := make([]string, 0, 2)
	rest := ms
	for _, u := range units {
		n := rest / u.ms
		rest %= u.ms
		if n == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
		if len(parts) == 2 {
			break
		}
	}

	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

// Format is FormatDuration for a time.Duration
func Format(d time.Duration) string {
	return FormatDuration(d.Milliseconds())
}

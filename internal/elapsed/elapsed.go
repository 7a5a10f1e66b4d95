package elapsed

import (
	"fmt"
	"time"
)

// Format renders a duration as seconds with millisecond precision, e.g. "1.234".
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.3f", d.Seconds())
}

// Since returns the formatted time elapsed between start and now.
func Since(start, now time.Time) string {
	return Format(now.Sub(start))
}

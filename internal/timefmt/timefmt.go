// Package timefmt formats playback positions for display.
package timefmt

import (
	"fmt"
	"time"
)

// Format renders d as M:SS. Partial seconds are dropped, never rounded up,
// so 59.9s is "0:59". Negative durations render as "0:00".
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}

// Seconds converts a float second count into a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

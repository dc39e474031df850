package schedule

import (
	"time"
)

// IsQuiet reports whether t falls in one of the UTC quietHours.
func IsQuiet(t time.Time, quietHours []int) bool {
	h := t.UTC().Hour()
	for _, q := range quietHours {
		if q == h {
			return true
		}
	}
	return false
}

// NextWindow returns the first hour boundary (or now itself) outside quiet hours.
func NextWindow(now time.Time, quietHours []int) time.Time {
	if !IsQuiet(now, quietHours) {
		return now
	}
	next := now.UTC().Truncate(time.Hour)
	for i := 0; i < 24; i++ {
		next = next.Add(time.Hour)
		if !IsQuiet(next, quietHours) {
			return next
		}
	}
	// every hour is quiet
	return now
}

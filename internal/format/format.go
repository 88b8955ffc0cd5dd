// Package format renders durations and timestamps for display.
package format

import (
	"fmt"
	"time"
)

// Duration formats a positive duration in seconds as "1h 23m 45s", "23m 45s"
// or "45s", dropping zero-valued trailing components ("1h 23m", "1h", "30m").
// Zero and negative inputs are outside the documented domain; callers
// substitute a placeholder via WorkoutDuration instead.
func Duration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	rem := seconds % 60

	if hours > 0 {
		switch {
		case rem > 0:
			return fmt.Sprintf("%dh %dm %ds", hours, minutes, rem)
		case minutes > 0:
			return fmt.Sprintf("%dh %dm", hours, minutes)
		default:
			return fmt.Sprintf("%dh", hours)
		}
	}
	if rem > 0 {
		return fmt.Sprintf("%dm %ds", minutes, rem)
	}
	return fmt.Sprintf("%dm", minutes)
}

// WorkoutDuration is Duration with a placeholder for unrecorded values.
func WorkoutDuration(seconds int) string {
	if seconds <= 0 {
		return "Duration not recorded"
	}
	return Duration(seconds)
}

// RelativeDate returns "Today" or "Yesterday" when t falls on the current or
// previous calendar day relative to now, otherwise a short "Mon, Jan 2"
// style date. Time of day is ignored.
func RelativeDate(t, now time.Time) string {
	t = t.In(now.Location())
	if sameDay(t, now) {
		return "Today"
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Format("Mon, Jan 2")
}

// ClockTime renders a localized hour:minute clock reading with AM/PM.
// The zero time yields an empty string.
func ClockTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("3:04 PM")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

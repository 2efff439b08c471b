// Package dateutil holds the calendar-day and duration formatting rules the
// attendance domain is built on. Every consumer that needs to answer "is this
// record today's record" must go through LocalKey so that records taken near a
// timezone boundary never land on the wrong day.
package dateutil

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the canonical calendar-day key, YYYY-MM-DD.
const DateLayout = "2006-01-02"

// LocalKey renders t as a local calendar-day key. The key depends only on the
// local year/month/day of the instant, never on the zone t was parsed in.
func LocalKey(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// KeyIn is LocalKey pinned to an explicit location, for callers (and tests)
// that must not depend on the process-wide zone.
func KeyIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// TodayKey returns the local calendar-day key for the current instant.
func TodayKey() string {
	return LocalKey(time.Now())
}

// ParseKey parses a YYYY-MM-DD key into a midnight-local time.
func ParseKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, time.Local)
}

// FormatElapsed renders a wall-clock duration as H:MM:SS with unbounded,
// unpadded hours. Negative durations clamp to "0:00:00"; an open attendance
// record can never have been open for negative time.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		return "0:00:00"
	}
	totalSec := int64(d / time.Second)
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatHoursToHMS renders server-supplied decimal hours as "Xh Ym Zs".
// A nil value renders as an em dash. Negative input keeps its sign; the server
// owns the meaning of negative worked hours, display just passes it through.
func FormatHoursToHMS(hours *float64) string {
	if hours == nil {
		return "—"
	}
	totalSec := int64(math.Round(math.Abs(*hours) * 3600))
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	sign := ""
	if *hours < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%dh %dm %ds", sign, h, m, s)
}

// Hours converts a closed login/logout pair into decimal worked hours.
func Hours(login, logout time.Time) float64 {
	return logout.Sub(login).Hours()
}

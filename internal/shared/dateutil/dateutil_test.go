package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalKey_SameInstantAnyZone(t *testing.T) {
	instant := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	east := time.FixedZone("east", 14*3600)
	west := time.FixedZone("west", -12*3600)

	// LocalKey normalizes to the process zone, so the same instant must key
	// identically no matter which zone the value was carried in.
	assert.Equal(t, LocalKey(instant), LocalKey(instant.In(east)))
	assert.Equal(t, LocalKey(instant), LocalKey(instant.In(west)))
}

func TestKeyIn_UsesCalendarDayOfLocation(t *testing.T) {
	// 23:30 UTC is already the next day at UTC+1.
	instant := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-14", KeyIn(instant, time.UTC))
	assert.Equal(t, "2026-03-15", KeyIn(instant, time.FixedZone("cet", 3600)))
	assert.Equal(t, "2026-03-14", KeyIn(instant, time.FixedZone("pst", -8*3600)))
}

func TestKeyIn_IndependentOfTimeOfDay(t *testing.T) {
	loc := time.FixedZone("x", 5*3600+1800)
	morning := time.Date(2026, 7, 1, 0, 0, 1, 0, loc)
	night := time.Date(2026, 7, 1, 23, 59, 59, 0, loc)
	assert.Equal(t, KeyIn(morning, loc), KeyIn(night, loc))
}

func TestParseKey_RoundTrip(t *testing.T) {
	day, err := ParseKey("2026-02-28")
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-28", LocalKey(day))

	_, err = ParseKey("28-02-2026")
	assert.Error(t, err)
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{-1 * time.Second, "0:00:00"},
		{-1 * time.Millisecond, "0:00:00"},
		{0, "0:00:00"},
		{3725 * time.Second, "1:02:05"},
		{59 * time.Second, "0:00:59"},
		{10*time.Hour + 5*time.Second, "10:00:05"},
		{100 * time.Hour, "100:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatElapsed(tc.d), "input %s", tc.d)
	}
}

func TestFormatHoursToHMS(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.Equal(t, "—", FormatHoursToHMS(nil))
	assert.Equal(t, "8h 30m 0s", FormatHoursToHMS(f(8.5)))
	assert.Equal(t, "-0h 15m 0s", FormatHoursToHMS(f(-0.25)))
	assert.Equal(t, "0h 0m 0s", FormatHoursToHMS(f(0)))
	assert.Equal(t, "1h 0m 1s", FormatHoursToHMS(f(1.000278)))
	assert.Equal(t, "-0h 27m 0s", FormatHoursToHMS(f(-0.45)))
}

func TestHours(t *testing.T) {
	in := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)
	assert.InDelta(t, 8.5, Hours(in, out), 1e-9)

	// Exit recorded before arrival passes through as a negative value.
	assert.InDelta(t, -0.25, Hours(in, in.Add(-15*time.Minute)), 1e-9)
}

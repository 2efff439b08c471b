package attendance

import (
	"time"

	"go-attend/internal/shared/dateutil"
)

// BuildSummary reduces a record window into the dashboard counters.
//
// The window covers `days` calendar days ending on the local day of `now`.
// Presences and leaves count persisted records; absences count the already
// elapsed days of the window that have neither, plus any explicit Absent
// record. Today only counts as absent once a record says so; a day still in
// progress is not a missed day.
func BuildSummary(records []Attendance, now time.Time, days int) SummaryResponse {
	if days < 1 {
		days = 1
	}

	byKey := make(map[string]string, len(records))
	var total float64
	for _, r := range records {
		byKey[dateutil.LocalKey(r.Date)] = r.Status
		if r.WorkingHours != nil {
			total += *r.WorkingHours
		}
	}

	sum := SummaryResponse{TotalOfficeHours: total}

	todayKey := dateutil.LocalKey(now)
	day := now.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		key := dateutil.LocalKey(day)
		status, ok := byKey[key]
		switch {
		case ok && status == StatusPresent:
			sum.Presences++
		case ok && status == StatusExcused:
			sum.Leaves++
		case ok && status == StatusAbsent:
			sum.Absences++
		case !ok && key != todayKey:
			sum.Absences++
		}
		day = day.AddDate(0, 0, 1)
	}

	return sum
}

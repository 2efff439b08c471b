package client

import (
	"time"

	"go-attend/internal/shared/dateutil"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusExcused = "Excused"
)

// DayStatus is the derived display state for one user's day.
type DayStatus struct {
	Status string
	// Open means clocked in with no exit yet; Elapsed then holds now-login
	// and should be recomputed every tick.
	Open    bool
	Elapsed time.Duration
	Record  *Record
}

// TodayRecord finds the record whose date key matches now's local calendar
// day. At most one exists per user.
func TodayRecord(records []Record, now time.Time) *Record {
	key := dateutil.LocalKey(now)
	for i := range records {
		if records[i].Date == key {
			return &records[i]
		}
	}
	return nil
}

// DeriveToday computes today's display status. No matching record presents
// as Absent without fabricating one.
func DeriveToday(records []Record, now time.Time) DayStatus {
	rec := TodayRecord(records, now)
	if rec == nil {
		return DayStatus{Status: StatusAbsent}
	}

	ds := DayStatus{Status: rec.Status, Record: rec}
	if rec.LoginTime != nil && rec.LogoutTime == nil {
		ds.Open = true
		if login, err := time.Parse(time.RFC3339, *rec.LoginTime); err == nil {
			ds.Elapsed = now.Sub(login)
		}
	}
	return ds
}

// ElapsedDisplay is the live counter string for an open day, or the stored
// worked duration once the day is closed. The server owns the final number;
// the client never recomputes it from timestamps.
func (ds DayStatus) ElapsedDisplay() string {
	if ds.Open {
		return dateutil.FormatElapsed(ds.Elapsed)
	}
	if ds.Record != nil {
		return dateutil.FormatHoursToHMS(ds.Record.WorkingHours)
	}
	return dateutil.FormatHoursToHMS(nil)
}

// CountPresent reduces the roster to present/absent headcounts for now's
// calendar day. Anything but an explicit Present counts as absent.
func CountPresent(list []EmployeeAttendance, now time.Time) (present, absent int) {
	for _, emp := range list {
		rec := TodayRecord(emp.Attendance, now)
		if rec != nil && rec.Status == StatusPresent {
			present++
		}
	}
	return present, len(list) - present
}

package attendance_test

import (
	"testing"
	"time"

	"go-attend/internal/attendance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func record(date time.Time, status string, hours *float64) attendance.Attendance {
	return attendance.Attendance{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Date:         date,
		Status:       status,
		WorkingHours: hours,
	}
}

func ptr(v float64) *float64 { return &v }

func TestBuildSummary(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.Local)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	t.Run("classifies each recorded status", func(t *testing.T) {
		records := []attendance.Attendance{
			record(day(-4), attendance.StatusPresent, ptr(8.0)),
			record(day(-3), attendance.StatusExcused, nil),
			record(day(-2), attendance.StatusAbsent, nil),
			record(day(-1), attendance.StatusPresent, ptr(7.5)),
		}

		sum := attendance.BuildSummary(records, now, 5)

		assert.Equal(t, 2, sum.Presences)
		assert.Equal(t, 1, sum.Leaves)
		// One explicit Absent record; today has no record but is still in
		// progress, so it does not count.
		assert.Equal(t, 1, sum.Absences)
		assert.InDelta(t, 15.5, sum.TotalOfficeHours, 1e-9)
	})

	t.Run("elapsed days without a record count absent", func(t *testing.T) {
		records := []attendance.Attendance{
			record(day(-1), attendance.StatusPresent, ptr(8.0)),
		}

		sum := attendance.BuildSummary(records, now, 7)

		assert.Equal(t, 1, sum.Presences)
		assert.Equal(t, 5, sum.Absences)
		assert.Equal(t, 0, sum.Leaves)
	})

	t.Run("today with a present record counts present", func(t *testing.T) {
		records := []attendance.Attendance{
			record(day(0), attendance.StatusPresent, nil),
		}

		sum := attendance.BuildSummary(records, now, 1)

		assert.Equal(t, 1, sum.Presences)
		assert.Equal(t, 0, sum.Absences)
	})

	t.Run("empty window", func(t *testing.T) {
		sum := attendance.BuildSummary(nil, now, 1)

		assert.Equal(t, attendance.SummaryResponse{}, sum)
	})

	t.Run("records outside the window still sum hours", func(t *testing.T) {
		// The repo bounds the query window; BuildSummary trusts its input
		// and sums every row it is handed.
		records := []attendance.Attendance{
			record(day(-1), attendance.StatusPresent, ptr(8.0)),
			record(day(0), attendance.StatusPresent, ptr(4.0)),
		}

		sum := attendance.BuildSummary(records, now, 2)

		assert.InDelta(t, 12.0, sum.TotalOfficeHours, 1e-9)
	})
}

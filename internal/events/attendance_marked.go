package events

import "time"

const AttendanceMarkedTopic = "attendance.record.v1"

// AttendanceMarkedEvent is emitted through the outbox whenever an arrival or
// exit is recorded.
type AttendanceMarkedEvent struct {
	EventType    string    `json:"event_type"` // attendance.arrival | attendance.exit
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"` // YYYY-MM-DD local key
	WorkingHours *float64  `json:"working_hours,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

const (
	EventAttendanceArrival = "attendance.arrival"
	EventAttendanceExit    = "attendance.exit"
)

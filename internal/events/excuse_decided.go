package events

import "time"

const ExcuseDecidedTopic = "attendance.excuse.v1"

// ExcuseDecidedEvent is emitted when a pending excuse reaches a terminal
// state.
type ExcuseDecidedEvent struct {
	EventType  string    `json:"event_type"` // excuse.approved | excuse.rejected
	ExcuseID   string    `json:"excuse_id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventExcuseApproved = "excuse.approved"
	EventExcuseRejected = "excuse.rejected"
)

package attendance

import "go-attend/internal/user"

// MarkRequest clocks a user in or out. Date defaults to the server's local
// calendar day when omitted.
type MarkRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
	Date   string `json:"date" binding:"omitempty"`
}

type RecordResponse struct {
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	LoginTime    *string  `json:"loginTime"`
	LogoutTime   *string  `json:"logoutTime"`
	WorkingHours *float64 `json:"workingHours"`
}

type SummaryResponse struct {
	Presences        int     `json:"presences"`
	Absences         int     `json:"absences"`
	Leaves           int     `json:"leaves"`
	TotalOfficeHours float64 `json:"totalOfficeHours"`
}

type HistoryResponse struct {
	Summary    SummaryResponse  `json:"summary"`
	Attendance []RecordResponse `json:"attendance"`
}

// EmployeeAttendance pairs one employee with their record window for the
// admin roster views.
type EmployeeAttendance struct {
	User       user.UserResponse `json:"user"`
	Attendance []RecordResponse  `json:"attendance"`
}

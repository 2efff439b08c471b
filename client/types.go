package client

// Wire shapes as served by the API. Timestamps are RFC 3339 strings; dates
// are YYYY-MM-DD keys.
type Record struct {
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	LoginTime    *string  `json:"loginTime,omitempty"`
	LogoutTime   *string  `json:"logoutTime,omitempty"`
	WorkingHours *float64 `json:"workingHours,omitempty"`
}

type Summary struct {
	Presences        int     `json:"presences"`
	Absences         int     `json:"absences"`
	Leaves           int     `json:"leaves"`
	TotalOfficeHours float64 `json:"totalOfficeHours"`
}

type History struct {
	Summary    Summary  `json:"summary"`
	Attendance []Record `json:"attendance"`
}

type EmployeeAttendance struct {
	User       Profile  `json:"user"`
	Attendance []Record `json:"attendance"`
}

type Excuse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Date     string `json:"date"`
	Message  string `json:"message"`
	Status   string `json:"status"`
}

type Rules struct {
	Content   string  `json:"content"`
	UpdatedBy *string `json:"updatedBy,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

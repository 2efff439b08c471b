package excuse

type CreateExcuseRequest struct {
	Date    string `json:"date" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type DecideExcuseRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

type ExcuseResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Date      string  `json:"date"`
	Message   string  `json:"message"`
	Status    string  `json:"status"`
	DecidedBy *string `json:"decidedBy,omitempty"`
	DecidedAt *string `json:"decidedAt,omitempty"`
}

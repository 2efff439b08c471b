package rules

type UpdateRulesRequest struct {
	Content string `json:"content" binding:"required"`
}

type RulesResponse struct {
	Content   string  `json:"content"`
	UpdatedBy *string `json:"updatedBy,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

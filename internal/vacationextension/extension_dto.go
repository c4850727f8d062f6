package vacationextension

type CreateExtensionRequest struct {
	ExtendToDate string `json:"extend_to_date" binding:"required"`
	Description  string `json:"description" binding:"max=1000"`
}

type UpdateStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejection_reason" binding:"omitempty,max=1000"`
}

type ListFilter struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type ExtensionResponse struct {
	ID              string  `json:"id"`
	VacationID      string  `json:"vacation_id"`
	EmployeeID      string  `json:"employee_id"`
	StartDay        string  `json:"start_day"`
	ExtendToDate    string  `json:"extend_to_date"`
	AdditionalDays  int     `json:"additional_days"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

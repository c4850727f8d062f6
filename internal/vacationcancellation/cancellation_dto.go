package vacationcancellation

type CreateCancellationRequest struct {
	Description string `json:"description" binding:"max=1000"`
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

type CancellationResponse struct {
	ID              string  `json:"id"`
	VacationID      string  `json:"vacation_id"`
	EmployeeID      string  `json:"employee_id"`
	Description     string  `json:"description"`
	RefundedDays    int     `json:"refunded_days"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

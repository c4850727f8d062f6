package vacation

type CreateVacationRequest struct {
	DepartureDay string `json:"departure_day" binding:"required"`
	ReturnDay    string `json:"return_day" binding:"required"`
	NumberOfDays int    `json:"number_of_days" binding:"required,min=1"`
	Reason       string `json:"reason" binding:"max=1000"`
	Type         string `json:"type" binding:"omitempty,max=30"`
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

type VacationResponse struct {
	ID              string  `json:"id"`
	ReferenceNumber string  `json:"reference_number"`
	EmployeeID      string  `json:"employee_id"`
	DepartureDay    string  `json:"departure_day"`
	ReturnDay       string  `json:"return_day"`
	NumberOfDays    int     `json:"number_of_days"`
	Reason          string  `json:"reason"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

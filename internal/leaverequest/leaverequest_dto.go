package leaverequest

import "time"

type UpdateStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejection_reason" binding:"omitempty,max=1000"`
}

type ListFilter struct {
	Kind       string `form:"kind"`
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`

	// Kinds restricts the merge to the kinds the caller may read; set by the
	// handler, never bound from the query.
	Kinds []Kind `form:"-"`
}

// RequestSummary is the common shape of every request kind.
type RequestSummary struct {
	Kind            Kind    `json:"kind"`
	ID              string  `json:"id"`
	ReferenceNumber string  `json:"reference_number,omitempty"`
	VacationID      string  `json:"vacation_id,omitempty"`
	EmployeeID      string  `json:"employee_id"`
	StartDay        string  `json:"start_day,omitempty"`
	EndDay          string  `json:"end_day,omitempty"`
	Days            int     `json:"days"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	CreatedAt       string  `json:"created_at"`

	createdAt time.Time
}

package events

import "time"

const LeaveRequestDecidedTopic = "hr.leave.request.decided.v1"

const EventTypeLeaveRequestDecided = "leave_request_decided"

// Request kinds carried in LeaveRequestDecidedEvent.Kind.
const (
	KindVacation             = "vacation"
	KindSickLeave            = "sick_leave"
	KindVacationExtension    = "vacation_extension"
	KindVacationCancellation = "vacation_cancellation"
)

// LeaveRequestDecidedEvent is written to the outbox when a request reaches a
// final decision. LedgerDeltaDays is positive for a reservation, negative for
// a refund and zero when the balance was untouched.
type LeaveRequestDecidedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	Kind            string    `json:"kind"`
	RequestRef      string    `json:"request_ref,omitempty"`
	EmployeeID      string    `json:"employee_id"`
	Status          string    `json:"status"`
	DecidedBy       string    `json:"decided_by,omitempty"`
	LedgerDeltaDays int       `json:"ledger_delta_days"`
	OccurredAt      time.Time `json:"occurred_at"`
}

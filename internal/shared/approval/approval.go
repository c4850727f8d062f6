// Package approval holds the status vocabulary shared by every request kind
// and the single-decision rule: a request is decided once, from PENDING.
package approval

import (
	"net/http"
	"strings"
	"time"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/daterange"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Active statuses block overlapping requests of the same kind.
var Active = []string{string(StatusPending), string(StatusApproved)}

var (
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeAlreadyProcessed,
		"request has already been processed",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidStatus,
		"status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// ParseDecision accepts the two decision targets, case-insensitively.
func ParseDecision(v string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(v))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ParseFilter accepts any known status or empty (no filter).
func ParseFilter(v string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	switch s {
	case "", StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return s, nil
	default:
		return "", apperror.InvalidField("status")
	}
}

// EnsurePending is checked on the row read under lock, so two concurrent
// deciders cannot both pass it.
func EnsurePending(current Status) error {
	if current != StatusPending {
		return ErrAlreadyProcessed
	}
	return nil
}

// Query filters request listings. Nil bounds are open; a request matches the
// window when its date range overlaps [From, To].
type Query struct {
	EmployeeID string
	Status     Status
	From       *time.Time
	To         *time.Time
}

func (q Query) HasWindow() bool {
	return q.From != nil || q.To != nil
}

// ParseQuery validates raw listing parameters.
func ParseQuery(employeeID, status, from, to string) (Query, error) {
	var q Query

	if employeeID = strings.TrimSpace(employeeID); employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return Query{}, apperror.InvalidField("employee_id")
		}
		q.EmployeeID = employeeID
	}

	s, err := ParseFilter(status)
	if err != nil {
		return Query{}, err
	}
	q.Status = s

	if from != "" {
		t, err := daterange.Parse(from)
		if err != nil {
			return Query{}, err
		}
		q.From = &t
	}
	if to != "" {
		t, err := daterange.Parse(to)
		if err != nil {
			return Query{}, err
		}
		q.To = &t
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return Query{}, daterange.ErrInvalidDateRange
	}
	return q, nil
}

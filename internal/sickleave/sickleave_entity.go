package sickleave

import (
	"time"

	"go-hris-leave/internal/shared/approval"

	"github.com/google/uuid"
)

const DefaultType = "SICK"

// SickLeave mirrors a vacation request but never touches the ledger and is
// never cancelled.
type SickLeave struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferenceNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_sick_leave_reference"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index:idx_sick_leaves_employee_dates"`

	DepartureDay  time.Time `gorm:"type:date;not null;index:idx_sick_leaves_employee_dates"`
	ReturnDay     time.Time `gorm:"type:date;not null;index:idx_sick_leaves_employee_dates"`
	NumberOfDays  int       `gorm:"not null"`
	Reason        string    `gorm:"type:text"`
	Type          string    `gorm:"type:varchar(30);not null;default:'SICK'"`
	AttachmentURL *string   `gorm:"type:text"`

	Status          approval.Status `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_sick_leaves_status"`
	DecidedBy       *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SickLeave) TableName() string {
	return "sick_leaves"
}

func (s *SickLeave) Approve(actor uuid.UUID, at time.Time) error {
	if err := approval.EnsurePending(s.Status); err != nil {
		return err
	}
	s.Status = approval.StatusApproved
	s.DecidedBy = &actor
	s.DecidedAt = &at
	s.RejectionReason = nil
	return nil
}

func (s *SickLeave) Reject(actor uuid.UUID, at time.Time, reason *string) error {
	if err := approval.EnsurePending(s.Status); err != nil {
		return err
	}
	s.Status = approval.StatusRejected
	s.DecidedBy = &actor
	s.DecidedAt = &at
	s.RejectionReason = reason
	return nil
}

package vacationcancellation

import (
	"time"

	"go-hris-leave/internal/shared/approval"

	"github.com/google/uuid"
)

const PendingIndex = "uq_vacation_cancellation_pending"

const PendingIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS " + PendingIndex +
	" ON vacation_cancellations (vacation_id) WHERE status = 'PENDING'"

const pendingIndexColumn = "vacation_cancellations.vacation_id"

type Cancellation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	VacationID  uuid.UUID `gorm:"type:uuid;not null;index:idx_vacation_cancellations_vacation"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_vacation_cancellations_employee"`
	Description string    `gorm:"type:text"`

	// RefundedDays is set on approval: the vacation's days when it had been
	// APPROVED, zero otherwise.
	RefundedDays int `gorm:"not null;default:0"`

	Status          approval.Status `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_vacation_cancellations_status"`
	DecidedBy       *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cancellation) TableName() string {
	return "vacation_cancellations"
}

func (c *Cancellation) Approve(actor uuid.UUID, at time.Time, refunded int) error {
	if err := approval.EnsurePending(c.Status); err != nil {
		return err
	}
	c.Status = approval.StatusApproved
	c.RefundedDays = refunded
	c.DecidedBy = &actor
	c.DecidedAt = &at
	return nil
}

func (c *Cancellation) Reject(actor uuid.UUID, at time.Time, reason *string) error {
	if err := approval.EnsurePending(c.Status); err != nil {
		return err
	}
	c.Status = approval.StatusRejected
	c.DecidedBy = &actor
	c.DecidedAt = &at
	c.RejectionReason = reason
	return nil
}

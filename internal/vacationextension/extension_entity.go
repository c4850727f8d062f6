package vacationextension

import (
	"time"

	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/daterange"

	"github.com/google/uuid"
)

// PendingIndex allows one PENDING extension per vacation.
const PendingIndex = "uq_vacation_extension_pending"

// PendingIndexDDL is applied by migrations; gorm tags cannot express a
// partial index portably.
const PendingIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS " + PendingIndex +
	" ON vacation_extensions (vacation_id) WHERE status = 'PENDING'"

const pendingIndexColumn = "vacation_extensions.vacation_id"

type Extension struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VacationID uuid.UUID `gorm:"type:uuid;not null;index:idx_vacation_extensions_vacation"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_vacation_extensions_employee"`

	// StartDay is the first added day: the vacation's return day plus one at
	// request time.
	StartDay       time.Time `gorm:"type:date;not null"`
	ExtendToDate   time.Time `gorm:"type:date;not null"`
	AdditionalDays int       `gorm:"not null"`
	Description    string    `gorm:"type:text"`

	Status          approval.Status `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_vacation_extensions_status"`
	DecidedBy       *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Extension) TableName() string {
	return "vacation_extensions"
}

func (e Extension) Range() daterange.Range {
	return daterange.NewRange(e.StartDay, e.ExtendToDate)
}

func (e *Extension) Approve(actor uuid.UUID, at time.Time) error {
	if err := approval.EnsurePending(e.Status); err != nil {
		return err
	}
	e.Status = approval.StatusApproved
	e.DecidedBy = &actor
	e.DecidedAt = &at
	return nil
}

func (e *Extension) Reject(actor uuid.UUID, at time.Time, reason *string) error {
	if err := approval.EnsurePending(e.Status); err != nil {
		return err
	}
	e.Status = approval.StatusRejected
	e.DecidedBy = &actor
	e.DecidedAt = &at
	e.RejectionReason = reason
	return nil
}

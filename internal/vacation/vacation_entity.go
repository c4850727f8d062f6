package vacation

import (
	"time"

	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/daterange"
	vacationerrors "go-hris-leave/internal/vacation/errors"

	"github.com/google/uuid"
)

const DefaultType = "ANNUAL"

type Vacation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferenceNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_vacation_reference"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index:idx_vacations_employee_dates"`

	DepartureDay time.Time `gorm:"type:date;not null;index:idx_vacations_employee_dates"`
	ReturnDay    time.Time `gorm:"type:date;not null;index:idx_vacations_employee_dates"`
	NumberOfDays int       `gorm:"not null"`
	Reason       string    `gorm:"type:text"`
	Type         string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`

	Status          approval.Status `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_vacations_status"`
	DecidedBy       *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v Vacation) Range() daterange.Range {
	return daterange.NewRange(v.DepartureDay, v.ReturnDay)
}

func (v Vacation) OwnedBy(employeeID string) bool {
	return v.EmployeeID.String() == employeeID
}

func (v *Vacation) Approve(actor uuid.UUID, at time.Time) error {
	if err := approval.EnsurePending(v.Status); err != nil {
		return err
	}
	v.Status = approval.StatusApproved
	v.DecidedBy = &actor
	v.DecidedAt = &at
	v.RejectionReason = nil
	return nil
}

func (v *Vacation) Reject(actor uuid.UUID, at time.Time, reason *string) error {
	if err := approval.EnsurePending(v.Status); err != nil {
		return err
	}
	v.Status = approval.StatusRejected
	v.DecidedBy = &actor
	v.DecidedAt = &at
	v.RejectionReason = reason
	return nil
}

// Cancel moves a PENDING or APPROVED vacation to CANCELLED and returns the
// days that were reserved for it, which is zero unless it was APPROVED.
func (v *Vacation) Cancel() (int, error) {
	if !v.Status.IsActive() {
		return 0, vacationerrors.ErrCannotCancel
	}
	refund := 0
	if v.Status == approval.StatusApproved {
		refund = v.NumberOfDays
	}
	v.Status = approval.StatusCancelled
	return refund, nil
}

// ExtensionDays validates extendTo against an APPROVED vacation and returns
// the days between the current return day (exclusive) and extendTo.
func (v Vacation) ExtensionDays(extendTo time.Time) (int, error) {
	if v.Status != approval.StatusApproved {
		return 0, vacationerrors.ErrCanOnlyExtendApproved
	}
	extendTo = daterange.NormalizeToUTCDay(extendTo)
	if !extendTo.After(daterange.NormalizeToUTCDay(v.ReturnDay)) {
		return 0, vacationerrors.ErrExtendToDateMustBeAfterReturn
	}
	return daterange.InclusiveDays(v.ReturnDay.AddDate(0, 0, 1), extendTo), nil
}

// ExtendTo moves the return day to extendTo and grows NumberOfDays by the
// added days, keeping NumberOfDays equal to the inclusive range length.
func (v *Vacation) ExtendTo(extendTo time.Time) (int, error) {
	additional, err := v.ExtensionDays(extendTo)
	if err != nil {
		return 0, err
	}
	v.ReturnDay = daterange.NormalizeToUTCDay(extendTo)
	v.NumberOfDays += additional
	return additional, nil
}

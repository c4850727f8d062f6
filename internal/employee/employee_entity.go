package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Employee is the directory row. Profile fields are owned by the HR
// directory; this service only reads Status and owns the two vacation
// ledger columns, which are written exclusively through the ledger package.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber *string   `gorm:"type:varchar(30);uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"type:varchar(150);not null"`
	Email          string    `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	Status         string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	TotalVacationDays decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	UsedVacationDays  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

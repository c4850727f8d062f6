package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the ledger's view of an employees row: the two vacation
// counters plus the status needed to refuse inactive employees.
type Account struct {
	EmployeeID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Status            string          `gorm:"column:status"`
	TotalVacationDays decimal.Decimal `gorm:"column:total_vacation_days"`
	UsedVacationDays  decimal.Decimal `gorm:"column:used_vacation_days"`
}

func (Account) TableName() string {
	return "employees"
}

func (a Account) Available() decimal.Decimal {
	return a.TotalVacationDays.Sub(a.UsedVacationDays)
}

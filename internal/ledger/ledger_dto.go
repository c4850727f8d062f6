package ledger

import "github.com/shopspring/decimal"

type BalanceResponse struct {
	EmployeeID            string          `json:"employee_id"`
	TotalVacationDays     decimal.Decimal `json:"total_vacation_days"`
	UsedVacationDays      decimal.Decimal `json:"used_vacation_days"`
	AvailableVacationDays decimal.Decimal `json:"available_vacation_days"`
}

package app

import (
	"fmt"

	"go-hris-leave/internal/attendance"
	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/rbac"
	"go-hris-leave/internal/shared/counter"
	"go-hris-leave/internal/sickleave"
	"go-hris-leave/internal/vacation"
	"go-hris-leave/internal/vacationcancellation"
	"go-hris-leave/internal/vacationextension"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// partialIndexes are the storage guards gorm tags cannot express.
var partialIndexes = []string{
	vacationextension.PendingIndexDDL,
	vacationcancellation.PendingIndexDDL,
	attendance.OpenBreakIndexDDL,
}

// Migrate creates or updates every table the service owns. Safe to run on
// each start.
func Migrate(db *gorm.DB) error {
	logger := zap.L().Named("app.migrate")

	err := db.AutoMigrate(
		&employee.Employee{},
		&vacation.Vacation{},
		&sickleave.SickLeave{},
		&vacationextension.Extension{},
		&vacationcancellation.Cancellation{},
		&attendance.Attendance{},
		&attendance.Break{},
		&counter.RequestCounter{},
		&kafka.OutboxEvent{},
		&rbac.Role{},
		&rbac.Permission{},
		&rbac.RolePermission{},
		&rbac.EmployeeRole{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, ddl := range partialIndexes {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create partial index: %w", err)
		}
	}

	logger.Info("schema migrated")
	return nil
}

package rbac

import "github.com/google/uuid"

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string
}

type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Resource string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_permission_resource_action"`
	Action   string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_permission_resource_action"`
	Label    string
	Category string
}

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// Catalog lists every resource:action pair the routes check.
var Catalog = []Permission{
	{Resource: "vacation", Action: "create", Label: "Request vacation", Category: "leave"},
	{Resource: "vacation", Action: "approve", Label: "Decide vacation requests", Category: "leave"},
	{Resource: "vacation", Action: "read_all", Label: "View all vacation requests", Category: "leave"},
	{Resource: "sick_leave", Action: "create", Label: "Request sick leave", Category: "leave"},
	{Resource: "sick_leave", Action: "approve", Label: "Decide sick leave requests", Category: "leave"},
	{Resource: "sick_leave", Action: "read_all", Label: "View all sick leave requests", Category: "leave"},
	{Resource: "vacation_extension", Action: "create", Label: "Request vacation extension", Category: "leave"},
	{Resource: "vacation_extension", Action: "approve", Label: "Decide vacation extensions", Category: "leave"},
	{Resource: "vacation_extension", Action: "read_all", Label: "View all vacation extensions", Category: "leave"},
	{Resource: "vacation_cancellation", Action: "create", Label: "Request vacation cancellation", Category: "leave"},
	{Resource: "vacation_cancellation", Action: "approve", Label: "Decide vacation cancellations", Category: "leave"},
	{Resource: "vacation_cancellation", Action: "read_all", Label: "View all vacation cancellations", Category: "leave"},
	{Resource: "leave_balance", Action: "read_all", Label: "View any leave balance", Category: "leave"},
	{Resource: "attendance", Action: "create", Label: "Clock in and out", Category: "attendance"},
}

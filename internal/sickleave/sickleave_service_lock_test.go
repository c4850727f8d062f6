package sickleave_test

import (
	"context"
	"testing"

	"go-hris-leave/internal/employee"
	kafkaMock "go-hris-leave/internal/messaging/kafka/mock"
	counterMock "go-hris-leave/internal/shared/counter/mock"
	"go-hris-leave/internal/shared/daterange"
	"go-hris-leave/internal/sickleave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Two creates for one employee must not both pass the overlap check, so the
// employee row is locked before the overlap count runs.
func TestSickLeaveService_CreateLocksEmployeeBeforeOverlapCheck(t *testing.T) {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	service := sickleave.NewService(
		db,
		sickleave.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		kafkaMock.NewMockOutboxRepository(ctrl),
		counterMock.NewMockRepository(ctrl),
	)

	employeeID := uuid.NewString()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`SELECT .* FROM "employees" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(employeeID, employee.StatusActive))
	sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "sick_leaves"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	sqlMock.ExpectRollback()

	_, err = service.Create(context.Background(), employeeID, sickleave.CreateSickLeaveRequest{
		DepartureDay: "2026-03-02",
		ReturnDay:    "2026-03-06",
		NumberOfDays: 5,
	})

	assert.ErrorIs(t, err, daterange.ErrOverlapConflict)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

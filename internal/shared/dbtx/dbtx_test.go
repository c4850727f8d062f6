package dbtx_test

import (
	"errors"
	"fmt"
	"testing"

	"go-hris-leave/internal/shared/dbtx"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	const idx = "uq_attendance_employee_date"

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pg error on index", err: &pgconn.PgError{Code: "23505", ConstraintName: idx}, want: true},
		{name: "wrapped pg error", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: idx}), want: true},
		{name: "pg error on another index", err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_other"}, want: false},
		{name: "pg error other code", err: &pgconn.PgError{Code: "23503", ConstraintName: idx}, want: false},
		{name: "driver text", err: errors.New(`ERROR: duplicate key value violates unique constraint "` + idx + `"`), want: true},
		{name: "unrelated", err: errors.New("connection reset"), want: false},
		{name: "sqlite columns", err: errors.New("UNIQUE constraint failed: attendances.attendance_date, attendances.employee_id"), want: true},
		{name: "sqlite named index", err: errors.New("UNIQUE constraint failed: index '" + idx + "'"), want: true},
		{name: "sqlite other columns", err: errors.New("UNIQUE constraint failed: attendances.id"), want: false},
		{name: "sqlite column subset", err: errors.New("UNIQUE constraint failed: attendances.employee_id"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dbtx.IsUniqueViolation(tt.err, idx, "attendances.employee_id", "attendances.attendance_date"))
		})
	}
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	type pendingRow struct {
		ID         int    `gorm:"primaryKey"`
		VacationID string `gorm:"not null"`
		Status     string `gorm:"not null"`
	}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Table("pending_rows").AutoMigrate(&pendingRow{}))
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX uq_pending ON pending_rows (vacation_id) WHERE status = 'PENDING'").Error)

	require.NoError(t, db.Table("pending_rows").Create(&pendingRow{VacationID: "v1", Status: "PENDING"}).Error)
	err = db.Table("pending_rows").Create(&pendingRow{VacationID: "v1", Status: "PENDING"}).Error
	require.Error(t, err)

	assert.True(t, dbtx.IsUniqueViolation(err, "uq_pending", "pending_rows.vacation_id"))
	assert.False(t, dbtx.IsUniqueViolation(err, "uq_pending", "pending_rows.status"))
}

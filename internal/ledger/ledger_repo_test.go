package ledger_test

import (
	"context"
	"testing"

	"go-hris-leave/internal/bootstrap"
	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/ledger"
	ledgererrors "go-hris-leave/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteLedger(t *testing.T) (*gorm.DB, ledger.Repository, ledger.Ledger) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	assert.NoError(t, db.AutoMigrate(&employee.Employee{}))

	repo := ledger.NewRepository(db)
	return db, repo, ledger.NewLedger(repo, bootstrap.NopAuditLogger{})
}

func seedEmployee(t *testing.T, db *gorm.DB, total, used int64) string {
	t.Helper()
	empl := employee.Employee{
		ID:                uuid.New(),
		FullName:          "Budi",
		Email:             uuid.NewString() + "@example.com",
		Status:            employee.StatusActive,
		TotalVacationDays: decimal.NewFromInt(total),
		UsedVacationDays:  decimal.NewFromInt(used),
	}
	assert.NoError(t, db.Create(&empl).Error)
	return empl.ID.String()
}

// reserveInTx runs one Reserve in its own committed or rolled back unit.
func reserveInTx(t *testing.T, db *gorm.DB, l ledger.Ledger, employeeID string, days int) error {
	t.Helper()
	sqlDB, err := db.DB()
	assert.NoError(t, err)

	ctx := context.Background()
	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)
	defer tx.Rollback()

	if err := l.WithTx(tx).Reserve(ctx, employeeID, days); err != nil {
		return err
	}
	return tx.Commit()
}

func TestLedger_SQLiteReserveSequence(t *testing.T) {
	ctx := context.Background()
	db, repo, l := setupSQLiteLedger(t)
	employeeID := seedEmployee(t, db, 30, 8)

	assert.NoError(t, reserveInTx(t, db, l, employeeID, 6))
	assert.NoError(t, reserveInTx(t, db, l, employeeID, 10))

	acct, err := repo.FindAccount(ctx, employeeID)
	assert.NoError(t, err)
	assert.True(t, acct.UsedVacationDays.Equal(decimal.NewFromInt(24)), acct.UsedVacationDays.String())

	err = reserveInTx(t, db, l, employeeID, 7)
	assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)

	acct, err = repo.FindAccount(ctx, employeeID)
	assert.NoError(t, err)
	assert.True(t, acct.UsedVacationDays.Equal(decimal.NewFromInt(24)))
	assert.True(t, acct.Available().Equal(decimal.NewFromInt(6)))
}

func TestLedger_SQLiteRollbackLeavesBalance(t *testing.T) {
	ctx := context.Background()
	db, repo, l := setupSQLiteLedger(t)
	employeeID := seedEmployee(t, db, 12, 0)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)
	assert.NoError(t, l.WithTx(tx).Reserve(ctx, employeeID, 5))
	assert.NoError(t, tx.Rollback())

	acct, err := repo.FindAccount(ctx, employeeID)
	assert.NoError(t, err)
	assert.True(t, acct.UsedVacationDays.IsZero())
}

func TestRepository_AdjustUsedDays(t *testing.T) {
	ctx := context.Background()
	db, repo, _ := setupSQLiteLedger(t)
	employeeID := seedEmployee(t, db, 20, 5)

	assert.NoError(t, repo.AdjustUsedDays(ctx, employeeID, decimal.NewFromInt(3)))
	assert.NoError(t, repo.AdjustUsedDays(ctx, employeeID, decimal.NewFromInt(-2)))

	acct, err := repo.FindAccount(ctx, employeeID)
	assert.NoError(t, err)
	assert.True(t, acct.UsedVacationDays.Equal(decimal.NewFromInt(6)))

	err = repo.AdjustUsedDays(ctx, uuid.NewString(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hris-leave/internal/bootstrap"
	"go-hris-leave/internal/ledger"
	ledgererrors "go-hris-leave/internal/ledger/errors"
	ledgerMock "go-hris-leave/internal/ledger/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type recordingAuditLogger struct {
	entries []bootstrap.AuditLog
}

func (r *recordingAuditLogger) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.entries = append(r.entries, entry)
}

type ledgerDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	tx      *sql.Tx
	repo    *ledgerMock.MockRepository
	audit   *recordingAuditLogger
	ledger  ledger.Ledger
}

func setupLedgerTest(t *testing.T) *ledgerDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	sqlMock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := ledgerMock.NewMockRepository(ctrl)
	audit := &recordingAuditLogger{}

	return &ledgerDeps{
		db:      db,
		sqlMock: sqlMock,
		tx:      tx,
		repo:    repo,
		audit:   audit,
		ledger:  ledger.NewLedger(repo, audit),
	}
}

func account(id string, total, used int64) *ledger.Account {
	return &ledger.Account{
		EmployeeID:        uuid.MustParse(id),
		Status:            "ACTIVE",
		TotalVacationDays: decimal.NewFromInt(total),
		UsedVacationDays:  decimal.NewFromInt(used),
	}
}

func TestLedger_Reserve(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)
		deps.repo.EXPECT().LockAccount(ctx, employeeID).Return(account(employeeID, 30, 8), nil)
		deps.repo.EXPECT().
			AdjustUsedDays(ctx, employeeID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, id string, delta decimal.Decimal) error {
				assert.True(t, delta.Equal(decimal.NewFromInt(6)))
				return nil
			})

		err := deps.ledger.WithTx(deps.tx).Reserve(ctx, employeeID, 6)

		assert.NoError(t, err)
		assert.Len(t, deps.audit.entries, 1)
		assert.Equal(t, ledger.AuditActionReserved, deps.audit.entries[0].Action)
		assert.Equal(t, "16", deps.audit.entries[0].Meta["available_after"])
	})

	t.Run("exact remaining balance is allowed", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)
		deps.repo.EXPECT().LockAccount(ctx, employeeID).Return(account(employeeID, 30, 24), nil)
		deps.repo.EXPECT().AdjustUsedDays(ctx, employeeID, gomock.Any()).Return(nil)

		assert.NoError(t, deps.ledger.WithTx(deps.tx).Reserve(ctx, employeeID, 6))
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)
		deps.repo.EXPECT().LockAccount(ctx, employeeID).Return(account(employeeID, 30, 24), nil)

		err := deps.ledger.WithTx(deps.tx).Reserve(ctx, employeeID, 7)

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
		assert.Empty(t, deps.audit.entries)
	})

	t.Run("negative unbound ledger", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		err := deps.ledger.Reserve(ctx, employeeID, 1)

		assert.ErrorIs(t, err, ledgererrors.ErrUnboundLedger)
	})

	t.Run("negative non positive days", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)

		err := deps.ledger.WithTx(deps.tx).Reserve(ctx, employeeID, 0)

		assert.ErrorIs(t, err, ledgererrors.ErrInvalidDays)
	})

	t.Run("negative lock error", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		boom := errors.New("lock timeout")
		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)
		deps.repo.EXPECT().LockAccount(ctx, employeeID).Return(nil, boom)

		err := deps.ledger.WithTx(deps.tx).Reserve(ctx, employeeID, 1)

		assert.ErrorIs(t, err, boom)
	})
}

func TestLedger_Refund(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)
		deps.repo.EXPECT().LockAccount(ctx, employeeID).Return(account(employeeID, 30, 10), nil)
		deps.repo.EXPECT().
			AdjustUsedDays(ctx, employeeID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, id string, delta decimal.Decimal) error {
				assert.True(t, delta.Equal(decimal.NewFromInt(-4)))
				return nil
			})

		err := deps.ledger.WithTx(deps.tx).Refund(ctx, employeeID, 4)

		assert.NoError(t, err)
		assert.Len(t, deps.audit.entries, 1)
		assert.Equal(t, ledger.AuditActionRefunded, deps.audit.entries[0].Action)
	})

	t.Run("zero days touches nothing", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)

		assert.NoError(t, deps.ledger.WithTx(deps.tx).Refund(ctx, employeeID, 0))
		assert.Empty(t, deps.audit.entries)
	})

	t.Run("negative refund exceeds used", func(t *testing.T) {
		deps := setupLedgerTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(deps.tx).Return(deps.repo)
		deps.repo.EXPECT().LockAccount(ctx, employeeID).Return(account(employeeID, 30, 2), nil)

		err := deps.ledger.WithTx(deps.tx).Refund(ctx, employeeID, 3)

		assert.ErrorIs(t, err, ledgererrors.ErrRefundExceedsUsed)
	})
}

func TestLedger_Available(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	deps := setupLedgerTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().FindAccount(ctx, employeeID).Return(account(employeeID, 30, 8), nil)

	got, err := deps.ledger.Available(ctx, employeeID)

	assert.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(22)))
}

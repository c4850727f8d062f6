package vacationextension_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hris-leave/internal/employee"
	employeeMock "go-hris-leave/internal/employee/mock"
	"go-hris-leave/internal/events"
	ledgererrors "go-hris-leave/internal/ledger/errors"
	ledgerMock "go-hris-leave/internal/ledger/mock"
	"go-hris-leave/internal/messaging/kafka"
	kafkaMock "go-hris-leave/internal/messaging/kafka/mock"
	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/daterange"
	"go-hris-leave/internal/vacation"
	vacationerrors "go-hris-leave/internal/vacation/errors"
	vacationMock "go-hris-leave/internal/vacation/mock"
	"go-hris-leave/internal/vacationextension"
	extensionerrors "go-hris-leave/internal/vacationextension/errors"
	extensionMock "go-hris-leave/internal/vacationextension/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type extensionServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *extensionMock.MockRepository
	vacations *vacationMock.MockRepository
	directory *employeeMock.MockDirectory
	ledger    *ledgerMock.MockLedger
	outbox    *kafkaMock.MockOutboxRepository
	service   vacationextension.Service
}

func setupExtensionServiceTest(t *testing.T) *extensionServiceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &extensionServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      extensionMock.NewMockRepository(ctrl),
		vacations: vacationMock.NewMockRepository(ctrl),
		directory: employeeMock.NewMockDirectory(ctrl),
		ledger:    ledgerMock.NewMockLedger(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
	}
	deps.service = vacationextension.NewService(db, deps.repo, deps.vacations, deps.directory, deps.ledger, deps.outbox)
	return deps
}

func (d *extensionServiceDeps) expectEmployeeLock(employeeID uuid.UUID) *gomock.Call {
	d.directory.EXPECT().WithTx(gomock.Any()).Return(d.directory)
	return d.directory.EXPECT().
		FindByIDForUpdate(gomock.Any(), employeeID.String()).
		Return(&employee.Employee{ID: employeeID, Status: employee.StatusActive}, nil)
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func approvedVacation(employeeID uuid.UUID) *vacation.Vacation {
	return &vacation.Vacation{
		ID:              uuid.New(),
		ReferenceNumber: "VAC-000007",
		EmployeeID:      employeeID,
		DepartureDay:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		ReturnDay:       time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC),
		NumberOfDays:    5,
		Status:          approval.StatusApproved,
	}
}

func TestExtensionService_Create(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := approvedVacation(owner)
		vid := v.ID.String()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), vid).Return(v, nil)
		deps.repo.EXPECT().HasPending(gomock.Any(), vid).Return(false, nil)
		lock := deps.expectEmployeeLock(owner)
		deps.vacations.EXPECT().
			HasOverlap(gomock.Any(), owner.String(), gomock.Any(), gomock.Any()).
			After(lock).
			DoAndReturn(func(_ context.Context, _ string, rng daterange.Range, excludeID *string) (bool, error) {
				assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), rng.Departure)
				assert.Equal(t, time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC), rng.Return)
				assert.Equal(t, vid, *excludeID)
				return false, nil
			})
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, owner.String(), vid, vacationextension.CreateExtensionRequest{
			ExtendToDate: "2026-01-17",
			Description:  " flight moved ",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.AdditionalDays)
		assert.Equal(t, "2026-01-15", resp.StartDay)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "flight moved", resp.Description)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Create(ctx, uuid.NewString(), v.ID.String(), vacationextension.CreateExtensionRequest{ExtendToDate: "2026-01-17"})

		assert.ErrorIs(t, err, vacationerrors.ErrNotOwner)
	})

	t.Run("negative vacation not approved", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		v.Status = approval.StatusPending
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationextension.CreateExtensionRequest{ExtendToDate: "2026-01-17"})

		assert.ErrorIs(t, err, vacationerrors.ErrCanOnlyExtendApproved)
	})

	t.Run("negative extend to date on return day", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationextension.CreateExtensionRequest{ExtendToDate: "2026-01-14"})

		assert.ErrorIs(t, err, vacationerrors.ErrExtendToDateMustBeAfterReturn)
	})

	t.Run("negative pending extension exists", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().HasPending(gomock.Any(), v.ID.String()).Return(true, nil)

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationextension.CreateExtensionRequest{ExtendToDate: "2026-01-17"})

		assert.ErrorIs(t, err, extensionerrors.ErrExtensionRequestPending)
	})

	t.Run("negative concurrent pending extension", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().HasPending(gomock.Any(), v.ID.String()).Return(false, nil)
		deps.expectEmployeeLock(owner)
		deps.vacations.EXPECT().HasOverlap(gomock.Any(), owner.String(), gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: vacationextension.PendingIndex})

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationextension.CreateExtensionRequest{ExtendToDate: "2026-01-17"})

		assert.ErrorIs(t, err, extensionerrors.ErrExtensionRequestPending)
	})

	t.Run("negative extended days overlap another vacation", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().HasPending(gomock.Any(), v.ID.String()).Return(false, nil)
		deps.expectEmployeeLock(owner)
		deps.vacations.EXPECT().HasOverlap(gomock.Any(), owner.String(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationextension.CreateExtensionRequest{ExtendToDate: "2026-01-17"})

		assert.ErrorIs(t, err, daterange.ErrOverlapConflict)
	})
}

func TestExtensionService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()
	owner := uuid.New()

	pendingFor := func(v *vacation.Vacation) *vacationextension.Extension {
		return &vacationextension.Extension{
			ID:             uuid.New(),
			VacationID:     v.ID,
			EmployeeID:     v.EmployeeID,
			StartDay:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			ExtendToDate:   time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC),
			AdditionalDays: 3,
			Status:         approval.StatusPending,
		}
	}

	t.Run("approve extends the vacation and reserves once", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := approvedVacation(owner)
		e := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), e.ID.String()).Return(e, nil)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		lock := deps.expectEmployeeLock(owner)
		deps.vacations.EXPECT().HasOverlap(gomock.Any(), owner.String(), gomock.Any(), gomock.Any()).After(lock).Return(false, nil)
		deps.ledger.EXPECT().WithTx(gomock.Any()).Return(deps.ledger)
		deps.ledger.EXPECT().Reserve(gomock.Any(), owner.String(), 3).Return(nil).Times(1)
		deps.vacations.EXPECT().Update(gomock.Any(), v).Return(nil)
		deps.repo.EXPECT().Update(gomock.Any(), e).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, evt kafka.OutboxEvent) error {
				assert.Equal(t, events.LeaveRequestDecidedTopic, evt.Topic)
				return nil
			})

		resp, err := deps.service.UpdateStatus(ctx, actorID, e.ID.String(), vacationextension.UpdateStatusRequest{Status: "APPROVED"})

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC), v.ReturnDay)
		assert.Equal(t, 8, v.NumberOfDays)
		assert.Equal(t, daterange.InclusiveDays(v.DepartureDay, v.ReturnDay), v.NumberOfDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance leaves vacation unchanged in storage", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		e := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), e.ID.String()).Return(e, nil)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.expectEmployeeLock(owner)
		deps.vacations.EXPECT().HasOverlap(gomock.Any(), owner.String(), gomock.Any(), gomock.Any()).Return(false, nil)
		deps.ledger.EXPECT().WithTx(gomock.Any()).Return(deps.ledger)
		deps.ledger.EXPECT().Reserve(gomock.Any(), owner.String(), 3).Return(ledgererrors.ErrInsufficientBalance)

		_, err := deps.service.UpdateStatus(ctx, actorID, e.ID.String(), vacationextension.UpdateStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
		assert.Equal(t, approval.StatusPending, e.Status)
	})

	t.Run("negative vacation cancelled meanwhile", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		v.Status = approval.StatusCancelled
		e := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), e.ID.String()).Return(e, nil)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.UpdateStatus(ctx, actorID, e.ID.String(), vacationextension.UpdateStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, vacationerrors.ErrCanOnlyExtendApproved)
	})

	t.Run("reject touches only the extension", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := approvedVacation(owner)
		e := pendingFor(v)
		reason := "  coverage needed  "
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), e.ID.String()).Return(e, nil)
		deps.repo.EXPECT().Update(gomock.Any(), e).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, actorID, e.ID.String(), vacationextension.UpdateStatusRequest{
			Status:          "REJECTED",
			RejectionReason: &reason,
		})

		assert.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, "coverage needed", *resp.RejectionReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already processed", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		e := pendingFor(v)
		e.Status = approval.StatusApproved
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), e.ID.String()).Return(e, nil)

		_, err := deps.service.UpdateStatus(ctx, actorID, e.ID.String(), vacationextension.UpdateStatusRequest{Status: "REJECTED"})

		assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
	})

	t.Run("negative outbox failure rolls back", func(t *testing.T) {
		deps := setupExtensionServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := approvedVacation(owner)
		e := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), e.ID.String()).Return(e, nil)
		deps.repo.EXPECT().Update(gomock.Any(), e).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.UpdateStatus(ctx, actorID, e.ID.String(), vacationextension.UpdateStatusRequest{Status: "REJECTED"})

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

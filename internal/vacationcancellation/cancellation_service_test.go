package vacationcancellation_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hris-leave/internal/events"
	ledgerMock "go-hris-leave/internal/ledger/mock"
	"go-hris-leave/internal/messaging/kafka"
	kafkaMock "go-hris-leave/internal/messaging/kafka/mock"
	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/vacation"
	vacationerrors "go-hris-leave/internal/vacation/errors"
	vacationMock "go-hris-leave/internal/vacation/mock"
	"go-hris-leave/internal/vacationcancellation"
	cancellationerrors "go-hris-leave/internal/vacationcancellation/errors"
	cancellationMock "go-hris-leave/internal/vacationcancellation/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type cancellationServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *cancellationMock.MockRepository
	vacations *vacationMock.MockRepository
	ledger    *ledgerMock.MockLedger
	outbox    *kafkaMock.MockOutboxRepository
	service   vacationcancellation.Service
}

func setupCancellationServiceTest(t *testing.T) *cancellationServiceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &cancellationServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      cancellationMock.NewMockRepository(ctrl),
		vacations: vacationMock.NewMockRepository(ctrl),
		ledger:    ledgerMock.NewMockLedger(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
	}
	deps.service = vacationcancellation.NewService(db, deps.repo, deps.vacations, deps.ledger, deps.outbox)
	return deps
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

func vacationWithStatus(employeeID uuid.UUID, status approval.Status) *vacation.Vacation {
	return &vacation.Vacation{
		ID:              uuid.New(),
		ReferenceNumber: "VAC-000042",
		EmployeeID:      employeeID,
		DepartureDay:    time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		ReturnDay:       time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
		NumberOfDays:    5,
		Status:          status,
	}
}

func TestCancellationService_Create(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := vacationWithStatus(owner, approval.StatusApproved)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().HasPending(gomock.Any(), v.ID.String()).Return(false, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationcancellation.CreateCancellationRequest{Description: "plans changed"})

		assert.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, v.ID.String(), resp.VacationID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative vacation not found", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		id := uuid.NewString()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, owner.String(), id, vacationcancellation.CreateCancellationRequest{})

		assert.ErrorIs(t, err, vacationerrors.ErrVacationNotFound)
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := vacationWithStatus(owner, approval.StatusApproved)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Create(ctx, uuid.NewString(), v.ID.String(), vacationcancellation.CreateCancellationRequest{})

		assert.ErrorIs(t, err, vacationerrors.ErrNotOwner)
	})

	t.Run("negative rejected vacation cannot be cancelled", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := vacationWithStatus(owner, approval.StatusRejected)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationcancellation.CreateCancellationRequest{})

		assert.ErrorIs(t, err, vacationerrors.ErrCannotCancel)
	})

	t.Run("negative pending cancellation exists", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := vacationWithStatus(owner, approval.StatusPending)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().HasPending(gomock.Any(), v.ID.String()).Return(true, nil)

		_, err := deps.service.Create(ctx, owner.String(), v.ID.String(), vacationcancellation.CreateCancellationRequest{})

		assert.ErrorIs(t, err, cancellationerrors.ErrCancellationRequestPending)
	})
}

func TestCancellationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()
	owner := uuid.New()

	pendingFor := func(v *vacation.Vacation) *vacationcancellation.Cancellation {
		return &vacationcancellation.Cancellation{
			ID:         uuid.New(),
			VacationID: v.ID,
			EmployeeID: v.EmployeeID,
			Status:     approval.StatusPending,
		}
	}

	t.Run("approve cancels an approved vacation and refunds its days", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := vacationWithStatus(owner, approval.StatusApproved)
		c := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), c.ID.String()).Return(c, nil)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.ledger.EXPECT().WithTx(gomock.Any()).Return(deps.ledger)
		deps.ledger.EXPECT().Refund(gomock.Any(), owner.String(), 5).Return(nil).Times(1)
		deps.vacations.EXPECT().Update(gomock.Any(), v).Return(nil)
		deps.repo.EXPECT().Update(gomock.Any(), c).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, evt kafka.OutboxEvent) error {
				var payload events.LeaveRequestDecidedEvent
				require.NoError(t, json.Unmarshal(evt.Payload, &payload))
				assert.Equal(t, -5, payload.LedgerDeltaDays)
				assert.Equal(t, events.KindVacationCancellation, payload.Kind)
				return nil
			})

		resp, err := deps.service.UpdateStatus(ctx, actorID, c.ID.String(), vacationcancellation.UpdateStatusRequest{Status: "APPROVED"})

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, 5, resp.RefundedDays)
		assert.Equal(t, approval.StatusCancelled, v.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approve cancels a pending vacation without refund", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := vacationWithStatus(owner, approval.StatusPending)
		c := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), c.ID.String()).Return(c, nil)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.vacations.EXPECT().Update(gomock.Any(), v).Return(nil)
		deps.repo.EXPECT().Update(gomock.Any(), c).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, actorID, c.ID.String(), vacationcancellation.UpdateStatusRequest{Status: "APPROVED"})

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.RefundedDays)
		assert.Equal(t, approval.StatusCancelled, v.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative vacation already cancelled", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := vacationWithStatus(owner, approval.StatusCancelled)
		c := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), c.ID.String()).Return(c, nil)
		deps.vacations.EXPECT().WithTx(gomock.Any()).Return(deps.vacations)
		deps.vacations.EXPECT().FindByIDForUpdate(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.UpdateStatus(ctx, actorID, c.ID.String(), vacationcancellation.UpdateStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, vacationerrors.ErrCannotCancel)
		assert.Equal(t, approval.StatusPending, c.Status)
	})

	t.Run("reject leaves the vacation alone", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		v := vacationWithStatus(owner, approval.StatusApproved)
		c := pendingFor(v)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), c.ID.String()).Return(c, nil)
		deps.repo.EXPECT().Update(gomock.Any(), c).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, actorID, c.ID.String(), vacationcancellation.UpdateStatusRequest{Status: "REJECTED"})

		assert.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, approval.StatusApproved, v.Status)
	})

	t.Run("negative already processed", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		v := vacationWithStatus(owner, approval.StatusApproved)
		c := pendingFor(v)
		c.Status = approval.StatusRejected
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(gomock.Any(), c.ID.String()).Return(c, nil)

		_, err := deps.service.UpdateStatus(ctx, actorID, c.ID.String(), vacationcancellation.UpdateStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
	})

	t.Run("negative invalid status", func(t *testing.T) {
		deps := setupCancellationServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, actorID, uuid.NewString(), vacationcancellation.UpdateStatusRequest{Status: "CANCELLED"})

		assert.ErrorIs(t, err, approval.ErrInvalidStatus)
	})
}

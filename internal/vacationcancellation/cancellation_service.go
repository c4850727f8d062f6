package vacationcancellation

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/ledger"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/contextutil"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/vacation"
	vacationerrors "go-hris-leave/internal/vacation/errors"
	cancellationerrors "go-hris-leave/internal/vacationcancellation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=cancellation_service.go -destination=mock/cancellation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID, vacationID string, req CreateCancellationRequest) (CancellationResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (CancellationResponse, error)
	GetByID(ctx context.Context, id string) (CancellationResponse, error)
	List(ctx context.Context, filter ListFilter) ([]CancellationResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]CancellationResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	vacations vacation.Repository
	ledger    ledger.Ledger
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	vacations vacation.Repository,
	ldg ledger.Ledger,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("vacationcancellation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacationcancellation.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		vacations: vacations,
		ledger:    ldg,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID, vacationID string, req CreateCancellationRequest) (CancellationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create vacation cancellation requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.String("vacation_id", vacationID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return CancellationResponse{}, vacationerrors.ErrInvalidActorID
	}
	vacationUUID, err := uuid.Parse(vacationID)
	if err != nil {
		return CancellationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create vacation cancellation begin tx failed", zap.Error(err))
		return CancellationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := s.vacations.WithTx(tx).FindByIDForUpdate(ctx, vacationID)
	if err != nil {
		return CancellationResponse{}, mapVacationError(err)
	}
	if !v.OwnedBy(actorID) {
		s.logger.Warn("create vacation cancellation not owner",
			zap.String("vacation_id", vacationID),
			zap.String("employee_id", actorID),
		)
		return CancellationResponse{}, vacationerrors.ErrNotOwner
	}
	if !v.Status.IsActive() {
		s.logger.Warn("create vacation cancellation rejected",
			zap.String("vacation_id", vacationID),
			zap.String("vacation_status", v.Status.String()),
		)
		return CancellationResponse{}, vacationerrors.ErrCannotCancel
	}

	pending, err := qtx.HasPending(ctx, vacationID)
	if err != nil {
		s.logger.Error("create vacation cancellation pending check failed", zap.Error(err))
		return CancellationResponse{}, err
	}
	if pending {
		return CancellationResponse{}, cancellationerrors.ErrCancellationRequestPending
	}

	c := &Cancellation{
		ID:          uuid.New(),
		VacationID:  vacationUUID,
		EmployeeID:  v.EmployeeID,
		Description: strings.TrimSpace(req.Description),
		Status:      approval.StatusPending,
	}

	if err := qtx.Create(ctx, c); err != nil {
		if dbtx.IsUniqueViolation(err, PendingIndex, pendingIndexColumn) {
			return CancellationResponse{}, cancellationerrors.ErrCancellationRequestPending
		}
		s.logger.Error("create vacation cancellation persist failed", zap.Error(err))
		return CancellationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create vacation cancellation commit failed", zap.Error(err))
		return CancellationResponse{}, err
	}
	s.logger.Info("create vacation cancellation success",
		zap.String("request_id", rid),
		zap.String("cancellation_id", c.ID.String()),
		zap.String("vacation_id", vacationID),
	)

	return mapToResponse(*c), nil
}

// UpdateStatus decides a PENDING cancellation. Approval cancels the vacation
// and hands back its days only when they had been reserved, i.e. the vacation
// was APPROVED at decision time.
func (s *service) UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (CancellationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update vacation cancellation status requested",
		zap.String("request_id", rid),
		zap.String("cancellation_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	target, err := approval.ParseDecision(req.Status)
	if err != nil {
		return CancellationResponse{}, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CancellationResponse{}, vacationerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return CancellationResponse{}, cancellationerrors.ErrInvalidCancellationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update vacation cancellation status begin tx failed", zap.Error(err))
		return CancellationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return CancellationResponse{}, mapRepositoryError(err)
	}
	if err := approval.EnsurePending(c.Status); err != nil {
		return CancellationResponse{}, err
	}

	now := time.Now().UTC()
	var ref string
	refund := 0
	switch target {
	case approval.StatusApproved:
		vtx := s.vacations.WithTx(tx)
		v, err := vtx.FindByIDForUpdate(ctx, c.VacationID.String())
		if err != nil {
			return CancellationResponse{}, mapVacationError(err)
		}
		ref = v.ReferenceNumber

		refund, err = v.Cancel()
		if err != nil {
			s.logger.Warn("update vacation cancellation status vacation changed",
				zap.String("cancellation_id", id),
				zap.String("vacation_id", v.ID.String()),
				zap.String("vacation_status", v.Status.String()),
			)
			return CancellationResponse{}, err
		}
		if refund > 0 {
			if err := s.ledger.WithTx(tx).Refund(ctx, v.EmployeeID.String(), refund); err != nil {
				s.logger.Error("update vacation cancellation status refund failed",
					zap.String("cancellation_id", id),
					zap.String("employee_id", v.EmployeeID.String()),
					zap.Int("days", refund),
					zap.Error(err),
				)
				return CancellationResponse{}, err
			}
		}
		if err := vtx.Update(ctx, v); err != nil {
			s.logger.Error("update vacation cancellation status vacation persist failed",
				zap.String("vacation_id", v.ID.String()),
				zap.Error(err),
			)
			return CancellationResponse{}, err
		}
		if err := c.Approve(actorUUID, now, refund); err != nil {
			return CancellationResponse{}, err
		}
	case approval.StatusRejected:
		if err := c.Reject(actorUUID, now, trimmedReason(req.RejectionReason)); err != nil {
			return CancellationResponse{}, err
		}
	}

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("update vacation cancellation status persist failed",
			zap.String("cancellation_id", id),
			zap.Error(err),
		)
		return CancellationResponse{}, err
	}

	evt, err := kafka.NewDecidedEvent(ctx, events.LeaveRequestDecidedEvent{
		RequestID:       c.ID.String(),
		Kind:            events.KindVacationCancellation,
		RequestRef:      ref,
		EmployeeID:      c.EmployeeID.String(),
		Status:          c.Status.String(),
		DecidedBy:       actorID,
		LedgerDeltaDays: -refund,
		OccurredAt:      now,
	})
	if err != nil {
		return CancellationResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("update vacation cancellation status outbox failed",
			zap.String("cancellation_id", id),
			zap.Error(err),
		)
		return CancellationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update vacation cancellation status commit failed",
			zap.String("cancellation_id", id),
			zap.Error(err),
		)
		return CancellationResponse{}, err
	}
	s.logger.Info("update vacation cancellation status success",
		zap.String("request_id", rid),
		zap.String("cancellation_id", id),
		zap.String("vacation_id", c.VacationID.String()),
		zap.String("to_status", c.Status.String()),
		zap.Int("refunded_days", refund),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CancellationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CancellationResponse{}, cancellationerrors.ErrInvalidCancellationID
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CancellationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]CancellationResponse, error) {
	q, err := approval.ParseQuery(filter.EmployeeID, filter.Status, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	cancellations, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("list vacation cancellations failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(cancellations), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]CancellationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, vacationerrors.ErrInvalidActorID
	}
	cancellations, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list employee vacation cancellations failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(cancellations), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cancellationerrors.ErrCancellationNotFound
	}
	return err
}

func mapVacationError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vacationerrors.ErrVacationNotFound
	}
	return err
}

func trimmedReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	v := strings.TrimSpace(*reason)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(c Cancellation) CancellationResponse {
	resp := CancellationResponse{
		ID:              c.ID.String(),
		VacationID:      c.VacationID.String(),
		EmployeeID:      c.EmployeeID.String(),
		Description:     c.Description,
		RefundedDays:    c.RefundedDays,
		Status:          c.Status.String(),
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
	if c.DecidedBy != nil {
		by := c.DecidedBy.String()
		resp.DecidedBy = &by
	}
	if c.DecidedAt != nil {
		at := c.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(cancellations []Cancellation) []CancellationResponse {
	resp := make([]CancellationResponse, len(cancellations))
	for i, c := range cancellations {
		resp[i] = mapToResponse(c)
	}
	return resp
}

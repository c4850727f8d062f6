package vacationextension

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/events"
	"go-hris-leave/internal/ledger"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/contextutil"
	"go-hris-leave/internal/shared/daterange"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/vacation"
	vacationerrors "go-hris-leave/internal/vacation/errors"
	extensionerrors "go-hris-leave/internal/vacationextension/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=extension_service.go -destination=mock/extension_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID, vacationID string, req CreateExtensionRequest) (ExtensionResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (ExtensionResponse, error)
	GetByID(ctx context.Context, id string) (ExtensionResponse, error)
	List(ctx context.Context, filter ListFilter) ([]ExtensionResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ExtensionResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	vacations vacation.Repository
	directory employee.Directory
	ledger    ledger.Ledger
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	vacations vacation.Repository,
	directory employee.Directory,
	ldg ledger.Ledger,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("vacationextension.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacationextension.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		vacations: vacations,
		directory: directory,
		ledger:    ldg,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID, vacationID string, req CreateExtensionRequest) (ExtensionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create vacation extension requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.String("vacation_id", vacationID),
		zap.String("extend_to_date", req.ExtendToDate),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return ExtensionResponse{}, vacationerrors.ErrInvalidActorID
	}
	vacationUUID, err := uuid.Parse(vacationID)
	if err != nil {
		return ExtensionResponse{}, vacationerrors.ErrInvalidVacationID
	}
	extendTo, err := daterange.Parse(req.ExtendToDate)
	if err != nil {
		return ExtensionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create vacation extension begin tx failed", zap.Error(err))
		return ExtensionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	vtx := s.vacations.WithTx(tx)

	v, err := vtx.FindByIDForUpdate(ctx, vacationID)
	if err != nil {
		return ExtensionResponse{}, mapVacationError(err)
	}
	if !v.OwnedBy(actorID) {
		s.logger.Warn("create vacation extension not owner",
			zap.String("vacation_id", vacationID),
			zap.String("employee_id", actorID),
		)
		return ExtensionResponse{}, vacationerrors.ErrNotOwner
	}

	additional, err := v.ExtensionDays(extendTo)
	if err != nil {
		s.logger.Warn("create vacation extension rejected",
			zap.String("vacation_id", vacationID),
			zap.String("vacation_status", v.Status.String()),
			zap.Error(err),
		)
		return ExtensionResponse{}, err
	}

	pending, err := qtx.HasPending(ctx, vacationID)
	if err != nil {
		s.logger.Error("create vacation extension pending check failed", zap.Error(err))
		return ExtensionResponse{}, err
	}
	if pending {
		return ExtensionResponse{}, extensionerrors.ErrExtensionRequestPending
	}

	// Vacation row first, then the employee row, same order as approval.
	if _, err := employee.Lock(ctx, s.directory.WithTx(tx), actorID); err != nil {
		return ExtensionResponse{}, err
	}
	startDay := daterange.NormalizeToUTCDay(v.ReturnDay).AddDate(0, 0, 1)
	rng := daterange.NewRange(startDay, extendTo)
	if err := daterange.AssertNoOverlap(ctx, vtx.HasOverlap, actorID, rng, &vacationID); err != nil {
		s.logger.Warn("create vacation extension overlap",
			zap.String("vacation_id", vacationID),
			zap.Error(err),
		)
		return ExtensionResponse{}, err
	}

	e := &Extension{
		ID:             uuid.New(),
		VacationID:     vacationUUID,
		EmployeeID:     v.EmployeeID,
		StartDay:       startDay,
		ExtendToDate:   rng.Return,
		AdditionalDays: additional,
		Description:    strings.TrimSpace(req.Description),
		Status:         approval.StatusPending,
	}

	if err := qtx.Create(ctx, e); err != nil {
		if dbtx.IsUniqueViolation(err, PendingIndex, pendingIndexColumn) {
			return ExtensionResponse{}, extensionerrors.ErrExtensionRequestPending
		}
		s.logger.Error("create vacation extension persist failed", zap.Error(err))
		return ExtensionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create vacation extension commit failed", zap.Error(err))
		return ExtensionResponse{}, err
	}
	s.logger.Info("create vacation extension success",
		zap.String("request_id", rid),
		zap.String("extension_id", e.ID.String()),
		zap.String("vacation_id", vacationID),
		zap.Int("additional_days", additional),
	)

	return mapToResponse(*e), nil
}

// UpdateStatus decides a PENDING extension. Approval re-validates the
// vacation under lock, since it may have been cancelled or extended by
// another request since this one was filed.
func (s *service) UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (ExtensionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update vacation extension status requested",
		zap.String("request_id", rid),
		zap.String("extension_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	target, err := approval.ParseDecision(req.Status)
	if err != nil {
		return ExtensionResponse{}, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ExtensionResponse{}, vacationerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ExtensionResponse{}, extensionerrors.ErrInvalidExtensionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update vacation extension status begin tx failed", zap.Error(err))
		return ExtensionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return ExtensionResponse{}, mapRepositoryError(err)
	}
	if err := approval.EnsurePending(e.Status); err != nil {
		return ExtensionResponse{}, err
	}

	now := time.Now().UTC()
	var ref string
	delta := 0
	switch target {
	case approval.StatusApproved:
		vtx := s.vacations.WithTx(tx)
		v, err := vtx.FindByIDForUpdate(ctx, e.VacationID.String())
		if err != nil {
			return ExtensionResponse{}, mapVacationError(err)
		}
		ref = v.ReferenceNumber

		vacationID := v.ID.String()
		rng := daterange.NewRange(daterange.NormalizeToUTCDay(v.ReturnDay).AddDate(0, 0, 1), e.ExtendToDate)
		additional, err := v.ExtendTo(e.ExtendToDate)
		if err != nil {
			s.logger.Warn("update vacation extension status vacation changed",
				zap.String("extension_id", id),
				zap.String("vacation_id", vacationID),
				zap.String("vacation_status", v.Status.String()),
				zap.Error(err),
			)
			return ExtensionResponse{}, err
		}
		if _, err := employee.Lock(ctx, s.directory.WithTx(tx), v.EmployeeID.String()); err != nil {
			return ExtensionResponse{}, err
		}
		if err := daterange.AssertNoOverlap(ctx, vtx.HasOverlap, v.EmployeeID.String(), rng, &vacationID); err != nil {
			return ExtensionResponse{}, err
		}
		if err := s.ledger.WithTx(tx).Reserve(ctx, v.EmployeeID.String(), additional); err != nil {
			s.logger.Warn("update vacation extension status reserve failed",
				zap.String("extension_id", id),
				zap.String("employee_id", v.EmployeeID.String()),
				zap.Int("days", additional),
				zap.Error(err),
			)
			return ExtensionResponse{}, err
		}
		if err := vtx.Update(ctx, v); err != nil {
			s.logger.Error("update vacation extension status vacation persist failed",
				zap.String("vacation_id", vacationID),
				zap.Error(err),
			)
			return ExtensionResponse{}, err
		}
		e.AdditionalDays = additional
		if err := e.Approve(actorUUID, now); err != nil {
			return ExtensionResponse{}, err
		}
		delta = additional
	case approval.StatusRejected:
		if err := e.Reject(actorUUID, now, trimmedReason(req.RejectionReason)); err != nil {
			return ExtensionResponse{}, err
		}
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update vacation extension status persist failed",
			zap.String("extension_id", id),
			zap.Error(err),
		)
		return ExtensionResponse{}, err
	}

	evt, err := kafka.NewDecidedEvent(ctx, events.LeaveRequestDecidedEvent{
		RequestID:       e.ID.String(),
		Kind:            events.KindVacationExtension,
		RequestRef:      ref,
		EmployeeID:      e.EmployeeID.String(),
		Status:          e.Status.String(),
		DecidedBy:       actorID,
		LedgerDeltaDays: delta,
		OccurredAt:      now,
	})
	if err != nil {
		return ExtensionResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("update vacation extension status outbox failed",
			zap.String("extension_id", id),
			zap.Error(err),
		)
		return ExtensionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update vacation extension status commit failed",
			zap.String("extension_id", id),
			zap.Error(err),
		)
		return ExtensionResponse{}, err
	}
	s.logger.Info("update vacation extension status success",
		zap.String("request_id", rid),
		zap.String("extension_id", id),
		zap.String("vacation_id", e.VacationID.String()),
		zap.String("to_status", e.Status.String()),
		zap.Int("days", delta),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExtensionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExtensionResponse{}, extensionerrors.ErrInvalidExtensionID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ExtensionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ExtensionResponse, error) {
	q, err := approval.ParseQuery(filter.EmployeeID, filter.Status, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	extensions, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("list vacation extensions failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(extensions), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]ExtensionResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, vacationerrors.ErrInvalidActorID
	}
	extensions, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list employee vacation extensions failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(extensions), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return extensionerrors.ErrExtensionNotFound
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

func mapToResponse(e Extension) ExtensionResponse {
	resp := ExtensionResponse{
		ID:              e.ID.String(),
		VacationID:      e.VacationID.String(),
		EmployeeID:      e.EmployeeID.String(),
		StartDay:        e.StartDay.Format(daterange.Layout),
		ExtendToDate:    e.ExtendToDate.Format(daterange.Layout),
		AdditionalDays:  e.AdditionalDays,
		Description:     e.Description,
		Status:          e.Status.String(),
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
	if e.DecidedBy != nil {
		by := e.DecidedBy.String()
		resp.DecidedBy = &by
	}
	if e.DecidedAt != nil {
		at := e.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(extensions []Extension) []ExtensionResponse {
	resp := make([]ExtensionResponse, len(extensions))
	for i, e := range extensions {
		resp[i] = mapToResponse(e)
	}
	return resp
}

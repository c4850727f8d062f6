package sickleave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/events"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/contextutil"
	"go-hris-leave/internal/shared/counter"
	"go-hris-leave/internal/shared/daterange"
	sickleaveerrors "go-hris-leave/internal/sickleave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=sickleave_service.go -destination=mock/sickleave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateSickLeaveRequest) (SickLeaveResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (SickLeaveResponse, error)
	GetByID(ctx context.Context, id string) (SickLeaveResponse, error)
	List(ctx context.Context, filter ListFilter) ([]SickLeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SickLeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory employee.Directory
	outbox    kafka.OutboxRepository
	counters  counter.Repository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory employee.Directory,
	outbox kafka.OutboxRepository,
	counters counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("sickleave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sickleave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outbox,
		counters:  counters,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateSickLeaveRequest) (SickLeaveResponse, error) {
	s.logger.Debug("create sick leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", actorID),
		zap.String("departure_day", req.DepartureDay),
		zap.String("return_day", req.ReturnDay),
	)

	employeeUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SickLeaveResponse{}, sickleaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create sick leave begin tx failed", zap.Error(err))
		return SickLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := employee.LockActive(ctx, s.directory.WithTx(tx), actorID); err != nil {
		s.logger.Warn("create sick leave employee check failed", zap.String("employee_id", actorID), zap.Error(err))
		return SickLeaveResponse{}, err
	}

	rng, err := daterange.ValidateRequest(ctx, qtx.HasOverlap, actorID, req.DepartureDay, req.ReturnDay, req.NumberOfDays)
	if err != nil {
		s.logger.Warn("create sick leave validation failed", zap.String("employee_id", actorID), zap.Error(err))
		return SickLeaveResponse{}, err
	}

	ref, err := counter.Next(ctx, s.counters.WithTx(tx), counter.TypeSickLeave)
	if err != nil {
		s.logger.Error("create sick leave reference number failed", zap.Error(err))
		return SickLeaveResponse{}, err
	}

	leaveType := strings.ToUpper(strings.TrimSpace(req.Type))
	if leaveType == "" {
		leaveType = DefaultType
	}

	sl := &SickLeave{
		ID:              uuid.New(),
		ReferenceNumber: ref,
		EmployeeID:      employeeUUID,
		DepartureDay:    rng.Departure,
		ReturnDay:       rng.Return,
		NumberOfDays:    req.NumberOfDays,
		Reason:          strings.TrimSpace(req.Reason),
		Type:            leaveType,
		AttachmentURL:   req.AttachmentURL,
		Status:          approval.StatusPending,
	}

	if err := qtx.Create(ctx, sl); err != nil {
		s.logger.Error("create sick leave persist failed", zap.Error(err))
		return SickLeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create sick leave commit failed", zap.Error(err))
		return SickLeaveResponse{}, err
	}
	s.logger.Info("create sick leave success",
		zap.String("sick_leave_id", sl.ID.String()),
		zap.String("reference_number", sl.ReferenceNumber),
		zap.String("employee_id", actorID),
	)

	return mapToResponse(*sl), nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (SickLeaveResponse, error) {
	s.logger.Debug("update sick leave status requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("sick_leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	target, err := approval.ParseDecision(req.Status)
	if err != nil {
		return SickLeaveResponse{}, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SickLeaveResponse{}, sickleaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return SickLeaveResponse{}, sickleaveerrors.ErrInvalidSickLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update sick leave status begin tx failed", zap.Error(err))
		return SickLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return SickLeaveResponse{}, mapRepositoryError(err)
	}
	fromStatus := sl.Status

	now := time.Now().UTC()
	if target == approval.StatusApproved {
		err = sl.Approve(actorUUID, now)
	} else {
		err = sl.Reject(actorUUID, now, trimmedReason(req.RejectionReason))
	}
	if err != nil {
		s.logger.Warn("update sick leave status rejected",
			zap.String("sick_leave_id", id),
			zap.String("from_status", fromStatus.String()),
			zap.String("to_status", target.String()),
		)
		return SickLeaveResponse{}, err
	}

	if err := qtx.Update(ctx, sl); err != nil {
		s.logger.Error("update sick leave status persist failed", zap.String("sick_leave_id", id), zap.Error(err))
		return SickLeaveResponse{}, err
	}

	evt, err := kafka.NewDecidedEvent(ctx, events.LeaveRequestDecidedEvent{
		RequestID:  sl.ID.String(),
		Kind:       events.KindSickLeave,
		RequestRef: sl.ReferenceNumber,
		EmployeeID: sl.EmployeeID.String(),
		Status:     sl.Status.String(),
		DecidedBy:  actorID,
		OccurredAt: now,
	})
	if err != nil {
		return SickLeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("update sick leave status outbox failed", zap.String("sick_leave_id", id), zap.Error(err))
		return SickLeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update sick leave status commit failed", zap.String("sick_leave_id", id), zap.Error(err))
		return SickLeaveResponse{}, err
	}
	s.logger.Info("update sick leave status success",
		zap.String("sick_leave_id", id),
		zap.String("from_status", fromStatus.String()),
		zap.String("to_status", sl.Status.String()),
	)

	return mapToResponse(*sl), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SickLeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SickLeaveResponse{}, sickleaveerrors.ErrInvalidSickLeaveID
	}
	sl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SickLeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sl), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]SickLeaveResponse, error) {
	q, err := approval.ParseQuery(filter.EmployeeID, filter.Status, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	leaves, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("list sick leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]SickLeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, sickleaveerrors.ErrInvalidActorID
	}
	leaves, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list employee sick leaves failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sickleaveerrors.ErrSickLeaveNotFound
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

func mapToResponse(sl SickLeave) SickLeaveResponse {
	resp := SickLeaveResponse{
		ID:              sl.ID.String(),
		ReferenceNumber: sl.ReferenceNumber,
		EmployeeID:      sl.EmployeeID.String(),
		DepartureDay:    sl.DepartureDay.Format(daterange.Layout),
		ReturnDay:       sl.ReturnDay.Format(daterange.Layout),
		NumberOfDays:    sl.NumberOfDays,
		Reason:          sl.Reason,
		Type:            sl.Type,
		AttachmentURL:   sl.AttachmentURL,
		Status:          sl.Status.String(),
		RejectionReason: sl.RejectionReason,
		CreatedAt:       sl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       sl.UpdatedAt.Format(time.RFC3339),
	}
	if sl.DecidedBy != nil {
		by := sl.DecidedBy.String()
		resp.DecidedBy = &by
	}
	if sl.DecidedAt != nil {
		at := sl.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(leaves []SickLeave) []SickLeaveResponse {
	resp := make([]SickLeaveResponse, len(leaves))
	for i, sl := range leaves {
		resp[i] = mapToResponse(sl)
	}
	return resp
}

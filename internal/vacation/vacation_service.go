package vacation

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
	"go-hris-leave/internal/shared/counter"
	"go-hris-leave/internal/shared/daterange"
	vacationerrors "go-hris-leave/internal/vacation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=vacation_service.go -destination=mock/vacation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateVacationRequest) (VacationResponse, error)
	UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (VacationResponse, error)
	GetByID(ctx context.Context, id string) (VacationResponse, error)
	List(ctx context.Context, filter ListFilter) ([]VacationResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory employee.Directory
	ledger    ledger.Ledger
	outbox    kafka.OutboxRepository
	counters  counter.Repository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory employee.Directory,
	ldg ledger.Ledger,
	outbox kafka.OutboxRepository,
	counters counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		ledger:    ldg,
		outbox:    outbox,
		counters:  counters,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateVacationRequest) (VacationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create vacation requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.String("departure_day", req.DepartureDay),
		zap.String("return_day", req.ReturnDay),
		zap.Int("number_of_days", req.NumberOfDays),
	)

	employeeUUID, err := uuid.Parse(actorID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create vacation begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := employee.LockActive(ctx, s.directory.WithTx(tx), actorID); err != nil {
		s.logger.Warn("create vacation employee check failed",
			zap.String("employee_id", actorID),
			zap.Error(err),
		)
		return VacationResponse{}, err
	}

	rng, err := daterange.ValidateRequest(ctx, qtx.HasOverlap, actorID, req.DepartureDay, req.ReturnDay, req.NumberOfDays)
	if err != nil {
		s.logger.Warn("create vacation validation failed",
			zap.String("employee_id", actorID),
			zap.Error(err),
		)
		return VacationResponse{}, err
	}

	ref, err := counter.Next(ctx, s.counters.WithTx(tx), counter.TypeVacation)
	if err != nil {
		s.logger.Error("create vacation reference number failed", zap.Error(err))
		return VacationResponse{}, err
	}

	vacationType := strings.ToUpper(strings.TrimSpace(req.Type))
	if vacationType == "" {
		vacationType = DefaultType
	}

	v := &Vacation{
		ID:              uuid.New(),
		ReferenceNumber: ref,
		EmployeeID:      employeeUUID,
		DepartureDay:    rng.Departure,
		ReturnDay:       rng.Return,
		NumberOfDays:    req.NumberOfDays,
		Reason:          strings.TrimSpace(req.Reason),
		Type:            vacationType,
		Status:          approval.StatusPending,
	}

	if err := qtx.Create(ctx, v); err != nil {
		s.logger.Error("create vacation persist failed", zap.Error(err))
		return VacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create vacation commit failed", zap.Error(err))
		return VacationResponse{}, err
	}
	s.logger.Info("create vacation success",
		zap.String("request_id", rid),
		zap.String("vacation_id", v.ID.String()),
		zap.String("reference_number", v.ReferenceNumber),
		zap.String("employee_id", actorID),
		zap.Int("number_of_days", v.NumberOfDays),
	)

	return mapToResponse(*v), nil
}

// UpdateStatus decides a PENDING vacation. Approval reserves NumberOfDays on
// the ledger in the same transaction, so the request row, the balance and the
// outbox event commit together or not at all.
func (s *service) UpdateStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (VacationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update vacation status requested",
		zap.String("request_id", rid),
		zap.String("vacation_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	target, err := approval.ParseDecision(req.Status)
	if err != nil {
		return VacationResponse{}, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update vacation status begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}
	fromStatus := v.Status

	now := time.Now().UTC()
	delta := 0
	switch target {
	case approval.StatusApproved:
		if err := v.Approve(actorUUID, now); err != nil {
			s.logger.Warn("update vacation status rejected",
				zap.String("vacation_id", id),
				zap.String("from_status", fromStatus.String()),
				zap.String("to_status", target.String()),
			)
			return VacationResponse{}, err
		}
		if err := s.ledger.WithTx(tx).Reserve(ctx, v.EmployeeID.String(), v.NumberOfDays); err != nil {
			s.logger.Warn("update vacation status reserve failed",
				zap.String("vacation_id", id),
				zap.String("employee_id", v.EmployeeID.String()),
				zap.Int("days", v.NumberOfDays),
				zap.Error(err),
			)
			return VacationResponse{}, err
		}
		delta = v.NumberOfDays
	case approval.StatusRejected:
		if err := v.Reject(actorUUID, now, trimmedReason(req.RejectionReason)); err != nil {
			s.logger.Warn("update vacation status rejected",
				zap.String("vacation_id", id),
				zap.String("from_status", fromStatus.String()),
				zap.String("to_status", target.String()),
			)
			return VacationResponse{}, err
		}
	}

	if err := qtx.Update(ctx, v); err != nil {
		s.logger.Error("update vacation status persist failed",
			zap.String("vacation_id", id),
			zap.Error(err),
		)
		return VacationResponse{}, err
	}

	evt, err := kafka.NewDecidedEvent(ctx, events.LeaveRequestDecidedEvent{
		RequestID:       v.ID.String(),
		Kind:            events.KindVacation,
		RequestRef:      v.ReferenceNumber,
		EmployeeID:      v.EmployeeID.String(),
		Status:          v.Status.String(),
		DecidedBy:       actorID,
		LedgerDeltaDays: delta,
		OccurredAt:      now,
	})
	if err != nil {
		return VacationResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("update vacation status outbox failed",
			zap.String("vacation_id", id),
			zap.Error(err),
		)
		return VacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update vacation status commit failed",
			zap.String("vacation_id", id),
			zap.Error(err),
		)
		return VacationResponse{}, err
	}
	s.logger.Info("update vacation status success",
		zap.String("request_id", rid),
		zap.String("vacation_id", id),
		zap.String("employee_id", v.EmployeeID.String()),
		zap.String("from_status", fromStatus.String()),
		zap.String("to_status", v.Status.String()),
		zap.Int("days", delta),
	)

	return mapToResponse(*v), nil
}

func (s *service) GetByID(ctx context.Context, id string) (VacationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]VacationResponse, error) {
	q, err := approval.ParseQuery(filter.EmployeeID, filter.Status, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	vacations, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("list vacations failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(vacations), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]VacationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, vacationerrors.ErrInvalidActorID
	}
	vacations, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list employee vacations failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(vacations), nil
}

func mapRepositoryError(err error) error {
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

func mapToResponse(v Vacation) VacationResponse {
	resp := VacationResponse{
		ID:              v.ID.String(),
		ReferenceNumber: v.ReferenceNumber,
		EmployeeID:      v.EmployeeID.String(),
		DepartureDay:    v.DepartureDay.Format(daterange.Layout),
		ReturnDay:       v.ReturnDay.Format(daterange.Layout),
		NumberOfDays:    v.NumberOfDays,
		Reason:          v.Reason,
		Type:            v.Type,
		Status:          v.Status.String(),
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       v.UpdatedAt.Format(time.RFC3339),
	}
	if v.DecidedBy != nil {
		by := v.DecidedBy.String()
		resp.DecidedBy = &by
	}
	if v.DecidedAt != nil {
		at := v.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(vacations []Vacation) []VacationResponse {
	resp := make([]VacationResponse, len(vacations))
	for i, v := range vacations {
		resp[i] = mapToResponse(v)
	}
	return resp
}

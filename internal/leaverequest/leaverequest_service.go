package leaverequest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/sickleave"
	"go-hris-leave/internal/vacation"
	"go-hris-leave/internal/vacationcancellation"
	"go-hris-leave/internal/vacationextension"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	UpdateRequestStatus(ctx context.Context, actorID string, kind Kind, id string, req UpdateStatusRequest) (RequestSummary, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]RequestSummary, error)
	GetMyRequests(ctx context.Context, employeeID string) ([]RequestSummary, error)
}

type service struct {
	vacations     vacation.Service
	sickLeaves    sickleave.Service
	extensions    vacationextension.Service
	cancellations vacationcancellation.Service
	logger        *zap.Logger
}

func NewService(
	vacations vacation.Service,
	sickLeaves sickleave.Service,
	extensions vacationextension.Service,
	cancellations vacationcancellation.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		vacations:     vacations,
		sickLeaves:    sickLeaves,
		extensions:    extensions,
		cancellations: cancellations,
		logger:        l,
	}
}

// UpdateRequestStatus hands the decision to the workflow owning kind.
func (s *service) UpdateRequestStatus(ctx context.Context, actorID string, kind Kind, id string, req UpdateStatusRequest) (RequestSummary, error) {
	s.logger.Debug("update request status dispatched",
		zap.String("kind", kind.String()),
		zap.String("id", id),
		zap.String("target_status", req.Status),
	)

	switch kind {
	case KindVacation:
		resp, err := s.vacations.UpdateStatus(ctx, actorID, id, vacation.UpdateStatusRequest{
			Status:          req.Status,
			RejectionReason: req.RejectionReason,
		})
		if err != nil {
			return RequestSummary{}, err
		}
		return fromVacation(resp), nil
	case KindSickLeave:
		resp, err := s.sickLeaves.UpdateStatus(ctx, actorID, id, sickleave.UpdateStatusRequest{
			Status:          req.Status,
			RejectionReason: req.RejectionReason,
		})
		if err != nil {
			return RequestSummary{}, err
		}
		return fromSickLeave(resp), nil
	case KindVacationExtension:
		resp, err := s.extensions.UpdateStatus(ctx, actorID, id, vacationextension.UpdateStatusRequest{
			Status:          req.Status,
			RejectionReason: req.RejectionReason,
		})
		if err != nil {
			return RequestSummary{}, err
		}
		return fromExtension(resp), nil
	case KindVacationCancellation:
		resp, err := s.cancellations.UpdateStatus(ctx, actorID, id, vacationcancellation.UpdateStatusRequest{
			Status:          req.Status,
			RejectionReason: req.RejectionReason,
		})
		if err != nil {
			return RequestSummary{}, err
		}
		return fromCancellation(resp), nil
	default:
		return RequestSummary{}, ErrUnknownKind
	}
}

// ListRequests queries every selected kind concurrently and merges the rows
// newest first.
func (s *service) ListRequests(ctx context.Context, filter ListFilter) ([]RequestSummary, error) {
	kinds, err := selectKinds(filter)
	if err != nil {
		return nil, err
	}

	fetch := map[Kind]func(context.Context) ([]RequestSummary, error){
		KindVacation: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.vacations.List(ctx, vacation.ListFilter{
				EmployeeID: filter.EmployeeID, Status: filter.Status, From: filter.From, To: filter.To,
			})
			return mapAll(rows, fromVacation), err
		},
		KindSickLeave: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.sickLeaves.List(ctx, sickleave.ListFilter{
				EmployeeID: filter.EmployeeID, Status: filter.Status, From: filter.From, To: filter.To,
			})
			return mapAll(rows, fromSickLeave), err
		},
		KindVacationExtension: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.extensions.List(ctx, vacationextension.ListFilter{
				EmployeeID: filter.EmployeeID, Status: filter.Status, From: filter.From, To: filter.To,
			})
			return mapAll(rows, fromExtension), err
		},
		KindVacationCancellation: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.cancellations.List(ctx, vacationcancellation.ListFilter{
				EmployeeID: filter.EmployeeID, Status: filter.Status, From: filter.From, To: filter.To,
			})
			return mapAll(rows, fromCancellation), err
		},
	}

	return s.merge(ctx, kinds, fetch)
}

func (s *service) GetMyRequests(ctx context.Context, employeeID string) ([]RequestSummary, error) {
	fetch := map[Kind]func(context.Context) ([]RequestSummary, error){
		KindVacation: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.vacations.ListByEmployee(ctx, employeeID)
			return mapAll(rows, fromVacation), err
		},
		KindSickLeave: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.sickLeaves.ListByEmployee(ctx, employeeID)
			return mapAll(rows, fromSickLeave), err
		},
		KindVacationExtension: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.extensions.ListByEmployee(ctx, employeeID)
			return mapAll(rows, fromExtension), err
		},
		KindVacationCancellation: func(ctx context.Context) ([]RequestSummary, error) {
			rows, err := s.cancellations.ListByEmployee(ctx, employeeID)
			return mapAll(rows, fromCancellation), err
		},
	}

	return s.merge(ctx, AllKinds, fetch)
}

func (s *service) merge(
	ctx context.Context,
	kinds []Kind,
	fetch map[Kind]func(context.Context) ([]RequestSummary, error),
) ([]RequestSummary, error) {
	var (
		mu     sync.Mutex
		merged []RequestSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		load := fetch[kind]
		g.Go(func() error {
			rows, err := load(gctx)
			if err != nil {
				return err
			}
			mu.Lock()
			merged = append(merged, rows...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("merge requests failed", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].createdAt.Equal(merged[j].createdAt) {
			return merged[i].ID > merged[j].ID
		}
		return merged[i].createdAt.After(merged[j].createdAt)
	})
	return merged, nil
}

// selectKinds intersects the requested kind, if any, with the kinds the
// caller may read. A nil Kinds means every kind.
func selectKinds(filter ListFilter) ([]Kind, error) {
	allowed := filter.Kinds
	if allowed == nil {
		allowed = AllKinds
	}
	if filter.Kind == "" {
		return allowed, nil
	}

	kind, err := ParseKind(filter.Kind)
	if err != nil {
		return nil, err
	}
	for _, k := range allowed {
		if k == kind {
			return []Kind{kind}, nil
		}
	}
	return nil, apperror.ErrForbidden
}

func mapAll[T any](rows []T, fn func(T) RequestSummary) []RequestSummary {
	out := make([]RequestSummary, len(rows))
	for i, r := range rows {
		out[i] = fn(r)
	}
	return out
}

func parseCreatedAt(v string) time.Time {
	t, _ := time.Parse(time.RFC3339, v)
	return t
}

func fromVacation(v vacation.VacationResponse) RequestSummary {
	return RequestSummary{
		Kind:            KindVacation,
		ID:              v.ID,
		ReferenceNumber: v.ReferenceNumber,
		EmployeeID:      v.EmployeeID,
		StartDay:        v.DepartureDay,
		EndDay:          v.ReturnDay,
		Days:            v.NumberOfDays,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
		DecidedBy:       v.DecidedBy,
		CreatedAt:       v.CreatedAt,
		createdAt:       parseCreatedAt(v.CreatedAt),
	}
}

func fromSickLeave(v sickleave.SickLeaveResponse) RequestSummary {
	return RequestSummary{
		Kind:            KindSickLeave,
		ID:              v.ID,
		ReferenceNumber: v.ReferenceNumber,
		EmployeeID:      v.EmployeeID,
		StartDay:        v.DepartureDay,
		EndDay:          v.ReturnDay,
		Days:            v.NumberOfDays,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
		DecidedBy:       v.DecidedBy,
		CreatedAt:       v.CreatedAt,
		createdAt:       parseCreatedAt(v.CreatedAt),
	}
}

func fromExtension(v vacationextension.ExtensionResponse) RequestSummary {
	return RequestSummary{
		Kind:            KindVacationExtension,
		ID:              v.ID,
		VacationID:      v.VacationID,
		EmployeeID:      v.EmployeeID,
		StartDay:        v.StartDay,
		EndDay:          v.ExtendToDate,
		Days:            v.AdditionalDays,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
		DecidedBy:       v.DecidedBy,
		CreatedAt:       v.CreatedAt,
		createdAt:       parseCreatedAt(v.CreatedAt),
	}
}

func fromCancellation(v vacationcancellation.CancellationResponse) RequestSummary {
	return RequestSummary{
		Kind:            KindVacationCancellation,
		ID:              v.ID,
		VacationID:      v.VacationID,
		EmployeeID:      v.EmployeeID,
		Days:            v.RefundedDays,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
		DecidedBy:       v.DecidedBy,
		CreatedAt:       v.CreatedAt,
		createdAt:       parseCreatedAt(v.CreatedAt),
	}
}

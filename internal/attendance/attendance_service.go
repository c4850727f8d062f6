package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-hris-leave/internal/attendance/errors"
	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/contextutil"
	"go-hris-leave/internal/shared/daterange"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/shared/response"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock returns the current instant. Tests substitute a fixed sequence.
type Clock func() time.Time

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	TakeBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	BackToWork(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)
	GetPeriodHours(ctx context.Context, employeeID string, filter PeriodFilter) (PeriodHoursResponse, error)
	GetHistory(ctx context.Context, employeeID string, filter HistoryFilter, page response.Pagination) ([]AttendanceResponse, int64, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory employee.Directory
	now       Clock
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory employee.Directory, clock Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		now:       clock,
		logger:    l,
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()

	if err := employee.EnsureActive(ctx, s.directory.WithTx(tx), employeeID); err != nil {
		s.logger.Warn("clock in employee check failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, now)
	switch {
	case err == nil:
		if existing.Status == StatusClockedOut {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
		}
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("clock in lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	a := NewAttendance(employeeUUID, now)
	if err := qtx.Create(ctx, a); err != nil {
		if dbtx.IsUniqueViolation(err, DailyIndex, dailyIndexColumns...) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		s.logger.Error("clock in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", a.ID.String()),
	)

	return mapToResponse(*a), nil
}

func (s *service) TakeBreak(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	return s.mutateToday(ctx, "take break", employeeID, func(qtx Repository, a *Attendance, open *Break, now time.Time) error {
		b, err := a.StartBreak(open, now)
		if err != nil {
			return err
		}
		if err := qtx.CreateBreak(ctx, b); err != nil {
			if dbtx.IsUniqueViolation(err, OpenBreakIndex, openBreakIndexColumns...) {
				return attendanceerrors.ErrUnclosedBreak
			}
			return err
		}
		return nil
	})
}

func (s *service) BackToWork(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	return s.mutateToday(ctx, "back to work", employeeID, func(qtx Repository, a *Attendance, open *Break, now time.Time) error {
		if _, err := a.EndBreak(open, now); err != nil {
			return err
		}
		closed, err := qtx.CloseBreak(ctx, open)
		if err != nil {
			return err
		}
		if !closed {
			return attendanceerrors.ErrNotOnBreak
		}
		return nil
	})
}

func (s *service) ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	return s.mutateToday(ctx, "clock out", employeeID, func(_ Repository, a *Attendance, open *Break, now time.Time) error {
		return a.ClockOut(open, now)
	})
}

// mutateToday locks today's record, loads its open break and applies fn.
// The record is written back only when fn succeeds.
func (s *service) mutateToday(
	ctx context.Context,
	op string,
	employeeID string,
	fn func(qtx Repository, a *Attendance, open *Break, now time.Time) error,
) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()

	a, err := qtx.FindByEmployeeAndDateForUpdate(ctx, employeeID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoClockInFound
		}
		s.logger.Error(op+" lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	open, err := qtx.FindOpenBreak(ctx, a.ID.String())
	if err != nil {
		s.logger.Error(op+" open break lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	fromStatus := a.Status
	if err := fn(qtx, a, open, now); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			s.logger.Warn(op+" rejected",
				zap.String("employee_id", employeeID),
				zap.String("status", fromStatus.String()),
				zap.String("code", appErr.Code),
			)
		} else {
			s.logger.Error(op+" failed", zap.String("employee_id", employeeID), zap.Error(err))
		}
		return AttendanceResponse{}, err
	}

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error(op+" persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	s.logger.Info(op+" success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", a.ID.String()),
		zap.String("from_status", fromStatus.String()),
		zap.String("to_status", a.Status.String()),
		zap.Int("total_break_minutes", a.TotalBreakMinutes),
	)

	return mapToResponse(*a), nil
}

func (s *service) GetTodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TodayStatusResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	now := s.now().UTC()

	a, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TodayStatusResponse{CurrentWorkingHours: decimal.Zero.StringFixed(2)}, nil
		}
		return TodayStatusResponse{}, err
	}
	open, err := s.repo.FindOpenBreak(ctx, a.ID.String())
	if err != nil {
		return TodayStatusResponse{}, err
	}

	record := mapToResponse(*a)
	resp := TodayStatusResponse{
		Attendance:          &record,
		CurrentWorkingHours: a.WorkingHours(open, now).StringFixed(2),
	}
	if open != nil {
		b := mapBreak(*open)
		resp.OpenBreak = &b
	}
	return resp, nil
}

func (s *service) GetPeriodHours(ctx context.Context, employeeID string, filter PeriodFilter) (PeriodHoursResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PeriodHoursResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	rng, err := daterange.ValidatePeriod(filter.Start, filter.End)
	if err != nil {
		return PeriodHoursResponse{}, err
	}

	rows, err := s.repo.ListClockedOut(ctx, employeeID, rng)
	if err != nil {
		s.logger.Error("period hours query failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return PeriodHoursResponse{}, err
	}

	total := decimal.Zero
	for _, a := range rows {
		if a.TotalHours.Valid {
			total = total.Add(a.TotalHours.Decimal)
		}
	}
	average := decimal.Zero
	if len(rows) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
	}

	return PeriodHoursResponse{
		Start:              rng.Departure.Format(daterange.Layout),
		End:                rng.Return.Format(daterange.Layout),
		TotalHours:         total.StringFixed(2),
		DaysWorked:         len(rows),
		AverageHoursPerDay: average.StringFixed(2),
	}, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string, filter HistoryFilter, page response.Pagination) ([]AttendanceResponse, int64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, 0, attendanceerrors.ErrInvalidEmployeeID
	}
	q, err := parseHistoryFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	q.Offset = page.Offset()
	q.Limit = page.PageSize

	rows, total, err := s.repo.ListHistory(ctx, employeeID, q)
	if err != nil {
		s.logger.Error("attendance history query failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp, total, nil
}

func parseHistoryFilter(filter HistoryFilter) (HistoryQuery, error) {
	var q HistoryQuery

	from, err := daterange.ParseOptional(filter.Start)
	if err != nil {
		return q, err
	}
	to, err := daterange.ParseOptional(filter.End)
	if err != nil {
		return q, err
	}
	if !from.IsZero() {
		q.From = &from
	}
	if !to.IsZero() {
		q.To = &to
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return q, daterange.ErrInvalidDateRange
	}

	switch status := Status(strings.ToUpper(strings.TrimSpace(filter.Status))); status {
	case "", StatusClockedIn, StatusOnBreak, StatusClockedOut:
		q.Status = status
	default:
		return q, apperror.InvalidField("status")
	}
	return q, nil
}

func mapBreak(b Break) BreakResponse {
	resp := BreakResponse{
		ID:         b.ID.String(),
		BreakStart: b.BreakStart.UTC().Format(time.RFC3339),
	}
	if b.BreakEnd != nil {
		end := b.BreakEnd.UTC().Format(time.RFC3339)
		resp.BreakEnd = &end
	}
	return resp
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                a.ID.String(),
		EmployeeID:        a.EmployeeID.String(),
		AttendanceDate:    a.AttendanceDate.Format(daterange.Layout),
		ClockInTime:       a.ClockInTime.UTC().Format(time.RFC3339),
		Status:            a.Status.String(),
		TotalBreakMinutes: a.TotalBreakMinutes,
	}
	if a.ClockOutTime != nil {
		out := a.ClockOutTime.UTC().Format(time.RFC3339)
		resp.ClockOutTime = &out
	}
	if a.TotalHours.Valid {
		hours := a.TotalHours.Decimal.StringFixed(2)
		resp.TotalHours = &hours
	}
	for _, b := range a.Breaks {
		resp.Breaks = append(resp.Breaks, mapBreak(b))
	}
	return resp
}

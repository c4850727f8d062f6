package ledger

import (
	"context"
	"database/sql"
	"errors"

	"go-hris-leave/internal/bootstrap"
	ledgererrors "go-hris-leave/internal/ledger/errors"
	"go-hris-leave/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	AuditActionReserved = "LEAVE_BALANCE_RESERVED"
	AuditActionRefunded = "LEAVE_BALANCE_REFUNDED"
)

// Ledger moves vacation days between available and used. Reserve and Refund
// only run on a ledger bound to the caller's transaction, so the balance
// change commits or rolls back together with the request that caused it.
//
//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	Available(ctx context.Context, employeeID string) (decimal.Decimal, error)
	Reserve(ctx context.Context, employeeID string, days int) error
	Refund(ctx context.Context, employeeID string, days int) error
}

type ledger struct {
	repo   Repository
	audit  bootstrap.AuditLogger
	bound  bool
	logger *zap.Logger
}

func NewLedger(repo Repository, audit bootstrap.AuditLogger, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	if audit == nil {
		audit = bootstrap.NopAuditLogger{}
	}
	return &ledger{repo: repo, audit: audit, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{
		repo:   l.repo.WithTx(tx),
		audit:  l.audit,
		bound:  tx != nil,
		logger: l.logger,
	}
}

func (l *ledger) Available(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	acct, err := l.repo.FindAccount(ctx, employeeID)
	if err != nil {
		return decimal.Zero, mapRepositoryError(err)
	}
	return acct.Available(), nil
}

func (l *ledger) Reserve(ctx context.Context, employeeID string, days int) error {
	rid := contextutil.GetRequestID(ctx)
	if !l.bound {
		l.logger.Error("reserve called on unbound ledger", zap.String("request_id", rid), zap.String("employee_id", employeeID))
		return ledgererrors.ErrUnboundLedger
	}
	if days <= 0 {
		return ledgererrors.ErrInvalidDays
	}

	acct, err := l.repo.LockAccount(ctx, employeeID)
	if err != nil {
		l.logger.Error("reserve lock account failed", zap.String("employee_id", employeeID), zap.Error(err))
		return mapRepositoryError(err)
	}

	delta := decimal.NewFromInt(int64(days))
	available := acct.Available()
	if available.LessThan(delta) {
		l.logger.Warn("reserve insufficient balance",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Int("days", days),
			zap.String("available", available.String()),
		)
		return ledgererrors.ErrInsufficientBalance
	}

	if err := l.repo.AdjustUsedDays(ctx, employeeID, delta); err != nil {
		l.logger.Error("reserve adjust used days failed", zap.String("employee_id", employeeID), zap.Error(err))
		return mapRepositoryError(err)
	}

	l.audit.Log(ctx, bootstrap.AuditLog{
		Action:  AuditActionReserved,
		Message: "vacation days reserved",
		Meta: map[string]any{
			"employee_id":      employeeID,
			"days":             days,
			"available_before": available.String(),
			"available_after":  available.Sub(delta).String(),
		},
	})
	l.logger.Debug("reserve success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Int("days", days),
	)
	return nil
}

func (l *ledger) Refund(ctx context.Context, employeeID string, days int) error {
	rid := contextutil.GetRequestID(ctx)
	if !l.bound {
		l.logger.Error("refund called on unbound ledger", zap.String("request_id", rid), zap.String("employee_id", employeeID))
		return ledgererrors.ErrUnboundLedger
	}
	if days < 0 {
		return ledgererrors.ErrInvalidDays
	}
	if days == 0 {
		return nil
	}

	acct, err := l.repo.LockAccount(ctx, employeeID)
	if err != nil {
		l.logger.Error("refund lock account failed", zap.String("employee_id", employeeID), zap.Error(err))
		return mapRepositoryError(err)
	}

	delta := decimal.NewFromInt(int64(days))
	if acct.UsedVacationDays.LessThan(delta) {
		l.logger.Error("refund exceeds used days",
			zap.String("employee_id", employeeID),
			zap.Int("days", days),
			zap.String("used", acct.UsedVacationDays.String()),
		)
		return ledgererrors.ErrRefundExceedsUsed
	}

	if err := l.repo.AdjustUsedDays(ctx, employeeID, delta.Neg()); err != nil {
		l.logger.Error("refund adjust used days failed", zap.String("employee_id", employeeID), zap.Error(err))
		return mapRepositoryError(err)
	}

	available := acct.Available()
	l.audit.Log(ctx, bootstrap.AuditLog{
		Action:  AuditActionRefunded,
		Message: "vacation days refunded",
		Meta: map[string]any{
			"employee_id":      employeeID,
			"days":             days,
			"available_before": available.String(),
			"available_after":  available.Add(delta).String(),
		},
	})
	l.logger.Debug("refund success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Int("days", days),
	)
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledgererrors.ErrAccountNotFound
	}
	return err
}

package ledger

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "go-hris-leave/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	BalanceKeyPrefix  = "leave:balance:"
	DefaultBalanceTTL = 5 * time.Minute
)

func GetBalanceKey(employeeID string) string {
	return BalanceKeyPrefix + employeeID
}

// BalanceService is the lock-free read side of the ledger. Entries are
// dropped by the decision-event consumer after every balance change.
//
//go:generate mockgen -source=ledger_balance_service.go -destination=mock/ledger_balance_service_mock.go -package=mock
type BalanceService interface {
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
	Invalidate(ctx context.Context, employeeID string) error
}

type balanceService struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewBalanceService(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) BalanceService {
	l := zap.L().Named("ledger.balance")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.balance")
	}
	if ttl <= 0 {
		ttl = DefaultBalanceTTL
	}
	return &balanceService{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *balanceService) GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	cacheKey := GetBalanceKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp BalanceResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		acct, err := s.repo.FindAccount(ctx, employeeID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToBalanceResponse(*acct)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, s.ttl).Err(); err != nil {
					s.logger.Warn("balance cache set failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get balance failed", zap.String("employee_id", employeeID), zap.Error(err))
		return BalanceResponse{}, err
	}

	return v.(BalanceResponse), nil
}

func (s *balanceService) Invalidate(ctx context.Context, employeeID string) error {
	if s.rdb == nil {
		return nil
	}
	cacheKey := GetBalanceKey(employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate balance cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapToBalanceResponse(acct Account) BalanceResponse {
	return BalanceResponse{
		EmployeeID:            acct.EmployeeID.String(),
		TotalVacationDays:     acct.TotalVacationDays,
		UsedVacationDays:      acct.UsedVacationDays,
		AvailableVacationDays: acct.Available(),
	}
}

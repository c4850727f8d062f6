package ledger

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/dbtx"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAccount(ctx context.Context, employeeID string) (*Account, error)
	LockAccount(ctx context.Context, employeeID string) (*Account, error)
	AdjustUsedDays(ctx context.Context, employeeID string, delta decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) FindAccount(ctx context.Context, employeeID string) (*Account, error) {
	var acct Account
	err := r.db.WithContext(ctx).
		First(&acct, "id = ?", employeeID).Error
	return &acct, err
}

// LockAccount reads the row FOR UPDATE; concurrent reservations for the same
// employee queue here until the holder commits.
func (r *repository) LockAccount(ctx context.Context, employeeID string) (*Account, error) {
	var acct Account
	err := dbtx.ForUpdate(r.db.WithContext(ctx)).
		First(&acct, "id = ?", employeeID).Error
	return &acct, err
}

// AdjustUsedDays applies delta in SQL so the increment is computed from the
// committed value, never from a stale in-memory copy.
func (r *repository) AdjustUsedDays(ctx context.Context, employeeID string, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", employeeID).
		Update("used_vacation_days", gorm.Expr("used_vacation_days + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

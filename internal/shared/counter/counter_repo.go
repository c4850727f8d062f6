package counter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-hris-leave/internal/shared/dbtx"

	"gorm.io/gorm"
)

// Counter types double as reference-number prefixes.
const (
	TypeVacation  = "VAC"
	TypeSickLeave = "SCK"
)

type RequestCounter struct {
	CounterType string `gorm:"type:varchar(20);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert-and-increment; concurrent callers serialize on the row.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO request_counters (counter_type, last_value, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = request_counters.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// Reference formats a human-facing request number such as VAC-000123.
func Reference(counterType string, value int64) string {
	return fmt.Sprintf("%s-%06d", counterType, value)
}

// Next draws the next value and formats it.
func Next(ctx context.Context, repo Repository, counterType string) (string, error) {
	v, err := repo.GetNextValue(ctx, counterType)
	if err != nil {
		return "", err
	}
	return Reference(counterType, v), nil
}

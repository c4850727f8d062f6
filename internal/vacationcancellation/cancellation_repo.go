package vacationcancellation

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=cancellation_repo.go -destination=mock/cancellation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Cancellation) error
	FindByID(ctx context.Context, id string) (*Cancellation, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Cancellation, error)
	Update(ctx context.Context, c *Cancellation) error
	HasPending(ctx context.Context, vacationID string) (bool, error)
	List(ctx context.Context, q approval.Query) ([]Cancellation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Cancellation, error)
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

func (r *repository) Create(ctx context.Context, c *Cancellation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Cancellation, error) {
	var c Cancellation
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Cancellation, error) {
	var c Cancellation
	err := dbtx.ForUpdate(r.db.WithContext(ctx)).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Cancellation) error {
	return r.db.WithContext(ctx).
		Model(c).
		Select("status", "refunded_days", "decided_by", "decided_at", "rejection_reason", "updated_at").
		Updates(c).Error
}

func (r *repository) HasPending(ctx context.Context, vacationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Cancellation{}).
		Where("vacation_id = ?", vacationID).
		Scopes(scope.Status(approval.StatusPending)).
		Count(&count).Error
	return count > 0, err
}

// List filters by creation time when a window is given; cancellations have
// no date range of their own.
func (r *repository) List(ctx context.Context, q approval.Query) ([]Cancellation, error) {
	db := r.db.WithContext(ctx).Model(&Cancellation{}).Scopes(
		scope.Employee(q.EmployeeID),
		scope.Status(q.Status),
		scope.CreatedWithin(q.From, q.To),
	)

	var cancellations []Cancellation
	err := db.Order("created_at DESC").Find(&cancellations).Error
	return cancellations, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Cancellation, error) {
	var cancellations []Cancellation
	err := r.db.WithContext(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("created_at DESC").
		Find(&cancellations).Error
	return cancellations, err
}

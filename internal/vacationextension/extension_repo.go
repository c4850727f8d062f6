package vacationextension

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=extension_repo.go -destination=mock/extension_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Extension) error
	FindByID(ctx context.Context, id string) (*Extension, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Extension, error)
	Update(ctx context.Context, e *Extension) error
	HasPending(ctx context.Context, vacationID string) (bool, error)
	List(ctx context.Context, q approval.Query) ([]Extension, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Extension, error)
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

func (r *repository) Create(ctx context.Context, e *Extension) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Extension, error) {
	var e Extension
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Extension, error) {
	var e Extension
	err := dbtx.ForUpdate(r.db.WithContext(ctx)).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Extension) error {
	return r.db.WithContext(ctx).
		Model(e).
		Select("status", "additional_days", "decided_by", "decided_at", "rejection_reason", "updated_at").
		Updates(e).Error
}

func (r *repository) HasPending(ctx context.Context, vacationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Extension{}).
		Where("vacation_id = ?", vacationID).
		Scopes(scope.Status(approval.StatusPending)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, q approval.Query) ([]Extension, error) {
	db := r.db.WithContext(ctx).Model(&Extension{}).Scopes(
		scope.Employee(q.EmployeeID),
		scope.Status(q.Status),
		scope.DateOverlap("start_day", "extend_to_date", q.From, q.To),
	)

	var extensions []Extension
	err := db.Order("created_at DESC").Find(&extensions).Error
	return extensions, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Extension, error) {
	var extensions []Extension
	err := r.db.WithContext(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("created_at DESC").
		Find(&extensions).Error
	return extensions, err
}

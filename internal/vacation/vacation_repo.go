package vacation

import (
	"context"
	"database/sql"

	"go-hris-leave/internal/shared/approval"
	"go-hris-leave/internal/shared/daterange"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/shared/scope"

	"gorm.io/gorm"
)

// decisionColumns are the only columns a workflow may rewrite after insert.
var decisionColumns = []string{
	"status",
	"return_day",
	"number_of_days",
	"decided_by",
	"decided_at",
	"rejection_reason",
	"updated_at",
}

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Vacation) error
	FindByID(ctx context.Context, id string) (*Vacation, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Vacation, error)
	Update(ctx context.Context, v *Vacation) error
	HasOverlap(ctx context.Context, employeeID string, rng daterange.Range, excludeID *string) (bool, error)
	List(ctx context.Context, q approval.Query) ([]Vacation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Vacation, error)
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

func (r *repository) Create(ctx context.Context, v *Vacation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Vacation, error) {
	var v Vacation
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Vacation, error) {
	var v Vacation
	err := dbtx.ForUpdate(r.db.WithContext(ctx)).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Vacation) error {
	return r.db.WithContext(ctx).
		Model(v).
		Select(decisionColumns).
		Updates(v).Error
}

// HasOverlap uses the closed-interval predicate, so a range starting on the
// return day of an active vacation conflicts.
func (r *repository) HasOverlap(ctx context.Context, employeeID string, rng daterange.Range, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Vacation{}).
		Scopes(
			scope.Employee(employeeID),
			scope.Statuses(approval.Active...),
			scope.DateOverlap("departure_day", "return_day", &rng.Departure, &rng.Return),
		)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, q approval.Query) ([]Vacation, error) {
	db := r.db.WithContext(ctx).Model(&Vacation{}).Scopes(
		scope.Employee(q.EmployeeID),
		scope.Status(q.Status),
		scope.DateOverlap("departure_day", "return_day", q.From, q.To),
	)

	var vacations []Vacation
	err := db.Order("created_at DESC").Find(&vacations).Error
	return vacations, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Vacation, error) {
	var vacations []Vacation
	err := r.db.WithContext(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("created_at DESC").
		Find(&vacations).Error
	return vacations, err
}

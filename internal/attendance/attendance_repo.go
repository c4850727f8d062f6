package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hris-leave/internal/shared/daterange"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/shared/scope"

	"gorm.io/gorm"
)

// HistoryQuery is a parsed HistoryFilter plus the requested page.
type HistoryQuery struct {
	From   *time.Time
	To     *time.Time
	Status Status
	Offset int
	Limit  int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	FindOpenBreak(ctx context.Context, attendanceID string) (*Break, error)
	CreateBreak(ctx context.Context, b *Break) error
	CloseBreak(ctx context.Context, b *Break) (bool, error)
	ListClockedOut(ctx context.Context, employeeID string, rng daterange.Range) ([]Attendance, error)
	ListHistory(ctx context.Context, employeeID string, q HistoryQuery) ([]Attendance, int64, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Breaks").Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", Day(date)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := dbtx.ForUpdate(r.db.WithContext(ctx)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", Day(date)).
		First(&a).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Model(a).
		Select("status", "clock_out_time", "total_break_minutes", "total_hours", "updated_at").
		Updates(a).Error
}

// FindOpenBreak returns nil without error when the record has no open break.
func (r *repository) FindOpenBreak(ctx context.Context, attendanceID string) (*Break, error) {
	var breaks []Break
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Where("break_end IS NULL").
		Limit(1).
		Find(&breaks).Error
	if err != nil || len(breaks) == 0 {
		return nil, err
	}
	return &breaks[0], nil
}

func (r *repository) CreateBreak(ctx context.Context, b *Break) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// CloseBreak sets break_end only while it is still NULL and reports whether
// this call closed it.
func (r *repository) CloseBreak(ctx context.Context, b *Break) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Break{}).
		Where("id = ?", b.ID).
		Where("break_end IS NULL").
		Update("break_end", b.BreakEnd)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) ListClockedOut(ctx context.Context, employeeID string, rng daterange.Range) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(
			scope.Employee(employeeID),
			scope.Status(StatusClockedOut),
			scope.DateBetween("attendance_date", &rng.Departure, &rng.Return),
		).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListHistory(ctx context.Context, employeeID string, q HistoryQuery) ([]Attendance, int64, error) {
	db := r.db.WithContext(ctx).Model(&Attendance{}).Scopes(
		scope.Employee(employeeID),
		scope.DateBetween("attendance_date", q.From, q.To),
		scope.Status(q.Status),
	)

	db = db.Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Attendance
	err := db.
		Preload("Breaks", func(tx *gorm.DB) *gorm.DB { return tx.Order("break_start ASC") }).
		Order("attendance_date DESC").
		Scopes(scope.Paginate(q.Offset, q.Limit)).
		Find(&rows).Error
	return rows, total, err
}

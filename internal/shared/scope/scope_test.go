package scope_test

import (
	"testing"
	"time"

	"go-hris-leave/internal/shared/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type span struct {
	ID         int `gorm:"primaryKey"`
	EmployeeID string
	Status     string
	StartDay   time.Time
	EndDay     time.Time
	CreatedAt  time.Time
}

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&span{}))

	rows := []span{
		{ID: 1, EmployeeID: "a", Status: "PENDING", StartDay: day(10), EndDay: day(14), CreatedAt: day(1).Add(9 * time.Hour)},
		{ID: 2, EmployeeID: "a", Status: "APPROVED", StartDay: day(20), EndDay: day(22), CreatedAt: day(2)},
		{ID: 3, EmployeeID: "b", Status: "REJECTED", StartDay: day(12), EndDay: day(16), CreatedAt: day(3)},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func ids(t *testing.T, db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) []int {
	t.Helper()
	var out []int
	require.NoError(t, db.Model(&span{}).Scopes(scopes...).Order("id").Pluck("id", &out).Error)
	return out
}

func TestScopes(t *testing.T) {
	db := setupDB(t)
	from, to := day(15), day(20)

	assert.Equal(t, []int{1, 2, 3}, ids(t, db, scope.Employee(""), scope.Status("")))
	assert.Equal(t, []int{1, 2}, ids(t, db, scope.Employee("a")))
	assert.Equal(t, []int{2}, ids(t, db, scope.Status("APPROVED")))
	assert.Equal(t, []int{1, 2}, ids(t, db, scope.Statuses("PENDING", "APPROVED")))

	// Jan 15-20 touches row 3 (ends 16) and row 2 (starts 20) but not row 1 (ends 14).
	assert.Equal(t, []int{2, 3}, ids(t, db, scope.DateOverlap("start_day", "end_day", &from, &to)))
	assert.Equal(t, []int{2, 3}, ids(t, db, scope.DateOverlap("start_day", "end_day", &from, nil)))

	assert.Equal(t, []int{2}, ids(t, db, scope.DateBetween("start_day", &from, &to)))

	first := day(1)
	assert.Equal(t, []int{1}, ids(t, db, scope.CreatedWithin(&first, &first)), "to day is inclusive")

	assert.Equal(t, []int{2}, ids(t, db, scope.Paginate(1, 1)))
	assert.Equal(t, []int{1, 2, 3}, ids(t, db, scope.Paginate(0, 0)))
}

package scope

import (
	"time"

	"gorm.io/gorm"
)

// Employee filters on employee_id; an empty id is a no-op.
func Employee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if employeeID == "" {
			return db
		}
		return db.Where("employee_id = ?", employeeID)
	}
}

// Status filters on the status column; an empty status is a no-op.
func Status[S ~string](status S) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", string(status))
	}
}

// Statuses filters on any of the given statuses.
func Statuses(statuses ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		return db.Where("status IN ?", statuses)
	}
}

// DateOverlap keeps rows whose [startColumn, endColumn] closed interval shares
// at least one day with [from, to]. Nil bounds are open.
func DateOverlap(startColumn, endColumn string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(endColumn+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(startColumn+" <= ?", *to)
		}
		return db
	}
}

// DateBetween keeps rows whose column lies in the closed interval [from, to].
func DateBetween(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}

// CreatedWithin is DateBetween on created_at with whole-day bounds, so a
// request made any time on the to day is included.
func CreatedWithin(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("created_at >= ?", *from)
		}
		if to != nil {
			db = db.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
		return db
	}
}

func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}

package attendance

import (
	"time"

	attendanceerrors "go-hris-leave/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusClockedIn  Status = "CLOCKED_IN"
	StatusOnBreak    Status = "ON_BREAK"
	StatusClockedOut Status = "CLOCKED_OUT"
)

func (s Status) String() string {
	return string(s)
}

const (
	DailyIndex     = "uq_attendance_employee_date"
	OpenBreakIndex = "uq_attendance_break_open"

	OpenBreakIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS " + OpenBreakIndex +
		" ON attendance_breaks (attendance_id) WHERE break_end IS NULL"
)

// Indexed columns as SQLite names them in constraint errors.
var (
	dailyIndexColumns     = []string{"attendances.employee_id", "attendances.attendance_date"}
	openBreakIndexColumns = []string{"attendance_breaks.attendance_id"}
)

var (
	msPerMinute    = decimal.NewFromInt(60000)
	minutesPerHour = decimal.NewFromInt(60)
)

// Attendance is one employee's record for one UTC day.
type Attendance struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EmployeeID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate    time.Time           `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	ClockInTime       time.Time           `gorm:"not null"`
	ClockOutTime      *time.Time
	Status            Status              `gorm:"type:varchar(20);not null;default:'CLOCKED_IN'"`
	TotalBreakMinutes int                 `gorm:"not null;default:0"`
	TotalHours        decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Breaks []Break `gorm:"foreignKey:AttendanceID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type Break struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AttendanceID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_breaks_attendance"`
	BreakStart   time.Time `gorm:"not null"`
	BreakEnd     *time.Time
	CreatedAt    time.Time
}

func (Break) TableName() string {
	return "attendance_breaks"
}

func (b Break) IsOpen() bool {
	return b.BreakEnd == nil
}

// Day is the UTC calendar day containing t.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NewAttendance(employeeID uuid.UUID, now time.Time) *Attendance {
	return &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		AttendanceDate: Day(now),
		ClockInTime:    now.UTC(),
		Status:         StatusClockedIn,
	}
}

// StartBreak opens a break. open is the record's currently open break, if
// any. The record is left untouched on error.
func (a *Attendance) StartBreak(open *Break, now time.Time) (*Break, error) {
	switch a.Status {
	case StatusClockedOut:
		return nil, attendanceerrors.ErrAlreadyClockedOut
	case StatusOnBreak:
		return nil, attendanceerrors.ErrAlreadyOnBreak
	}
	if open != nil {
		return nil, attendanceerrors.ErrUnclosedBreak
	}

	a.Status = StatusOnBreak
	return &Break{
		ID:           uuid.New(),
		AttendanceID: a.ID,
		BreakStart:   now.UTC(),
	}, nil
}

// EndBreak closes open and adds its rounded length to TotalBreakMinutes.
func (a *Attendance) EndBreak(open *Break, now time.Time) (int, error) {
	switch a.Status {
	case StatusClockedOut:
		return 0, attendanceerrors.ErrAlreadyClockedOut
	case StatusClockedIn:
		return 0, attendanceerrors.ErrNotOnBreak
	}
	if open == nil {
		return 0, attendanceerrors.ErrNotOnBreak
	}

	end := now.UTC()
	minutes := int(roundedMinutes(end.Sub(open.BreakStart)).IntPart())
	open.BreakEnd = &end
	a.TotalBreakMinutes += minutes
	a.Status = StatusClockedIn
	return minutes, nil
}

// ClockOut closes the day and fixes TotalHours.
func (a *Attendance) ClockOut(open *Break, now time.Time) error {
	switch a.Status {
	case StatusClockedOut:
		return attendanceerrors.ErrAlreadyClockedOut
	case StatusOnBreak:
		return attendanceerrors.ErrCannotClockOutOnBreak
	}
	if open != nil {
		return attendanceerrors.ErrUnclosedBreak
	}

	out := now.UTC()
	worked := minutes(out.Sub(a.ClockInTime)).Sub(decimal.NewFromInt(int64(a.TotalBreakMinutes)))
	a.ClockOutTime = &out
	a.TotalHours = decimal.NewNullDecimal(worked.Div(minutesPerHour).Round(2))
	a.Status = StatusClockedOut
	return nil
}

// WorkingHours is the time worked so far: elapsed time since clock-in minus
// completed breaks minus the running break, if any. A closed day reports
// TotalHours.
func (a Attendance) WorkingHours(open *Break, now time.Time) decimal.Decimal {
	if a.Status == StatusClockedOut && a.TotalHours.Valid {
		return a.TotalHours.Decimal
	}
	worked := minutes(now.Sub(a.ClockInTime)).Sub(decimal.NewFromInt(int64(a.TotalBreakMinutes)))
	if open != nil {
		worked = worked.Sub(minutes(now.Sub(open.BreakStart)))
	}
	return worked.Div(minutesPerHour).Round(2)
}

func minutes(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Div(msPerMinute)
}

func roundedMinutes(d time.Duration) decimal.Decimal {
	return minutes(d).Round(0)
}

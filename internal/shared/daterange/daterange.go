// Package daterange holds the calendar-day arithmetic shared by every leave
// request kind. All dates are UTC days; time-of-day is always discarded.
package daterange

import (
	"context"
	"strings"
	"time"
)

const (
	Layout = "2006-01-02"

	dayMillis = int64(86_400_000)
)

// Range is a closed interval of calendar days.
type Range struct {
	Departure time.Time
	Return    time.Time
}

func NewRange(departure, ret time.Time) Range {
	return Range{Departure: NormalizeToUTCDay(departure), Return: NormalizeToUTCDay(ret)}
}

func (r Range) Days() int {
	return InclusiveDays(r.Departure, r.Return)
}

// Parse accepts YYYY-MM-DD or an RFC3339 timestamp and returns the UTC day.
func Parse(input string) (time.Time, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(Layout, v); err == nil {
		return NormalizeToUTCDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return NormalizeToUTCDay(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptional is Parse for filters: an empty input yields the zero time.
func ParseOptional(input string) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, nil
	}
	return Parse(input)
}

func NormalizeToUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func AssertDepartureNotAfterReturn(departure, ret time.Time) error {
	if departure.After(ret) {
		return ErrReturnBeforeDeparture
	}
	return nil
}

// InclusiveDays counts both endpoints: floor((ret - dep) / 1 day) + 1.
func InclusiveDays(departure, ret time.Time) int {
	return int(floorDiv(ret.Sub(departure).Milliseconds(), dayMillis)) + 1
}

func AssertDayCountMatches(declared, computed int) error {
	if declared != computed {
		return ErrDayCountMismatch
	}
	return nil
}

// Overlaps is the closed-interval test: ranges sharing a boundary day conflict.
func Overlaps(a, b Range) bool {
	return !a.Return.Before(b.Departure) && !a.Departure.After(b.Return)
}

// OverlapFinder reports whether the employee already has a PENDING or APPROVED
// request of the same kind overlapping rng, ignoring excludeID.
type OverlapFinder func(ctx context.Context, employeeID string, rng Range, excludeID *string) (bool, error)

func AssertNoOverlap(ctx context.Context, find OverlapFinder, employeeID string, rng Range, excludeID *string) error {
	conflict, err := find(ctx, employeeID, rng, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrOverlapConflict
	}
	return nil
}

// ValidateRequest runs the request checks in order: both days parse, the
// departure is not after the return, no active request found by find overlaps
// the range, and declaredDays equals the inclusive day count.
func ValidateRequest(ctx context.Context, find OverlapFinder, employeeID, departure, ret string, declaredDays int) (Range, error) {
	dep, err := Parse(departure)
	if err != nil {
		return Range{}, err
	}
	retDay, err := Parse(ret)
	if err != nil {
		return Range{}, err
	}
	if err := AssertDepartureNotAfterReturn(dep, retDay); err != nil {
		return Range{}, err
	}
	rng := Range{Departure: dep, Return: retDay}
	if err := AssertNoOverlap(ctx, find, employeeID, rng, nil); err != nil {
		return Range{}, err
	}
	if err := AssertDayCountMatches(declaredDays, rng.Days()); err != nil {
		return Range{}, err
	}
	return rng, nil
}

// ValidatePeriod parses a reporting window. Unlike request ranges, an inverted
// window is reported as InvalidDateRange.
func ValidatePeriod(start, end string) (Range, error) {
	from, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	to, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	if from.After(to) {
		return Range{}, ErrInvalidDateRange
	}
	return Range{Departure: from, Return: to}, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package daterange_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hris-leave/internal/shared/daterange"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		got, err := daterange.Parse("2026-03-01")
		assert.NoError(t, err)
		assert.Equal(t, day(2026, 3, 1), got)
	})

	t.Run("timestamp is truncated to its UTC day", func(t *testing.T) {
		got, err := daterange.Parse("2026-03-01T23:30:00-02:00")
		assert.NoError(t, err)
		assert.Equal(t, day(2026, 3, 2), got)
	})

	t.Run("negative unparsable", func(t *testing.T) {
		for _, in := range []string{"", "01/03/2026", "2026-13-01", "tomorrow"} {
			_, err := daterange.Parse(in)
			assert.ErrorIs(t, err, daterange.ErrInvalidDate, in)
		}
	})
}

func TestNormalizeToUTCDay(t *testing.T) {
	in := time.Date(2026, 5, 10, 17, 45, 12, 99, time.FixedZone("WIB", 7*3600))
	assert.Equal(t, day(2026, 5, 10), daterange.NormalizeToUTCDay(in))
}

func TestInclusiveDays(t *testing.T) {
	base := day(2026, 1, 10)
	for offset := 0; offset < 400; offset += 7 {
		ret := base.AddDate(0, 0, offset)
		daysBetween := int(ret.Sub(base).Hours() / 24)
		assert.Equal(t, daysBetween+1, daterange.InclusiveDays(base, ret))
	}

	assert.Equal(t, 1, daterange.InclusiveDays(base, base))
	assert.Equal(t, 5, daterange.InclusiveDays(day(2026, 1, 10), day(2026, 1, 14)))
	assert.Equal(t, 0, daterange.InclusiveDays(day(2026, 1, 10), day(2026, 1, 9)))
}

func TestOverlaps(t *testing.T) {
	existing := daterange.Range{Departure: day(2026, 1, 10), Return: day(2026, 1, 14)}

	cases := []struct {
		name string
		rng  daterange.Range
		want bool
	}{
		{"partial overlap", daterange.Range{Departure: day(2026, 1, 12), Return: day(2026, 1, 16)}, true},
		{"adjacent after", daterange.Range{Departure: day(2026, 1, 15), Return: day(2026, 1, 20)}, false},
		{"shared boundary day", daterange.Range{Departure: day(2026, 1, 14), Return: day(2026, 1, 20)}, true},
		{"shared first day", daterange.Range{Departure: day(2026, 1, 5), Return: day(2026, 1, 10)}, true},
		{"contained", daterange.Range{Departure: day(2026, 1, 11), Return: day(2026, 1, 11)}, true},
		{"before", daterange.Range{Departure: day(2026, 1, 1), Return: day(2026, 1, 9)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, daterange.Overlaps(existing, tc.rng))
			assert.Equal(t, tc.want, daterange.Overlaps(tc.rng, existing))
		})
	}
}

func TestAssertNoOverlap(t *testing.T) {
	ctx := context.Background()
	rng := daterange.Range{Departure: day(2026, 1, 10), Return: day(2026, 1, 14)}
	exclude := "req-1"

	t.Run("no conflict", func(t *testing.T) {
		err := daterange.AssertNoOverlap(ctx, func(ctx context.Context, employeeID string, got daterange.Range, excludeID *string) (bool, error) {
			assert.Equal(t, "emp-1", employeeID)
			assert.Equal(t, rng, got)
			assert.Equal(t, &exclude, excludeID)
			return false, nil
		}, "emp-1", rng, &exclude)
		assert.NoError(t, err)
	})

	t.Run("conflict", func(t *testing.T) {
		err := daterange.AssertNoOverlap(ctx, func(context.Context, string, daterange.Range, *string) (bool, error) {
			return true, nil
		}, "emp-1", rng, nil)
		assert.ErrorIs(t, err, daterange.ErrOverlapConflict)
	})

	t.Run("finder error passes through", func(t *testing.T) {
		boom := errors.New("db down")
		err := daterange.AssertNoOverlap(ctx, func(context.Context, string, daterange.Range, *string) (bool, error) {
			return false, boom
		}, "emp-1", rng, nil)
		assert.ErrorIs(t, err, boom)
	})
}

func TestValidateRequest(t *testing.T) {
	ctx := context.Background()
	noOverlap := func(ctx context.Context, employeeID string, rng daterange.Range, excludeID *string) (bool, error) {
		return false, nil
	}
	overlap := func(ctx context.Context, employeeID string, rng daterange.Range, excludeID *string) (bool, error) {
		return true, nil
	}

	t.Run("success", func(t *testing.T) {
		rng, err := daterange.ValidateRequest(ctx, noOverlap, "emp-1", "2026-03-01", "2026-03-03", 3)
		assert.NoError(t, err)
		assert.Equal(t, day(2026, 3, 1), rng.Departure)
		assert.Equal(t, day(2026, 3, 3), rng.Return)
		assert.Equal(t, 3, rng.Days())
	})

	t.Run("negative return before departure", func(t *testing.T) {
		_, err := daterange.ValidateRequest(ctx, noOverlap, "emp-1", "2026-03-03", "2026-03-01", 3)
		assert.ErrorIs(t, err, daterange.ErrReturnBeforeDeparture)
	})

	t.Run("negative day count mismatch", func(t *testing.T) {
		_, err := daterange.ValidateRequest(ctx, noOverlap, "emp-1", "2026-03-01", "2026-03-03", 2)
		assert.ErrorIs(t, err, daterange.ErrDayCountMismatch)
	})

	t.Run("negative overlap reported before day count", func(t *testing.T) {
		_, err := daterange.ValidateRequest(ctx, overlap, "emp-1", "2026-03-01", "2026-03-03", 2)
		assert.ErrorIs(t, err, daterange.ErrOverlapConflict)
	})

	t.Run("negative invalid date", func(t *testing.T) {
		_, err := daterange.ValidateRequest(ctx, noOverlap, "emp-1", "2026-03-01", "soon", 2)
		assert.ErrorIs(t, err, daterange.ErrInvalidDate)
	})
}

func TestValidatePeriod(t *testing.T) {
	rng, err := daterange.ValidatePeriod("2026-01-01", "2026-01-31")
	assert.NoError(t, err)
	assert.Equal(t, 31, rng.Days())

	_, err = daterange.ValidatePeriod("2026-02-01", "2026-01-31")
	assert.ErrorIs(t, err, daterange.ErrInvalidDateRange)
}

package services

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	apperrors "mywallet/internal/errors"
)

// Period is one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod validates a year and month pair.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, apperrors.Invalid("month", "must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		return Period{}, apperrors.Invalid("year", "must be a four-digit year")
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// PeriodOf returns the month containing d.
func PeriodOf(d civil.Date) Period {
	return Period{Year: d.Year, Month: d.Month}
}

// ParsePeriod parses a YYYY-MM string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, apperrors.Invalid("period", fmt.Sprintf("%q is not YYYY-MM", s))
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// String returns the YYYY-MM key used to bucket stored dates.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start is the first day of the month.
func (p Period) Start() civil.Date {
	return civil.Date{Year: p.Year, Month: p.Month, Day: 1}
}

// End is the last day of the month.
func (p Period) End() civil.Date {
	return civil.Date{Year: p.Year, Month: p.Month, Day: daysIn(p.Year, p.Month)}
}

// AddMonths shifts the period by n months, n may be negative.
func (p Period) AddMonths(n int) Period {
	idx := p.Year*12 + int(p.Month) - 1 + n
	return Period{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

// Before reports whether p is earlier than o.
func (p Period) Before(o Period) bool {
	return p.Year < o.Year || (p.Year == o.Year && p.Month < o.Month)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonthsClamped moves d forward n calendar months, clamping the day to the
// end of a shorter target month.
func addMonthsClamped(d civil.Date, n int) civil.Date {
	p := PeriodOf(d).AddMonths(n)
	day := d.Day
	if last := daysIn(p.Year, p.Month); day > last {
		day = last
	}
	return civil.Date{Year: p.Year, Month: p.Month, Day: day}
}

package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day with no time component. The zero value is not a valid day.
type Date struct {
	t time.Time // always midnight UTC
}

const isoLayout = "2006-01-02"

// NewDate builds a Date. Out of range month/day values normalise the same way
// time.Date does (month 0 is December of the previous year).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

var errNoLayouts = errors.New("no date layouts given")

// ParseDate tries each layout in turn and returns the first calendar day that parses.
func ParseDate(value string, layouts ...string) (Date, error) {
	value = strings.TrimSpace(value)
	if len(layouts) == 0 {
		return Date{}, errNoLayouts
	}
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return FromTime(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return Date{}, fmt.Errorf("parse date %q: %w", value, firstErr)
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

const secondsPerDay = 24 * 60 * 60

// DaysSince returns the signed number of days from o to d. Both sit at
// midnight UTC, so the Unix difference is an exact multiple of a day.
func (d Date) DaysSince(o Date) int {
	return int((d.t.Unix() - o.t.Unix()) / secondsPerDay)
}

func (d Date) Format(layout string) string { return d.t.Format(layout) }

func (d Date) String() string { return d.t.Format(isoLayout) }

// DaysIn returns the number of days in the given month, leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Package daterange computes named calendar intervals ("This Week", "Last Month", ...)
// relative to an explicit reference day. Nothing in here reads the wall clock.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Preset int

const (
	PresetAll Preset = iota
	PresetToday
	PresetYesterday
	PresetThisWeek
	PresetThisMonth
	PresetThisYear
	PresetLastWeek
	PresetLastMonth
	PresetLastYear
	PresetUpToMonthEnd
	PresetCustom
)

func (p Preset) String() string {
	switch p {
	case PresetAll:
		return "All"
	case PresetToday:
		return "Today"
	case PresetYesterday:
		return "Yesterday"
	case PresetThisWeek:
		return "This Week"
	case PresetThisMonth:
		return "This Month"
	case PresetThisYear:
		return "This Year"
	case PresetLastWeek:
		return "Last Week"
	case PresetLastMonth:
		return "Last Month"
	case PresetLastYear:
		return "Last Year"
	case PresetUpToMonthEnd:
		return "Up to Month End"
	case PresetCustom:
		return "Custom"
	}
	return "Unknown"
}

// catalogOrder is the display order offered to a selector. The first entry is the default.
var catalogOrder = []Preset{
	PresetAll,
	PresetToday,
	PresetYesterday,
	PresetThisWeek,
	PresetThisMonth,
	PresetThisYear,
	PresetLastWeek,
	PresetLastMonth,
	PresetLastYear,
}

// DefaultPreset is selected when nothing else has been chosen.
const DefaultPreset = PresetAll

// Epoch is the fixed start of the "Up to Month End" preset.
var Epoch = NewDate(2000, time.January, 1)

var (
	ErrInvertedRange = errors.New("range start is after end")
	ErrUnknownPreset = errors.New("unknown preset")
)

// Range is an inclusive span of days with a display label.
type Range struct {
	Label string
	Start Date
	End   Date
}

// Contains reports whether d falls inside the range, both ends included.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// IsAll reports whether the range carries the "All" label. Its dates are not
// meaningful as a filter; see Calculator.All.
func (r Range) IsAll() bool {
	return r.Label == PresetAll.String()
}

// Days is the number of days covered.
func (r Range) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%s (%s - %s)", r.Label, r.Start, r.End)
}

// Custom builds a user supplied range.
func Custom(start, end Date) (Range, error) {
	if start.After(end) {
		return Range{}, fmt.Errorf("custom range %s - %s: %w", start, end, ErrInvertedRange)
	}
	return Range{Label: PresetCustom.String(), Start: start, End: end}, nil
}

// Calculator computes presets. WeekStart picks the day that begins a week;
// the zero value starts weeks on Sunday.
type Calculator struct {
	WeekStart time.Weekday
}

var defaultCalculator = Calculator{WeekStart: time.Sunday}

// All returns [today, today]. The label means "no date filter" to callers,
// the dates themselves are not an unbounded span.
func (c Calculator) All(today Date) Range {
	return Range{Label: PresetAll.String(), Start: today, End: today}
}

func (c Calculator) Today(today Date) Range {
	return Range{Label: PresetToday.String(), Start: today, End: today}
}

func (c Calculator) Yesterday(today Date) Range {
	y := today.AddDays(-1)
	return Range{Label: PresetYesterday.String(), Start: y, End: y}
}

// dayOfWeek is 0 on the first day of the week.
func (c Calculator) dayOfWeek(d Date) int {
	return (int(d.Weekday()) - int(c.WeekStart) + 7) % 7
}

func (c Calculator) ThisWeek(today Date) Range {
	start := today.AddDays(-c.dayOfWeek(today))
	return Range{Label: PresetThisWeek.String(), Start: start, End: start.AddDays(6)}
}

func (c Calculator) LastWeek(today Date) Range {
	start := c.ThisWeek(today).Start.AddDays(-7)
	return Range{Label: PresetLastWeek.String(), Start: start, End: start.AddDays(6)}
}

func monthBounds(year int, month time.Month) (Date, Date) {
	first := NewDate(year, month, 1)
	return first, NewDate(first.Year(), first.Month(), DaysIn(first.Year(), first.Month()))
}

func (c Calculator) ThisMonth(today Date) Range {
	start, end := monthBounds(today.Year(), today.Month())
	return Range{Label: PresetThisMonth.String(), Start: start, End: end}
}

// LastMonth derives the previous month's first and last day directly, so a 31 day
// month followed by a 30 day one never spills over.
func (c Calculator) LastMonth(today Date) Range {
	start, end := monthBounds(today.Year(), today.Month()-1)
	return Range{Label: PresetLastMonth.String(), Start: start, End: end}
}

func (c Calculator) ThisYear(today Date) Range {
	y := today.Year()
	return Range{Label: PresetThisYear.String(), Start: NewDate(y, time.January, 1), End: NewDate(y, time.December, 31)}
}

func (c Calculator) LastYear(today Date) Range {
	y := today.Year() - 1
	return Range{Label: PresetLastYear.String(), Start: NewDate(y, time.January, 1), End: NewDate(y, time.December, 31)}
}

func (c Calculator) UpToMonthEnd(today Date) Range {
	_, end := monthBounds(today.Year(), today.Month())
	return Range{Label: PresetUpToMonthEnd.String(), Start: Epoch, End: end}
}

// Compute dispatches on p. PresetCustom has no computed form and fails.
func (c Calculator) Compute(p Preset, today Date) (Range, error) {
	switch p {
	case PresetAll:
		return c.All(today), nil
	case PresetToday:
		return c.Today(today), nil
	case PresetYesterday:
		return c.Yesterday(today), nil
	case PresetThisWeek:
		return c.ThisWeek(today), nil
	case PresetThisMonth:
		return c.ThisMonth(today), nil
	case PresetThisYear:
		return c.ThisYear(today), nil
	case PresetLastWeek:
		return c.LastWeek(today), nil
	case PresetLastMonth:
		return c.LastMonth(today), nil
	case PresetLastYear:
		return c.LastYear(today), nil
	case PresetUpToMonthEnd:
		return c.UpToMonthEnd(today), nil
	}
	return Range{}, fmt.Errorf("compute %s: %w", p, ErrUnknownPreset)
}

// Catalog returns the selector presets in display order, computed fresh for today.
func (c Calculator) Catalog(today Date) []Range {
	out := make([]Range, 0, len(catalogOrder))
	for _, p := range catalogOrder {
		r, _ := c.Compute(p, today)
		out = append(out, r)
	}
	return out
}

// ByLabel resolves a preset label case-insensitively. Every computable preset is
// accepted, including ones outside the catalog.
func (c Calculator) ByLabel(label string, today Date) (Range, error) {
	want := strings.TrimSpace(label)
	for p := PresetAll; p < PresetCustom; p++ {
		if strings.EqualFold(p.String(), want) {
			return c.Compute(p, today)
		}
	}
	return Range{}, fmt.Errorf("preset %q: %w", label, ErrUnknownPreset)
}

// Catalog uses Sunday as the first day of the week.
func Catalog(today Date) []Range { return defaultCalculator.Catalog(today) }

func All(today Date) Range          { return defaultCalculator.All(today) }
func Today(today Date) Range        { return defaultCalculator.Today(today) }
func Yesterday(today Date) Range    { return defaultCalculator.Yesterday(today) }
func ThisWeek(today Date) Range     { return defaultCalculator.ThisWeek(today) }
func LastWeek(today Date) Range     { return defaultCalculator.LastWeek(today) }
func ThisMonth(today Date) Range    { return defaultCalculator.ThisMonth(today) }
func LastMonth(today Date) Range    { return defaultCalculator.LastMonth(today) }
func ThisYear(today Date) Range     { return defaultCalculator.ThisYear(today) }
func LastYear(today Date) Range     { return defaultCalculator.LastYear(today) }
func UpToMonthEnd(today Date) Range { return defaultCalculator.UpToMonthEnd(today) }

// ParseWeekday accepts full English weekday names, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	want := strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), want) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

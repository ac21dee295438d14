package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PERIOD - Closed range of calendar days
// =============================================================================

// Period is the closed range [Start, End].
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns all days in the period in order.
func (p Period) Days() []Date {
	var days []Date
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// MONTH KEY - "YYYY-MM", the unit of aggregation
// =============================================================================

// MonthKey names a calendar month.
type MonthKey struct {
	year  int
	month time.Month
}

// NewMonthKey builds a key from its parts.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey{year: year, month: month}
}

// MonthKeyOf returns the month containing d.
func MonthKeyOf(d Date) MonthKey {
	return MonthKey{year: d.Year(), month: d.Month()}
}

// ParseMonthKey parses "YYYY-MM".
func ParseMonthKey(s string) (MonthKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	return MonthKey{year: year, month: time.Month(month)}, nil
}

func (k MonthKey) Year() int { return k.year }
func (k MonthKey) Month() time.Month { return k.month }
func (k MonthKey) IsZero() bool { return k.year == 0 }
func (k MonthKey) String() string { return fmt.Sprintf("%04d-%02d", k.year, int(k.month)) }
func (k MonthKey) Label() string { return fmt.Sprintf("%04d年%02d月", k.year, int(k.month)) }
func (k MonthKey) Before(o MonthKey) bool {
	return k.year < o.year || (k.year == o.year && k.month < o.month)
}

// Period returns the first through last day of the month.
func (k MonthKey) Period() Period {
	return Period{Start: StartOfMonth(k.year, k.month), End: EndOfMonth(k.year, k.month)}
}

// Contains reports whether d falls within the month.
func (k MonthKey) Contains(d Date) bool {
	return d.Year() == k.year && d.Month() == k.month
}

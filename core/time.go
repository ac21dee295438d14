package core

import (
	"time"
)

// =============================================================================
// DATE - Calendar day in the single local calendar
// =============================================================================

// DateLayout is the ISO form used for dates everywhere in the engine.
const DateLayout = "2006-01-02"

// Date is a calendar day. The wall clock is always midnight UTC so that
// two dates compare equal regardless of how they were constructed.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD". Anything else fails with ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &DateError{Input: s}
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool { return d.Time.IsZero() }
func (d Date) MonthKey() MonthKey { return MonthKeyOf(d) }
func (d Date) String() string { return d.Time.Format(DateLayout) }
func (d Date) IsWeekend() bool { wd := d.Weekday(); return wd == time.Saturday || wd == time.Sunday }

// =============================================================================
// CLOCK - The single entry point for "today"
// =============================================================================

// Clock supplies the current date. Calculations never read the system
// clock directly; they receive a Clock or an explicit date.
type Clock interface {
	Today() Date
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Today() Date { return DateOf(time.Now()) }

// FixedClock always reports the same day. Used by tests and --today.
type FixedClock struct {
	Date Date
}

func (c FixedClock) Today() Date { return c.Date }

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// Holiday is one named holiday on a calendar date.
type Holiday struct {
	Name string
	Date Date
}

// HolidayCalendar provides holiday lookup functionality.
type HolidayCalendar interface {
	// IsHoliday reports whether the date is a non-working holiday.
	// Weekends are not holidays for this purpose.
	IsHoliday(date Date) bool

	// GetHolidays returns all holidays in the given year, ordered by date.
	GetHolidays(year int) []Holiday
}

// IsWorkdayWithHolidays checks if a date is a working day, considering holidays.
func (d Date) IsWorkdayWithHolidays(calendar HolidayCalendar) bool {
	if d.IsWeekend() {
		return false
	}
	if calendar != nil && calendar.IsHoliday(d) {
		return false
	}
	return true
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }
func EndOfMonth(year int, month time.Month) Date {
	return Date{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

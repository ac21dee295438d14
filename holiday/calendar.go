/*
Package holiday classifies calendar dates for pay and working-day purposes.

PURPOSE:
  Answers two different questions about a date:

  1. Classify: is this a day whose work is paid at the holiday rate?
     National holiday (fixed table), weekend, or year-end blackout,
     checked in that order. The first match supplies the label.

  2. IsHoliday: is this a non-working holiday for the statutory
     working-day count? Fixed table plus the moving-holiday rules.
     Weekends are counted separately by the caller.

UNTABULATED YEARS:
  The fixed tables cover 2024 and 2025. Any other year is approximated by
  the FallbackPolicy (NearestYear by default): the chosen table's
  month/day pairs are moved into the requested year. Lookups that needed
  this report a *core.UnsupportedYearError, a soft failure. The data is
  still returned and usable, and Classify marks its result Approximate.

USAGE:
  cal := holiday.New()
  c := cal.Classify(core.MustParseDate("2025-05-03"))
  // c.IsHoliday == true, c.Kind == holiday.KindNational, c.Label == "憲法記念日"

SEE ALSO:
  - tables.go: Fixed tables and fallback policy
  - moving.go: Nth-weekday and equinox rules
  - monthly/workdays.go: Statutory working days
*/
package holiday

import (
	"sort"
	"time"

	"github.com/warp/overtime-engine/core"
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Kind is the reason a date counts as a holiday.
type Kind string

const (
	KindNone     Kind = ""
	KindNational Kind = "national"
	KindWeekend  Kind = "weekend"
	KindYearEnd  Kind = "yearEnd"
)

// YearEndLabel labels the Dec 29 - Jan 3 blackout.
const YearEndLabel = "年末年始休暇"

// Classification is the result of Classify.
type Classification struct {
	IsHoliday bool
	Kind      Kind
	Label     string

	// Approximate is set when the national lookup used another year's table.
	Approximate bool
}

var weekdayNames = [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}
var weekdayShort = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// WeekdayLabel returns the one-character day-of-week label.
func WeekdayLabel(d core.Date) string {
	return weekdayShort[d.Weekday()]
}

// WeekdayName returns the full day-of-week name.
func WeekdayName(d core.Date) string {
	return weekdayNames[d.Weekday()]
}

// IsYearEnd reports December 29-31 and January 2-3. January 1 is a
// national holiday in its own right.
func IsYearEnd(d core.Date) bool {
	day := d.Day()
	switch d.Month() {
	case time.December:
		return day >= 29
	case time.January:
		return day >= 2 && day <= 3
	}
	return false
}

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar implements core.HolidayCalendar over fixed tables and the
// moving-holiday rules.
type Calendar struct {
	tables   Table
	years    []int
	fallback FallbackPolicy
}

var _ core.HolidayCalendar = (*Calendar)(nil)

// Option configures a Calendar.
type Option func(*Calendar)

// WithTables replaces the shipped statutory tables.
func WithTables(t Table) Option {
	return func(c *Calendar) { c.tables = t }
}

// WithFallback replaces the NearestYear policy.
func WithFallback(p FallbackPolicy) Option {
	return func(c *Calendar) { c.fallback = p }
}

// New creates a calendar over StatutoryTables.
func New(opts ...Option) *Calendar {
	c := &Calendar{tables: StatutoryTables, fallback: NearestYear}
	for _, opt := range opts {
		opt(c)
	}
	c.years = c.tables.Years()
	return c
}

// NationalHolidays returns the fixed-table holidays of a year. For an
// untabulated year the result is redated from the fallback year and the
// error is a *core.UnsupportedYearError. With no tables at all it
// returns nil and no error.
func (c *Calendar) NationalHolidays(year int) ([]core.Holiday, error) {
	if hs, ok := c.tables[year]; ok {
		return hs, nil
	}
	if len(c.years) == 0 {
		return nil, nil
	}
	from := c.fallback(year, c.years)
	return Redate(c.tables[from], year), &core.UnsupportedYearError{Year: year, FallbackYear: from}
}

// NationalHoliday looks a date up in the fixed table for its year.
// approximate is set when the table was borrowed from another year.
func (c *Calendar) NationalHoliday(d core.Date) (hd core.Holiday, found, approximate bool) {
	hs, err := c.NationalHolidays(d.Year())
	approximate = core.IsApproximation(err)
	for _, candidate := range hs {
		if candidate.Date.Equal(d) {
			return candidate, true, approximate
		}
	}
	return core.Holiday{}, false, approximate
}

// Classify decides whether work on the date is holiday work.
func (c *Calendar) Classify(d core.Date) Classification {
	hd, found, approx := c.NationalHoliday(d)
	if found {
		return Classification{IsHoliday: true, Kind: KindNational, Label: hd.Name, Approximate: approx}
	}
	if d.IsWeekend() {
		return Classification{IsHoliday: true, Kind: KindWeekend, Label: WeekdayName(d), Approximate: approx}
	}
	if IsYearEnd(d) {
		return Classification{IsHoliday: true, Kind: KindYearEnd, Label: YearEndLabel, Approximate: approx}
	}
	return Classification{Approximate: approx}
}

// IsHoliday reports fixed-table or moving-holiday membership.
func (c *Calendar) IsHoliday(d core.Date) bool {
	if _, found, _ := c.NationalHoliday(d); found {
		return true
	}
	for _, hd := range MovingHolidays(d.Year()) {
		if hd.Date.Equal(d) {
			return true
		}
	}
	return false
}

// GetHolidays returns the fixed table unioned with the moving holidays,
// one entry per date, ordered by date. Where both sources name the same
// date the fixed-table entry wins.
func (c *Calendar) GetHolidays(year int) []core.Holiday {
	fixed, _ := c.NationalHolidays(year)

	seen := make(map[string]bool, len(fixed))
	out := make([]core.Holiday, 0, len(fixed)+6)
	for _, hd := range fixed {
		seen[hd.Date.String()] = true
		out = append(out, hd)
	}
	for _, hd := range MovingHolidays(year) {
		if !seen[hd.Date.String()] {
			seen[hd.Date.String()] = true
			out = append(out, hd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

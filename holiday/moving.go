package holiday

import (
	"math"
	"time"

	"github.com/warp/overtime-engine/core"
)

// =============================================================================
// MOVING HOLIDAYS - Computed per year, no state
// =============================================================================

// NthWeekday returns the nth (1-based) occurrence of weekday in the month:
// the first such weekday on or after the 1st, plus (n-1) weeks.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) core.Date {
	first := core.StartOfMonth(year, month)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDays(offset + (n-1)*7)
}

// SpringEquinox approximates the March equinox day.
func SpringEquinox(year int) core.Date {
	return core.NewDate(year, time.March, equinoxDay(20.8431, year))
}

// AutumnEquinox approximates the September equinox day.
func AutumnEquinox(year int) core.Date {
	return core.NewDate(year, time.September, equinoxDay(23.2488, year))
}

// equinoxDay is floor(base + 0.242194*(year-1851) - floor((year-1851)/4)).
func equinoxDay(base float64, year int) int {
	y := float64(year - 1851)
	return int(math.Floor(base + 0.242194*y - math.Floor(y/4)))
}

// MovingHolidays returns the rule-based holidays of a year in date order.
func MovingHolidays(year int) []core.Holiday {
	return []core.Holiday{
		{Name: "成人の日", Date: NthWeekday(year, time.January, time.Monday, 2)},
		{Name: "春分の日", Date: SpringEquinox(year)},
		{Name: "海の日", Date: NthWeekday(year, time.July, time.Monday, 3)},
		{Name: "敬老の日", Date: NthWeekday(year, time.September, time.Monday, 3)},
		{Name: "秋分の日", Date: AutumnEquinox(year)},
		{Name: "スポーツの日", Date: NthWeekday(year, time.October, time.Monday, 2)},
	}
}

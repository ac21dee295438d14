package monthly

import (
	"time"

	"github.com/warp/overtime-engine/core"
)

// StatutoryWorkingDays counts the days of the month that are neither
// weekend nor holiday.
func StatutoryWorkingDays(cal core.HolidayCalendar, year int, month time.Month) int {
	p := core.NewMonthKey(year, month).Period()
	count := 0
	for _, d := range p.Days() {
		if d.IsWorkdayWithHolidays(cal) {
			count++
		}
	}
	return count
}

// ResolveSalary returns a copy of s with WorkingDaysPerMonth filled in.
// In auto mode it is the statutory count for the month containing asOf;
// in manual mode s is returned as is.
func ResolveSalary(s core.SalarySettings, cal core.HolidayCalendar, asOf core.Date) core.SalarySettings {
	if s.WorkingDaysMode != core.WorkingDaysAuto {
		return s
	}
	resolved := s
	resolved.WorkingDaysPerMonth = StatutoryWorkingDays(cal, asOf.Year(), asOf.Month())
	return resolved
}

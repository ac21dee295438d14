// Package monthly aggregates work records per calendar month and counts
// statutory working days.
package monthly

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/payroll"
)

// Aggregate sums the records whose date falls in key.
//
// Records outside the month are ignored. The maximum-overtime day is the
// first record with the highest overtime in the order given. asOf is the
// date used to resolve auto working days for the pay estimate.
func Aggregate(records []core.WorkRecord, key core.MonthKey, s core.SalarySettings, cal core.HolidayCalendar, asOf core.Date) core.MonthlySummary {
	sum := core.MonthlySummary{
		Month:                key,
		StatutoryWorkingDays: StatutoryWorkingDays(cal, key.Year(), key.Month()),
		EstimatedOvertimePay: decimal.Zero,
	}

	for _, rec := range records {
		if !key.Contains(rec.Date) {
			continue
		}
		sum.WorkingDays++
		sum.TotalOvertimeHours += rec.OvertimeHours
		sum.TotalShortageHours += rec.ShortageHours
		sum.TotalWorkingHours += rec.ActualWorkHours

		if sum.MaxOvertimeDay == nil || rec.OvertimeHours > sum.MaxOvertimeDay.Hours {
			sum.MaxOvertimeDay = &core.MaxOvertimeDay{RecordID: rec.ID, Date: rec.Date, Hours: rec.OvertimeHours}
		}
	}

	if sum.WorkingDays == 0 {
		return sum
	}

	sum.NetOvertimeHours = sum.TotalOvertimeHours - sum.TotalShortageHours
	sum.AverageOvertimePerDay = sum.TotalOvertimeHours / float64(sum.WorkingDays)
	if sum.NetOvertimeHours > 0 {
		sum.EstimatedOvertimePay = payroll.OvertimePay(sum.NetOvertimeHours, ResolveSalary(s, cal, asOf))
	}
	return sum
}

// AvailableMonths lists the months that have records, plus the current
// month, newest first.
func AvailableMonths(records []core.WorkRecord, today core.Date) []core.MonthKey {
	seen := map[core.MonthKey]bool{today.MonthKey(): true}
	for _, rec := range records {
		seen[rec.Date.MonthKey()] = true
	}

	months := make([]core.MonthKey, 0, len(seen))
	for k := range seen {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})
	return months
}

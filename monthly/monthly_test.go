package monthly_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/holiday"
	"github.com/warp/overtime-engine/monthly"
	"github.com/warp/overtime-engine/worktime"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func salary1500() core.SalarySettings {
	s := core.DefaultSalarySettings()
	s.BaseSalaryMonthly = decimal.NewFromInt(264000)
	s.WorkingDaysPerMonth = 22
	return s
}

func record(t *testing.T, date, start, end string) core.WorkRecord {
	t.Helper()
	rec, err := worktime.NewRecord("r-"+date, core.MustParseDate(date),
		worktime.Shift{Start: start, End: end, BreakMinutes: 60}, core.DefaultOvertimeSettings())
	require.NoError(t, err)
	return rec
}

// =============================================================================
// STATUTORY WORKING DAYS
// =============================================================================

func TestStatutoryWorkingDays(t *testing.T) {
	cal := holiday.New()

	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"december without holidays", 2024, time.December, 22},
		{"holiday listed by both sources counts once", 2025, time.July, 22},
		{"table and computed equinox both excluded", 2025, time.March, 19},
		{"holiday on a weekend changes nothing", 2025, time.May, 21},
		{"june has no holidays", 2025, time.June, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, monthly.StatutoryWorkingDays(cal, tt.year, tt.month))
		})
	}
}

func TestStatutoryWorkingDays_WeekdayHolidayReducesCount(t *testing.T) {
	// GIVEN: A table that adds Tuesday December 10, 2024
	table := holiday.Table{
		2024: {{Name: "臨時休日", Date: core.NewDate(2024, time.December, 10)}},
	}
	cal := holiday.New(holiday.WithTables(table))

	// THEN: The count drops from 22 to 21
	assert.Equal(t, 21, monthly.StatutoryWorkingDays(cal, 2024, time.December))
}

func TestResolveSalary(t *testing.T) {
	cal := holiday.New()

	manual := salary1500()
	got := monthly.ResolveSalary(manual, cal, core.MustParseDate("2025-03-10"))
	assert.Equal(t, 22, got.WorkingDaysPerMonth, "manual mode is untouched")

	auto := salary1500()
	auto.WorkingDaysMode = core.WorkingDaysAuto
	got = monthly.ResolveSalary(auto, cal, core.MustParseDate("2025-03-10"))
	assert.Equal(t, 19, got.WorkingDaysPerMonth)
	assert.Equal(t, 22, auto.WorkingDaysPerMonth, "input is not modified")
}

// =============================================================================
// AGGREGATE
// =============================================================================

func TestAggregate(t *testing.T) {
	// GIVEN: Three June records and one July record
	recs := []core.WorkRecord{
		record(t, "2025-06-10", "09:00", "20:00"), // +2h
		record(t, "2025-06-11", "09:00", "15:00"), // -3h
		record(t, "2025-06-12", "09:00", "20:00"), // +2h, ties with June 10
		record(t, "2025-07-01", "09:00", "22:00"), // other month
	}
	key := core.NewMonthKey(2025, time.June)

	// WHEN: June is aggregated
	sum := monthly.Aggregate(recs, key, salary1500(), holiday.New(), core.MustParseDate("2025-06-30"))

	// THEN: Only June counts and the first maximum wins
	assert.Equal(t, key, sum.Month)
	assert.Equal(t, 3, sum.WorkingDays)
	assert.InDelta(t, 4, sum.TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 3, sum.TotalShortageHours, 1e-9)
	assert.InDelta(t, 1, sum.NetOvertimeHours, 1e-9)
	assert.InDelta(t, 25, sum.TotalWorkingHours, 1e-9)
	assert.InDelta(t, 4.0/3, sum.AverageOvertimePerDay, 1e-9)
	assert.Equal(t, 21, sum.StatutoryWorkingDays)

	require.NotNil(t, sum.MaxOvertimeDay)
	assert.Equal(t, "2025-06-10", sum.MaxOvertimeDay.Date.String())
	assert.Equal(t, "r-2025-06-10", sum.MaxOvertimeDay.RecordID)

	assert.True(t, decimal.NewFromInt(1875).Equal(sum.EstimatedOvertimePay), "1h x 1500 x 1.25, got %s", sum.EstimatedOvertimePay)
}

func TestAggregate_EmptyMonth(t *testing.T) {
	sum := monthly.Aggregate(nil, core.NewMonthKey(2024, time.December), salary1500(), holiday.New(), core.MustParseDate("2024-12-01"))

	assert.Zero(t, sum.WorkingDays)
	assert.Zero(t, sum.AverageOvertimePerDay)
	assert.Nil(t, sum.MaxOvertimeDay)
	assert.True(t, sum.EstimatedOvertimePay.IsZero())
	assert.Equal(t, 22, sum.StatutoryWorkingDays)
}

func TestAggregate_NegativeNetHasNoEstimate(t *testing.T) {
	recs := []core.WorkRecord{
		record(t, "2025-06-10", "09:00", "19:00"), // +1h
		record(t, "2025-06-11", "09:00", "15:00"), // -3h
	}
	sum := monthly.Aggregate(recs, core.NewMonthKey(2025, time.June), salary1500(), holiday.New(), core.MustParseDate("2025-06-30"))

	assert.InDelta(t, -2, sum.NetOvertimeHours, 1e-9)
	assert.True(t, sum.EstimatedOvertimePay.IsZero())
}

func TestAggregate_AutoWorkingDaysUseAsOf(t *testing.T) {
	// GIVEN: Auto working days and a June with 1h net overtime
	s := salary1500()
	s.WorkingDaysMode = core.WorkingDaysAuto
	s.WorkingDaysPerMonth = 0
	recs := []core.WorkRecord{record(t, "2025-06-10", "09:00", "19:00")}
	key := core.NewMonthKey(2025, time.June)

	// WHEN: asOf falls in December 2024 (22 working days)
	sum := monthly.Aggregate(recs, key, s, holiday.New(), core.MustParseDate("2024-12-15"))

	// THEN: The wage is 264000 / 22 / 8 = 1500
	assert.True(t, decimal.NewFromInt(1875).Equal(sum.EstimatedOvertimePay), "got %s", sum.EstimatedOvertimePay)
}

// =============================================================================
// AVAILABLE MONTHS
// =============================================================================

func TestAvailableMonths(t *testing.T) {
	recs := []core.WorkRecord{
		record(t, "2025-05-20", "09:00", "18:00"),
		record(t, "2025-06-10", "09:00", "18:00"),
		record(t, "2025-06-11", "09:00", "18:00"),
		record(t, "2024-12-02", "09:00", "18:00"),
	}

	months := monthly.AvailableMonths(recs, core.MustParseDate("2025-08-03"))

	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.String()
	}
	assert.Equal(t, []string{"2025-08", "2025-06", "2025-05", "2024-12"}, keys)
}

func TestAvailableMonths_NoRecords(t *testing.T) {
	months := monthly.AvailableMonths(nil, core.MustParseDate("2025-08-03"))
	require.Len(t, months, 1)
	assert.Equal(t, "2025年08月", months[0].Label())
}

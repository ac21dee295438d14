/*
Package core provides the value types shared by the overtime engine.

PURPOSE:
  This package contains the data model every other package speaks:
  work records, overtime and salary settings, pay breakdowns, monthly
  summaries, dates and month keys. It holds no calculation logic beyond
  trivial accessors; the algorithms live in worktime, holiday, payroll
  and monthly.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkRecord: One worked day with its derived hours
  - OvertimeSettings: Standard daily hours and default break
  - SalarySettings: Monthly salary, premium rates, late-night window
  - PayBreakdown: Premium pay split by kind
  - MonthlySummary: Month totals plus statutory working days

DESIGN PRINCIPLES:
  1. Values only: Calculations return new values, inputs are never mutated
  2. Precision: Money and rates use decimal.Decimal
  3. Snapshots: A record keeps the standard hours it was computed with

USAGE:
  settings := core.DefaultOvertimeSettings()
  rec, err := worktime.NewRecord(id, date, shift, settings)
  pay, err := payroll.NewCalculator(cal).CalculatePay(rec, salary)

SEE ALSO:
  - time.go: Date, Clock, HolidayCalendar
  - period.go: Period and MonthKey
  - store.go: Persistence contracts
*/
package core

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// WORK RECORD - One worked day
// =============================================================================

// WorkRecord is one worked day.
//
// Invariant: OvertimeHours > 0 implies ShortageHours == 0 and vice versa.
// Both are never negative.
type WorkRecord struct {
	ID           string
	Date         Date
	StartTime    string // "HH:MM", 24h
	EndTime      string // "HH:MM", 24h; empty while still clocked in
	BreakMinutes int

	// Overnight marks an explicit next-day end time. Only then does an
	// end time at or before the start time wrap past midnight.
	Overnight bool

	ActualWorkHours float64
	OvertimeHours   float64
	ShortageHours   float64

	// StandardWorkHours is the standard in effect when the record was
	// derived. Later settings changes leave it alone.
	StandardWorkHours float64

	// Derived is false for legacy records that were persisted without
	// derived hours. They are recalculated on read.
	Derived bool
}

// HasEndTime reports whether the shift has been closed.
func (r WorkRecord) HasEndTime() bool { return r.StartTime != "" && r.EndTime != "" }

// =============================================================================
// SETTINGS
// =============================================================================

// OvertimeSettings is the process-wide work-time configuration.
type OvertimeSettings struct {
	StandardWorkHours   float64
	DefaultBreakMinutes int
}

// DefaultOvertimeSettings returns 8 hours with a 60 minute break.
func DefaultOvertimeSettings() OvertimeSettings {
	return OvertimeSettings{StandardWorkHours: 8, DefaultBreakMinutes: 60}
}

// WorkingDaysMode selects how WorkingDaysPerMonth is obtained.
type WorkingDaysMode string

const (
	WorkingDaysManual WorkingDaysMode = "manual" // entered by the user
	WorkingDaysAuto   WorkingDaysMode = "auto"   // statutory count for the month
)

// SalarySettings drives the premium pay calculation.
type SalarySettings struct {
	BaseSalaryMonthly   decimal.Decimal
	WorkingDaysPerMonth int
	WorkingDaysMode     WorkingDaysMode
	StandardWorkHours   float64

	OvertimeRate  decimal.Decimal
	HolidayRate   decimal.Decimal
	LateNightRate decimal.Decimal

	LateNightStart string // "HH:MM"
	LateNightEnd   string // "HH:MM"
}

// DefaultSalarySettings returns the statutory defaults.
func DefaultSalarySettings() SalarySettings {
	return SalarySettings{
		BaseSalaryMonthly:   decimal.NewFromInt(250000),
		WorkingDaysPerMonth: 22,
		WorkingDaysMode:     WorkingDaysManual,
		StandardWorkHours:   8,
		OvertimeRate:        decimal.RequireFromString("1.25"),
		HolidayRate:         decimal.RequireFromString("1.35"),
		LateNightRate:       decimal.RequireFromString("1.25"),
		LateNightStart:      "22:00",
		LateNightEnd:        "05:00",
	}
}

// =============================================================================
// DERIVED RESULTS
// =============================================================================

// PayBreakdown is premium pay for one record.
// TotalPay = RegularOvertimePay + HolidayPay + LateNightPay.
type PayBreakdown struct {
	RegularOvertimePay decimal.Decimal
	HolidayPay         decimal.Decimal
	LateNightPay       decimal.Decimal
	TotalPay           decimal.Decimal

	LateNightHours float64
}

// MaxOvertimeDay identifies the record with the most overtime in a month.
type MaxOvertimeDay struct {
	RecordID string
	Date     Date
	Hours    float64
}

// MonthlySummary aggregates the records of one month.
type MonthlySummary struct {
	Month MonthKey

	TotalOvertimeHours    float64
	TotalShortageHours    float64
	NetOvertimeHours      float64
	TotalWorkingHours     float64
	AverageOvertimePerDay float64

	// WorkingDays is the number of records in the month.
	WorkingDays    int
	MaxOvertimeDay *MaxOvertimeDay

	// StatutoryWorkingDays is a calendar fact, independent of records.
	StatutoryWorkingDays int

	EstimatedOvertimePay decimal.Decimal
}

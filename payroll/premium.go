/*
Package payroll computes premium pay from work records.

PURPOSE:
  Splits the extra pay for one worked day into three kinds and sums
  them over a month:

    regular overtime  overtime hours  x hourly wage x overtime rate
    holiday work      actual hours    x hourly wage x holiday rate
    late-night work   night hours     x hourly wage x late-night rate

BRANCHING:
  Holiday days (national, weekend, year-end; see holiday.Classify) pay
  the whole shift at the holiday rate and no regular overtime. Other
  days pay overtime hours at the overtime rate and no holiday pay.
  Late-night pay is added in both branches.

DOUBLE COUNTING:
  Late-night hours that are also overtime hours are paid twice, once by
  each multiplier. This is the simplified payroll rule the engine
  implements; it is covered by tests and must not be deduplicated
  silently.

PRECONDITIONS:
  WorkingDaysPerMonth and StandardWorkHours are positive. The settings
  layer (factory.ValidateSalary) enforces this; the calculator does not
  re-check. Resolve auto working days first (monthly.ResolveSalary).

SEE ALSO:
  - latenight.go: Night window overlap
  - summary.go: Monthly salary summary
  - monthly/aggregate.go: Monthly hour totals
*/
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/holiday"
)

// Classifier decides whether a date is paid as holiday work.
type Classifier interface {
	Classify(d core.Date) holiday.Classification
}

// =============================================================================
// HOURLY WAGE
// =============================================================================

// HourlyWage is base / working days / standard hours.
func HourlyWage(s core.SalarySettings) decimal.Decimal {
	return s.BaseSalaryMonthly.
		Div(decimal.NewFromInt(int64(s.WorkingDaysPerMonth))).
		Div(decimal.NewFromFloat(s.StandardWorkHours))
}

// PremiumExamples is the pay for a single hour of each premium kind.
type PremiumExamples struct {
	HourlyWage decimal.Decimal
	Overtime   decimal.Decimal
	Holiday    decimal.Decimal
	LateNight  decimal.Decimal
}

// Examples returns the one-hour premium figures for the settings.
func Examples(s core.SalarySettings) PremiumExamples {
	wage := HourlyWage(s)
	return PremiumExamples{
		HourlyWage: wage,
		Overtime:   wage.Mul(s.OvertimeRate),
		Holiday:    wage.Mul(s.HolidayRate),
		LateNight:  wage.Mul(s.LateNightRate),
	}
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes PayBreakdowns against a holiday classifier.
type Calculator struct {
	classifier Classifier
}

// NewCalculator creates a calculator.
func NewCalculator(classifier Classifier) *Calculator {
	return &Calculator{classifier: classifier}
}

// CalculatePay computes the premium pay for one record. Every component
// of the result is zero or positive.
func (c *Calculator) CalculatePay(rec core.WorkRecord, s core.SalarySettings) (core.PayBreakdown, error) {
	wage := HourlyWage(s)

	nightHours := 0.0
	if rec.HasEndTime() {
		h, err := LateNightHours(rec.StartTime, rec.EndTime, s.LateNightStart, s.LateNightEnd)
		if err != nil {
			return core.PayBreakdown{}, err
		}
		nightHours = h
	}

	pay := core.PayBreakdown{
		RegularOvertimePay: decimal.Zero,
		HolidayPay:         decimal.Zero,
		LateNightPay:       decimal.Zero,
		LateNightHours:     nightHours,
	}

	if c.classifier.Classify(rec.Date).IsHoliday {
		// An unflagged reversed span has negative actual hours. It counts as
		// shortage but never as negative pay.
		if rec.ActualWorkHours > 0 {
			pay.HolidayPay = premium(rec.ActualWorkHours, wage, s.HolidayRate)
		}
	} else if rec.OvertimeHours > 0 {
		pay.RegularOvertimePay = premium(rec.OvertimeHours, wage, s.OvertimeRate)
	}
	if nightHours > 0 {
		pay.LateNightPay = premium(nightHours, wage, s.LateNightRate)
	}

	pay.TotalPay = pay.RegularOvertimePay.Add(pay.HolidayPay).Add(pay.LateNightPay)
	return pay, nil
}

// OvertimePay is overtime hours at the regular overtime rate, as used for
// monthly estimates.
func OvertimePay(hours float64, s core.SalarySettings) decimal.Decimal {
	if hours <= 0 {
		return decimal.Zero
	}
	return premium(hours, HourlyWage(s), s.OvertimeRate)
}

func premium(hours float64, wage, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(hours).Mul(wage).Mul(rate)
}

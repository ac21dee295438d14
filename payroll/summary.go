package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/core"
)

// SalarySummary is the month's pay picture: base salary plus premiums.
type SalarySummary struct {
	BaseSalary              decimal.Decimal
	TotalRegularOvertimePay decimal.Decimal
	TotalHolidayPay         decimal.Decimal
	TotalLateNightPay       decimal.Decimal
	TotalOvertimePay        decimal.Decimal // all premiums
	TotalSalary             decimal.Decimal

	WorkingDays         int
	HolidayWorkDays     int
	TotalOvertimeHours  float64
	TotalLateNightHours float64
}

// SummarizeSalary sums the premium pay of the given records. The caller
// filters the records to the month of interest.
func (c *Calculator) SummarizeSalary(records []core.WorkRecord, s core.SalarySettings) (SalarySummary, error) {
	sum := SalarySummary{
		BaseSalary:              s.BaseSalaryMonthly,
		TotalRegularOvertimePay: decimal.Zero,
		TotalHolidayPay:         decimal.Zero,
		TotalLateNightPay:       decimal.Zero,
		TotalOvertimePay:        decimal.Zero,
		WorkingDays:             len(records),
	}

	for _, rec := range records {
		pay, err := c.CalculatePay(rec, s)
		if err != nil {
			return SalarySummary{}, err
		}
		sum.TotalRegularOvertimePay = sum.TotalRegularOvertimePay.Add(pay.RegularOvertimePay)
		sum.TotalHolidayPay = sum.TotalHolidayPay.Add(pay.HolidayPay)
		sum.TotalLateNightPay = sum.TotalLateNightPay.Add(pay.LateNightPay)
		sum.TotalOvertimePay = sum.TotalOvertimePay.Add(pay.TotalPay)
		sum.TotalOvertimeHours += rec.OvertimeHours
		sum.TotalLateNightHours += pay.LateNightHours

		if rec.ActualWorkHours > 0 && c.classifier.Classify(rec.Date).IsHoliday {
			sum.HolidayWorkDays++
		}
	}

	sum.TotalSalary = sum.BaseSalary.Add(sum.TotalOvertimePay)
	return sum, nil
}

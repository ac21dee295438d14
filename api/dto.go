/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the core model from the external API contract. Field names are
  snake_case; money is a decimal string plus a formatted yen label.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Records:   RecordDTO, SaveRecordRequest
  Pay:       PayDTO, PreviewResponse
  Summary:   MonthlySummaryDTO, SalarySummaryDTO, SummaryResponse, MonthDTO
  Calendar:  HolidayDTO, ClassificationDTO, WorkdaysResponse
  Settings:  factory.OvertimeDocument and factory.SalaryDocument are
             used directly, so the wire schema matches the settings file.

VALIDATION:
  Validation is done in handlers and in the worktime/factory packages,
  not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/settings.go: Settings documents
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/holiday"
	"github.com/warp/overtime-engine/payroll"
	"github.com/warp/overtime-engine/worktime"
)

// =============================================================================
// RECORDS
// =============================================================================

// RecordDTO represents a work record in API responses.
type RecordDTO struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	Weekday           string  `json:"weekday"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time,omitempty"`
	BreakMinutes      int     `json:"break_minutes"`
	Overnight         bool    `json:"overnight"`
	ActualWorkHours   float64 `json:"actual_work_hours"`
	OvertimeHours     float64 `json:"overtime_hours"`
	ShortageHours     float64 `json:"shortage_hours"`
	StandardWorkHours float64 `json:"standard_work_hours"`

	ActualLabel   string `json:"actual_label"`
	OvertimeLabel string `json:"overtime_label"`
	ShortageLabel string `json:"shortage_label"`
}

// SaveRecordRequest is the body of POST /api/records, PUT
// /api/records/{id} and POST /api/pay/preview. A nil BreakMinutes takes
// the default from the overtime settings.
type SaveRecordRequest struct {
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes *int   `json:"break_minutes"`
	Overnight    bool   `json:"overnight"`
}

// DuplicateResponse is returned with 409 for an occupied date.
type DuplicateResponse struct {
	Error      string `json:"error"`
	Date       string `json:"date"`
	ExistingID string `json:"existing_id"`
}

func toRecordDTO(rec core.WorkRecord) RecordDTO {
	return RecordDTO{
		ID:                rec.ID,
		Date:              rec.Date.String(),
		Weekday:           holiday.WeekdayLabel(rec.Date),
		StartTime:         rec.StartTime,
		EndTime:           rec.EndTime,
		BreakMinutes:      rec.BreakMinutes,
		Overnight:         rec.Overnight,
		ActualWorkHours:   rec.ActualWorkHours,
		OvertimeHours:     rec.OvertimeHours,
		ShortageHours:     rec.ShortageHours,
		StandardWorkHours: rec.StandardWorkHours,
		ActualLabel:       worktime.FormatDuration(rec.ActualWorkHours),
		OvertimeLabel:     worktime.FormatDuration(rec.OvertimeHours),
		ShortageLabel:     worktime.FormatDuration(rec.ShortageHours),
	}
}

func toRecordDTOs(recs []core.WorkRecord) []RecordDTO {
	dtos := make([]RecordDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toRecordDTO(rec)
	}
	return dtos
}

// =============================================================================
// PAY
// =============================================================================

// PayDTO represents a PayBreakdown.
type PayDTO struct {
	RegularOvertimePay decimal.Decimal   `json:"regular_overtime_pay"`
	HolidayPay         decimal.Decimal   `json:"holiday_pay"`
	LateNightPay       decimal.Decimal   `json:"late_night_pay"`
	TotalPay           decimal.Decimal   `json:"total_pay"`
	TotalPayLabel      string            `json:"total_pay_label"`
	LateNightHours     float64           `json:"late_night_hours"`
	Day                ClassificationDTO `json:"day"`
}

// PreviewResponse is the provisional result for unsaved input.
type PreviewResponse struct {
	Record RecordDTO `json:"record"`
	Pay    PayDTO    `json:"pay"`
}

// PremiumExamplesDTO is the one-hour pay of each premium kind.
type PremiumExamplesDTO struct {
	HourlyWage string `json:"hourly_wage"`
	Overtime   string `json:"overtime"`
	Holiday    string `json:"holiday"`
	LateNight  string `json:"late_night"`
}

func toPayDTO(pay core.PayBreakdown, c holiday.Classification, d core.Date) PayDTO {
	return PayDTO{
		RegularOvertimePay: pay.RegularOvertimePay,
		HolidayPay:         pay.HolidayPay,
		LateNightPay:       pay.LateNightPay,
		TotalPay:           pay.TotalPay,
		TotalPayLabel:      payroll.FormatCurrency(pay.TotalPay),
		LateNightHours:     pay.LateNightHours,
		Day:                toClassificationDTO(d, c),
	}
}

func toPremiumExamplesDTO(ex payroll.PremiumExamples) PremiumExamplesDTO {
	return PremiumExamplesDTO{
		HourlyWage: payroll.FormatCurrency(ex.HourlyWage),
		Overtime:   payroll.FormatCurrency(ex.Overtime),
		Holiday:    payroll.FormatCurrency(ex.Holiday),
		LateNight:  payroll.FormatCurrency(ex.LateNight),
	}
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthDTO is one entry of GET /api/months.
type MonthDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MaxOvertimeDayDTO is the day with the most overtime in a month.
type MaxOvertimeDayDTO struct {
	RecordID string  `json:"record_id"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
}

// MonthlySummaryDTO represents core.MonthlySummary.
type MonthlySummaryDTO struct {
	Month                 string             `json:"month"`
	Label                 string             `json:"label"`
	TotalOvertimeHours    float64            `json:"total_overtime_hours"`
	TotalShortageHours    float64            `json:"total_shortage_hours"`
	NetOvertimeHours      float64            `json:"net_overtime_hours"`
	TotalWorkingHours     float64            `json:"total_working_hours"`
	AverageOvertimePerDay float64            `json:"average_overtime_per_day"`
	WorkingDays           int                `json:"working_days"`
	StatutoryWorkingDays  int                `json:"statutory_working_days"`
	MaxOvertimeDay        *MaxOvertimeDayDTO `json:"max_overtime_day,omitempty"`
	EstimatedOvertimePay  decimal.Decimal    `json:"estimated_overtime_pay"`
	EstimatedPayLabel     string             `json:"estimated_overtime_pay_label"`
}

// SalarySummaryDTO represents payroll.SalarySummary.
type SalarySummaryDTO struct {
	BaseSalary              decimal.Decimal `json:"base_salary"`
	TotalRegularOvertimePay decimal.Decimal `json:"total_regular_overtime_pay"`
	TotalHolidayPay         decimal.Decimal `json:"total_holiday_pay"`
	TotalLateNightPay       decimal.Decimal `json:"total_late_night_pay"`
	TotalOvertimePay        decimal.Decimal `json:"total_overtime_pay"`
	TotalSalary             decimal.Decimal `json:"total_salary"`
	TotalSalaryLabel        string          `json:"total_salary_label"`
	WorkingDays             int             `json:"working_days"`
	HolidayWorkDays         int             `json:"holiday_work_days"`
	TotalOvertimeHours      float64         `json:"total_overtime_hours"`
	TotalLateNightHours     float64         `json:"total_late_night_hours"`
}

// SummaryResponse is the body of GET /api/summary/{month}.
type SummaryResponse struct {
	Summary MonthlySummaryDTO `json:"summary"`
	Salary  SalarySummaryDTO  `json:"salary"`
}

func toMonthlySummaryDTO(s core.MonthlySummary) MonthlySummaryDTO {
	dto := MonthlySummaryDTO{
		Month:                 s.Month.String(),
		Label:                 s.Month.Label(),
		TotalOvertimeHours:    s.TotalOvertimeHours,
		TotalShortageHours:    s.TotalShortageHours,
		NetOvertimeHours:      s.NetOvertimeHours,
		TotalWorkingHours:     s.TotalWorkingHours,
		AverageOvertimePerDay: s.AverageOvertimePerDay,
		WorkingDays:           s.WorkingDays,
		StatutoryWorkingDays:  s.StatutoryWorkingDays,
		EstimatedOvertimePay:  s.EstimatedOvertimePay,
		EstimatedPayLabel:     payroll.FormatCurrency(s.EstimatedOvertimePay),
	}
	if m := s.MaxOvertimeDay; m != nil {
		dto.MaxOvertimeDay = &MaxOvertimeDayDTO{RecordID: m.RecordID, Date: m.Date.String(), Hours: m.Hours}
	}
	return dto
}

func toSalarySummaryDTO(s payroll.SalarySummary) SalarySummaryDTO {
	return SalarySummaryDTO{
		BaseSalary:              s.BaseSalary,
		TotalRegularOvertimePay: s.TotalRegularOvertimePay,
		TotalHolidayPay:         s.TotalHolidayPay,
		TotalLateNightPay:       s.TotalLateNightPay,
		TotalOvertimePay:        s.TotalOvertimePay,
		TotalSalary:             s.TotalSalary,
		TotalSalaryLabel:        payroll.FormatCurrency(s.TotalSalary),
		WorkingDays:             s.WorkingDays,
		HolidayWorkDays:         s.HolidayWorkDays,
		TotalOvertimeHours:      s.TotalOvertimeHours,
		TotalLateNightHours:     s.TotalLateNightHours,
	}
}

// =============================================================================
// CALENDAR
// =============================================================================

// HolidayDTO represents a holiday entry.
type HolidayDTO struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

// ClassificationDTO represents holiday.Classification for one date.
type ClassificationDTO struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	IsHoliday   bool   `json:"is_holiday"`
	Kind        string `json:"kind,omitempty"`
	Label       string `json:"label,omitempty"`
	Approximate bool   `json:"approximate"`
}

// HolidaysResponse is the body of GET /api/holidays.
type HolidaysResponse struct {
	Year        int          `json:"year"`
	Approximate bool         `json:"approximate"`
	Holidays    []HolidayDTO `json:"holidays"`
}

// WorkdaysResponse is the body of GET /api/workdays/{month}.
type WorkdaysResponse struct {
	Month                string       `json:"month"`
	StatutoryWorkingDays int          `json:"statutory_working_days"`
	Holidays             []HolidayDTO `json:"holidays"`
}

func toHolidayDTOs(hs []core.Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, len(hs))
	for i, hd := range hs {
		dtos[i] = HolidayDTO{Date: hd.Date.String(), Name: hd.Name, Weekday: holiday.WeekdayLabel(hd.Date)}
	}
	return dtos
}

func toClassificationDTO(d core.Date, c holiday.Classification) ClassificationDTO {
	return ClassificationDTO{
		Date:        d.String(),
		Weekday:     holiday.WeekdayLabel(d),
		IsHoliday:   c.IsHoliday,
		Kind:        string(c.Kind),
		Label:       c.Label,
		Approximate: c.Approximate,
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx response except 409 on records.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/worktime"
)

// =============================================================================
// LEGACY EXPORT FORMAT
// =============================================================================

// LegacyRecord is one entry of the browser application's saved records.
// Derived fields are pointers because older exports omit them.
type LegacyRecord struct {
	ID                string   `json:"id"`
	Date              string   `json:"date"`
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime,omitempty"`
	BreakTime         int      `json:"breakTime"`
	OvertimeHours     *float64 `json:"overtimeHours,omitempty"`
	ShortageHours     *float64 `json:"shortageHours,omitempty"`
	ActualWorkHours   *float64 `json:"actualWorkHours,omitempty"`
	StandardWorkHours *float64 `json:"standardWorkHours,omitempty"`
}

// LegacySettings is the browser application's settings pair.
type LegacySettings struct {
	Overtime *struct {
		StandardWorkHours float64 `json:"standardWorkHours"`
		BreakTime         int     `json:"breakTime"`
	} `json:"settings,omitempty"`
	Salary *struct {
		BaseSalary          float64 `json:"baseSalary"`
		WorkingDaysPerMonth int     `json:"workingDaysPerMonth"`
		StandardWorkHours   float64 `json:"standardWorkHours"`
		OvertimeRate        float64 `json:"overtimeRate"`
		HolidayRate         float64 `json:"holidayRate"`
		LateNightRate       float64 `json:"lateNightRate"`
		LateNightStartTime  string  `json:"lateNightStartTime"`
		LateNightEndTime    string  `json:"lateNightEndTime"`
	} `json:"salarySettings,omitempty"`
}

// ParseLegacyRecords decodes an exported record array.
//
// Entries without actualWorkHours or shortageHours are returned with
// Derived false; the record book recalculates them on first read. A
// missing standardWorkHours snapshot takes the given default.
func ParseLegacyRecords(data []byte, defaults core.OvertimeSettings) ([]core.WorkRecord, error) {
	var raw []LegacyRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid record export: %w", err)
	}

	out := make([]core.WorkRecord, 0, len(raw))
	for i, lr := range raw {
		rec, err := lr.toRecord(defaults)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (lr LegacyRecord) toRecord(defaults core.OvertimeSettings) (core.WorkRecord, error) {
	date, err := core.ParseDate(lr.Date)
	if err != nil {
		return core.WorkRecord{}, err
	}
	if _, err := worktime.TimeToMinutes(lr.StartTime); err != nil {
		return core.WorkRecord{}, err
	}
	if lr.EndTime != "" {
		if _, err := worktime.TimeToMinutes(lr.EndTime); err != nil {
			return core.WorkRecord{}, err
		}
	}

	rec := core.WorkRecord{
		ID:                lr.ID,
		Date:              date,
		StartTime:         lr.StartTime,
		EndTime:           lr.EndTime,
		BreakMinutes:      lr.BreakTime,
		StandardWorkHours: defaults.StandardWorkHours,
	}
	if rec.ID == "" {
		rec.ID = worktime.NewRecordID()
	}
	if lr.StandardWorkHours != nil {
		rec.StandardWorkHours = *lr.StandardWorkHours
	}

	if lr.ActualWorkHours != nil && lr.ShortageHours != nil {
		rec.ActualWorkHours = *lr.ActualWorkHours
		rec.ShortageHours = *lr.ShortageHours
		if lr.OvertimeHours != nil {
			rec.OvertimeHours = *lr.OvertimeHours
		}
		rec.Derived = true
	}
	return rec, nil
}

// ParseLegacySettings decodes the browser application's settings export
// and validates the result. Missing sections take the defaults.
func ParseLegacySettings(data []byte) (core.OvertimeSettings, core.SalarySettings, error) {
	var raw LegacySettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.OvertimeSettings{}, core.SalarySettings{}, fmt.Errorf("invalid settings export: %w", err)
	}

	overtime := core.DefaultOvertimeSettings()
	if o := raw.Overtime; o != nil {
		overtime.StandardWorkHours = o.StandardWorkHours
		overtime.DefaultBreakMinutes = o.BreakTime
	}
	if err := ValidateOvertime(overtime); err != nil {
		return core.OvertimeSettings{}, core.SalarySettings{}, err
	}

	salary := core.DefaultSalarySettings()
	if s := raw.Salary; s != nil {
		salary.BaseSalaryMonthly = decimal.NewFromFloat(s.BaseSalary)
		salary.WorkingDaysPerMonth = s.WorkingDaysPerMonth
		salary.StandardWorkHours = s.StandardWorkHours
		salary.OvertimeRate = decimal.NewFromFloat(s.OvertimeRate)
		salary.HolidayRate = decimal.NewFromFloat(s.HolidayRate)
		salary.LateNightRate = decimal.NewFromFloat(s.LateNightRate)
		salary.LateNightStart = s.LateNightStartTime
		salary.LateNightEnd = s.LateNightEndTime
	}
	if err := ValidateSalary(salary); err != nil {
		return core.OvertimeSettings{}, core.SalarySettings{}, err
	}
	return overtime, salary, nil
}

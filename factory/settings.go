/*
Package factory converts settings documents and legacy exports into core values.

PURPOSE:
  Settings can be written by hand (YAML file passed with --settings),
  sent over the API (JSON), or persisted by a store. All three routes go
  through this package so defaults and validation live in one place.

DOCUMENT SCHEMA (YAML shown; JSON uses the same keys):
  overtime:
    standard_work_hours: 8
    default_break_minutes: 60
  salary:
    base_salary_monthly: 250000
    working_days_per_month: 22
    working_days_mode: manual     # or auto
    standard_work_hours: 8
    overtime_rate: 1.25
    holiday_rate: 1.35
    late_night_rate: 1.25
    late_night_start: "22:00"
    late_night_end: "05:00"

KEY FEATURES:
  - Missing fields take the defaults of core.DefaultOvertimeSettings /
    core.DefaultSalarySettings
  - YAML is a superset of JSON, so one decoder (gopkg.in/yaml.v3) reads both
  - Validation errors are *core.SettingsError naming the field

USAGE:
  doc, err := factory.LoadSettingsFile("settings.yaml")
  overtime, salary, err := doc.Build()

SEE ALSO:
  - records.go: Legacy record import
  - core/types.go: Settings types
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/worktime"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// SettingsDocument is the on-disk / on-wire form of both settings objects.
type SettingsDocument struct {
	Overtime *OvertimeDocument `yaml:"overtime,omitempty" json:"overtime,omitempty"`
	Salary   *SalaryDocument   `yaml:"salary,omitempty" json:"salary,omitempty"`
}

// OvertimeDocument represents core.OvertimeSettings.
type OvertimeDocument struct {
	StandardWorkHours   *float64 `yaml:"standard_work_hours,omitempty" json:"standard_work_hours,omitempty"`
	DefaultBreakMinutes *int     `yaml:"default_break_minutes,omitempty" json:"default_break_minutes,omitempty"`
}

// SalaryDocument represents core.SalarySettings.
type SalaryDocument struct {
	BaseSalaryMonthly   *float64 `yaml:"base_salary_monthly,omitempty" json:"base_salary_monthly,omitempty"`
	WorkingDaysPerMonth *int     `yaml:"working_days_per_month,omitempty" json:"working_days_per_month,omitempty"`
	WorkingDaysMode     string   `yaml:"working_days_mode,omitempty" json:"working_days_mode,omitempty"`
	StandardWorkHours   *float64 `yaml:"standard_work_hours,omitempty" json:"standard_work_hours,omitempty"`
	OvertimeRate        *float64 `yaml:"overtime_rate,omitempty" json:"overtime_rate,omitempty"`
	HolidayRate         *float64 `yaml:"holiday_rate,omitempty" json:"holiday_rate,omitempty"`
	LateNightRate       *float64 `yaml:"late_night_rate,omitempty" json:"late_night_rate,omitempty"`
	LateNightStart      string   `yaml:"late_night_start,omitempty" json:"late_night_start,omitempty"`
	LateNightEnd        string   `yaml:"late_night_end,omitempty" json:"late_night_end,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseSettings decodes a YAML or JSON settings document.
func ParseSettings(data []byte) (*SettingsDocument, error) {
	var doc SettingsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid settings document: %w", err)
	}
	return &doc, nil
}

// LoadSettingsFile reads and decodes a settings file.
func LoadSettingsFile(path string) (*SettingsDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSettings(data)
}

// Build applies defaults and validates both sections.
func (d *SettingsDocument) Build() (core.OvertimeSettings, core.SalarySettings, error) {
	overtime, err := d.Overtime.Build()
	if err != nil {
		return core.OvertimeSettings{}, core.SalarySettings{}, err
	}
	salary, err := d.Salary.Build()
	if err != nil {
		return core.OvertimeSettings{}, core.SalarySettings{}, err
	}
	return overtime, salary, nil
}

// Build applies defaults to missing fields and validates. A nil
// document yields the defaults.
func (d *OvertimeDocument) Build() (core.OvertimeSettings, error) {
	s := core.DefaultOvertimeSettings()
	if d != nil {
		if d.StandardWorkHours != nil {
			s.StandardWorkHours = *d.StandardWorkHours
		}
		if d.DefaultBreakMinutes != nil {
			s.DefaultBreakMinutes = *d.DefaultBreakMinutes
		}
	}
	return s, ValidateOvertime(s)
}

// Build applies defaults to missing fields and validates. A nil
// document yields the defaults.
func (d *SalaryDocument) Build() (core.SalarySettings, error) {
	s := core.DefaultSalarySettings()
	if d != nil {
		if d.BaseSalaryMonthly != nil {
			s.BaseSalaryMonthly = decimal.NewFromFloat(*d.BaseSalaryMonthly)
		}
		if d.WorkingDaysPerMonth != nil {
			s.WorkingDaysPerMonth = *d.WorkingDaysPerMonth
		}
		if d.WorkingDaysMode != "" {
			s.WorkingDaysMode = core.WorkingDaysMode(d.WorkingDaysMode)
		}
		if d.StandardWorkHours != nil {
			s.StandardWorkHours = *d.StandardWorkHours
		}
		if d.OvertimeRate != nil {
			s.OvertimeRate = decimal.NewFromFloat(*d.OvertimeRate)
		}
		if d.HolidayRate != nil {
			s.HolidayRate = decimal.NewFromFloat(*d.HolidayRate)
		}
		if d.LateNightRate != nil {
			s.LateNightRate = decimal.NewFromFloat(*d.LateNightRate)
		}
		if d.LateNightStart != "" {
			s.LateNightStart = d.LateNightStart
		}
		if d.LateNightEnd != "" {
			s.LateNightEnd = d.LateNightEnd
		}
	}
	return s, ValidateSalary(s)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateOvertime checks the overtime settings.
func ValidateOvertime(s core.OvertimeSettings) error {
	if s.StandardWorkHours <= 0 || s.StandardWorkHours > 24 {
		return &core.SettingsError{Field: "standard_work_hours", Message: "must be in (0, 24]"}
	}
	if s.DefaultBreakMinutes < 0 {
		return &core.SettingsError{Field: "default_break_minutes", Message: "must not be negative"}
	}
	return nil
}

// ValidateSalary checks the preconditions the pay calculator relies on.
func ValidateSalary(s core.SalarySettings) error {
	if s.BaseSalaryMonthly.IsNegative() {
		return &core.SettingsError{Field: "base_salary_monthly", Message: "must not be negative"}
	}
	switch s.WorkingDaysMode {
	case core.WorkingDaysManual:
		if s.WorkingDaysPerMonth <= 0 || s.WorkingDaysPerMonth > 31 {
			return &core.SettingsError{Field: "working_days_per_month", Message: "must be in [1, 31]"}
		}
	case core.WorkingDaysAuto:
	default:
		return &core.SettingsError{Field: "working_days_mode", Message: "must be manual or auto"}
	}
	if s.StandardWorkHours <= 0 || s.StandardWorkHours > 24 {
		return &core.SettingsError{Field: "standard_work_hours", Message: "must be in (0, 24]"}
	}

	one := decimal.NewFromInt(1)
	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"overtime_rate", s.OvertimeRate},
		{"holiday_rate", s.HolidayRate},
		{"late_night_rate", s.LateNightRate},
	}
	for _, r := range rates {
		if r.value.LessThan(one) {
			return &core.SettingsError{Field: r.field, Message: "must be at least 1.0"}
		}
	}

	if _, err := worktime.TimeToMinutes(s.LateNightStart); err != nil {
		return &core.SettingsError{Field: "late_night_start", Message: err.Error()}
	}
	if _, err := worktime.TimeToMinutes(s.LateNightEnd); err != nil {
		return &core.SettingsError{Field: "late_night_end", Message: err.Error()}
	}
	return nil
}

// =============================================================================
// ENCODING
// =============================================================================

// OvertimeDocumentOf is the inverse of OvertimeDocument.Build.
func OvertimeDocumentOf(s core.OvertimeSettings) *OvertimeDocument {
	hours, brk := s.StandardWorkHours, s.DefaultBreakMinutes
	return &OvertimeDocument{StandardWorkHours: &hours, DefaultBreakMinutes: &brk}
}

// SalaryDocumentOf is the inverse of SalaryDocument.Build.
func SalaryDocumentOf(s core.SalarySettings) *SalaryDocument {
	base := s.BaseSalaryMonthly.InexactFloat64()
	days := s.WorkingDaysPerMonth
	hours := s.StandardWorkHours
	ot := s.OvertimeRate.InexactFloat64()
	hol := s.HolidayRate.InexactFloat64()
	night := s.LateNightRate.InexactFloat64()
	return &SalaryDocument{
		BaseSalaryMonthly:   &base,
		WorkingDaysPerMonth: &days,
		WorkingDaysMode:     string(s.WorkingDaysMode),
		StandardWorkHours:   &hours,
		OvertimeRate:        &ot,
		HolidayRate:         &hol,
		LateNightRate:       &night,
		LateNightStart:      s.LateNightStart,
		LateNightEnd:        s.LateNightEnd,
	}
}

// EncodeSettings renders both settings as a YAML document.
func EncodeSettings(overtime core.OvertimeSettings, salary core.SalarySettings) ([]byte, error) {
	return yaml.Marshal(SettingsDocument{
		Overtime: OvertimeDocumentOf(overtime),
		Salary:   SalaryDocumentOf(salary),
	})
}

// EncodeJSON renders any settings document section as JSON. Stores use it.
func EncodeJSON(doc any) ([]byte, error) {
	return json.Marshal(doc)
}

package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/factory"
)

// =============================================================================
// SETTINGS DOCUMENTS
// =============================================================================

func TestParseSettings_YAML(t *testing.T) {
	doc := []byte(`
overtime:
  standard_work_hours: 7.5
salary:
  base_salary_monthly: 300000
  working_days_mode: auto
  holiday_rate: 1.5
  late_night_start: "23:00"
`)

	parsed, err := factory.ParseSettings(doc)
	require.NoError(t, err)
	overtime, salary, err := parsed.Build()
	require.NoError(t, err)

	assert.Equal(t, 7.5, overtime.StandardWorkHours)
	assert.Equal(t, 60, overtime.DefaultBreakMinutes, "default kept")

	assert.True(t, salary.BaseSalaryMonthly.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, core.WorkingDaysAuto, salary.WorkingDaysMode)
	assert.True(t, salary.HolidayRate.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, salary.OvertimeRate.Equal(decimal.RequireFromString("1.25")), "default kept")
	assert.Equal(t, "23:00", salary.LateNightStart)
	assert.Equal(t, "05:00", salary.LateNightEnd)
}

func TestParseSettings_JSON(t *testing.T) {
	parsed, err := factory.ParseSettings([]byte(`{"salary": {"working_days_per_month": 20}}`))
	require.NoError(t, err)

	_, salary, err := parsed.Build()
	require.NoError(t, err)
	assert.Equal(t, 20, salary.WorkingDaysPerMonth)
}

func TestParseSettings_EmptyIsDefaults(t *testing.T) {
	parsed, err := factory.ParseSettings([]byte(""))
	require.NoError(t, err)

	overtime, salary, err := parsed.Build()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultOvertimeSettings(), overtime)
	assert.Equal(t, core.DefaultSalarySettings().WorkingDaysPerMonth, salary.WorkingDaysPerMonth)
}

func TestParseSettings_Malformed(t *testing.T) {
	_, err := factory.ParseSettings([]byte("overtime: [unclosed"))
	assert.Error(t, err)
}

func TestBuild_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"zero standard hours", "overtime: {standard_work_hours: 0}", "standard_work_hours"},
		{"negative break", "overtime: {default_break_minutes: -5}", "default_break_minutes"},
		{"zero working days", "salary: {working_days_per_month: 0}", "working_days_per_month"},
		{"unknown mode", "salary: {working_days_mode: weekly}", "working_days_mode"},
		{"rate below one", "salary: {overtime_rate: 0.9}", "overtime_rate"},
		{"negative base", "salary: {base_salary_monthly: -1}", "base_salary_monthly"},
		{"bad night window", `salary: {late_night_end: "5am"}`, "late_night_end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := factory.ParseSettings([]byte(tt.doc))
			require.NoError(t, err)

			_, _, err = parsed.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidSettings)

			var se *core.SettingsError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestValidateSalary_AutoModeIgnoresWorkingDays(t *testing.T) {
	s := core.DefaultSalarySettings()
	s.WorkingDaysMode = core.WorkingDaysAuto
	s.WorkingDaysPerMonth = 0
	assert.NoError(t, factory.ValidateSalary(s))
}

func TestEncodeSettings_RoundTrip(t *testing.T) {
	overtime := core.OvertimeSettings{StandardWorkHours: 7, DefaultBreakMinutes: 45}
	salary := core.DefaultSalarySettings()
	salary.BaseSalaryMonthly = decimal.NewFromInt(320000)

	data, err := factory.EncodeSettings(overtime, salary)
	require.NoError(t, err)

	parsed, err := factory.ParseSettings(data)
	require.NoError(t, err)
	gotOvertime, gotSalary, err := parsed.Build()
	require.NoError(t, err)

	assert.Equal(t, overtime, gotOvertime)
	assert.True(t, gotSalary.BaseSalaryMonthly.Equal(salary.BaseSalaryMonthly))
	assert.True(t, gotSalary.LateNightRate.Equal(salary.LateNightRate))
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overtime:\n  default_break_minutes: 45\n"), 0o600))

	parsed, err := factory.LoadSettingsFile(path)
	require.NoError(t, err)
	overtime, _, err := parsed.Build()
	require.NoError(t, err)
	assert.Equal(t, 45, overtime.DefaultBreakMinutes)

	_, err = factory.LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// =============================================================================
// LEGACY IMPORT
// =============================================================================

func TestParseLegacyRecords(t *testing.T) {
	data := []byte(`[
		{"id": "a", "date": "2025-06-10", "startTime": "09:00", "endTime": "20:00", "breakTime": 60,
		 "overtimeHours": 2, "shortageHours": 0, "actualWorkHours": 10, "standardWorkHours": 8},
		{"id": "b", "date": "2025-06-11", "startTime": "09:00", "endTime": "18:00", "breakTime": 60,
		 "overtimeHours": 1},
		{"date": "2025-06-12", "startTime": "09:00", "breakTime": 60}
	]`)

	recs, err := factory.ParseLegacyRecords(data, core.OvertimeSettings{StandardWorkHours: 7.5})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.True(t, recs[0].Derived)
	assert.Equal(t, 2.0, recs[0].OvertimeHours)
	assert.Equal(t, 8.0, recs[0].StandardWorkHours)

	assert.False(t, recs[1].Derived, "missing derived fields")
	assert.Equal(t, 7.5, recs[1].StandardWorkHours, "default snapshot")

	assert.NotEmpty(t, recs[2].ID, "ID assigned")
	assert.False(t, recs[2].HasEndTime())
}

func TestParseLegacyRecords_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{"bad date", `[{"date": "2025/06/10", "startTime": "09:00"}]`, core.ErrInvalidDate},
		{"bad start", `[{"date": "2025-06-10", "startTime": "9時"}]`, core.ErrInvalidTimeFormat},
		{"bad end", `[{"date": "2025-06-10", "startTime": "09:00", "endTime": "25:00"}]`, core.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseLegacyRecords([]byte(tt.data), core.DefaultOvertimeSettings())
			assert.ErrorIs(t, err, tt.is)
		})
	}

	_, err := factory.ParseLegacyRecords([]byte(`{"not": "an array"}`), core.DefaultOvertimeSettings())
	assert.Error(t, err)
}

func TestParseLegacySettings(t *testing.T) {
	data := []byte(`{
		"settings": {"standardWorkHours": 8, "breakTime": 45},
		"salarySettings": {
			"baseSalary": 264000, "workingDaysPerMonth": 22, "standardWorkHours": 8,
			"overtimeRate": 1.25, "holidayRate": 1.35, "lateNightRate": 1.25,
			"lateNightStartTime": "22:00", "lateNightEndTime": "05:00"
		}
	}`)

	overtime, salary, err := factory.ParseLegacySettings(data)
	require.NoError(t, err)
	assert.Equal(t, 45, overtime.DefaultBreakMinutes)
	assert.True(t, salary.BaseSalaryMonthly.Equal(decimal.NewFromInt(264000)))
	assert.Equal(t, core.WorkingDaysManual, salary.WorkingDaysMode)

	_, _, err = factory.ParseLegacySettings([]byte(`{"salarySettings": {"baseSalary": 1}}`))
	assert.ErrorIs(t, err, core.ErrInvalidSettings, "zero working days")
}

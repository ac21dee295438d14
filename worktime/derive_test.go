package worktime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/worktime"
)

func TestDeriveWorkDetails(t *testing.T) {
	settings := core.DefaultOvertimeSettings()

	tests := []struct {
		name     string
		shift    worktime.Shift
		actual   float64
		overtime float64
		shortage float64
	}{
		{
			name:   "exact standard day",
			shift:  worktime.Shift{Start: "09:00", End: "18:00", BreakMinutes: 60},
			actual: 8,
		},
		{
			name:     "two hours overtime",
			shift:    worktime.Shift{Start: "09:00", End: "20:00", BreakMinutes: 60},
			actual:   10,
			overtime: 2,
		},
		{
			name:     "short day",
			shift:    worktime.Shift{Start: "09:00", End: "15:00", BreakMinutes: 60},
			actual:   5,
			shortage: 3,
		},
		{
			name:     "flagged overnight wraps past midnight",
			shift:    worktime.Shift{Start: "22:00", End: "07:00", BreakMinutes: 60, Overnight: true},
			actual:   8,
			overtime: 0,
		},
		{
			name:     "unflagged reverse span stays negative",
			shift:    worktime.Shift{Start: "22:00", End: "05:00", BreakMinutes: 60},
			actual:   -18,
			shortage: 26,
		},
		{
			name:     "overnight flag ignored when end is after start",
			shift:    worktime.Shift{Start: "09:00", End: "18:30", BreakMinutes: 30, Overnight: true},
			actual:   9,
			overtime: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := worktime.DeriveWorkDetails(tt.shift, settings)
			require.NoError(t, err)

			assert.InDelta(t, tt.actual, got.ActualWorkHours, 1e-9)
			assert.InDelta(t, tt.overtime, got.OvertimeHours, 1e-9)
			assert.InDelta(t, tt.shortage, got.ShortageHours, 1e-9)

			// overtime and shortage are never both positive
			assert.GreaterOrEqual(t, got.OvertimeHours, 0.0)
			assert.GreaterOrEqual(t, got.ShortageHours, 0.0)
			assert.False(t, got.OvertimeHours > 0 && got.ShortageHours > 0)
		})
	}
}

func TestDeriveWorkDetails_InvalidTime(t *testing.T) {
	_, err := worktime.DeriveWorkDetails(worktime.Shift{Start: "9am", End: "18:00"}, core.DefaultOvertimeSettings())
	assert.ErrorIs(t, err, core.ErrInvalidTimeFormat)

	_, err = worktime.DeriveWorkDetails(worktime.Shift{Start: "09:00", End: "24:00"}, core.DefaultOvertimeSettings())
	assert.ErrorIs(t, err, core.ErrInvalidTimeFormat)
}

func TestNewRecord_SnapshotsStandardHours(t *testing.T) {
	settings := core.OvertimeSettings{StandardWorkHours: 7.5, DefaultBreakMinutes: 45}
	date := core.MustParseDate("2025-06-10")

	rec, err := worktime.NewRecord("r1", date, worktime.Shift{Start: "09:00", End: "18:00", BreakMinutes: 60}, settings)
	require.NoError(t, err)

	assert.Equal(t, "r1", rec.ID)
	assert.True(t, rec.Derived)
	assert.Equal(t, 7.5, rec.StandardWorkHours)
	assert.InDelta(t, 0.5, rec.OvertimeHours, 1e-9)
}

func TestRecalculate_UsesRecordSnapshot(t *testing.T) {
	// GIVEN: A legacy record with a 7h snapshot and no derived hours
	legacy := core.WorkRecord{
		ID:                "old",
		Date:              core.MustParseDate("2025-06-10"),
		StartTime:         "09:00",
		EndTime:           "18:00",
		BreakMinutes:      60,
		StandardWorkHours: 7,
	}

	// WHEN: It is recalculated
	got, err := worktime.Recalculate(legacy)
	require.NoError(t, err)

	// THEN: Hours are derived against 7h, not the default 8h
	assert.True(t, got.Derived)
	assert.InDelta(t, 8, got.ActualWorkHours, 1e-9)
	assert.InDelta(t, 1, got.OvertimeHours, 1e-9)
	assert.Equal(t, "old", got.ID)
}

func TestRecalculate_OpenShiftUnchanged(t *testing.T) {
	open := core.WorkRecord{ID: "open", Date: core.MustParseDate("2025-06-10"), StartTime: "09:00"}
	got, err := worktime.Recalculate(open)
	require.NoError(t, err)
	assert.Equal(t, open, got)
}

func TestReapply_ReplacesSnapshot(t *testing.T) {
	rec, err := worktime.NewRecord("r1", core.MustParseDate("2025-06-10"),
		worktime.Shift{Start: "09:00", End: "18:00", BreakMinutes: 60}, core.DefaultOvertimeSettings())
	require.NoError(t, err)
	require.Zero(t, rec.OvertimeHours)

	got, err := worktime.Reapply(rec, core.OvertimeSettings{StandardWorkHours: 6})
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.StandardWorkHours)
	assert.InDelta(t, 2, got.OvertimeHours, 1e-9)
}

func TestBuildRecord_OpenShift(t *testing.T) {
	date := core.MustParseDate("2025-06-10")

	rec, err := worktime.BuildRecord("r1", date, worktime.Shift{Start: "09:00", BreakMinutes: 60}, core.DefaultOvertimeSettings())
	require.NoError(t, err)
	assert.False(t, rec.HasEndTime())
	assert.Zero(t, rec.ActualWorkHours)

	_, err = worktime.BuildRecord("r2", date, worktime.Shift{Start: "9:xx"}, core.DefaultOvertimeSettings())
	assert.ErrorIs(t, err, core.ErrInvalidTimeFormat)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0時間00分"},
		{2, "2時間00分"},
		{1.5, "1時間30分"},
		{0.25, "0時間15分"},
		{-1.75, "1時間45分"},
		{2.999, "3時間00分"},
		{10.0 / 60, "0時間10分"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, worktime.FormatDuration(tt.hours))
		})
	}
}

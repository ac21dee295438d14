package worktime

import (
	"math"

	"github.com/google/uuid"
	"github.com/warp/overtime-engine/core"
)

// =============================================================================
// SHIFT - Raw input for one day
// =============================================================================

// Shift is what the worker entered for a day.
type Shift struct {
	Start        string
	End          string
	BreakMinutes int

	// Overnight means End is on the following calendar day.
	Overnight bool
}

// WorkDetails are the hours derived from a shift.
type WorkDetails struct {
	ActualWorkHours float64
	OvertimeHours   float64
	ShortageHours   float64
}

// =============================================================================
// OVERTIME / SHORTAGE DERIVER
// =============================================================================

// DeriveWorkDetails compares the worked span to the standard hours.
//
// Only a shift flagged Overnight wraps past midnight. An unflagged shift
// whose end is before its start keeps the negative span and therefore
// reports it as shortage.
func DeriveWorkDetails(shift Shift, settings core.OvertimeSettings) (WorkDetails, error) {
	start, err := TimeToMinutes(shift.Start)
	if err != nil {
		return WorkDetails{}, err
	}
	end, err := TimeToMinutes(shift.End)
	if err != nil {
		return WorkDetails{}, err
	}
	if shift.Overnight && end <= start {
		end += MinutesPerDay
	}

	minutes := WorkMinutes(start, end, shift.BreakMinutes)
	actual := float64(minutes) / 60
	diff := actual - settings.StandardWorkHours

	if diff >= 0 {
		return WorkDetails{ActualWorkHours: actual, OvertimeHours: diff, ShortageHours: 0}, nil
	}
	return WorkDetails{ActualWorkHours: actual, OvertimeHours: 0, ShortageHours: math.Abs(diff)}, nil
}

// =============================================================================
// RECORD CONSTRUCTION
// =============================================================================

// NewRecordID returns a fresh opaque record identifier.
func NewRecordID() string {
	return uuid.NewString()
}

// NewRecord builds a derived record and snapshots the standard hours.
func NewRecord(id string, date core.Date, shift Shift, settings core.OvertimeSettings) (core.WorkRecord, error) {
	details, err := DeriveWorkDetails(shift, settings)
	if err != nil {
		return core.WorkRecord{}, err
	}
	return core.WorkRecord{
		ID:                id,
		Date:              date,
		StartTime:         shift.Start,
		EndTime:           shift.End,
		BreakMinutes:      shift.BreakMinutes,
		Overnight:         shift.Overnight,
		ActualWorkHours:   details.ActualWorkHours,
		OvertimeHours:     details.OvertimeHours,
		ShortageHours:     details.ShortageHours,
		StandardWorkHours: settings.StandardWorkHours,
		Derived:           true,
	}, nil
}

// BuildRecord is NewRecord that also accepts a shift still in progress.
// Without an end time only the start is validated and the derived hours
// stay zero until the shift is completed.
func BuildRecord(id string, date core.Date, shift Shift, settings core.OvertimeSettings) (core.WorkRecord, error) {
	if shift.End != "" {
		return NewRecord(id, date, shift, settings)
	}
	if _, err := TimeToMinutes(shift.Start); err != nil {
		return core.WorkRecord{}, err
	}
	return core.WorkRecord{
		ID:                id,
		Date:              date,
		StartTime:         shift.Start,
		BreakMinutes:      shift.BreakMinutes,
		Overnight:         shift.Overnight,
		StandardWorkHours: settings.StandardWorkHours,
		Derived:           true,
	}, nil
}

// ShiftOf extracts the raw input of a record.
func ShiftOf(rec core.WorkRecord) Shift {
	return Shift{
		Start:        rec.StartTime,
		End:          rec.EndTime,
		BreakMinutes: rec.BreakMinutes,
		Overnight:    rec.Overnight,
	}
}

// Recalculate re-derives a record against its own snapshot. Records
// without an end time are returned unchanged.
func Recalculate(rec core.WorkRecord) (core.WorkRecord, error) {
	if !rec.HasEndTime() {
		return rec, nil
	}
	snapshot := core.OvertimeSettings{
		StandardWorkHours:   rec.StandardWorkHours,
		DefaultBreakMinutes: rec.BreakMinutes,
	}
	return NewRecord(rec.ID, rec.Date, ShiftOf(rec), snapshot)
}

// Reapply re-derives a record against new settings, replacing the snapshot.
func Reapply(rec core.WorkRecord, settings core.OvertimeSettings) (core.WorkRecord, error) {
	return NewRecord(rec.ID, rec.Date, ShiftOf(rec), settings)
}

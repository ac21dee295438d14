package payroll

import (
	"github.com/warp/overtime-engine/worktime"
)

// LateNightHours returns the part of the shift inside the night window.
//
// An end at or before the start is an overnight shift: the minutes from
// max(start, nightStart) to midnight plus the minutes from midnight to
// min(end, nightEnd). Otherwise only the evening part of the window,
// from max(start, nightStart) to midnight, is counted.
func LateNightHours(start, end, nightStart, nightEnd string) (float64, error) {
	s, err := worktime.TimeToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := worktime.TimeToMinutes(end)
	if err != nil {
		return 0, err
	}
	ns, err := worktime.TimeToMinutes(nightStart)
	if err != nil {
		return 0, err
	}
	ne, err := worktime.TimeToMinutes(nightEnd)
	if err != nil {
		return 0, err
	}

	minutes := 0
	if e <= s {
		minutes += worktime.MinutesPerDay - max(s, ns)
		minutes += min(e, ne)
	} else {
		minutes += max(0, min(e, worktime.MinutesPerDay)-max(s, ns))
	}
	return float64(minutes) / 60, nil
}

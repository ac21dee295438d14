// Package worktime turns clock-in/clock-out times into worked, overtime
// and shortage hours, and keeps the worker's record book.
package worktime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warp/overtime-engine/core"
)

// MinutesPerDay is the span a flagged overnight shift wraps by.
const MinutesPerDay = 24 * 60

// =============================================================================
// TIME ARITHMETIC
// =============================================================================

// TimeToMinutes parses a strict "HH:MM" into minutes after midnight.
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &core.TimeFormatError{Input: s, Reason: "want two colon-separated fields"}
	}
	hours, ok := parseField(parts[0])
	if !ok {
		return 0, &core.TimeFormatError{Input: s, Reason: "hour is not numeric"}
	}
	minutes, ok := parseField(parts[1])
	if !ok {
		return 0, &core.TimeFormatError{Input: s, Reason: "minute is not numeric"}
	}
	if hours > 23 {
		return 0, &core.TimeFormatError{Input: s, Reason: "hour out of range 0-23"}
	}
	if minutes > 59 {
		return 0, &core.TimeFormatError{Input: s, Reason: "minute out of range 0-59"}
	}
	return hours*60 + minutes, nil
}

// parseField accepts one or two ASCII digits only. strconv.Atoi alone
// would let "+5" and "-0" through.
func parseField(f string) (int, bool) {
	if len(f) == 0 || len(f) > 2 {
		return 0, false
	}
	for _, c := range f {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(f)
	return n, err == nil
}

// MinutesToTime formats minutes as zero-padded "HH:MM". Hours are not
// bounded to a day, so it also renders elapsed spans ("25:30").
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WorkMinutes is end - start - break with no midnight correction.
// The result is negative when end is earlier than start.
func WorkMinutes(start, end, breakMinutes int) int {
	return end - start - breakMinutes
}

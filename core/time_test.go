package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
)

// stubCalendar treats the listed dates as holidays.
type stubCalendar map[string]bool

func (s stubCalendar) IsHoliday(d core.Date) bool { return s[d.String()] }
func (s stubCalendar) GetHolidays(int) []core.Holiday { return nil }

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    core.Date
		wantErr bool
	}{
		{"2025-06-10", core.NewDate(2025, time.June, 10), false},
		{"2024-02-29", core.NewDate(2024, time.February, 29), false},
		{"2025-02-29", core.Date{}, true},
		{"2025-6-10", core.Date{}, true},
		{"10/06/2025", core.Date{}, true},
		{"", core.Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := core.ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrInvalidDate))
				assert.True(t, core.IsClientError(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDate_DateOfIgnoresClockTime(t *testing.T) {
	// GIVEN: Two instants on the same local day
	jst := time.FixedZone("JST", 9*3600)
	morning := time.Date(2025, time.June, 10, 0, 30, 0, 0, jst)
	night := time.Date(2025, time.June, 10, 23, 59, 0, 0, jst)

	// THEN: They map to the same Date
	assert.True(t, core.DateOf(morning).Equal(core.DateOf(night)))
	assert.Equal(t, "2025-06-10", core.DateOf(morning).String())
}

func TestDate_IsWeekend(t *testing.T) {
	assert.True(t, core.MustParseDate("2025-06-07").IsWeekend())  // Saturday
	assert.True(t, core.MustParseDate("2025-06-08").IsWeekend())  // Sunday
	assert.False(t, core.MustParseDate("2025-06-09").IsWeekend()) // Monday
}

func TestDate_IsWorkdayWithHolidays(t *testing.T) {
	cal := stubCalendar{"2025-07-21": true}

	assert.False(t, core.MustParseDate("2025-07-21").IsWorkdayWithHolidays(cal), "holiday")
	assert.False(t, core.MustParseDate("2025-07-19").IsWorkdayWithHolidays(cal), "weekend")
	assert.True(t, core.MustParseDate("2025-07-22").IsWorkdayWithHolidays(cal))
	assert.True(t, core.MustParseDate("2025-07-21").IsWorkdayWithHolidays(nil), "nil calendar only checks weekends")
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, "2024-02-29", core.EndOfMonth(2024, time.February).String())
	assert.Equal(t, "2025-02-28", core.EndOfMonth(2025, time.February).String())
	assert.Equal(t, "2025-12-31", core.EndOfMonth(2025, time.December).String())
}

func TestFixedClock(t *testing.T) {
	d := core.MustParseDate("2025-06-15")
	var clock core.Clock = core.FixedClock{Date: d}
	assert.True(t, d.Equal(clock.Today()))
}

package worktime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/worktime"
)

func TestTimeToMinutes_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:05", 545},
		{"12:30", 750},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := worktime.TimeToMinutes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeToMinutes_Rejected(t *testing.T) {
	inputs := []string{
		"",
		"09",
		"09:00:00",
		"24:00",
		"12:60",
		"ab:cd",
		"-1:00",
		"+9:00",
		" 9:00",
		"09: 00",
		"123:00",
		"09:",
		":30",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := worktime.TimeToMinutes(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidTimeFormat))

			var tfe *core.TimeFormatError
			require.ErrorAs(t, err, &tfe)
			assert.Equal(t, input, tfe.Input)
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	assert.Equal(t, "00:00", worktime.MinutesToTime(0))
	assert.Equal(t, "09:05", worktime.MinutesToTime(545))
	assert.Equal(t, "23:59", worktime.MinutesToTime(1439))
	assert.Equal(t, "25:30", worktime.MinutesToTime(1530), "hours are unbounded")
}

func TestMinutesToTime_RoundTrip(t *testing.T) {
	for m := 0; m < worktime.MinutesPerDay; m++ {
		got, err := worktime.TimeToMinutes(worktime.MinutesToTime(m))
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestWorkMinutes(t *testing.T) {
	assert.Equal(t, 600, worktime.WorkMinutes(540, 1200, 60))
	assert.Equal(t, -240, worktime.WorkMinutes(1320, 1140, 60), "no midnight correction")
}

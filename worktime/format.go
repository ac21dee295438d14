package worktime

import (
	"fmt"
	"math"
)

// FormatDuration renders hours as "H時間MM分". The sign is dropped; the
// caller labels overtime or shortage.
func FormatDuration(hours float64) string {
	abs := math.Abs(hours)
	h := math.Floor(abs)
	m := math.Round((abs - h) * 60)
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%d時間%02d分", int(h), int(m))
}

package holiday

import (
	"sort"
	"time"

	"github.com/warp/overtime-engine/core"
)

// =============================================================================
// FIXED HOLIDAY TABLES - Statutory holidays per calendar year
// =============================================================================

// Table maps a calendar year to its statutory holidays.
type Table map[int][]core.Holiday

func h(name string, year int, month time.Month, day int) core.Holiday {
	return core.Holiday{Name: name, Date: core.NewDate(year, month, day)}
}

// StatutoryTables are the tabulated years shipped with the engine.
var StatutoryTables = Table{
	2024: {
		h("元日", 2024, time.January, 1),
		h("成人の日", 2024, time.January, 8),
		h("建国記念の日", 2024, time.February, 11),
		h("天皇誕生日", 2024, time.February, 23),
		h("春分の日", 2024, time.March, 20),
		h("昭和の日", 2024, time.April, 29),
		h("憲法記念日", 2024, time.May, 3),
		h("みどりの日", 2024, time.May, 4),
		h("こどもの日", 2024, time.May, 5),
		h("海の日", 2024, time.July, 15),
		h("山の日", 2024, time.August, 11),
		h("敬老の日", 2024, time.September, 16),
		h("秋分の日", 2024, time.September, 22),
		h("スポーツの日", 2024, time.October, 14),
		h("文化の日", 2024, time.November, 3),
		h("勤労感謝の日", 2024, time.November, 23),
	},
	2025: {
		h("元日", 2025, time.January, 1),
		h("成人の日", 2025, time.January, 13),
		h("建国記念の日", 2025, time.February, 11),
		h("天皇誕生日", 2025, time.February, 23),
		h("春分の日", 2025, time.March, 20),
		h("昭和の日", 2025, time.April, 29),
		h("憲法記念日", 2025, time.May, 3),
		h("みどりの日", 2025, time.May, 4),
		h("こどもの日", 2025, time.May, 5),
		h("海の日", 2025, time.July, 21),
		h("山の日", 2025, time.August, 11),
		h("敬老の日", 2025, time.September, 15),
		h("秋分の日", 2025, time.September, 23),
		h("スポーツの日", 2025, time.October, 13),
		h("文化の日", 2025, time.November, 3),
		h("勤労感謝の日", 2025, time.November, 23),
	},
}

// Years returns the tabulated years in ascending order.
func (t Table) Years() []int {
	years := make([]int, 0, len(t))
	for y := range t {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// =============================================================================
// FALLBACK POLICY - Which table stands in for an untabulated year
// =============================================================================

// FallbackPolicy picks the table year to use for an untabulated year.
// available is ascending and never empty.
type FallbackPolicy func(year int, available []int) int

// NearestYear picks the closest tabulated year; ties go to the later one.
func NearestYear(year int, available []int) int {
	best := available[0]
	for _, y := range available[1:] {
		if abs(y-year) <= abs(best-year) {
			best = y
		}
	}
	return best
}

// Redate moves a table's month/day pairs into another year.
func Redate(holidays []core.Holiday, year int) []core.Holiday {
	out := make([]core.Holiday, 0, len(holidays))
	for _, hd := range holidays {
		out = append(out, core.Holiday{
			Name: hd.Name,
			Date: core.NewDate(year, hd.Date.Month(), hd.Date.Day()),
		})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

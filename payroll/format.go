package payroll

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency rounds to whole yen and groups thousands: "￥3,750".
func FormatCurrency(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return "-￥" + humanize.Comma(-n)
	}
	return "￥" + humanize.Comma(n)
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/factory"
	"github.com/warp/overtime-engine/holiday"
	"github.com/warp/overtime-engine/monthly"
	"github.com/warp/overtime-engine/payroll"
	"github.com/warp/overtime-engine/worktime"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [YYYY-MM]",
	Short: "Show the monthly summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		today := clock.Today()

		key := today.MonthKey()
		if len(args) == 1 {
			k, err := core.ParseMonthKey(args[0])
			if err != nil {
				return err
			}
			key = k
		}

		recs, err := book.RecordsInMonth(ctx, key)
		if err != nil {
			return err
		}
		salary, err := store.LoadSalarySettings(ctx)
		if err != nil {
			return err
		}

		sum := monthly.Aggregate(recs, key, salary, calendar, today)
		pay, err := payroll.NewCalculator(calendar).SummarizeSalary(recs, monthly.ResolveSalary(salary, calendar, today))
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", key.Label())
		fmt.Printf("  勤務日数        %d / %d日\n", sum.WorkingDays, sum.StatutoryWorkingDays)
		fmt.Printf("  総労働時間      %s\n", worktime.FormatDuration(sum.TotalWorkingHours))
		fmt.Printf("  残業時間        %s\n", worktime.FormatDuration(sum.TotalOvertimeHours))
		fmt.Printf("  不足時間        %s\n", worktime.FormatDuration(sum.TotalShortageHours))
		fmt.Printf("  実質残業        %s%s\n", sign(sum.NetOvertimeHours), worktime.FormatDuration(sum.NetOvertimeHours))
		fmt.Printf("  平均残業/日     %s\n", worktime.FormatDuration(sum.AverageOvertimePerDay))
		if m := sum.MaxOvertimeDay; m != nil {
			fmt.Printf("  最大残業日      %s (%s) %s\n", m.Date, holiday.WeekdayLabel(m.Date), worktime.FormatDuration(m.Hours))
		}
		fmt.Printf("  推定残業代      %s\n", payroll.FormatCurrency(sum.EstimatedOvertimePay))
		fmt.Println()
		fmt.Printf("  基本給          %s\n", payroll.FormatCurrency(pay.BaseSalary))
		fmt.Printf("  残業手当        %s\n", payroll.FormatCurrency(pay.TotalRegularOvertimePay))
		fmt.Printf("  休日手当        %s (%d日)\n", payroll.FormatCurrency(pay.TotalHolidayPay), pay.HolidayWorkDays)
		fmt.Printf("  深夜手当        %s (%s)\n", payroll.FormatCurrency(pay.TotalLateNightPay), worktime.FormatDuration(pay.TotalLateNightHours))
		fmt.Printf("  支給総額        %s\n", payroll.FormatCurrency(pay.TotalSalary))
		return nil
	},
}

var workdaysCmd = &cobra.Command{
	Use:         "workdays YYYY-MM",
	Short:       "Count statutory working days of a month",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := core.ParseMonthKey(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d日\n", key.Label(), monthly.StatutoryWorkingDays(calendar, key.Year(), key.Month()))
		return nil
	},
}

var holidaysCmd = &cobra.Command{
	Use:         "holidays [YEAR]",
	Short:       "List the holidays of a year",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		year := clock.Today().Year()
		if len(args) == 1 {
			y, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			year = y
		}

		if _, err := calendar.NationalHolidays(year); core.IsApproximation(err) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		for _, hd := range calendar.GetHolidays(year) {
			fmt.Printf("%s (%s) %s\n", hd.Date, holiday.WeekdayLabel(hd.Date), hd.Name)
		}
		return nil
	},
}

var (
	importOverwrite bool
	importSettings  string
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import records exported from the browser application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if importSettings != "" {
			data, err := os.ReadFile(importSettings)
			if err != nil {
				return err
			}
			overtime, salary, err := factory.ParseLegacySettings(data)
			if err != nil {
				return err
			}
			if err := store.SaveOvertimeSettings(ctx, overtime); err != nil {
				return err
			}
			if err := store.SaveSalarySettings(ctx, salary); err != nil {
				return err
			}
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		defaults, err := store.LoadOvertimeSettings(ctx)
		if err != nil {
			return err
		}
		recs, err := factory.ParseLegacyRecords(data, defaults)
		if err != nil {
			return err
		}

		imported, skipped := 0, 0
		for _, rec := range recs {
			if _, err := book.Save(ctx, rec, importOverwrite); err != nil {
				if core.IsConflict(err) {
					logger.Warn("skipping record on occupied date", "date", rec.Date.String(), "id", rec.ID)
					skipped++
					continue
				}
				return err
			}
			imported++
		}

		// read back so legacy rows are recalculated now rather than on first view
		if _, err := book.Records(ctx); err != nil {
			return err
		}
		fmt.Printf("imported %d record(s), skipped %d\n", imported, skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace records on dates that already have one")
	importCmd.Flags().StringVar(&importSettings, "legacy-settings", "", "settings export of the browser application")
}

func sign(hours float64) string {
	if hours < 0 {
		return "-"
	}
	return ""
}

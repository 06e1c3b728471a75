package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Onerb58/hours-tracker/tracker"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the rollup for a period",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	store, pt, date, err := resolveArgs()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	rollup, period, err := tracker.BuildRollup(ctx, store, userID, pt, date)
	if err != nil {
		return err
	}
	_, comparison, err := tracker.BuildComparison(ctx, store, userID, pt, date)
	if err != nil {
		return err
	}

	periodID, _ := tracker.PeriodIDFor(pt, date)

	fmt.Printf("%s %s  %s\n", pt, periodID, period)
	fmt.Printf("  hours:     %s total (%s regular, %s overtime)\n",
		rollup.TotalHours.StringFixed(2), rollup.RegularHours.StringFixed(2), rollup.OvertimeHours.StringFixed(2))
	fmt.Printf("  earnings:  %s total (%s regular, %s overtime)\n",
		rollup.TotalEarnings.StringFixed(2), rollup.RegularEarnings.StringFixed(2), rollup.OvertimeEarnings.StringFixed(2))
	fmt.Printf("  days:      %d worked of %d  (avg %s h/worked day, %s h/calendar day)\n",
		rollup.DaysWorked, rollup.TotalDays,
		rollup.AverageHoursPerDay.StringFixed(2),
		rollup.AverageHoursPerDayIncludingNonWork.StringFixed(2))
	fmt.Printf("  vs prev:   %+.2f hours (%+.1f%%), %+.2f earnings (%+.1f%%)\n",
		f64(comparison.HoursDelta), f64(comparison.HoursDeltaPercent),
		f64(comparison.EarningsDelta), f64(comparison.EarningsDeltaPercent))
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Onerb58/hours-tracker/export"
	"github.com/Onerb58/hours-tracker/tracker"
)

var exportBy string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a period to CSV on stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportBy, "by", "", "Aggregate instead of listing entries: day, week or month")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, pt, date, err := resolveArgs()
	if err != nil {
		return err
	}
	defer store.Close()

	rollup, _, err := tracker.BuildRollup(cmd.Context(), store, userID, pt, date)
	if err != nil {
		return err
	}

	switch exportBy {
	case "":
		return export.WriteRollupCSV(os.Stdout, rollup)
	case "day":
		return export.WriteBucketsCSV(os.Stdout, tracker.GroupByDay(rollup.Entries))
	case "week":
		return export.WriteBucketsCSV(os.Stdout, tracker.GroupByWeek(rollup.Entries))
	case "month":
		return export.WriteBucketsCSV(os.Stdout, tracker.GroupByMonth(rollup.Entries))
	default:
		return fmt.Errorf("invalid --by value %q (use day, week or month)", exportBy)
	}
}

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Onerb58/hours-tracker/store/sqlite"
	"github.com/Onerb58/hours-tracker/tracker"
)

var (
	dbPath     string
	userID     string
	periodType string
	dateStr    string
)

var rootCmd = &cobra.Command{
	Use:   "hoursctl",
	Short: "hours-tracker CLI - period reports and CSV export",
	Long: `hoursctl reads the hours-tracker SQLite database directly and prints
rollup reports or CSV exports for any period, without going through the
HTTP server.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "hours.db", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "default", "User id")
	rootCmd.PersistentFlags().StringVar(&periodType, "period", "weekly", "Period type: weekly, biweekly, monthly, yearly")
	rootCmd.PersistentFlags().StringVar(&dateStr, "date", "", "Any date inside the wanted period, YYYY-MM-DD (default today)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveArgs validates the shared flags and opens the store.
func resolveArgs() (*sqlite.Store, tracker.PeriodType, tracker.Date, error) {
	pt, err := tracker.ParsePeriodType(periodType)
	if err != nil {
		return nil, "", tracker.Date{}, err
	}

	date := tracker.Today()
	if dateStr != "" {
		date, err = tracker.ParseDate(dateStr)
		if err != nil {
			return nil, "", tracker.Date{}, err
		}
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, "", tracker.Date{}, err
	}
	return store, pt, date, nil
}

package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/username/workday-calendar/internal/config"
	"github.com/username/workday-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// maxIncrementDays bounds --days; larger values would walk for years of wall time
var maxIncrementDays = decimal.NewFromInt(1_000_000)

func incrementCmd() *cobra.Command {
	var startStr string
	var daysStr string

	cmd := &cobra.Command{
		Use:   "increment",
		Short: "Shift a timestamp by a number of workdays",
		Example: `  workday increment --start "24-05-2004 18:05" --days -5.5
  workday increment --start "2004-05-24 07:03" --days 8.276628`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDateTime(startStr)
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}

			days, err := decimal.NewFromString(daysStr)
			if err != nil {
				return fmt.Errorf("invalid days %q: %w", daysStr, err)
			}
			if days.Abs().GreaterThan(maxIncrementDays) {
				return fmt.Errorf("days %s out of range, at most %s workdays either way", days, maxIncrementDays)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cal, err := initializeCalendar(cfg)
			if err != nil {
				return err
			}

			result := cal.GetWorkdayIncrement(start, days)

			logger.Info("Workday increment",
				zap.Time("start", start),
				zap.String("days", days.String()),
				zap.Time("result", result))

			fmt.Fprintf(cmd.OutOrStdout(), "%s with the addition of %s working days is %s\n",
				dateutil.FormatDateTime(start), days.String(), dateutil.FormatDateTime(result))

			return nil
		},
	}

	cmd.Flags().StringVarP(&startStr, "start", "s", "", "Start timestamp (DD-MM-YYYY HH:MM)")
	cmd.Flags().StringVarP(&daysStr, "days", "d", "", "Workdays to add, may be fractional or negative")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func checkCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a date is a workday",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cal, err := initializeCalendar(cfg)
			if err != nil {
				return err
			}

			if cal.IsWorkday(date) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is a workday (%s - %s)\n",
					date.Format("2006-01-02 Mon"), cfg.Workday.Start, cfg.Workday.Stop)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not a workday\n", date.Format("2006-01-02 Mon"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Date to check (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

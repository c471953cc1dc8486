package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/booking"
)

var nextDateCmd = &cobra.Command{
	Use:   "next-date <weekday>",
	Short: "Print the date of the next given weekday after today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		today := time.Now()
		if from != "" {
			t, err := time.ParseInLocation(booking.DateLayout, from, time.Local)
			if err != nil {
				return fmt.Errorf("parse --from: %w", err)
			}
			today = t
		}

		date, err := booking.NextDateForWeekday(args[0], today)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), date)
		return nil
	},
}

func init() {
	nextDateCmd.Flags().String("from", "", "Resolve from this date (YYYY-MM-DD) instead of today")
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/store"
)

var mentorsCmd = &cobra.Command{
	Use:   "mentors",
	Short: "Find mentors and book sessions",
}

var mentorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mentors (optionally filtered by search text or subject)",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		subject, _ := cmd.Flags().GetString("subject")

		mentors := dashboard.FilterMentors(catalog.AllMentors(), search, subject)
		out := cmd.OutOrStdout()
		if len(mentors) == 0 {
			fmt.Fprintln(out, "No mentors match.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-20s  %6s  %8s  %5s  %s\n",
			"ID", "Name", "Rating", "Sessions", "Rate", "Expertise")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, m := range mentors {
			fmt.Fprintf(out, "%-4s  %-20s  %6.1f  %8d  $%4.0f  %s\n",
				m.ID, truncate(m.Name, 20), m.Rating, m.SessionsCompleted, m.HourlyRate,
				strings.Join(m.Expertise, ", "))
			for _, av := range m.Availability {
				fmt.Fprintf(out, "      %-9s %s\n", av.Day, strings.Join(av.Slots, ", "))
			}
		}
		fmt.Fprintf(out, "\n%d mentors\n", len(mentors))
		return nil
	},
}

var mentorsBookCmd = &cobra.Command{
	Use:   "book <mentor-id>",
	Short: "Book a session with a mentor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("day")
		slot, _ := cmd.Flags().GetString("slot")
		concept, _ := cmd.Flags().GetString("concept")

		m, err := catalog.GetMentor(args[0])
		if err != nil {
			return err
		}

		return withUser(cmd, func(d *deps, u store.User) error {
			b, err := booking.Confirm(booking.Request{
				StudentID: u.ID,
				Mentor:    m,
				Day:       day,
				Slot:      slot,
				Concept:   concept,
			}, d.env.Today())
			if err != nil {
				return err
			}
			if err := d.store.AppendBooking(cmd.Context(), b); err != nil {
				return fmt.Errorf("save booking: %w", err)
			}
			d.logger.Info("session booked",
				zap.String("booking_id", b.ID),
				zap.String("mentor_id", b.MentorID),
				zap.String("date", b.Date),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s with %s on %s at %s (%s).\nBooking ID: %s\n",
				b.Concept, m.Name, b.Date, b.Time, day, b.ID)
			return nil
		})
	},
}

func init() {
	mentorsListCmd.Flags().String("search", "", "Match name or expertise")
	mentorsListCmd.Flags().String("subject", "", "Filter by expertise subject")

	mentorsBookCmd.Flags().String("day", "", "Weekday from the mentor's availability (e.g. Monday)")
	mentorsBookCmd.Flags().String("slot", "", `Time slot on that day (e.g. "2:00 PM")`)
	mentorsBookCmd.Flags().String("concept", "", "Topic for the session (default: the mentor's primary expertise)")
	_ = mentorsBookCmd.MarkFlagRequired("day")
	_ = mentorsBookCmd.MarkFlagRequired("slot")

	mentorsCmd.AddCommand(mentorsListCmd)
	mentorsCmd.AddCommand(mentorsBookCmd)
}

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/store"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Manage your mentor sessions",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your booked sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlag, _ := cmd.Flags().GetString("status")
		var status booking.Status
		if statusFlag != "" {
			var err error
			if status, err = booking.ParseStatus(statusFlag); err != nil {
				return err
			}
		}

		return withUser(cmd, func(d *deps, u store.User) error {
			bs, err := d.store.Bookings(cmd.Context(), u.ID)
			if err != nil {
				return fmt.Errorf("load bookings: %w", err)
			}
			if status != "" {
				bs = slices.DeleteFunc(bs, func(b booking.Booking) bool { return b.Status != status })
			}
			out := cmd.OutOrStdout()
			if len(bs) == 0 {
				fmt.Fprintln(out, "No sessions booked.")
				return nil
			}

			fmt.Fprintf(out, "%-36s  %-10s  %-8s  %-18s  %-20s  %s\n",
				"ID", "Date", "Time", "Mentor", "Concept", "Status")
			fmt.Fprintln(out, strings.Repeat("─", 110))
			for _, b := range bs {
				mentor := b.MentorID
				if m, err := catalog.GetMentor(b.MentorID); err == nil {
					mentor = m.Name
				}
				fmt.Fprintf(out, "%-36s  %-10s  %-8s  %-18s  %-20s  %s\n",
					b.ID, b.Date, b.Time, truncate(mentor, 18), truncate(b.Concept, 20), b.Status)
				if b.Feedback != "" {
					fmt.Fprintf(out, "    feedback: %s\n", b.Feedback)
				}
			}
			fmt.Fprintf(out, "\n%d sessions, %d upcoming\n", len(bs), len(booking.Upcoming(bs)))
			return nil
		})
	},
}

// newBookingStatusCmd builds the complete and cancel subcommands.
func newBookingStatusCmd(use, short string, status booking.Status) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <booking-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := booking.Update{Status: &status}
			if cmd.Flags().Changed("feedback") {
				fb, _ := cmd.Flags().GetString("feedback")
				u.Feedback = &fb
			}
			return updateBooking(cmd, args[0], u)
		},
	}
	c.Flags().String("feedback", "", "Notes about the session")
	return c
}

var bookingsFeedbackCmd = &cobra.Command{
	Use:   "feedback <booking-id> <text>",
	Short: "Leave feedback on a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fb := strings.TrimSpace(args[1])
		return updateBooking(cmd, args[0], booking.Update{Feedback: &fb})
	},
}

func updateBooking(cmd *cobra.Command, id string, u booking.Update) error {
	return withUser(cmd, func(d *deps, _ store.User) error {
		b, err := d.store.UpdateBooking(cmd.Context(), id, u)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s on %s at %s is %s.\n", b.ID, b.Date, b.Time, b.Status)
		return nil
	})
}

func init() {
	bookingsListCmd.Flags().String("status", "", "Only show sessions with this status (upcoming, completed, cancelled)")

	bookingsCmd.AddCommand(bookingsListCmd)
	bookingsCmd.AddCommand(newBookingStatusCmd("complete", "Mark a session completed", booking.StatusCompleted))
	bookingsCmd.AddCommand(newBookingStatusCmd("cancel", "Cancel an upcoming session", booking.StatusCancelled))
	bookingsCmd.AddCommand(bookingsFeedbackCmd)
}

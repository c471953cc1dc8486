package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/store"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(d *deps, u store.User) error {
			o, err := dashboard.Build(cmd.Context(), d.store, u)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Welcome back, %s! (%s)\n\n", o.User.FirstName(), o.User.Grade)
			fmt.Fprintf(out, "Assessments taken:  %d (%d remaining)\n", o.AssessmentsTaken, o.AssessmentsRemaining)
			fmt.Fprintf(out, "Overall progress:   %d%%\n", o.OverallProgress)
			fmt.Fprintf(out, "Upcoming sessions:  %d\n", len(o.Upcoming))
			fmt.Fprintf(out, "Certificates:       %d\n", len(o.Certificates))
			if o.Latest != nil {
				fmt.Fprintf(out, "Latest result:      %d%% on %s\n", o.Latest.Score, o.Latest.Date)
			}

			if focus := o.Focus(); len(focus) > 0 {
				fmt.Fprintln(out, "\nFocus areas:")
				for _, cs := range focus {
					fmt.Fprintf(out, "  %s %-24s %3d%%\n", cs.Status.Icon(), catalog.ConceptName(cs.ConceptID), cs.Score)
				}
			}
			if len(o.Upcoming) > 0 {
				fmt.Fprintln(out, "\nUpcoming sessions:")
				for _, b := range o.Upcoming {
					mentor := b.MentorID
					if m, err := catalog.GetMentor(b.MentorID); err == nil {
						mentor = m.Name
					}
					fmt.Fprintf(out, "  %s %-8s  %s · %s\n", b.Date, b.Time, mentor, b.Concept)
				}
			}
			return nil
		})
	},
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results [result-id]",
	Short: "List your assessment results, or show one in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(d *deps, u store.User) error {
			results, err := d.store.Results(cmd.Context(), u.ID)
			if err != nil {
				return fmt.Errorf("load results: %w", err)
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				for _, r := range results {
					if r.ID == args[0] {
						printResult(out, r)
						return nil
					}
				}
				return apperr.NotFound("result", args[0])
			}

			if len(results) == 0 {
				fmt.Fprintln(out, "No results yet. Take an assessment to get started.")
				return nil
			}

			fmt.Fprintf(out, "%-36s  %-28s  %-10s  %5s  %4s\n", "ID", "Assessment", "Date", "Score", "Mins")
			fmt.Fprintln(out, strings.Repeat("─", 91))
			for i := len(results) - 1; i >= 0; i-- {
				r := results[i]
				title := r.AssessmentID
				if a, err := catalog.GetAssessment(r.AssessmentID); err == nil {
					title = a.Title
				}
				fmt.Fprintf(out, "%-36s  %-28s  %-10s  %4d%%  %4d\n",
					r.ID, truncate(title, 28), r.Date, r.Score, r.TimeTakenMins)
			}
			return nil
		})
	},
}

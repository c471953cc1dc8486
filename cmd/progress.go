package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show concept trends over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(d *deps, u store.User) error {
			report, err := dashboard.LoadProgress(cmd.Context(), d.store, u.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printStats(out, report.Stats)
			fmt.Fprintf(out, "Recent progress:      %d%%\n\n", report.Overall)

			if len(report.Trends) == 0 {
				fmt.Fprintln(out, "No progress recorded yet.")
				return nil
			}
			fmt.Fprintf(out, "%-24s  %5s  %6s  %6s  %-10s  %s\n",
				"Concept", "First", "Latest", "Change", "Trend", "History")
			fmt.Fprintln(out, strings.Repeat("─", 85))
			for _, t := range report.Trends {
				points := make([]string, 0, len(t.History))
				for _, r := range t.History {
					points = append(points, fmt.Sprint(r.Score))
				}
				fmt.Fprintf(out, "%-24s  %4d%%  %5d%%  %+6d  %s %-8s  %s\n",
					truncate(t.Concept.Name, 24), t.First, t.Latest, t.Improvement,
					t.Trend.Icon(), t.Trend, strings.Join(points, " → "))
			}
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(d *deps, u store.User) error {
			report, err := dashboard.LoadProgress(cmd.Context(), d.store, u.ID)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), report.Stats)
			return nil
		})
	},
}

func printStats(out io.Writer, s progress.Stats) {
	fmt.Fprintf(out, "Assessments taken:    %d\n", s.TotalAssessments)
	fmt.Fprintf(out, "Average score:        %d%%\n", s.AverageScore)
	fmt.Fprintf(out, "Certificates earned:  %d\n", s.CertificatesEarned)
	fmt.Fprintf(out, "Concepts improved:    %d\n", s.ConceptsImproved)
}

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/catalog"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Browse the concept catalog",
}

var conceptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all concepts (optionally filtered by subject)",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		concepts := catalog.AllConcepts()
		if subject != "" {
			concepts = catalog.BySubject(subject)
			if len(concepts) == 0 {
				return fmt.Errorf("no concepts found for subject %q (have %s)",
					subject, strings.Join(catalog.Subjects(), ", "))
			}
		}
		if difficulty != "" {
			d, err := parseDifficulty(difficulty)
			if err != nil {
				return err
			}
			concepts = slices.DeleteFunc(concepts, func(c catalog.Concept) bool { return c.Difficulty != d })
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s  %-24s  %-12s  %-13s  %s\n",
			"ID", "Name", "Subject", "Difficulty", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, c := range concepts {
			fmt.Fprintf(out, "%-5s  %-24s  %-12s  %-13s  %s\n",
				c.ID, truncate(c.Name, 24), c.Subject, c.Difficulty.Label(), c.Description)
		}

		fmt.Fprintf(out, "\n%d concepts\n", len(concepts))
		return nil
	},
}

var conceptsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the built-in catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := catalog.Validate(); err != nil {
			return fmt.Errorf("catalog is invalid: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog OK: %d concepts, %d questions, %d assessments, %d mentors\n",
			len(catalog.AllConcepts()), len(catalog.AllQuestions()),
			len(catalog.AllAssessments()), len(catalog.AllMentors()))
		return nil
	},
}

func init() {
	conceptsListCmd.Flags().String("subject", "", "Filter by subject (e.g. Mathematics)")
	conceptsListCmd.Flags().String("difficulty", "", "Filter by difficulty (foundational, intermediate, advanced)")

	conceptsCmd.AddCommand(conceptsListCmd)
	conceptsCmd.AddCommand(conceptsCheckCmd)
}

func parseDifficulty(s string) (catalog.Difficulty, error) {
	var names []string
	for _, d := range catalog.AllDifficulties() {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
		names = append(names, string(d))
	}
	return "", apperr.InvalidInput("parse difficulty", "unknown difficulty %q (have %s)", s, strings.Join(names, ", "))
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

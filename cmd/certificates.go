package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/store"
)

var certificatesCmd = &cobra.Command{
	Use:   "certificates [certificate-id]",
	Short: "List your certificates, or show one in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(cmd, func(d *deps, u store.User) error {
			certs, err := d.store.Certificates(cmd.Context(), u.ID)
			if err != nil {
				return fmt.Errorf("load certificates: %w", err)
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				c, err := certificate.Get(certs, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Certificate of Achievement\n\n%s\n%s · %s\n\n", c.StudentName, c.Skill, c.Subject)
				fmt.Fprintf(out, "Issued %s by %s\nImprovement: +%d%%\n\n%q\n", c.IssuedDate, c.MentorName, c.Improvement, c.MentorFeedback)
				return nil
			}

			if len(certs) == 0 {
				fmt.Fprintln(out, "No certificates yet.")
				return nil
			}
			fmt.Fprintf(out, "%-8s  %-22s  %-12s  %-10s  %-18s  %s\n",
				"ID", "Skill", "Subject", "Issued", "Mentor", "Improvement")
			fmt.Fprintln(out, strings.Repeat("─", 92))
			for _, c := range certificate.SortByIssued(certs) {
				fmt.Fprintf(out, "%-8s  %-22s  %-12s  %-10s  %-18s  +%d%%\n",
					c.ID, truncate(c.Skill, 22), c.Subject, c.IssuedDate, truncate(c.MentorName, 18), c.Improvement)
			}
			return nil
		})
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Sign out and clear every result, booking, progress record and certificate in the store.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.session.Logout(cmd.Context()); err != nil {
			return err
		}
		d.logger.Info("learner data reset")
		fmt.Fprintln(cmd.OutOrStdout(), "Learner data cleared.")
		return nil
	},
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnboard",
	Short: "Learning dashboard for the terminal",
	Long: "Learnboard — take diagnostic assessments, see concept-level results, " +
		"book mentor sessions and track progress from the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/learnboard/config.yaml)")
	pf.String("db", "", `Storage backend: "memory", "default" for the XDG database file, or a SQLite path`)
	pf.String("user-email", "", "Email to sign in with")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-file", "", "Log file path (default $XDG_STATE_HOME/learnboard/learnboard.log)")

	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(assessmentsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(mentorsCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(certificatesCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(nextDateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

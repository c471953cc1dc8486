package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// The dashboard starts on the sign-in screen with the configured email
// filled in.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	d.logger.Info("starting dashboard", zap.String("db", d.cfg.DB))
	return app.Run(cmd.Context(), app.Options{
		Env:   d.env,
		Email: d.cfg.User.Email,
	})
}

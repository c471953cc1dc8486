package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/config"
	"github.com/abhisek/learnboard/internal/logging"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/store"
)

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"db":         config.KeyDB,
	"user-email": config.KeyUserEmail,
	"log-level":  config.KeyLogLevel,
	"log-file":   config.KeyLogFile,
}

// deps is everything a command needs once settings are resolved.
type deps struct {
	cfg     config.Config
	logger  *zap.Logger
	store   store.Store
	session *store.Session
	env     *screens.Env

	stopEventLog func()
}

// loadConfig merges defaults, the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}

// openDeps loads settings, opens the log and the store and builds the
// screen environment. Callers must call close.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	st, err := store.Connect(cfg.DB)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{
		cfg:          cfg,
		logger:       logger,
		store:        st,
		session:      store.NewSession(st),
		stopEventLog: store.LogEvents(st, logger),
	}
	d.env = screens.NewEnv(d.session, logger)
	d.env.DefaultDurationMins = cfg.Assessment.DefaultDuration

	logger.Debug("dependencies ready",
		zap.String("db", cfg.DB),
		zap.String("command", cmd.CommandPath()),
	)
	return d, nil
}

// signIn resumes the configured user's session, seeding the demo history
// into an empty store.
func (d *deps) signIn(cmd *cobra.Command) (store.User, error) {
	u, err := d.session.Resume(cmd.Context(), d.cfg.User.Email)
	if err != nil {
		return store.User{}, fmt.Errorf("sign in: %w", err)
	}
	return u, nil
}

func (d *deps) close() {
	d.stopEventLog()
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", zap.Error(err))
	}
	_ = d.logger.Sync()
}

// withUser opens dependencies, signs in, and runs fn.
func withUser(cmd *cobra.Command, fn func(d *deps, u store.User) error) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	u, err := d.signIn(cmd)
	if err != nil {
		return err
	}
	return fn(d, u)
}

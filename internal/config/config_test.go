package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnboard/internal/apperr"
)

// isolate points config discovery at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_DiscoveredFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "learnboard"), 0o755))
	yaml := "db: /tmp/lb.db\nlog:\n  level: debug\nassessment:\n  default_duration: 30\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "learnboard", "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lb.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Assessment.DefaultDuration)
	assert.Equal(t, "alex@example.com", cfg.User.Email)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\nuser:\n  email: sam@example.com\n"), 0o644))
	t.Setenv("LEARNBOARD_LOG_LEVEL", "error")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "sam@example.com", cfg.User.Email)
}

func TestLoad_FlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("LEARNBOARD_DB", "from-env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "from-flag.db"}))

	v := New()
	require.NoError(t, v.BindPFlag(KeyDB, flags.Lookup("db")))
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.DB)
}

func TestLoad_InvalidDuration(t *testing.T) {
	isolate(t)
	t.Setenv("LEARNBOARD_ASSESSMENT_DEFAULT_DURATION", "0")
	_, err := Load(New(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestDefaultDir(t *testing.T) {
	dir := isolate(t)
	got, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "learnboard"), got)
}

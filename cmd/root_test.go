package cmd

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), nil, "test")
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".adminviews", "adminviews.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, ".adminviews", "adminviews.log"), cfg.LogFile)
	assert.Equal(t, "/admin/manage", cfg.BaseURL)
	assert.Equal(t, 3, cfg.PathSegment)
	assert.Equal(t, "/admin/manage/", cfg.StartPath)
	assert.True(t, cfg.Session)
	assert.True(t, cfg.UpdateURL)
	assert.False(t, cfg.RowNumbers)
}

func TestParseFlagsAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ADMINVIEWS_SESSION", "false")
	t.Setenv("ADMINVIEWS_TABLE", "synths")

	args := []string{
		"-db", filepath.Join(dir, "x.db"),
		"-log-file", filepath.Join(dir, "x.log"),
		"-row-numbers",
		"-start-path", "/admin/manage/presets",
		"-table", "albums",
	}
	cfg, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), args, "test")
	require.NoError(t, err)

	assert.False(t, cfg.Session, "env default applies")
	assert.Equal(t, "albums", cfg.Table, "flag wins over env")
	assert.True(t, cfg.RowNumbers)
	assert.Equal(t, "/admin/manage/presets", cfg.StartPath)
}

func TestParseRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	base := []string{"-db", filepath.Join(dir, "x.db"), "-log-file", filepath.Join(dir, "x.log")}

	_, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), append(base, "-path-segment", "0"), "test")
	assert.Error(t, err)

	_, err = parse(flag.NewFlagSet("test", flag.ContinueOnError), append(base, "-log-level", "loud"), "test")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closer, err := NewLogger(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("table loaded", "table", "songs")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "table=songs")
	assert.NotContains(t, string(data), "hidden")
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nADMINVIEWS_TEST_A=\"from file\"\nADMINVIEWS_TEST_B=file\n"), 0600))
	t.Setenv("ADMINVIEWS_TEST_A", "")
	t.Setenv("ADMINVIEWS_TEST_B", "env")

	loadDotEnv(path)
	assert.Equal(t, "from file", os.Getenv("ADMINVIEWS_TEST_A"))
	assert.Equal(t, "env", os.Getenv("ADMINVIEWS_TEST_B"))
}

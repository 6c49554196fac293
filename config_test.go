package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildmark/server/logging"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config file present

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"console"}, cfg.LogSinks)
	assert.Equal(t, 6, cfg.World.FoxCount)
	assert.Equal(t, 4, cfg.World.WolfCount)
	assert.Equal(t, 4, cfg.World.ViperCount)
	assert.Greater(t, cfg.World.Width, 0.0)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WILDMARK_ADDR", ":9999")
	t.Setenv("WILDMARK_WORLD_FOXES", "11")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 11, cfg.World.FoxCount)
}

func TestSeverityFromString(t *testing.T) {
	assert.Equal(t, logging.SeverityDebug, severityFromString("debug"))
	assert.Equal(t, logging.SeverityWarn, severityFromString("WARN"))
	assert.Equal(t, logging.SeverityWarn, severityFromString("warning"))
	assert.Equal(t, logging.SeverityError, severityFromString("error"))
	assert.Equal(t, logging.SeverityInfo, severityFromString("anything-else"))
}

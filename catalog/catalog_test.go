package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"fox", "viper", "wolf"}, c.SpeciesTags())
	assert.GreaterOrEqual(t, c.Version(), 1)

	fox, ok := c.Lookup("fox")
	require.True(t, ok)
	assert.Equal(t, "wander", fox.Pattern)
	assert.Greater(t, fox.Stats.MaxHealth, 0.0)
	assert.Greater(t, fox.Stats.PerceptionRange, 0.0)

	_, ok = c.Lookup("dragon")
	assert.False(t, ok)
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "species.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validSpecies = `
version: 1
species:
  - species: fox
    pattern: wander
    stats:
      max_health: 60
      attack_damage: 8
      attack_range: 30
      attack_speed_ms: 1500
      movement_speed: 90
      sprint_speed: 160
      perception_range: 300
      perception_angle: 140
      patrol_radius: 180
      chase_trigger_range: 260
      flee_trigger_health_percent: 0.25
      hide_duration_ms: 0
`

func TestLoadValidFile(t *testing.T) {
	c, err := Load(writeCatalog(t, validSpecies))
	require.NoError(t, err)
	fox, ok := c.Lookup("fox")
	require.True(t, ok)
	assert.Equal(t, 60.0, fox.Stats.MaxHealth)
}

func TestLoadRejectsMissingRequiredField(t *testing.T) {
	body := `
version: 1
species:
  - species: fox
    pattern: wander
    stats:
      attack_damage: 8
`
	_, err := Load(writeCatalog(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")
}

func TestLoadRejectsUnknownPattern(t *testing.T) {
	body := `
version: 1
species:
  - species: fox
    pattern: zigzag
    stats:
      max_health: 60
      attack_damage: 8
      attack_range: 30
      attack_speed_ms: 1500
      movement_speed: 90
      sprint_speed: 160
      perception_range: 300
      perception_angle: 140
      patrol_radius: 180
      chase_trigger_range: 260
`
	_, err := Load(writeCatalog(t, body))
	require.Error(t, err)
}

func TestLoadRejectsDuplicateSpecies(t *testing.T) {
	body := validSpecies + `
  - species: fox
    pattern: loop
    stats:
      max_health: 10
      attack_damage: 1
      attack_range: 1
      attack_speed_ms: 100
      movement_speed: 1
      sprint_speed: 1
      perception_range: 1
      perception_angle: 1
      patrol_radius: 1
      chase_trigger_range: 1
`
	_, err := Load(writeCatalog(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsPerceptionAngleAboveFullCircle(t *testing.T) {
	body := `
version: 1
species:
  - species: fox
    pattern: wander
    stats:
      max_health: 60
      attack_damage: 8
      attack_range: 30
      attack_speed_ms: 1500
      movement_speed: 90
      sprint_speed: 160
      perception_range: 300
      perception_angle: 540
      patrol_radius: 180
      chase_trigger_range: 260
`
	_, err := Load(writeCatalog(t, body))
	require.Error(t, err)
}

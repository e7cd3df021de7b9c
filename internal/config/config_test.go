package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ellandq/Wizard-Duelling/internal/recognition"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchRecognition(t *testing.T) {
	if diff := cmp.Diff(recognition.DefaultConfig(), DefaultSettings().Recognition()); diff != "" {
		t.Errorf("Recognition() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettingsCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	_, err = os.Stat(path)
	require.NoError(t, err, "default settings file should be written")

	again, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, settings, again)
}

func TestLoadSettingsPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	testJSON := `{
  "min_likelihood": 0.75,
  "blocking": "radius",
  "store": "sqlite",
  "mystery_knob": 3
}`
	require.NoError(t, os.WriteFile(path, []byte(testJSON), 0644))

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, settings.MinLikelihood)
	assert.Equal(t, "radius", settings.Blocking)
	assert.Equal(t, StoreSQLite, settings.Store)
	assert.Equal(t, 7, settings.GridSize, "missing keys keep defaults")

	rc := settings.Recognition()
	assert.Equal(t, recognition.BlockRadius, rc.Blocking)
	assert.Equal(t, 0.75, rc.MinLikelihood)
}

func TestLoadSettingsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	testJSON := `{
  "grid_size": 1,
  "min_likelihood": 1.5,
  "length_mode": "guess",
  "lock_after": 0,
  "blocking": "everything",
  "store": "postgres"
}`
	require.NoError(t, os.WriteFile(path, []byte(testJSON), 0644))

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grid_size": `), 0644))

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := GetDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "wizard-duelling"), dir)

	p, err := GetPath(StoreJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "templates.json"), p)

	p, err = GetPath(StoreSQLite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "templates.db"), p)

	p, err = GetSettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.json"), p)
}

func TestGetKnownKeys(t *testing.T) {
	keys := getKnownKeys(&Settings{})
	assert.True(t, keys["min_likelihood"])
	assert.True(t, keys["store"])
	assert.False(t, keys["MinLikelihood"])
}

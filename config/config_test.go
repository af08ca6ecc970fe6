package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchro-systems/synchro/adapter"
)

const sampleYAML = `
initial_value: 100
prune_horizon: 45s
observation_channel_capacity: 64
platforms:
  - source_id: square
    interpretation: transition
    write_mode: guarded
    backoff: 500ms
    poll_interval: 2s
    platform:
      base_url: https://example.test
  - source_id: clover
    interpretation: mutation
    poll_interval: 1s
    backoff: 250ms
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "synchro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDecodesTopLevelFields(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	root, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(100), root.InitialValue)
	assert.Equal(t, 45*time.Second, root.PruneHorizon)
	assert.Equal(t, 64, root.ObservationChannelCapacity)
	require.Len(t, root.Adapters, 2)
}

func TestLoadDecodesAdapterFields(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	root, err := Load(path)
	require.NoError(t, err)

	square := root.Adapters[0]
	assert.Equal(t, "square", square.SourceID)
	assert.Equal(t, 500*time.Millisecond, square.Backoff)
	assert.Equal(t, 2*time.Second, square.PollInterval)
	assert.Equal(t, "https://example.test", square.Platform["base_url"])

	interp, err := square.ParseInterpretation()
	require.NoError(t, err)
	assert.Equal(t, adapter.InterpretationTransition, interp)

	mode, err := square.WriteModeValue()
	require.NoError(t, err)
	assert.Equal(t, adapter.WriteModeGuarded, mode)
}

func TestLoadDefaultsWriteModeToBlind(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	root, err := Load(path)
	require.NoError(t, err)

	mode, err := root.Adapters[1].WriteModeValue()
	require.NoError(t, err)
	assert.Equal(t, adapter.WriteModeBlind, mode)
}

func TestLoadAppliesDefaultsWhenOmitted(t *testing.T) {
	path := writeTempConfig(t, `
initial_value: 1
platforms:
  - source_id: only
    interpretation: assignment
    poll_interval: 1s
`)

	root, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, root.PruneHorizon)
	assert.Equal(t, 256, root.ObservationChannelCapacity)
}

func TestLoadRejectsUnknownInterpretation(t *testing.T) {
	path := writeTempConfig(t, `
initial_value: 1
platforms:
  - source_id: bad
    interpretation: bogus
    poll_interval: 1s
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingSourceID(t *testing.T) {
	path := writeTempConfig(t, `
initial_value: 1
platforms:
  - interpretation: transition
    poll_interval: 1s
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestSeedValueReflectsInitialValue(t *testing.T) {
	root := Root{InitialValue: 7}
	assert.EqualValues(t, 7, root.SeedValue())
}

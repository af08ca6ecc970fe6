// Package config loads synchro's configuration file, covering exactly the
// core-affecting options spec §6 names (initial_value, prune_horizon,
// observation_channel_capacity, per-adapter source_id/interpretation/
// backoff) plus arbitrary adapter-private platform blocks.
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/synchro-systems/synchro/adapter"
	"github.com/synchro-systems/synchro/value"
)

// AdapterConfig is one per-adapter block, grounded on
// original_source/src/real_world/config.rs's PlatformConfig /
// SquarePollingConfig shape (source_id, interpretation, backoff, plus
// whatever platform-specific parameters that platform's own adapter
// package decodes out of Platform itself).
type AdapterConfig struct {
	SourceID       string                 `mapstructure:"source_id"`
	Interpretation string                 `mapstructure:"interpretation"`
	WriteMode      string                 `mapstructure:"write_mode"`
	Backoff        time.Duration          `mapstructure:"backoff"`
	PollInterval   time.Duration          `mapstructure:"poll_interval"`
	Platform       map[string]interface{} `mapstructure:"platform"`
}

// Root is the top-level configuration, matching
// original_source/src/real_world/config.rs's RealWorldConfig generalized
// with the core options spec §6 calls out explicitly.
type Root struct {
	InitialValue               int64           `mapstructure:"initial_value"`
	PruneHorizon               time.Duration   `mapstructure:"prune_horizon"`
	ObservationChannelCapacity int             `mapstructure:"observation_channel_capacity"`
	Adapters                   []AdapterConfig `mapstructure:"platforms"`
}

// ParseInterpretation parses the configured interpretation string into
// adapter.Interpretation.
func (a AdapterConfig) ParseInterpretation() (adapter.Interpretation, error) {
	switch a.Interpretation {
	case "transition", "Transition":
		return adapter.InterpretationTransition, nil
	case "mutation", "all_mut", "AllMut":
		return adapter.InterpretationMutation, nil
	case "assignment", "last_assn", "LastAssn":
		return adapter.InterpretationAssignment, nil
	default:
		return 0, fmt.Errorf("config: unknown interpretation %q for source %q", a.Interpretation, a.SourceID)
	}
}

// WriteModeValue parses the configured write_mode string into adapter.WriteMode.
func (a AdapterConfig) WriteModeValue() (adapter.WriteMode, error) {
	switch a.WriteMode {
	case "", "blind":
		return adapter.WriteModeBlind, nil
	case "guarded":
		return adapter.WriteModeGuarded, nil
	default:
		return 0, fmt.Errorf("config: unknown write_mode %q for source %q", a.WriteMode, a.SourceID)
	}
}

// SeedValue returns the configured initial value as a core Value.
func (r Root) SeedValue() value.Value {
	return value.Value(r.InitialValue)
}

// Load reads and decodes the configuration file at path. viper
// autodetects the format from the file extension (yaml/json/toml), and
// mapstructure decodes the result into Root with the teacher's
// DecodeHook(s), specifically the string-to-duration hook every adapter's
// backoff/poll_interval field relies on.
func Load(path string) (*Root, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("prune_horizon", 30*time.Second)
	v.SetDefault("observation_channel_capacity", 256)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var root Root
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&root, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	for _, a := range root.Adapters {
		if a.SourceID == "" {
			return nil, fmt.Errorf("config: adapter missing source_id")
		}
		if _, err := a.ParseInterpretation(); err != nil {
			return nil, err
		}
		if _, err := a.WriteModeValue(); err != nil {
			return nil, err
		}
	}

	return &root, nil
}

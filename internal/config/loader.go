package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded over DefaultRunnerConfig, so a file only needs the keys it
// changes. A custom path that is missing, malformed or invalid is an error;
// the other locations are skipped silently when unusable.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRunner(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", runnerFile)); err == nil {
		if cfg, err := ParseRunner(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRunner decodes YAML over the defaults and validates the result.
func ParseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

const runnerFile = "runner.yaml"

// UserConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", runnerFile)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		cfg.Difficulty.LevelOffset = LevelOffsetForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxCollisions = 3
		cfg.Enemy.FireballEvery = 0
	case DifficultyHard:
		cfg.Player.MaxCollisions = 1
		cfg.Enemy.MaxGap = cfg.Enemy.StartGap
	}
}

// Validate reports every problem with the configuration at once.
func (c *RunnerConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	l := c.Layout
	if l.RowsPerChunk < 1 {
		add("layout.rows_per_chunk must be at least 1, got %d", l.RowsPerChunk)
	}
	if !(l.RowSpacing > 0) || math.IsInf(l.RowSpacing, 0) {
		add("layout.row_spacing must be positive, got %v", l.RowSpacing)
	}
	for _, ch := range []struct {
		name string
		v    float64
	}{
		{"empty_row_chance", l.EmptyRowChance},
		{"two_wide_chance", l.TwoWideChance},
		{"extra_single_chance", l.ExtraSingleChance},
		{"coin_row_chance", l.CoinRowChance},
		{"powerup_chance", l.PowerupChance},
	} {
		if !(ch.v >= 0 && ch.v <= 1) {
			add("layout.%s must be within [0,1], got %v", ch.name, ch.v)
		}
	}
	if l.CoinTrailMin < 1 || l.CoinTrailMax < l.CoinTrailMin {
		add("layout.coin_trail_min/max must satisfy 1 <= min <= max, got %d..%d", l.CoinTrailMin, l.CoinTrailMax)
	}
	if l.PowerupRowGap < 0 {
		add("layout.powerup_row_gap must not be negative, got %d", l.PowerupRowGap)
	}

	if err := c.Catalog.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("catalog: %w", err))
	}

	if c.Track.StartingChunks < 1 {
		add("track.starting_chunks must be at least 1, got %d", c.Track.StartingChunks)
	}
	if c.Track.DespawnBehind < 0 {
		add("track.despawn_behind must not be negative, got %v", c.Track.DespawnBehind)
	}
	if !(c.Player.BaseSpeed > 0) {
		add("player.base_speed must be positive, got %v", c.Player.BaseSpeed)
	}
	if c.Player.MaxCollisions < 1 {
		add("player.max_collisions must be at least 1, got %d", c.Player.MaxCollisions)
	}
	if c.Player.RecoveryTicks < 0 || c.Player.JumpTicks < 0 {
		add("player tick counts must not be negative")
	}
	if c.Enemy.Enabled && c.Enemy.MaxGap < c.Enemy.StartGap {
		add("enemy.max_gap (%v) must not be below enemy.start_gap (%v)", c.Enemy.MaxGap, c.Enemy.StartGap)
	}
	if c.Enemy.FireballSlowdown < 0 || c.Enemy.FireballSlowdown > 1 {
		add("enemy.fireball_slowdown must be within [0,1], got %v", c.Enemy.FireballSlowdown)
	}

	switch c.Difficulty.Progression.Type {
	case ProgressionDistance, ProgressionTime, ProgressionNone:
	default:
		add("difficulty.progression.type %q is not one of distance, time, none", c.Difficulty.Progression.Type)
	}
	if c.Difficulty.LevelOffset < 0 {
		add("difficulty.level_offset must not be negative, got %d", c.Difficulty.LevelOffset)
	}

	return errors.Join(errs...)
}

// Package config provides YAML-based configuration loading and difficulty
// management for the runner.
package config

import "github.com/vovakirdan/tui-runner/internal/layout"

// RunnerConfig contains all configuration for the lane runner.
type RunnerConfig struct {
	Layout     layout.Params    `yaml:"layout"`
	Catalog    layout.Catalog   `yaml:"catalog"`
	Track      TrackConfig      `yaml:"track"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Pickups    PickupsConfig    `yaml:"pickups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TrackConfig controls how many chunks are kept alive around the player.
type TrackConfig struct {
	StartingChunks int     `yaml:"starting_chunks"` // Chunks laid out at reset and kept alive
	DespawnBehind  float64 `yaml:"despawn_behind"`  // Distance behind the player before a chunk is dropped
}

// PlayerConfig defines player movement and damage parameters.
type PlayerConfig struct {
	BaseSpeed     float64 `yaml:"base_speed"`     // Distance per tick at difficulty 0
	MaxCollisions int     `yaml:"max_collisions"` // Health at the start of a run
	RecoveryTicks int     `yaml:"recovery_ticks"` // Ticks to return to full speed after a hit
	JumpTicks     int     `yaml:"jump_ticks"`     // Ticks spent airborne per jump
	ScreenRow     int     `yaml:"screen_row"`     // Player row counted from the bottom of the track view
}

// EnemyConfig defines the chaser behind the player.
type EnemyConfig struct {
	Enabled          bool    `yaml:"enabled"`
	StartGap         float64 `yaml:"start_gap"`         // Distance behind the player at reset
	MaxGap           float64 `yaml:"max_gap"`           // The enemy never falls further behind than this
	LaneLagTicks     int     `yaml:"lane_lag_ticks"`    // Delay before following a lane change
	FireballEvery    int     `yaml:"fireball_every"`    // Ticks between fireballs, 0 disables them
	FireballSpeed    float64 `yaml:"fireball_speed"`    // Distance per tick on top of the enemy's speed
	FireballSlowdown float64 `yaml:"fireball_slowdown"` // Speed factor applied to the player on a hit
}

// PickupsConfig defines coin and power-up effects.
type PickupsConfig struct {
	CoinValue         int     `yaml:"coin_value"`
	MagnetRadius      float64 `yaml:"magnet_radius"`      // Distance ahead within which coins are pulled in
	InvulnerableSpeed float64 `yaml:"invulnerable_speed"` // Speed factor while invulnerable
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	LevelOffset  int               `yaml:"level_offset"`  // Added to every chunk's generator level
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Distance/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// Progression types.
const (
	ProgressionDistance = "distance"
	ProgressionTime     = "time"
	ProgressionNone     = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a CLI or menu string into a preset. Unknown strings
// return false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	for _, p := range Presets {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// LevelOffsetForPreset returns the generator level every chunk starts from.
func LevelOffsetForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 8
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

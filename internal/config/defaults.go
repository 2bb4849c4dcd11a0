package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-runner/internal/layout"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerYAML returns the embedded default configuration file, used by
// the CLI to seed a user config.
func DefaultRunnerYAML() []byte {
	return append([]byte(nil), defaultRunnerYAML...)
}

// DefaultCatalog returns the obstacles and pickups the runner ships with.
func DefaultCatalog() layout.Catalog {
	return layout.Catalog{
		Obstacles: []layout.ObstacleSpec{
			{ID: "barrier", Name: "Barrier", Glyph: "▄", LaneWidth: 1, Placements: layout.AllowAllSingle, Jumpable: true},
			{ID: "crate", Name: "Crate", Glyph: "▓", LaneWidth: 1, Placements: layout.AllowAllSingle},
			{ID: "cone", Name: "Cone", Glyph: "▲", LaneWidth: 1, Placements: layout.AllowLeft | layout.AllowRight, Jumpable: true},
			{ID: "train", Name: "Train", Glyph: "█", LaneWidth: 2, Placements: layout.AllowAllSpans},
			{ID: "gate", Name: "Gate", Glyph: "═", LaneWidth: 2, Placements: layout.AllowLeftMiddle, Jumpable: true},
		},
		Coin: true,
		Powerups: []layout.PowerupSpec{
			{ID: "shield", Name: "Shield", Kind: layout.PowerupInvulnerability, DurationTicks: 1200},
			{ID: "magnet", Name: "Magnet", Kind: layout.PowerupMagnet, DurationTicks: 1200},
		},
	}
}

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Layout:  layout.DefaultParams(),
		Catalog: DefaultCatalog(),
		Track: TrackConfig{
			StartingChunks: 6,
			DespawnBehind:  4,
		},
		Player: PlayerConfig{
			BaseSpeed:     0.15,
			MaxCollisions: 2,
			RecoveryTicks: 90,
			JumpTicks:     36,
			ScreenRow:     3,
		},
		Enemy: EnemyConfig{
			Enabled:          true,
			StartGap:         6,
			MaxGap:           8,
			LaneLagTicks:     20,
			FireballEvery:    480,
			FireballSpeed:    0.1,
			FireballSlowdown: 0.5,
		},
		Pickups: PickupsConfig{
			CoinValue:         100,
			MagnetRadius:      10,
			InvulnerableSpeed: 1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			LevelOffset:  0,
			Progression: ProgressionConfig{
				Type:  ProgressionDistance,
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

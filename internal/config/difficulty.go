package config

import "math"

// DifficultyManager calculates dynamic run parameters based on distance/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the current difficulty level (0.0 to 1.0) based on the
// distance travelled or ticks elapsed.
func (d *DifficultyManager) Level(distance float64, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case ProgressionDistance:
		progress = distance / maxAt
	case ProgressionTime:
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the current forward speed based on difficulty level.
func (d *DifficultyManager) Speed(baseSpeed, distance float64, ticks int) float64 {
	level := d.Level(distance, ticks)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// ChunkLevel returns the generator difficulty level for the chunk with the
// given ordinal. With progression enabled every new chunk is one level
// harder; otherwise all chunks use the configured offset.
func (d *DifficultyManager) ChunkLevel(ordinal int) int {
	offset := max(d.cfg.LevelOffset, 0)
	if !d.IsEnabled() {
		return offset
	}
	return offset + max(ordinal, 0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}

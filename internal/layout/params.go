package layout

import "math"

// Params configures chunk layout generation.
type Params struct {
	RowsPerChunk int     `json:"rows_per_chunk" yaml:"rows_per_chunk"`
	RowSpacing   float64 `json:"row_spacing" yaml:"row_spacing"` // Z distance between rows
	ZStart       float64 `json:"z_start" yaml:"z_start"`         // Z offset of the first row from the chunk origin
	LaneOffset   float64 `json:"lane_offset" yaml:"lane_offset"` // X distance between adjacent lanes
	CenterX      float64 `json:"center_x" yaml:"center_x"`       // X of the middle lane

	EmptyRowChance    float64 `json:"empty_row_chance" yaml:"empty_row_chance"`
	TwoWideChance     float64 `json:"two_wide_chance" yaml:"two_wide_chance"`
	ExtraSingleChance float64 `json:"extra_single_chance" yaml:"extra_single_chance"`

	CoinRowChance float64 `json:"coin_row_chance" yaml:"coin_row_chance"`
	CoinTrailMin  int     `json:"coin_trail_min" yaml:"coin_trail_min"` // Inclusive
	CoinTrailMax  int     `json:"coin_trail_max" yaml:"coin_trail_max"` // Inclusive
	PowerupChance float64 `json:"powerup_chance" yaml:"powerup_chance"`
	PowerupRowGap int     `json:"powerup_row_gap" yaml:"powerup_row_gap"`
}

// DefaultParams returns the tuning the runner ships with.
func DefaultParams() Params {
	return Params{
		RowsPerChunk:      2,
		RowSpacing:        8,
		ZStart:            2,
		LaneOffset:        4.55,
		CenterX:           0,
		EmptyRowChance:    0.15,
		TwoWideChance:     0.35,
		ExtraSingleChance: 0.25,
		CoinRowChance:     0.55,
		CoinTrailMin:      2,
		CoinTrailMax:      4,
		PowerupChance:     0.15,
		PowerupRowGap:     3,
	}
}

// Difficulty ramp applied per difficulty level.
const (
	TwoWidePerLevel  = 0.02
	EmptyRowPerLevel = 0.01
)

// Sanitized returns a copy with every field forced into its valid range:
// probabilities into [0,1], counts and distances non-negative, NaN treated
// as zero, coin-trail budgets at least one row and an inverted coin-trail
// range swapped.
func (p Params) Sanitized() Params {
	p.RowsPerChunk = max(p.RowsPerChunk, 0)
	p.RowSpacing = nonNegative(p.RowSpacing)
	p.ZStart = finite(p.ZStart)
	p.LaneOffset = nonNegative(p.LaneOffset)
	p.CenterX = finite(p.CenterX)

	p.EmptyRowChance = clamp01(p.EmptyRowChance)
	p.TwoWideChance = clamp01(p.TwoWideChance)
	p.ExtraSingleChance = clamp01(p.ExtraSingleChance)
	p.CoinRowChance = clamp01(p.CoinRowChance)
	p.PowerupChance = clamp01(p.PowerupChance)

	p.CoinTrailMin = max(p.CoinTrailMin, 1)
	p.CoinTrailMax = max(p.CoinTrailMax, 1)
	if p.CoinTrailMin > p.CoinTrailMax {
		p.CoinTrailMin, p.CoinTrailMax = p.CoinTrailMax, p.CoinTrailMin
	}
	p.PowerupRowGap = max(p.PowerupRowGap, 0)
	return p
}

// EffectiveParams returns the sanitized parameters with the difficulty ramp
// for the given level applied. Negative levels are treated as zero.
func EffectiveParams(p Params, difficultyLevel int) Params {
	p = p.Sanitized()
	level := float64(max(difficultyLevel, 0))
	p.TwoWideChance = clamp01(p.TwoWideChance + TwoWidePerLevel*level)
	p.EmptyRowChance = clamp01(p.EmptyRowChance - EmptyRowPerLevel*level)
	return p
}

// RowZ returns the chunk-local Z of the given row.
func (p Params) RowZ(row int) float64 {
	return p.ZStart + float64(row)*p.RowSpacing
}

// ChunkLength returns the Z extent a chunk of these parameters covers,
// including the lead-in before the first row and one spacing after the last.
func (p Params) ChunkLength() float64 {
	return p.ZStart + float64(p.RowsPerChunk)*p.RowSpacing
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

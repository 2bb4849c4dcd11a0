package runner

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/layout"
)

// Player is the auto-running character.
type Player struct {
	Lane   layout.Lane
	Z      float64
	Health int

	jumpTicks    int     // Remaining airborne ticks
	recoverTicks int     // Remaining ticks of the speed recovery
	recoverTotal int     // Length of the current recovery
	recoverFrom  float64 // Speed factor right after the hit
}

func newPlayer(cfg config.PlayerConfig) Player {
	return Player{
		Lane:   layout.Middle,
		Health: cfg.MaxCollisions,
	}
}

// Airborne reports whether the player is mid-jump.
func (p *Player) Airborne() bool {
	return p.jumpTicks > 0
}

// Recovering reports whether the player is still below full speed after a hit.
func (p *Player) Recovering() bool {
	return p.recoverTicks > 0
}

// SpeedFactor returns the fraction of the run speed the player currently
// moves at. It rises linearly from the post-hit value back to 1.
func (p *Player) SpeedFactor() float64 {
	if p.recoverTicks <= 0 || p.recoverTotal <= 0 {
		return 1
	}
	done := 1 - float64(p.recoverTicks)/float64(p.recoverTotal)
	return p.recoverFrom + (1-p.recoverFrom)*done
}

func (p *Player) moveLeft() {
	if p.Lane > layout.Left {
		p.Lane--
	}
}

func (p *Player) moveRight() {
	if p.Lane < layout.Right {
		p.Lane++
	}
}

func (p *Player) jump(ticks int) {
	if !p.Airborne() {
		p.jumpTicks = ticks
	}
}

// stagger drops the speed factor to from and starts a recovery of the given
// length.
func (p *Player) stagger(from float64, ticks int) {
	if ticks <= 0 {
		return
	}
	p.recoverFrom = from
	p.recoverTicks = ticks
	p.recoverTotal = ticks
}

// bump pushes the player into a random lane other than the current one.
func (p *Player) bump(rng *rand.Rand) {
	others := make([]layout.Lane, 0, layout.NumLanes-1)
	for _, l := range layout.Lanes {
		if l != p.Lane {
			others = append(others, l)
		}
	}
	p.Lane = others[rng.Intn(len(others))]
}

// tick advances the jump and recovery timers.
func (p *Player) tick() {
	if p.jumpTicks > 0 {
		p.jumpTicks--
	}
	if p.recoverTicks > 0 {
		p.recoverTicks--
	}
}

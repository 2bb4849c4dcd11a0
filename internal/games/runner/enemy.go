package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/layout"
)

// fireballRange is how far past the player a missed fireball keeps flying.
const fireballRange = 30

// Enemy chases the player at the base run speed and follows their lane after
// a delay. It gains ground whenever the player is slowed down.
type Enemy struct {
	Z    float64
	Lane layout.Lane

	target       layout.Lane
	lagTicks     int
	fireCooldown int
}

// Fireball flies straight up its lane towards the player.
type Fireball struct {
	Z    float64
	Lane layout.Lane
}

func newEnemy(cfg config.EnemyConfig, p Player) Enemy {
	return Enemy{
		Z:            p.Z - cfg.StartGap,
		Lane:         p.Lane,
		target:       p.Lane,
		fireCooldown: cfg.FireballEvery,
	}
}

// stepEnemy moves the enemy and its fireballs. It reports whether the enemy
// caught the player.
func (g *Game) stepEnemy(speed float64) bool {
	if !g.cfg.Enemy.Enabled {
		return false
	}
	e := &g.enemy
	cfg := g.cfg.Enemy

	// Lane following with lag
	if g.player.Lane != e.target {
		e.target = g.player.Lane
		e.lagTicks = cfg.LaneLagTicks
	}
	if e.lagTicks > 0 {
		e.lagTicks--
	}
	if e.lagTicks == 0 {
		e.Lane = e.target
	}

	e.Z += speed
	if gap := g.player.Z - e.Z; gap > cfg.MaxGap {
		e.Z = g.player.Z - cfg.MaxGap
	}

	g.stepFireballs(speed)

	if e.Z < g.player.Z {
		return false
	}
	if e.Lane == g.player.Lane && !g.effects.Invulnerable() {
		return true
	}
	// Held just behind a player it cannot touch.
	e.Z = g.player.Z - 1
	return false
}

func (g *Game) stepFireballs(speed float64) {
	cfg := g.cfg.Enemy
	e := &g.enemy

	if cfg.FireballEvery > 0 {
		e.fireCooldown--
		if e.fireCooldown <= 0 {
			g.fireballs = append(g.fireballs, Fireball{Z: e.Z, Lane: e.Lane})
			e.fireCooldown = cfg.FireballEvery
			g.emit("fireball", e.Lane.String())
		}
	}

	alive := g.fireballs[:0]
	for _, f := range g.fireballs {
		from := f.Z
		f.Z += speed + cfg.FireballSpeed
		// A hit is any crossing of the player's row this tick, however fast
		// the fireball flies.
		if f.Lane == g.player.Lane && from < g.player.Z+1 && f.Z >= g.player.Z {
			if !g.effects.Invulnerable() {
				g.hurt(cfg.FireballSlowdown, "fireball")
			}
			continue
		}
		if f.Z > g.player.Z+fireballRange {
			continue
		}
		alive = append(alive, f)
	}
	g.fireballs = alive
}

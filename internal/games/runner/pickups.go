package runner

import "github.com/vovakirdan/tui-runner/internal/layout"

// defaultPowerupTicks is used when a catalog entry has no duration.
const defaultPowerupTicks = 1200

// Effects tracks the active power-ups.
type Effects struct {
	InvulnerableTicks int
	MagnetTicks       int
}

// Invulnerable reports whether damage is currently ignored.
func (e *Effects) Invulnerable() bool {
	return e.InvulnerableTicks > 0
}

// Magnet reports whether coins are currently pulled in from every lane.
func (e *Effects) Magnet() bool {
	return e.MagnetTicks > 0
}

// activate starts the power-up's effect. A power-up that is already active is
// not restacked; activate reports whether the effect started.
func (e *Effects) activate(spec *layout.PowerupSpec) bool {
	if spec == nil {
		return false
	}
	ticks := spec.DurationTicks
	if ticks <= 0 {
		ticks = defaultPowerupTicks
	}
	switch spec.Kind {
	case layout.PowerupInvulnerability:
		if e.Invulnerable() {
			return false
		}
		e.InvulnerableTicks = ticks
	case layout.PowerupMagnet:
		if e.Magnet() {
			return false
		}
		e.MagnetTicks = ticks
	default:
		return false
	}
	return true
}

func (e *Effects) tick() {
	if e.InvulnerableTicks > 0 {
		e.InvulnerableTicks--
	}
	if e.MagnetTicks > 0 {
		e.MagnetTicks--
	}
}

// collect takes every pickup the player reached while moving from z0 to z1.
// Coins in the player's lane are taken on contact; with the magnet active,
// coins in any lane up to magnetRadius ahead are pulled in as well.
func (g *Game) collect(z0, z1 float64) {
	reach := z1
	if g.effects.Magnet() {
		reach = z1 + g.cfg.Pickups.MagnetRadius
	}

	g.track.eachPickup(func(p *Pickup) {
		if p.Z <= z0-pickupTolerance || p.Z > reach {
			return
		}
		switch p.Kind {
		case layout.PickupCoin:
			touched := p.Z <= z1 && p.Lane == g.player.Lane
			if !touched && !g.effects.Magnet() {
				return
			}
			p.Taken = true
			g.coins++
		case layout.PickupPowerup:
			if p.Z > z1 || p.Lane != g.player.Lane {
				return
			}
			p.Taken = true
			if g.effects.activate(p.Powerup) {
				g.emit("powerup", string(p.Powerup.Kind))
			}
		}
	})
}

// pickupTolerance lets a pickup the player is standing on be collected after
// a lane change.
const pickupTolerance = 0.5

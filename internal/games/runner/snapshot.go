package runner

import "math"

// Snapshot captures the complete game state for determinism testing.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick        uint64
	Score       int
	Coins       int
	Health      int
	Lane        int
	Z           float64
	SpeedFactor float64
	Airborne    bool
	GameOver    bool

	EnemyZ    float64
	EnemyLane int
	Fireballs int

	InvulnerableTicks int
	MagnetTicks       int

	Chunks      int // Chunks spawned so far
	FirstChunk  int // Ordinal of the nearest live chunk
	HitCount    int // Obstacles collided with in live chunks
	PickupsLeft int // Pickups not yet taken in live chunks
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:              g.tick,
		Score:             g.Score(),
		Coins:             g.coins,
		Health:            g.player.Health,
		Lane:              int(g.player.Lane),
		Z:                 g.player.Z,
		SpeedFactor:       g.player.SpeedFactor(),
		Airborne:          g.player.Airborne(),
		GameOver:          g.gameOver,
		EnemyZ:            g.enemy.Z,
		EnemyLane:         int(g.enemy.Lane),
		Fireballs:         len(g.fireballs),
		InvulnerableTicks: g.effects.InvulnerableTicks,
		MagnetTicks:       g.effects.MagnetTicks,
	}
	if g.track == nil {
		return snap
	}

	snap.Chunks = g.track.Spawned()
	if cs := g.track.Chunks(); len(cs) > 0 {
		snap.FirstChunk = cs[0].Ordinal
	}
	g.track.eachObstacle(func(o *Obstacle) {
		if o.Hit {
			snap.HitCount++
		}
	})
	g.track.eachPickup(func(*Pickup) {
		snap.PickupsLeft++
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	b := func(v bool) uint64 {
		if v {
			return 1
		}
		return 0
	}

	h := snap.Tick
	h = h*31 + uint64(snap.Score)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Health) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lane)   //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Z)
	h = h*31 + math.Float64bits(snap.SpeedFactor)
	h = h*31 + b(snap.Airborne)
	h = h*31 + b(snap.GameOver)
	h = h*31 + math.Float64bits(snap.EnemyZ)
	h = h*31 + uint64(snap.EnemyLane)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Fireballs)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.InvulnerableTicks) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MagnetTicks)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Chunks)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FirstChunk)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HitCount)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PickupsLeft)       //#nosec G115 -- hash computation
	return h
}

package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/layout"
)

// Obstacle is an obstacle instantiated on the track.
type Obstacle struct {
	Z     float64
	Lane  layout.Lane // Leftmost lane covered
	Width int
	Spec  layout.ObstacleSpec
	Hit   bool // Already collided with; never collides again
}

// Covers reports whether the obstacle occupies lane l.
func (o Obstacle) Covers(l layout.Lane) bool {
	return l >= o.Lane && l < o.Lane+layout.Lane(o.Width)
}

// Pickup is a coin or power-up instantiated on the track.
type Pickup struct {
	Z       float64
	Lane    layout.Lane
	Kind    layout.PickupKind
	Powerup *layout.PowerupSpec
	Taken   bool
}

// Chunk is one generated section of track.
type Chunk struct {
	Ordinal   int
	Origin    float64 // World Z of the chunk start
	Length    float64
	Level     int // Generator difficulty level
	Rows      []layout.RowLayout
	Obstacles []Obstacle
	Pickups   []Pickup
}

// End returns the world Z just past the chunk.
func (c *Chunk) End() float64 {
	return c.Origin + c.Length
}

// Track keeps a fixed number of chunks laid end to end ahead of the player.
// A chunk is dropped once it is fully behind the player and a new one is
// appended at the far end.
type Track struct {
	params     layout.Params
	catalog    layout.Catalog
	difficulty *config.DifficultyManager
	keep       int
	behind     float64
	leadIn     float64

	seed   int64
	chunks []*Chunk
	next   int     // Ordinal of the next chunk to spawn
	nextZ  float64 // Origin of the next chunk to spawn
}

// NewTrack creates a track and lays out its starting chunks.
func NewTrack(cfg config.RunnerConfig, diff *config.DifficultyManager, seed int64) *Track {
	params := cfg.Layout.Sanitized()
	t := &Track{
		params:     params,
		catalog:    cfg.Catalog,
		difficulty: diff,
		keep:       max(cfg.Track.StartingChunks, 1),
		behind:     max(cfg.Track.DespawnBehind, 0),
		leadIn:     2 * params.RowSpacing,
	}
	t.Reset(seed)
	return t
}

// Reset discards every chunk and lays out the starting chunks again.
func (t *Track) Reset(seed int64) {
	t.seed = seed
	t.chunks = t.chunks[:0]
	t.next = 0
	t.nextZ = t.leadIn
	for len(t.chunks) < t.keep {
		t.spawn()
	}
}

// Advance drops chunks that are fully behind playerZ and spawns their
// replacements. It returns the number of chunks spawned.
func (t *Track) Advance(playerZ float64) int {
	spawned := 0
	for len(t.chunks) > 0 && t.chunks[0].End() < playerZ-t.behind {
		t.chunks[0] = nil
		t.chunks = t.chunks[1:]
		t.spawn()
		spawned++
	}
	return spawned
}

// spawn generates the next chunk from its own seeded source.
func (t *Track) spawn() {
	level := t.difficulty.ChunkLevel(t.next)
	rows := layout.Generate(t.params, t.catalog, level, layout.NewChunkSource(t.seed, t.next))

	c := &Chunk{
		Ordinal: t.next,
		Origin:  t.nextZ,
		Length:  t.params.ChunkLength(),
		Level:   level,
		Rows:    rows,
	}
	for _, r := range rows {
		z := c.Origin + r.Z
		for _, o := range r.Obstacles {
			c.Obstacles = append(c.Obstacles, Obstacle{Z: z, Lane: o.Lane, Width: o.Width, Spec: o.Spec})
		}
		for _, p := range r.Pickups {
			c.Pickups = append(c.Pickups, Pickup{Z: z, Lane: p.Lane, Kind: p.Kind, Powerup: p.Powerup})
		}
	}

	t.chunks = append(t.chunks, c)
	t.next++
	t.nextZ = c.End()
}

// Chunks returns the live chunks, nearest first.
func (t *Track) Chunks() []*Chunk {
	return t.chunks
}

// Spawned returns how many chunks have been generated since the last reset.
func (t *Track) Spawned() int {
	return t.next
}

// Seed returns the run seed the chunks are derived from.
func (t *Track) Seed() int64 {
	return t.seed
}

// eachObstacle calls fn for every live obstacle.
func (t *Track) eachObstacle(fn func(o *Obstacle)) {
	for _, c := range t.chunks {
		for i := range c.Obstacles {
			fn(&c.Obstacles[i])
		}
	}
}

// eachPickup calls fn for every live pickup not yet taken.
func (t *Track) eachPickup(fn func(p *Pickup)) {
	for _, c := range t.chunks {
		for i := range c.Pickups {
			if !c.Pickups[i].Taken {
				fn(&c.Pickups[i])
			}
		}
	}
}

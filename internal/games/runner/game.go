// Package runner implements a three-lane endless runner. The track is built
// from chunks produced by the layout generator; the player dodges obstacles,
// collects coins and power-ups and stays ahead of a chasing enemy.
package runner

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/layout"
)

// Visual characters for rendering
const (
	PlayerChar    = '@'
	EnemyChar     = 'W'
	FireballChar  = '*'
	CoinChar      = 'o'
	LaneEdge      = '│'
	LaneDash      = '┊'
	ChunkSeamChar = '╌'
	HeartChar     = "♥"
)

// laneWidth is the number of screen columns per lane.
const laneWidth = 7

// Game implements the lane runner game logic.
type Game struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand // Lane bumps after a hit

	track     *Track
	player    Player
	enemy     Enemy
	fireballs []Fireball
	effects   Effects

	coins    int
	tick     uint64
	gameOver bool
	paused   bool
	events   []core.Event
}

// New creates a runner using the given configuration.
func New(cfg config.RunnerConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the identifier runs are stored under.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	if g.track == nil {
		g.track = NewTrack(g.cfg, g.difficulty, runtime.Seed)
	} else {
		g.track.difficulty = g.difficulty
		g.track.Reset(runtime.Seed)
	}

	g.player = newPlayer(g.cfg.Player)
	g.enemy = newEnemy(g.cfg.Enemy, g.player)
	g.fireballs = g.fireballs[:0]
	g.effects = Effects{}
	g.coins = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.events = g.events[:0]
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]
	if g.gameOver {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tick++

	if in.Has(core.ActionLeft) {
		g.player.moveLeft()
	}
	if in.Has(core.ActionRight) {
		g.player.moveRight()
	}
	if in.Has(core.ActionJump) {
		g.player.jump(g.cfg.Player.JumpTicks)
	}

	base := g.difficulty.Speed(g.cfg.Player.BaseSpeed, g.player.Z, int(g.tick))
	speed := base * g.player.SpeedFactor()
	if m := g.cfg.Pickups.InvulnerableSpeed; g.effects.Invulnerable() && m > 0 {
		speed *= m
	}

	z0 := g.player.Z
	g.player.Z += speed
	g.player.tick()

	g.collide(z0, g.player.Z)
	g.collect(z0, g.player.Z)
	g.effects.tick()

	if !g.gameOver && g.stepEnemy(base) {
		g.gameOver = true
		g.emit("game_over", "caught")
	}

	if n := g.track.Advance(g.player.Z); n > 0 {
		g.emit("chunk", strconv.Itoa(g.track.Spawned()-1))
	}

	return g.result()
}

// collide resolves obstacles the player ran into while moving from z0 to z1.
// At most one obstacle hurts the player per tick.
func (g *Game) collide(z0, z1 float64) {
	hit := false
	g.track.eachObstacle(func(o *Obstacle) {
		if hit || o.Hit || o.Z <= z0 || o.Z > z1 || !o.Covers(g.player.Lane) {
			return
		}
		if o.Spec.Jumpable && g.player.Airborne() {
			return
		}
		o.Hit = true
		if g.effects.Invulnerable() {
			return
		}
		hit = true
		g.hurt(0, o.Spec.ID)
		g.player.bump(g.rng)
	})
}

// hurt costs one health and slows the player to from, recovering over the
// configured number of ticks.
func (g *Game) hurt(from float64, cause string) {
	if g.gameOver {
		return
	}
	g.player.Health--
	g.player.stagger(from, g.cfg.Player.RecoveryTicks)
	g.emit("hit", cause)
	if g.player.Health <= 0 {
		g.gameOver = true
		g.emit("game_over", cause)
	}
}

func (g *Game) emit(kind, detail string) {
	g.events = append(g.events, core.Event{Kind: kind, Detail: detail})
}

func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if len(g.events) > 0 {
		res.Events = append([]core.Event(nil), g.events...)
	}
	return res
}

// Distance returns how far the player has run.
func (g *Game) Distance() float64 {
	return g.player.Z
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Score returns coin points plus distance travelled.
func (g *Game) Score() int {
	return g.coins*g.cfg.Pickups.CoinValue + int(g.player.Z)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.Score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
		Coins:    g.coins,
		Distance: int(g.player.Z),
	}
	if g.track != nil {
		st.Chunks = g.track.Spawned()
	}
	return st
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.track == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	trackW := layout.NumLanes*(laneWidth+1) + 1
	x0 := (w - trackW) / 2
	top, bottom := 1, h-2
	playerY := bottom - g.cfg.Player.ScreenRow

	yFor := func(z float64) int {
		return playerY - int(math.Round(z-g.player.Z))
	}
	visible := func(y int) bool { return y >= top && y <= bottom }

	// Chunk seams, under the lane edges
	for _, c := range g.track.Chunks() {
		if y := yFor(c.Origin); visible(y) {
			dst.DrawHLineColored(x0+1, y, trackW-2, ChunkSeamChar, core.ColorTrack)
		}
	}

	// Lanes
	for i := 0; i <= layout.NumLanes; i++ {
		edge := LaneDash
		if i == 0 || i == layout.NumLanes {
			edge = LaneEdge
		}
		dst.DrawVLineColored(x0+i*(laneWidth+1), top, bottom-top+1, edge, core.ColorTrack)
	}

	for _, c := range g.track.Chunks() {
		for _, o := range c.Obstacles {
			y := yFor(o.Z)
			if !visible(y) {
				continue
			}
			g.drawObstacle(dst, x0, y, o)
		}
		for _, p := range c.Pickups {
			y := yFor(p.Z)
			if p.Taken || !visible(y) {
				continue
			}
			r, col := pickupGlyph(p)
			dst.SetColored(laneCenter(x0, p.Lane), y, r, col)
		}
	}

	for _, f := range g.fireballs {
		if y := yFor(f.Z); visible(y) {
			dst.SetColored(laneCenter(x0, f.Lane), y, FireballChar, core.ColorFireball)
		}
	}

	if g.cfg.Enemy.Enabled {
		if y := yFor(g.enemy.Z); visible(y) {
			dst.SetColored(laneCenter(x0, g.enemy.Lane), y, EnemyChar, core.ColorEnemy)
		}
	}

	g.drawPlayer(dst, x0, playerY)
	g.drawHUD(dst)

	help := " ←/→ lane  space jump  p pause  q quit "
	dst.DrawTextColored(max((w-len([]rune(help)))/2, 0), h-1, help, core.ColorTrack)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.Score()))
	}
}

// laneCenter returns the screen column at the middle of lane l.
func laneCenter(x0 int, l layout.Lane) int {
	return x0 + 1 + int(l)*(laneWidth+1) + laneWidth/2
}

func (g *Game) drawObstacle(dst *core.Screen, x0, y int, o Obstacle) {
	glyph := '#'
	if rs := []rune(o.Spec.Glyph); len(rs) > 0 {
		glyph = rs[0]
	}
	color := core.ColorObstacle
	if o.Spec.Jumpable {
		color = core.ColorLowObstacle
	}
	if o.Hit {
		color = core.ColorSpent
	}

	start := x0 + 1 + int(o.Lane)*(laneWidth+1)
	width := o.Width*(laneWidth+1) - 1
	for x := start; x < start+width; x++ {
		dst.SetColored(x, y, glyph, color)
	}
}

func pickupGlyph(p Pickup) (rune, core.Color) {
	if p.Kind == layout.PickupCoin {
		return CoinChar, core.ColorCoin
	}
	if p.Powerup != nil && p.Powerup.Kind == layout.PowerupMagnet {
		return 'M', core.ColorMagnet
	}
	return 'S', core.ColorShield
}

func (g *Game) drawPlayer(dst *core.Screen, x0, y int) {
	color := core.ColorPlayer
	switch {
	case g.effects.Invulnerable():
		color = core.ColorShield
	case g.player.Recovering() && g.tick%8 < 4:
		color = core.ColorSpent
	}
	x := laneCenter(x0, g.player.Lane)
	dst.SetColored(x, y, PlayerChar, color)
	if g.player.Airborne() {
		dst.SetColored(x, y+1, '˙', core.ColorTrack)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Coins: %d  %s ",
		g.Score(), g.coins, strings.Repeat(HeartChar, max(g.player.Health, 0)))
	dst.DrawText(1, 0, hud)

	var tags []string
	tick := max(g.runtime.TickRate, 1)
	if g.effects.Invulnerable() {
		tags = append(tags, fmt.Sprintf("SHIELD %ds", g.effects.InvulnerableTicks/tick+1))
	}
	if g.effects.Magnet() {
		tags = append(tags, fmt.Sprintf("MAGNET %ds", g.effects.MagnetTicks/tick+1))
	}
	tags = append(tags, fmt.Sprintf("Chunk %d", g.track.Spawned()))
	right := " " + strings.Join(tags, "  ") + " "
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorHUD)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	box := core.CenteredRect(dst.Width(), dst.Height(), max(len(title), len(subtitle))+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	inner := box.Inset(1)
	dst.DrawTextCentered(inner.Y, title)
	dst.DrawTextCentered(inner.Bottom()-1, subtitle)
}

package layout

// Source is the random source the generator draws from. *math/rand.Rand
// satisfies it. Draws happen in a fixed order per row so a given seed always
// reproduces the same chunk:
//
//  1. breather roll
//  2. two-wide roll (only when the cooldown is 0), span tie-break (only on a
//     pressure tie), spec choice
//  3. first single spec choice, extra-single roll (only after a placed
//     single), second single spec choice
//  4. full-row lane to free (only when all lanes ended up blocked)
//  5. coin-row roll and trail budget (only with a coin and no active trail)
//  6. power-up roll and spec choice (only with power-ups and no cooldown)
type Source interface {
	Float64() float64
	Intn(n int) int
}

// intRange draws uniformly from [lo, hi].
func intRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// PickupKind distinguishes coins from power-ups.
type PickupKind string

const (
	PickupCoin    PickupKind = "coin"
	PickupPowerup PickupKind = "powerup"
)

// ObstaclePlacement is one obstacle in a row. Lane is the leftmost lane the
// obstacle covers; Width is 1 or 2.
type ObstaclePlacement struct {
	Lane  Lane         `json:"lane" yaml:"lane"`
	Width int          `json:"width" yaml:"width"`
	X     float64      `json:"x" yaml:"x"`
	Spec  ObstacleSpec `json:"spec" yaml:"spec"`
}

// Covers reports whether the obstacle occupies lane l.
func (o ObstaclePlacement) Covers(l Lane) bool {
	return l >= o.Lane && l < o.Lane+Lane(o.Width)
}

// PickupPlacement is one coin or power-up in a row. Trail identifies the
// coin trail the coin belongs to within its chunk; 0 means a lone coin.
type PickupPlacement struct {
	Lane    Lane         `json:"lane" yaml:"lane"`
	Kind    PickupKind   `json:"kind" yaml:"kind"`
	X       float64      `json:"x" yaml:"x"`
	Trail   int          `json:"trail,omitempty" yaml:"trail,omitempty"`
	Powerup *PowerupSpec `json:"powerup,omitempty" yaml:"powerup,omitempty"`
}

// RowLayout is the finished layout of one row.
type RowLayout struct {
	Index     int                 `json:"index" yaml:"index"`
	Z         float64             `json:"z" yaml:"z"`
	Empty     bool                `json:"empty,omitempty" yaml:"empty,omitempty"` // breather row, no obstacles attempted
	Blocked   LaneMask            `json:"blocked" yaml:"blocked"`
	Obstacles []ObstaclePlacement `json:"obstacles" yaml:"obstacles"`
	Pickups   []PickupPlacement   `json:"pickups" yaml:"pickups"`
}

// pickupLanes returns the lanes that already hold a pickup.
func (r *RowLayout) pickupLanes() LaneMask {
	var m LaneMask
	for _, p := range r.Pickups {
		m[p.Lane] = true
	}
	return m
}

// Generator produces the rows of a single chunk one at a time.
type Generator struct {
	params  Params
	catalog Catalog
	src     Source
	state   State
	row     int
	trailID int // id of the active trail
	trails  int // trails started so far in this chunk
}

// NewGenerator prepares a generator for one chunk. The difficulty ramp for
// level is applied once here.
func NewGenerator(p Params, c Catalog, difficultyLevel int, src Source) *Generator {
	return &Generator{
		params:  EffectiveParams(p, difficultyLevel),
		catalog: c,
		src:     src,
	}
}

// Generate lays out a whole chunk. It always returns exactly RowsPerChunk
// rows (none when RowsPerChunk <= 0).
func Generate(p Params, c Catalog, difficultyLevel int, src Source) []RowLayout {
	g := NewGenerator(p, c, difficultyLevel, src)
	rows := make([]RowLayout, 0, g.params.RowsPerChunk)
	for {
		row, ok := g.Next()
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

// Params returns the effective (sanitized, difficulty-adjusted) parameters.
func (g *Generator) Params() Params {
	return g.params
}

// State returns a copy of the carried generator state.
func (g *Generator) State() State {
	return g.state
}

// Done reports whether every row of the chunk has been produced.
func (g *Generator) Done() bool {
	return g.row >= g.params.RowsPerChunk
}

// Next produces the next row. ok is false once the chunk is complete.
func (g *Generator) Next() (row RowLayout, ok bool) {
	if g.Done() {
		return RowLayout{}, false
	}

	row = RowLayout{
		Index:     g.row,
		Z:         g.params.RowZ(g.row),
		Obstacles: []ObstaclePlacement{},
		Pickups:   []PickupPlacement{},
	}
	g.row++

	if g.src.Float64() < g.params.EmptyRowChance {
		g.breather(&row)
		return row, true
	}

	var blocked LaneMask
	g.placeTwoWide(&row, &blocked)
	if g.placeSingle(&row, &blocked) && g.src.Float64() < g.params.ExtraSingleChance {
		g.placeSingle(&row, &blocked)
	}
	g.enforceFairness(&row, &blocked)
	row.Blocked = blocked

	g.placeCoin(&row, blocked)
	g.placePowerup(&row, blocked)

	g.state.commit(blocked)
	return row, true
}

// breather emits a row without obstacles. Lane pressure is forgotten and an
// active coin trail keeps running through it.
func (g *Generator) breather(row *RowLayout) {
	row.Empty = true
	g.state.resetPressure()
	decrementFloor(&g.state.TwoWideCooldown)

	if g.state.CoinTrailActive {
		g.addCoin(row, g.state.CoinTrailLane, g.trailID)
		g.continueTrail()
	}

	decrementFloor(&g.state.PowerupCooldownRows)
}

func (g *Generator) placeTwoWide(row *RowLayout, blocked *LaneMask) {
	if g.state.TwoWideCooldown > 0 || g.src.Float64() >= g.params.TwoWideChance {
		decrementFloor(&g.state.TwoWideCooldown)
		return
	}

	candidates := make([]Span, 0, len(Spans))
	for _, sp := range Spans {
		ls := sp.Lanes()
		if !blocked[ls[0]] && !blocked[ls[1]] {
			candidates = append(candidates, sp)
		}
	}
	if len(candidates) == 0 {
		return
	}

	span := candidates[0]
	if len(candidates) == 2 {
		lm, mr := g.state.pressure(LeftMiddle), g.state.pressure(MiddleRight)
		switch {
		case lm < mr:
			span = LeftMiddle
		case mr < lm:
			span = MiddleRight
		default:
			span = candidates[g.src.Intn(2)]
		}
	}

	options := g.catalog.twoWideFor(span)
	if len(options) == 0 {
		return
	}
	spec := options[g.src.Intn(len(options))]

	row.Obstacles = append(row.Obstacles, ObstaclePlacement{
		Lane:  span.Start(),
		Width: 2,
		X:     span.X(g.params.CenterX, g.params.LaneOffset),
		Spec:  spec,
	})
	for _, l := range span.Lanes() {
		blocked[l] = true
	}
	g.state.TwoWideCooldown = 1
}

// placeSingle places one single-lane obstacle, trying the lanes with the
// smallest streak first. It never blocks a third lane.
func (g *Generator) placeSingle(row *RowLayout, blocked *LaneMask) bool {
	if blocked.Count() >= NumLanes-1 {
		return false
	}

	for _, l := range g.state.byStreak(*blocked) {
		options := g.catalog.singlesFor(l)
		if len(options) == 0 {
			continue
		}
		spec := options[g.src.Intn(len(options))]
		row.Obstacles = append(row.Obstacles, ObstaclePlacement{
			Lane:  l,
			Width: 1,
			X:     l.X(g.params.CenterX, g.params.LaneOffset),
			Spec:  spec,
		})
		blocked[l] = true
		return true
	}
	return false
}

// enforceFairness keeps at least one lane open and breaks exact repeats of
// the previous row's pattern.
func (g *Generator) enforceFairness(row *RowLayout, blocked *LaneMask) {
	if blocked.Full() {
		g.freeLane(row, blocked, Lane(g.src.Intn(NumLanes)))
	}
	if !blocked.Empty() && *blocked == g.state.LastRowBlocked {
		g.freeLane(row, blocked, g.state.worstStreakLane())
	}
}

// freeLane removes the obstacle covering l. Removing a two-wide obstacle
// frees both of its lanes.
func (g *Generator) freeLane(row *RowLayout, blocked *LaneMask, l Lane) {
	blocked[l] = false
	for i, o := range row.Obstacles {
		if !o.Covers(l) {
			continue
		}
		for k := 0; k < o.Width; k++ {
			blocked[o.Lane+Lane(k)] = false
		}
		row.Obstacles = append(row.Obstacles[:i], row.Obstacles[i+1:]...)
		return
	}
}

func (g *Generator) placeCoin(row *RowLayout, blocked LaneMask) {
	if !g.catalog.Coin {
		return
	}

	if g.state.CoinTrailActive {
		if blocked[g.state.CoinTrailLane] {
			g.endTrail()
			return
		}
		g.addCoin(row, g.state.CoinTrailLane, g.trailID)
		g.continueTrail()
		return
	}

	lane, ok := g.state.bestFreeLane(blocked, LaneMask{})
	if g.src.Float64() < g.params.CoinRowChance {
		if !ok {
			return
		}
		budget := intRange(g.src, g.params.CoinTrailMin, g.params.CoinTrailMax)
		g.trails++
		g.trailID = g.trails
		g.addCoin(row, lane, g.trailID)
		if budget > 1 {
			g.state.CoinTrailActive = true
			g.state.CoinTrailLane = lane
			g.state.CoinTrailRowsLeft = budget - 1
		}
		return
	}

	if ok {
		g.addCoin(row, lane, 0)
	}
}

func (g *Generator) addCoin(row *RowLayout, l Lane, trail int) {
	row.Pickups = append(row.Pickups, PickupPlacement{
		Lane:  l,
		Kind:  PickupCoin,
		X:     l.X(g.params.CenterX, g.params.LaneOffset),
		Trail: trail,
	})
}

func (g *Generator) continueTrail() {
	g.state.CoinTrailRowsLeft--
	if g.state.CoinTrailRowsLeft <= 0 {
		g.endTrail()
	}
}

func (g *Generator) endTrail() {
	g.state.CoinTrailActive = false
	g.state.CoinTrailLane = Left
	g.state.CoinTrailRowsLeft = 0
	g.trailID = 0
}

func (g *Generator) placePowerup(row *RowLayout, blocked LaneMask) {
	if len(g.catalog.Powerups) > 0 && g.state.PowerupCooldownRows == 0 &&
		g.src.Float64() < g.params.PowerupChance {
		if lane, ok := g.state.bestFreeLane(blocked, row.pickupLanes()); ok {
			spec := g.catalog.Powerups[g.src.Intn(len(g.catalog.Powerups))]
			row.Pickups = append(row.Pickups, PickupPlacement{
				Lane:    lane,
				Kind:    PickupPowerup,
				X:       lane.X(g.params.CenterX, g.params.LaneOffset),
				Powerup: &spec,
			})
			g.state.PowerupCooldownRows = g.params.PowerupRowGap
		}
	}
	decrementFloor(&g.state.PowerupCooldownRows)
}

package layout

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// fullCatalog has single-lane obstacles for every lane, two-wide obstacles
// for both spans, a coin and two power-ups.
func fullCatalog() Catalog {
	return Catalog{
		Obstacles: []ObstacleSpec{
			{ID: "crate", LaneWidth: 1, Placements: AllowAllSingle},
			{ID: "barrier", LaneWidth: 1, Placements: AllowAllSingle, Jumpable: true},
			{ID: "cone", LaneWidth: 1, Placements: AllowLeft | AllowRight},
			{ID: "truck", LaneWidth: 2, Placements: AllowAllSpans},
			{ID: "gate", LaneWidth: 2, Placements: AllowLeftMiddle},
		},
		Coin: true,
		Powerups: []PowerupSpec{
			{ID: "shield", Kind: PowerupInvulnerability, DurationTicks: 600},
			{ID: "magnet", Kind: PowerupMagnet, DurationTicks: 600},
		},
	}
}

// scriptedSource replays fixed draws. Exhausted queues return 0.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// blockedFromObstacles recomputes a row's blocked mask from its placements.
func blockedFromObstacles(r RowLayout) LaneMask {
	var m LaneMask
	for _, o := range r.Obstacles {
		for k := 0; k < o.Width; k++ {
			m[o.Lane+Lane(k)] = true
		}
	}
	return m
}

// forEachChunk generates many chunks across seeds and difficulty levels.
func forEachChunk(t *testing.T, p Params, fn func(t *testing.T, rows []RowLayout)) {
	t.Helper()
	for seed := int64(1); seed <= 150; seed++ {
		for _, level := range []int{0, 5, 30} {
			rows := Generate(p, fullCatalog(), level, rand.New(rand.NewSource(seed)))
			fn(t, rows)
			if t.Failed() {
				t.Fatalf("failed for seed %d level %d:\n%s", seed, level, RenderASCII(rows))
			}
		}
	}
}

func stressParams() Params {
	p := DefaultParams()
	p.RowsPerChunk = 40
	p.EmptyRowChance = 0.1
	p.TwoWideChance = 0.6
	p.ExtraSingleChance = 0.7
	p.PowerupChance = 0.5
	return p
}

func TestGenerateRowCount(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want int
	}{
		{"default", 2, 2},
		{"long chunk", 25, 25},
		{"zero rows", 0, 0},
		{"negative rows", -3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			p.RowsPerChunk = tc.rows
			rows := Generate(p, fullCatalog(), 0, rand.New(rand.NewSource(1)))
			if len(rows) != tc.want {
				t.Fatalf("len(rows) = %d, expected %d", len(rows), tc.want)
			}
			for i, r := range rows {
				if r.Index != i {
					t.Errorf("row %d has Index %d", i, r.Index)
				}
				wantZ := p.ZStart + float64(i)*p.RowSpacing
				if r.Z != wantZ {
					t.Errorf("row %d Z = %v, expected %v", i, r.Z, wantZ)
				}
			}
		})
	}
}

func TestNoRowFullyBlocked(t *testing.T) {
	forEachChunk(t, stressParams(), func(t *testing.T, rows []RowLayout) {
		for _, r := range rows {
			if r.Blocked.Full() {
				t.Errorf("row %d has all lanes blocked", r.Index)
			}
		}
	})
}

func TestBlockedMatchesObstacles(t *testing.T) {
	forEachChunk(t, stressParams(), func(t *testing.T, rows []RowLayout) {
		for _, r := range rows {
			if got := blockedFromObstacles(r); got != r.Blocked {
				t.Errorf("row %d: Blocked = %s, obstacles cover %s", r.Index, r.Blocked, got)
			}
			if r.Empty && len(r.Obstacles) != 0 {
				t.Errorf("breather row %d has %d obstacles", r.Index, len(r.Obstacles))
			}
		}
	})
}

func TestNoRepeatedBlockedPattern(t *testing.T) {
	forEachChunk(t, stressParams(), func(t *testing.T, rows []RowLayout) {
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1].Blocked, rows[i].Blocked
			if !cur.Empty() && cur == prev {
				t.Errorf("rows %d and %d share blocked pattern %s", i-1, i, cur)
			}
		}
	})
}

func TestAtMostOneTwoWidePerRowAndNoBackToBack(t *testing.T) {
	forEachChunk(t, stressParams(), func(t *testing.T, rows []RowLayout) {
		prevHad := false
		for _, r := range rows {
			n := 0
			for _, o := range r.Obstacles {
				if o.Width == 2 {
					n++
					if o.Lane != Left && o.Lane != Middle {
						t.Errorf("row %d: two-wide starts at %s", r.Index, o.Lane)
					}
				}
			}
			if n > 1 {
				t.Errorf("row %d has %d two-wide obstacles", r.Index, n)
			}
			if n == 1 && prevHad {
				t.Errorf("row %d has a two-wide right after another", r.Index)
			}
			prevHad = n == 1
		}
	})
}

func TestBlockStreakBounded(t *testing.T) {
	p := stressParams()
	p.EmptyRowChance = 0
	for seed := int64(1); seed <= 100; seed++ {
		g := NewGenerator(p, fullCatalog(), 10, rand.New(rand.NewSource(seed)))
		for !g.Done() {
			row, ok := g.Next()
			if !ok {
				t.Fatal("Next() returned !ok before Done()")
			}
			st := g.State()
			for _, l := range Lanes {
				if st.BlockStreak[l] < 0 || st.BlockStreak[l] > MaxStreak {
					t.Fatalf("seed %d row %d: streak[%s] = %d", seed, row.Index, l, st.BlockStreak[l])
				}
				if row.Blocked[l] != st.LastRowBlocked[l] {
					t.Fatalf("seed %d row %d: LastRowBlocked not updated", seed, row.Index)
				}
				if !row.Blocked[l] && st.BlockStreak[l] != 0 {
					t.Fatalf("seed %d row %d: free lane %s kept streak %d", seed, row.Index, l, st.BlockStreak[l])
				}
			}
		}
		if _, ok := g.Next(); ok {
			t.Fatal("Next() after Done() should return !ok")
		}
	}
}

func TestPickupsOnlyInFreeLanes(t *testing.T) {
	forEachChunk(t, stressParams(), func(t *testing.T, rows []RowLayout) {
		for _, r := range rows {
			var seen LaneMask
			for _, p := range r.Pickups {
				if r.Blocked[p.Lane] {
					t.Errorf("row %d: %s pickup in blocked lane %s", r.Index, p.Kind, p.Lane)
				}
				if seen[p.Lane] {
					t.Errorf("row %d: two pickups in lane %s", r.Index, p.Lane)
				}
				seen[p.Lane] = true
				if p.Kind == PickupPowerup && p.Powerup == nil {
					t.Errorf("row %d: power-up without spec", r.Index)
				}
			}
		}
	})
}

func TestCoinTrailBudgetAndContinuity(t *testing.T) {
	p := stressParams()
	p.CoinRowChance = 0.8
	forEachChunk(t, p, func(t *testing.T, rows []RowLayout) {
		type trail struct {
			lane    Lane
			lastRow int
			count   int
		}
		trails := map[int]*trail{}
		for _, r := range rows {
			for _, pk := range r.Pickups {
				if pk.Kind != PickupCoin || pk.Trail == 0 {
					continue
				}
				tr, ok := trails[pk.Trail]
				if !ok {
					trails[pk.Trail] = &trail{lane: pk.Lane, lastRow: r.Index, count: 1}
					continue
				}
				if pk.Lane != tr.lane {
					t.Errorf("trail %d switched lane %s -> %s", pk.Trail, tr.lane, pk.Lane)
				}
				if r.Index != tr.lastRow+1 {
					t.Errorf("trail %d resumed at row %d after row %d", pk.Trail, r.Index, tr.lastRow)
				}
				tr.lastRow = r.Index
				tr.count++
			}
		}
		for id, tr := range trails {
			if tr.count > p.CoinTrailMax {
				t.Errorf("trail %d placed %d coins, budget max %d", id, tr.count, p.CoinTrailMax)
			}
		}
	})
}

func TestCoinTrailStopsWhenLaneBlocked(t *testing.T) {
	p := stressParams()
	p.CoinRowChance = 1
	p.CoinTrailMin, p.CoinTrailMax = 6, 6
	forEachChunk(t, p, func(t *testing.T, rows []RowLayout) {
		for i := 1; i < len(rows); i++ {
			for _, pk := range rows[i-1].Pickups {
				if pk.Trail == 0 || !rows[i].Blocked[pk.Lane] {
					continue
				}
				for _, next := range rows[i].Pickups {
					if next.Trail == pk.Trail {
						t.Errorf("trail %d continued into blocked lane at row %d", pk.Trail, i)
					}
				}
				if i+1 < len(rows) {
					for _, next := range rows[i+1].Pickups {
						if next.Trail == pk.Trail {
							t.Errorf("trail %d resumed after being blocked at row %d", pk.Trail, i)
						}
					}
				}
			}
		}
	})
}

func TestCoinTrailExactBudget(t *testing.T) {
	p := Params{
		RowsPerChunk:  5,
		RowSpacing:    1,
		CoinRowChance: 1,
		CoinTrailMin:  2,
		CoinTrailMax:  2,
	}
	c := Catalog{Coin: true}
	rows := Generate(p, c, 0, &scriptedSource{floats: []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}})

	want := []int{1, 1, 2, 2, 3}
	for i, r := range rows {
		if len(r.Pickups) != 1 {
			t.Fatalf("row %d: %d pickups, expected 1", i, len(r.Pickups))
		}
		if r.Pickups[0].Trail != want[i] {
			t.Errorf("row %d: trail %d, expected %d", i, r.Pickups[0].Trail, want[i])
		}
		if r.Pickups[0].Lane != Left {
			t.Errorf("row %d: coin in %s, expected left", i, r.Pickups[0].Lane)
		}
	}
}

func TestTrailContinuesThroughBreather(t *testing.T) {
	p := Params{
		RowsPerChunk:   3,
		RowSpacing:     1,
		EmptyRowChance: 0.5,
		CoinRowChance:  1,
		CoinTrailMin:   3,
		CoinTrailMax:   3,
	}
	c := Catalog{Coin: true}
	// Row 0: not a breather, starts the trail. Rows 1-2: breathers.
	src := &scriptedSource{floats: []float64{0.9, 0.9, 0.1, 0.1, 0.1}}
	rows := Generate(p, c, 0, src)

	if rows[0].Empty || !rows[1].Empty || !rows[2].Empty {
		t.Fatalf("unexpected breather pattern: %v %v %v", rows[0].Empty, rows[1].Empty, rows[2].Empty)
	}
	for i, r := range rows {
		if len(r.Pickups) != 1 || r.Pickups[0].Trail != 1 {
			t.Errorf("row %d: expected one coin of trail 1, got %+v", i, r.Pickups)
		}
	}
}

func TestOpportunisticCoinWhenTrailRollFails(t *testing.T) {
	p := DefaultParams()
	p.RowsPerChunk = 10
	p.EmptyRowChance = 0
	p.CoinRowChance = 0
	p.PowerupChance = 0
	rows := Generate(p, fullCatalog(), 0, rand.New(rand.NewSource(7)))
	for _, r := range rows {
		coins := 0
		for _, pk := range r.Pickups {
			if pk.Kind == PickupCoin {
				coins++
				if pk.Trail != 0 {
					t.Errorf("row %d: coin belongs to trail %d with trails disabled", r.Index, pk.Trail)
				}
			}
		}
		if coins != 1 {
			t.Errorf("row %d: %d coins, expected one lone coin", r.Index, coins)
		}
	}
}

func TestPowerupSpacing(t *testing.T) {
	for _, gap := range []int{0, 1, 3, 5} {
		p := stressParams()
		p.PowerupChance = 1
		p.PowerupRowGap = gap
		forEachChunk(t, p, func(t *testing.T, rows []RowLayout) {
			last := -1
			for _, r := range rows {
				for _, pk := range r.Pickups {
					if pk.Kind != PickupPowerup {
						continue
					}
					if last >= 0 && r.Index-last < gap {
						t.Errorf("gap %d: power-ups at rows %d and %d", gap, last, r.Index)
					}
					last = r.Index
				}
			}
		})
	}
}

func TestPowerupCooldownResets(t *testing.T) {
	p := Params{
		RowsPerChunk:  7,
		RowSpacing:    1,
		PowerupChance: 1,
		PowerupRowGap: 3,
	}
	c := Catalog{Powerups: []PowerupSpec{{ID: "shield", Kind: PowerupInvulnerability}}}
	rows := Generate(p, c, 0, rand.New(rand.NewSource(3)))

	var got []int
	for _, r := range rows {
		if len(r.Pickups) > 0 {
			got = append(got, r.Index)
		}
	}
	want := []int{0, 3, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("power-up rows = %v, expected %v", got, want)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	p := stressParams()
	for seed := int64(1); seed <= 20; seed++ {
		a := Generate(p, fullCatalog(), 4, rand.New(rand.NewSource(seed)))
		b := Generate(p, fullCatalog(), 4, rand.New(rand.NewSource(seed)))
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: layouts differ\n%s\nvs\n%s", seed, RenderASCII(a), RenderASCII(b))
		}
	}

	a := Generate(p, fullCatalog(), 0, NewChunkSource(99, 4))
	b := Generate(p, fullCatalog(), 0, NewChunkSource(99, 4))
	if !reflect.DeepEqual(a, b) {
		t.Error("chunk sources with the same run seed and index should match")
	}
}

func TestScenarioSingleObstacleRow(t *testing.T) {
	p := Params{
		RowsPerChunk:      1,
		RowSpacing:        8,
		EmptyRowChance:    0,
		TwoWideChance:     0,
		ExtraSingleChance: 0,
		CoinRowChance:     0,
		PowerupChance:     0,
	}
	c := Catalog{
		Obstacles: []ObstacleSpec{
			{ID: "l", LaneWidth: 1, Placements: AllowLeft},
			{ID: "m", LaneWidth: 1, Placements: AllowMiddle},
			{ID: "r", LaneWidth: 1, Placements: AllowRight},
		},
	}

	for seed := int64(1); seed <= 20; seed++ {
		rows := Generate(p, c, 0, rand.New(rand.NewSource(seed)))
		if len(rows) != 1 {
			t.Fatalf("len(rows) = %d, expected 1", len(rows))
		}
		r := rows[0]
		if len(r.Obstacles) != 1 || r.Obstacles[0].Width != 1 {
			t.Fatalf("expected exactly one single-lane obstacle, got %+v", r.Obstacles)
		}
		if len(r.Pickups) != 0 {
			t.Errorf("expected no pickups, got %+v", r.Pickups)
		}
		// All streaks are zero, so the lowest lane wins.
		if r.Obstacles[0].Lane != Left || r.Obstacles[0].Spec.ID != "l" {
			t.Errorf("obstacle placed at %s (%s), expected left", r.Obstacles[0].Lane, r.Obstacles[0].Spec.ID)
		}
	}
}

func TestScenarioAllEmptyRows(t *testing.T) {
	p := DefaultParams()
	p.RowsPerChunk = 5
	p.EmptyRowChance = 1

	rows := Generate(p, fullCatalog(), 0, rand.New(rand.NewSource(11)))
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, expected 5", len(rows))
	}
	for _, r := range rows {
		if !r.Empty || len(r.Obstacles) != 0 || !r.Blocked.Empty() {
			t.Errorf("row %d should be an empty breather, got %+v", r.Index, r)
		}
	}
}

func TestScenarioDifficultyClamp(t *testing.T) {
	tests := []struct {
		name      string
		twoWide   float64
		empty     float64
		level     int
		wantTwo   float64
		wantEmpty float64
	}{
		{"level 10", 0.35, 0.15, 10, 0.55, 0.05},
		{"level 0", 0.35, 0.15, 0, 0.35, 0.15},
		{"clamps high", 0.35, 0.15, 100, 1, 0},
		{"negative level", 0.35, 0.15, -4, 0.35, 0.15},
		{"out of range input", 1.7, -0.2, 1, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			p.TwoWideChance = tc.twoWide
			p.EmptyRowChance = tc.empty
			got := EffectiveParams(p, tc.level)
			if math.Abs(got.TwoWideChance-tc.wantTwo) > 1e-9 {
				t.Errorf("TwoWideChance = %v, expected %v", got.TwoWideChance, tc.wantTwo)
			}
			if math.Abs(got.EmptyRowChance-tc.wantEmpty) > 1e-9 {
				t.Errorf("EmptyRowChance = %v, expected %v", got.EmptyRowChance, tc.wantEmpty)
			}
			if g := NewGenerator(p, fullCatalog(), tc.level, rand.New(rand.NewSource(1))); g.Params() != got {
				t.Errorf("generator params differ from EffectiveParams")
			}
		})
	}
}

func TestSparseCatalogs(t *testing.T) {
	p := stressParams()
	p.EmptyRowChance = 0

	t.Run("empty catalog", func(t *testing.T) {
		rows := Generate(p, Catalog{}, 3, rand.New(rand.NewSource(5)))
		if len(rows) != p.RowsPerChunk {
			t.Fatalf("len(rows) = %d, expected %d", len(rows), p.RowsPerChunk)
		}
		for _, r := range rows {
			if len(r.Obstacles) != 0 || len(r.Pickups) != 0 {
				t.Errorf("row %d: expected nothing placed, got %+v", r.Index, r)
			}
		}
	})

	t.Run("left only", func(t *testing.T) {
		c := Catalog{Obstacles: []ObstacleSpec{{ID: "l", LaneWidth: 1, Placements: AllowLeft}}}
		rows := Generate(p, c, 3, rand.New(rand.NewSource(5)))
		for i, r := range rows {
			for _, o := range r.Obstacles {
				if o.Lane != Left || o.Width != 1 {
					t.Errorf("row %d: unexpected obstacle %+v", i, o)
				}
			}
			if i > 0 && !r.Blocked.Empty() && r.Blocked == rows[i-1].Blocked {
				t.Errorf("row %d repeats the previous pattern", i)
			}
		}
	})

	t.Run("two-wide only on one span", func(t *testing.T) {
		c := Catalog{Obstacles: []ObstacleSpec{{ID: "gate", LaneWidth: 2, Placements: AllowMiddleRight}}}
		p := p
		p.TwoWideChance = 1
		rows := Generate(p, c, 0, rand.New(rand.NewSource(5)))
		for _, r := range rows {
			for _, o := range r.Obstacles {
				if o.Lane != Middle || o.Width != 2 {
					t.Errorf("row %d: unexpected obstacle %+v", r.Index, o)
				}
			}
		}
	})
}

func TestTwoWidePrefersLowerPressure(t *testing.T) {
	g := NewGenerator(Params{RowsPerChunk: 1, TwoWideChance: 1}, Catalog{
		Obstacles: []ObstacleSpec{{ID: "truck", LaneWidth: 2, Placements: AllowAllSpans}},
	}, 0, &scriptedSource{floats: []float64{0.5, 0.5}})
	g.state.LastRowBlocked = LaneMask{true, false, false}
	g.state.BlockStreak = [NumLanes]int{2, 0, 0}

	row, _ := g.Next()
	if len(row.Obstacles) != 1 {
		t.Fatalf("expected one obstacle, got %+v", row.Obstacles)
	}
	if row.Obstacles[0].Lane != Middle {
		t.Errorf("two-wide at %s, expected middle+right", row.Obstacles[0].Lane)
	}
	if g.State().TwoWideCooldown != 1 {
		t.Errorf("TwoWideCooldown = %d, expected 1", g.State().TwoWideCooldown)
	}
}

func TestRepeatedPatternFreesWorstLane(t *testing.T) {
	g := NewGenerator(Params{RowsPerChunk: 1}, Catalog{
		Obstacles: []ObstacleSpec{{ID: "l", LaneWidth: 1, Placements: AllowLeft}},
	}, 0, &scriptedSource{floats: []float64{0.5, 0.5, 0.5}})
	g.state.LastRowBlocked = LaneMask{true, false, false}
	g.state.BlockStreak = [NumLanes]int{1, 0, 0}

	row, _ := g.Next()
	if len(row.Obstacles) != 0 || !row.Blocked.Empty() {
		t.Errorf("repeat should have been removed, got %+v", row)
	}
	if g.State().BlockStreak[Left] != 0 {
		t.Errorf("streak[left] = %d, expected reset to 0", g.State().BlockStreak[Left])
	}
}

func TestFreeLaneRemovesWholeTwoWide(t *testing.T) {
	g := NewGenerator(Params{RowsPerChunk: 1}, Catalog{}, 0, &scriptedSource{})
	row := RowLayout{Obstacles: []ObstaclePlacement{
		{Lane: Left, Width: 2},
		{Lane: Right, Width: 1},
	}}
	blocked := LaneMask{true, true, true}

	g.freeLane(&row, &blocked, Middle)
	if blocked != (LaneMask{false, false, true}) {
		t.Errorf("blocked = %s, expected ..#", blocked)
	}
	if len(row.Obstacles) != 1 || row.Obstacles[0].Lane != Right {
		t.Errorf("obstacles = %+v, expected only the right single", row.Obstacles)
	}
}

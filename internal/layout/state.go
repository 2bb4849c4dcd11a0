package layout

// MaxStreak caps how many consecutive blocked rows a lane's streak counts.
const MaxStreak = 3

// State is the generator state carried from row to row within one chunk.
// It is created fresh for every chunk and never shared.
type State struct {
	LastRowBlocked      LaneMask      `json:"last_row_blocked"`
	BlockStreak         [NumLanes]int `json:"block_streak"`
	TwoWideCooldown     int           `json:"two_wide_cooldown"`
	CoinTrailLane       Lane          `json:"coin_trail_lane"`
	CoinTrailActive     bool          `json:"coin_trail_active"`
	CoinTrailRowsLeft   int           `json:"coin_trail_rows_left"`
	PowerupCooldownRows int           `json:"powerup_cooldown_rows"`
}

// resetPressure forgets the previous row's blocking, as after a breather row.
func (s *State) resetPressure() {
	s.LastRowBlocked = LaneMask{}
	s.BlockStreak = [NumLanes]int{}
}

// pressure is the combined fairness cost of blocking both lanes of a span.
func (s *State) pressure(sp Span) int {
	total := 0
	for _, l := range sp.Lanes() {
		if s.LastRowBlocked[l] {
			total++
		}
		total += s.BlockStreak[l]
	}
	return total
}

// byStreak returns the free lanes of blocked ordered by ascending streak,
// ties keeping lane order.
func (s *State) byStreak(blocked LaneMask) []Lane {
	free := blocked.Free()
	// Insertion sort: at most three elements and it is stable.
	for i := 1; i < len(free); i++ {
		for j := i; j > 0 && s.BlockStreak[free[j]] < s.BlockStreak[free[j-1]]; j-- {
			free[j], free[j-1] = free[j-1], free[j]
		}
	}
	return free
}

// bestFreeLane returns the free lane with the smallest streak (ties: lowest
// lane), skipping lanes in exclude. ok is false when no lane qualifies.
func (s *State) bestFreeLane(blocked, exclude LaneMask) (Lane, bool) {
	for _, l := range s.byStreak(blocked) {
		if !exclude[l] {
			return l, true
		}
	}
	return 0, false
}

// worstStreakLane returns the lane with the highest streak, ties resolved to
// the lowest lane index.
func (s *State) worstStreakLane() Lane {
	worst := Left
	for _, l := range Lanes[1:] {
		if s.BlockStreak[l] > s.BlockStreak[worst] {
			worst = l
		}
	}
	return worst
}

// commit folds the finished row's blocking into the carried state.
func (s *State) commit(blocked LaneMask) {
	for _, l := range Lanes {
		if blocked[l] {
			s.BlockStreak[l] = min(s.BlockStreak[l]+1, MaxStreak)
		} else {
			s.BlockStreak[l] = 0
		}
	}
	s.LastRowBlocked = blocked
}

func decrementFloor(v *int) {
	if *v > 0 {
		*v--
	}
}

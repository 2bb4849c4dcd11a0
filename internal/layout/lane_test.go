package layout

import (
	"math"
	"testing"
)

func TestLaneX(t *testing.T) {
	tests := []struct {
		lane Lane
		want float64
	}{
		{Left, -4.55},
		{Middle, 0},
		{Right, 4.55},
	}

	for _, tc := range tests {
		if got := tc.lane.X(0, 4.55); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s.X() = %v, expected %v", tc.lane, got, tc.want)
		}
	}

	if got := Middle.X(10, 3); got != 10 {
		t.Errorf("Middle.X(10, 3) = %v, expected 10", got)
	}
}

func TestSpanX(t *testing.T) {
	if got := LeftMiddle.X(0, 4); got != -2 {
		t.Errorf("LeftMiddle.X() = %v, expected -2", got)
	}
	if got := MiddleRight.X(0, 4); got != 2 {
		t.Errorf("MiddleRight.X() = %v, expected 2", got)
	}
	if LeftMiddle.Start() != Left || MiddleRight.Start() != Middle {
		t.Error("span start lanes are wrong")
	}
}

func TestLaneMask(t *testing.T) {
	tests := []struct {
		mask  LaneMask
		count int
		full  bool
		empty bool
		str   string
		free  []Lane
	}{
		{LaneMask{}, 0, false, true, "...", []Lane{Left, Middle, Right}},
		{LaneMask{true, false, true}, 2, false, false, "#.#", []Lane{Middle}},
		{LaneMask{true, true, true}, 3, true, false, "###", []Lane{}},
	}

	for _, tc := range tests {
		if got := tc.mask.Count(); got != tc.count {
			t.Errorf("%s.Count() = %d, expected %d", tc.str, got, tc.count)
		}
		if tc.mask.Full() != tc.full {
			t.Errorf("%s.Full() = %v, expected %v", tc.str, tc.mask.Full(), tc.full)
		}
		if tc.mask.Empty() != tc.empty {
			t.Errorf("%s.Empty() = %v, expected %v", tc.str, tc.mask.Empty(), tc.empty)
		}
		if got := tc.mask.String(); got != tc.str {
			t.Errorf("String() = %q, expected %q", got, tc.str)
		}
		free := tc.mask.Free()
		if len(free) != len(tc.free) {
			t.Fatalf("%s.Free() = %v, expected %v", tc.str, free, tc.free)
		}
		for i := range free {
			if free[i] != tc.free[i] {
				t.Errorf("%s.Free()[%d] = %s, expected %s", tc.str, i, free[i], tc.free[i])
			}
		}
	}
}

func TestStateOrdering(t *testing.T) {
	s := State{BlockStreak: [NumLanes]int{2, 0, 1}}

	order := s.byStreak(LaneMask{})
	want := []Lane{Middle, Right, Left}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("byStreak() = %v, expected %v", order, want)
		}
	}

	if l, ok := s.bestFreeLane(LaneMask{false, true, false}, LaneMask{}); !ok || l != Right {
		t.Errorf("bestFreeLane() = %s, %v; expected right", l, ok)
	}
	if _, ok := s.bestFreeLane(LaneMask{true, true, false}, LaneMask{false, false, true}); ok {
		t.Error("bestFreeLane() should fail when every free lane is excluded")
	}
	if got := s.worstStreakLane(); got != Left {
		t.Errorf("worstStreakLane() = %s, expected left", got)
	}

	tie := State{BlockStreak: [NumLanes]int{0, 3, 3}}
	if got := tie.worstStreakLane(); got != Middle {
		t.Errorf("worstStreakLane() on tie = %s, expected middle", got)
	}
}

func TestStateCommitCapsStreak(t *testing.T) {
	var s State
	for i := 0; i < 10; i++ {
		s.commit(LaneMask{true, false, false})
	}
	if s.BlockStreak[Left] != MaxStreak {
		t.Errorf("streak = %d, expected %d", s.BlockStreak[Left], MaxStreak)
	}
	s.commit(LaneMask{false, true, false})
	if s.BlockStreak[Left] != 0 || s.BlockStreak[Middle] != 1 {
		t.Errorf("streaks = %v after unblocking left", s.BlockStreak)
	}
}

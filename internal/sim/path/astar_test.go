package path

import (
	"testing"

	"gridcraft.ai/internal/sim/board"
	"gridcraft.ai/internal/sim/entity"
)

func wallAt(t *testing.T, b *board.Board, p Position) {
	t.Helper()
	if !b.AddEntity(entity.NewObject("wall", false, false, 100), p) {
		t.Fatalf("cannot place wall at %v", p)
	}
}

func rockAt(t *testing.T, b *board.Board, p Position) {
	t.Helper()
	if !b.AddEntity(entity.NewObject("rock", false, true, 40), p) {
		t.Fatalf("cannot place rock at %v", p)
	}
}

// costOf prices a path under the default model: 1 per cardinal step, 5 per
// cardinal two-cell jump.
func costOf(t *testing.T, steps []Position) int {
	t.Helper()
	total := 0
	for i := 1; i < len(steps); i++ {
		switch d := steps[i-1].ManhattanTo(steps[i]); d {
		case 1:
			total++
		case 2:
			if steps[i-1].X != steps[i].X && steps[i-1].Y != steps[i].Y {
				t.Fatalf("diagonal transition %v -> %v", steps[i-1], steps[i])
			}
			total += 5
		default:
			t.Fatalf("bad transition %v -> %v", steps[i-1], steps[i])
		}
	}
	return total
}

func TestFindPath_TrivialCases(t *testing.T) {
	b := board.New(3, 3)
	start := Position{X: 1, Y: 1}

	if got := FindPath(b, start, start); len(got) != 1 || got[0] != start {
		t.Fatalf("same-cell path: %v", got)
	}
	if got := FindPath(b, Position{X: -1, Y: 0}, start); got != nil {
		t.Fatalf("invalid start accepted: %v", got)
	}
	if got := FindPath(b, start, Position{X: 3, Y: 3}); got != nil {
		t.Fatalf("invalid end accepted: %v", got)
	}
	if got := FindPath(nil, start, start); got != nil {
		t.Fatalf("nil board accepted: %v", got)
	}
}

func TestFindPath_BlockedEndIsUnreachable(t *testing.T) {
	b := board.New(3, 3)
	wallAt(t, b, Position{X: 2, Y: 2})
	if got := FindPath(b, Position{X: 0, Y: 0}, Position{X: 2, Y: 2}); got != nil {
		t.Fatalf("path into blocked cell: %v", got)
	}
}

func TestFindPath_WalkingBeatsJumping(t *testing.T) {
	// Jumping over the rock costs 5; walking around costs 4. The cheap walk
	// must win.
	b := board.New(3, 3)
	rockAt(t, b, Position{X: 1, Y: 1})

	got := FindPath(b, Position{X: 1, Y: 0}, Position{X: 1, Y: 2})
	if len(got) == 0 {
		t.Fatalf("no path")
	}
	if c := costOf(t, got); c != 4 {
		t.Fatalf("cost %d want 4 (path %v)", c, got)
	}
}

func TestFindPath_JumpWhenOnlyRoute(t *testing.T) {
	// Side columns walled off: the jump over (1,1) is the only way south.
	b := board.New(3, 3)
	rockAt(t, b, Position{X: 1, Y: 1})
	wallAt(t, b, Position{X: 0, Y: 1})
	wallAt(t, b, Position{X: 2, Y: 1})

	got := FindPath(b, Position{X: 1, Y: 0}, Position{X: 1, Y: 2})
	want := []Position{{X: 1, Y: 0}, {X: 1, Y: 2}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("path %v want %v", got, want)
	}
	if c := costOf(t, got); c != 5 {
		t.Fatalf("cost %d want 5", c)
	}
}

func TestFindPath_CorridorJump(t *testing.T) {
	// A full wall row with a single jumpable cell: the route must step up,
	// jump the rock, and step off.
	b := board.New(5, 5)
	for x := 0; x < 5; x++ {
		if x == 2 {
			rockAt(t, b, Position{X: x, Y: 2})
			continue
		}
		wallAt(t, b, Position{X: x, Y: 2})
	}

	got := FindPath(b, Position{X: 2, Y: 0}, Position{X: 2, Y: 4})
	if len(got) == 0 {
		t.Fatalf("no path")
	}
	if c := costOf(t, got); c != 7 {
		t.Fatalf("cost %d want 7 (path %v)", c, got)
	}
	sawJump := false
	for i := 1; i < len(got); i++ {
		if got[i-1].ManhattanTo(got[i]) == 2 {
			sawJump = true
		}
	}
	if !sawJump {
		t.Fatalf("expected a jump edge in %v", got)
	}
}

func TestFindPath_RoutesThroughWallGap(t *testing.T) {
	// Wall spanning (3,3)-(7,3) with a gap at (5,3): the optimal route from
	// (4,1) to (4,5) threads the gap.
	b := board.New(15, 10)
	for x := 3; x <= 7; x++ {
		if x == 5 {
			continue
		}
		wallAt(t, b, Position{X: x, Y: 3})
	}

	got := FindPath(b, Position{X: 4, Y: 1}, Position{X: 4, Y: 5})
	if len(got) == 0 {
		t.Fatalf("no path")
	}
	if c := costOf(t, got); c != 6 {
		t.Fatalf("cost %d want 6 (path %v)", c, got)
	}
	through := false
	for _, p := range got {
		if p == (Position{X: 5, Y: 3}) {
			through = true
		}
	}
	if !through {
		t.Fatalf("path %v does not pass through the gap (5,3)", got)
	}
}

func TestFindPath_EnclosedTargetUnreachable(t *testing.T) {
	b := board.New(7, 7)
	target := Position{X: 3, Y: 3}
	wallAt(t, b, Position{X: 2, Y: 3})
	wallAt(t, b, Position{X: 4, Y: 3})
	wallAt(t, b, Position{X: 3, Y: 2})
	wallAt(t, b, Position{X: 3, Y: 4})

	if got := FindPath(b, Position{X: 0, Y: 0}, target); got != nil {
		t.Fatalf("reached enclosed cell: %v", got)
	}
	if got := FindPath(b, target, Position{X: 0, Y: 0}); got != nil {
		t.Fatalf("escaped enclosed cell: %v", got)
	}
}

func TestFindPath_OpenBoardMatchesManhattan(t *testing.T) {
	b := board.New(6, 6)
	cases := []struct{ start, end Position }{
		{Position{X: 0, Y: 0}, Position{X: 5, Y: 5}},
		{Position{X: 5, Y: 0}, Position{X: 0, Y: 5}},
		{Position{X: 2, Y: 3}, Position{X: 4, Y: 1}},
	}
	for _, c := range cases {
		got := FindPath(b, c.start, c.end)
		if len(got) == 0 {
			t.Fatalf("no path %v -> %v", c.start, c.end)
		}
		if got[0] != c.start || got[len(got)-1] != c.end {
			t.Fatalf("endpoints wrong: %v", got)
		}
		if cost := costOf(t, got); cost != c.start.ManhattanTo(c.end) {
			t.Fatalf("%v -> %v cost %d want %d", c.start, c.end, cost, c.start.ManhattanTo(c.end))
		}
	}
}

func TestFindPath_NonJumpableGivesNoShortcut(t *testing.T) {
	// Same corridor as CorridorJump but with a non-jumpable boulder: no way
	// across at all.
	b := board.New(5, 5)
	for x := 0; x < 5; x++ {
		wallAt(t, b, Position{X: x, Y: 2})
	}
	if got := FindPath(b, Position{X: 2, Y: 0}, Position{X: 2, Y: 4}); got != nil {
		t.Fatalf("crossed a solid wall: %v", got)
	}
}

func TestFindPathCosts_ChainedCheapJumpsStayOptimal(t *testing.T) {
	// At the admissibility boundary (jump cost 2) two chained jumps cost 4
	// while walking around the rocks costs 6; the search must not settle for
	// the walk.
	b := board.New(6, 6)
	rockAt(t, b, Position{X: 3, Y: 1})
	rockAt(t, b, Position{X: 1, Y: 1})

	got := FindPathCosts(b, Position{X: 4, Y: 1}, Position{X: 0, Y: 1}, Costs{Step: 1, Jump: 2})
	want := []Position{{X: 4, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("path %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path %v want %v", got, want)
		}
	}
}

func TestFindPathCosts_CustomWeights(t *testing.T) {
	// With a cheap jump the straight hop beats the walk around.
	b := board.New(3, 3)
	rockAt(t, b, Position{X: 1, Y: 1})

	got := FindPathCosts(b, Position{X: 1, Y: 0}, Position{X: 1, Y: 2}, Costs{Step: 1, Jump: 2})
	if len(got) != 2 {
		t.Fatalf("want direct jump, got %v", got)
	}
}

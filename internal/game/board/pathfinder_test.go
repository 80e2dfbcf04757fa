package board

import "testing"

func TestFindPathStraightLine(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)

	path := pf.FindPath(Position{2, 2}, Position{2, 5}, MoveProfile{})
	if len(path) != 3 {
		t.Fatalf("expected path of length 3, got %d (%v)", len(path), path)
	}
	if path[0] != (Position{2, 3}) || path[2] != (Position{2, 5}) {
		t.Fatalf("unexpected path %v", path)
	}
}

func TestFindPathExcludesOriginIncludesDestination(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)

	from := Position{1, 1}
	to := Position{3, 1}
	path := pf.FindPath(from, to, MoveProfile{})
	if len(path) == 0 {
		t.Fatalf("expected reachable destination")
	}
	for _, p := range path {
		if p == from {
			t.Fatalf("path must not contain the origin: %v", path)
		}
	}
	if path[len(path)-1] != to {
		t.Fatalf("path must end at the destination: %v", path)
	}
}

func TestFindPathBlockedByWallAndPit(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)

	// Border walls are never traversable.
	if path := pf.FindPath(Position{1, 1}, Position{0, 1}, MoveProfile{}); path != nil {
		t.Fatalf("expected no path into a wall, got %v", path)
	}
	// Central pit cells are never traversable, even for wall crossers.
	if path := pf.FindPath(Position{3, 4}, Position{4, 4}, MoveProfile{CrossWalls: true}); path != nil {
		t.Fatalf("expected no path into a pit, got %v", path)
	}
}

func TestFindPathCrossWalls(t *testing.T) {
	g := NewGrid()
	// Wall off column 3 inside the arena.
	for y := 1; y < Size-1; y++ {
		g.SetOverride(Position{3, y}, TerrainWall)
	}
	pf := NewPathfinder(g, nil)

	if path := pf.FindPath(Position{2, 5}, Position{4, 5}, MoveProfile{}); path != nil {
		t.Fatalf("expected walled-off destination to be unreachable, got %v", path)
	}
	path := pf.FindPath(Position{2, 5}, Position{4, 5}, MoveProfile{CrossWalls: true})
	if len(path) != 2 {
		t.Fatalf("wall crosser should pass straight through, got %v", path)
	}
}

func TestFindPathAroundOccupiedCell(t *testing.T) {
	occupied := map[Position]bool{{2, 3}: true}
	pf := NewPathfinder(NewGrid(), occupied)

	path := pf.FindPath(Position{2, 2}, Position{2, 4}, MoveProfile{})
	if len(path) != 4 {
		t.Fatalf("expected detour of length 4 around occupied cell, got %v", path)
	}
	for _, p := range path {
		if occupied[p] {
			t.Fatalf("path passes through an occupied cell: %v", path)
		}
	}
}

func TestFindPathDiagonalShortens(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)

	from := Position{2, 2}
	to := Position{5, 5}
	cardinal := pf.FindPath(from, to, MoveProfile{})
	diagonal := pf.FindPath(from, to, MoveProfile{Diagonal: true})

	if len(cardinal) < Manhattan(from, to) {
		t.Fatalf("cardinal path %d shorter than Manhattan bound %d", len(cardinal), Manhattan(from, to))
	}
	if len(diagonal) != Chebyshev(from, to) {
		t.Fatalf("diagonal path should match Chebyshev bound %d, got %d", Chebyshev(from, to), len(diagonal))
	}
}

func TestFindPathDeterministic(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)

	first := pf.FindPath(Position{1, 1}, Position{6, 7}, MoveProfile{})
	for i := 0; i < 10; i++ {
		again := pf.FindPath(Position{1, 1}, Position{6, 7}, MoveProfile{})
		if len(again) != len(first) {
			t.Fatalf("path length changed between runs: %d vs %d", len(first), len(again))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("path diverged at step %d: %v vs %v", j, first, again)
			}
		}
	}
}

func TestReachableTilesBounded(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)

	origin := Position{2, 2}
	tiles := pf.ReachableTiles(origin, 2, MoveProfile{})
	if len(tiles) == 0 {
		t.Fatalf("expected reachable tiles")
	}
	seen := make(map[Position]bool, len(tiles))
	for _, p := range tiles {
		if p == origin {
			t.Fatalf("origin must be excluded")
		}
		if seen[p] {
			t.Fatalf("duplicate tile %v", p)
		}
		seen[p] = true
		path := pf.FindPath(origin, p, MoveProfile{})
		if len(path) == 0 || len(path) > 2 {
			t.Fatalf("tile %v not reachable within 2 steps (path %v)", p, path)
		}
	}

	// Completeness: every cell with a path of length <= 2 must be present.
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			p := Position{x, y}
			if p == origin {
				continue
			}
			path := pf.FindPath(origin, p, MoveProfile{})
			if len(path) > 0 && len(path) <= 2 && !seen[p] {
				t.Fatalf("reachable tile %v omitted", p)
			}
		}
	}
}

func TestReachableTilesZeroSteps(t *testing.T) {
	pf := NewPathfinder(NewGrid(), nil)
	if tiles := pf.ReachableTiles(Position{2, 2}, 0, MoveProfile{}); tiles != nil {
		t.Fatalf("expected no tiles with zero movement, got %v", tiles)
	}
}

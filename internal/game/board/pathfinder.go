package board

// MoveProfile describes the movement capabilities of a unit for path queries.
type MoveProfile struct {
	// Diagonal enables 8-directional movement (agility).
	Diagonal bool
	// CrossWalls allows the unit to traverse wall cells.
	CrossWalls bool
}

// cardinalOffsets is the fixed neighbor order for 4-directional movement.
// Keeping the order fixed makes every BFS result deterministic.
var cardinalOffsets = []Position{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// diagonalOffsets extends cardinalOffsets for 8-directional movement.
var diagonalOffsets = []Position{
	{1, -1},
	{1, 1},
	{-1, 1},
	{-1, -1},
}

// Pathfinder answers movement queries against a grid and a set of occupied
// cells. It holds no mutable state of its own.
type Pathfinder struct {
	grid     *Grid
	occupied map[Position]bool
}

// NewPathfinder creates a pathfinder over the given grid. occupied is the set
// of cells currently holding a champion; it may be nil.
func NewPathfinder(grid *Grid, occupied map[Position]bool) *Pathfinder {
	return &Pathfinder{grid: grid, occupied: occupied}
}

func (pf *Pathfinder) offsets(profile MoveProfile) []Position {
	if !profile.Diagonal {
		return cardinalOffsets
	}
	result := make([]Position, 0, 8)
	result = append(result, cardinalOffsets...)
	result = append(result, diagonalOffsets...)
	return result
}

func (pf *Pathfinder) traversable(p Position, profile MoveProfile) bool {
	if !pf.grid.InBounds(p) {
		return false
	}
	switch pf.grid.TerrainAt(p) {
	case TerrainWall:
		if !profile.CrossWalls {
			return false
		}
	case TerrainPit:
		return false
	}
	return !pf.occupied[p]
}

// FindPath returns the ordered list of cells from (exclusive) from to
// (inclusive) to, or nil when to is unreachable. The search is a
// breadth-first walk with a fixed neighbor order, so results are
// deterministic.
func (pf *Pathfinder) FindPath(from, to Position, profile MoveProfile) []Position {
	if from == to {
		return nil
	}
	if !pf.traversable(to, profile) {
		return nil
	}

	offsets := pf.offsets(profile)
	parent := map[Position]Position{from: from}
	queue := []Position{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, off := range offsets {
			next := Position{cur.X + off.X, cur.Y + off.Y}
			if _, seen := parent[next]; seen {
				continue
			}
			if !pf.traversable(next, profile) {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	if _, ok := parent[to]; !ok {
		return nil
	}

	// Walk back from the destination, then reverse.
	path := []Position{}
	for cur := to; cur != from; cur = parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ReachableTiles returns every cell reachable from origin within steps moves,
// excluding the origin itself. Order follows BFS discovery and is
// deterministic.
func (pf *Pathfinder) ReachableTiles(origin Position, steps int, profile MoveProfile) []Position {
	if steps <= 0 {
		return nil
	}

	offsets := pf.offsets(profile)
	dist := map[Position]int{origin: 0}
	queue := []Position{origin}
	var result []Position

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if dist[cur] >= steps {
			continue
		}
		for _, off := range offsets {
			next := Position{cur.X + off.X, cur.Y + off.Y}
			if _, seen := dist[next]; seen {
				continue
			}
			if !pf.traversable(next, profile) {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
			result = append(result, next)
		}
	}
	return result
}

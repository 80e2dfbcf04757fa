package board

import "fmt"

// Size is the side length of the square battle grid.
const Size = 10

// Position is a coordinate on the grid. X grows to the right, Y grows
// downwards, both zero-based.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Terrain represents the static content of a grid cell.
type Terrain int

const (
	TerrainEmpty Terrain = iota
	TerrainWall
	TerrainPit
)

var terrainNames = map[Terrain]string{
	TerrainEmpty: "EMPTY",
	TerrainWall:  "WALL",
	TerrainPit:   "PIT",
}

func (t Terrain) String() string {
	if name, ok := terrainNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TERRAIN_%d", int(t))
}

// Grid holds the board terrain plus a transient override layer that cards may
// install for the duration of a turn.
type Grid struct {
	cells     [Size][Size]Terrain
	overrides map[Position]Terrain
}

// NewGrid creates the default arena layout: walls along every border cell and
// a pit in the central 2x2 block.
func NewGrid() *Grid {
	g := &Grid{overrides: make(map[Position]Terrain)}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if x == 0 || y == 0 || x == Size-1 || y == Size-1 {
				g.cells[x][y] = TerrainWall
			}
		}
	}
	mid := Size/2 - 1
	g.cells[mid][mid] = TerrainPit
	g.cells[mid+1][mid] = TerrainPit
	g.cells[mid][mid+1] = TerrainPit
	g.cells[mid+1][mid+1] = TerrainPit
	return g
}

// InBounds reports whether the position lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// TerrainAt returns the effective terrain at p, honoring transient overrides.
func (g *Grid) TerrainAt(p Position) Terrain {
	if !g.InBounds(p) {
		return TerrainWall
	}
	if t, ok := g.overrides[p]; ok {
		return t
	}
	return g.cells[p.X][p.Y]
}

// BaseTerrainAt returns the static terrain at p, ignoring overrides.
func (g *Grid) BaseTerrainAt(p Position) Terrain {
	if !g.InBounds(p) {
		return TerrainWall
	}
	return g.cells[p.X][p.Y]
}

// SetOverride installs a transient terrain override at p. Overrides are
// cleared at end of turn via ClearOverrides.
func (g *Grid) SetOverride(p Position, t Terrain) {
	if !g.InBounds(p) {
		return
	}
	g.overrides[p] = t
}

// ClearOverrides removes every transient terrain override.
func (g *Grid) ClearOverrides() {
	g.overrides = make(map[Position]Terrain)
}

// Overrides returns a copy of the transient override layer.
func (g *Grid) Overrides() map[Position]Terrain {
	cpy := make(map[Position]Terrain, len(g.overrides))
	for p, t := range g.overrides {
		cpy[p] = t
	}
	return cpy
}

// Clone produces an independent copy of the grid including overrides.
func (g *Grid) Clone() *Grid {
	cpy := &Grid{
		cells:     g.cells,
		overrides: make(map[Position]Terrain, len(g.overrides)),
	}
	for p, t := range g.overrides {
		cpy.overrides[p] = t
	}
	return cpy
}

// Corners returns the four innermost playable corner cells, in a fixed order.
func (g *Grid) Corners() []Position {
	return []Position{
		{1, 1},
		{Size - 2, 1},
		{1, Size - 2},
		{Size - 2, Size - 2},
	}
}

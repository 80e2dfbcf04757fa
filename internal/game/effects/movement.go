package effects

import (
	"sort"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

// computeDestination resolves a forced-movement strategy into a destination
// cell. Returns false if no legal destination exists, in which case the
// champion stays put. The immediate strategy is handled by suspension, not
// here.
func computeDestination(gs *state.GameState, strategy content.MoveStrategy, mover, source *state.ChampionState, distance int) (board.Position, bool) {
	switch strategy {
	case content.MovePushAway:
		return slide(gs, mover, pushStep(source, mover), distance, false)
	case content.MovePushToWall:
		return slide(gs, mover, pushStep(source, mover), board.Size, false)
	case content.MovePushOverWall:
		return slide(gs, mover, pushStep(source, mover), distance, true)
	case content.MovePushToCorner:
		return nearestFreeCell(gs, mover, gs.Grid.Corners())
	case content.MovePushToSafest:
		return safestCell(gs, mover, distance)
	case content.MovePushToSource:
		return adjacentToCell(gs, mover, source.Position)
	default:
		return board.Position{}, false
	}
}

// pushStep is the unit direction from the push source toward the mover.
func pushStep(source, mover *state.ChampionState) board.Position {
	step := board.Position{}
	if mover.Position.X > source.Position.X {
		step.X = 1
	} else if mover.Position.X < source.Position.X {
		step.X = -1
	}
	if mover.Position.Y > source.Position.Y {
		step.Y = 1
	} else if mover.Position.Y < source.Position.Y {
		step.Y = -1
	}
	if step.X == 0 && step.Y == 0 {
		// Source on top of mover: push toward the nearest board edge.
		if mover.Position.X >= board.Size/2 {
			step.X = 1
		} else {
			step.X = -1
		}
	}
	return step
}

// slide advances the mover cell by cell along step, up to maxSteps. Walls
// stop the slide unless overWalls is set, in which case they are skipped but
// never landed on. Pits and occupied cells always stop the slide.
func slide(gs *state.GameState, mover *state.ChampionState, step board.Position, maxSteps int, overWalls bool) (board.Position, bool) {
	occupied := gs.OccupiedCells(mover.ID)
	last := mover.Position
	cur := mover.Position
	for i := 0; i < maxSteps; i++ {
		cur = board.Position{X: cur.X + step.X, Y: cur.Y + step.Y}
		if !gs.Grid.InBounds(cur) {
			break
		}
		terrain := gs.Grid.TerrainAt(cur)
		if terrain == board.TerrainWall {
			if overWalls {
				continue
			}
			break
		}
		if terrain == board.TerrainPit || occupied[cur] {
			break
		}
		last = cur
	}
	if last == mover.Position {
		return board.Position{}, false
	}
	return last, true
}

func cellFree(gs *state.GameState, occupied map[board.Position]bool, pos board.Position) bool {
	return gs.Grid.InBounds(pos) && gs.Grid.TerrainAt(pos) == board.TerrainEmpty && !occupied[pos]
}

// nearestFreeCell picks the closest free candidate to the mover, breaking
// ties deterministically by coordinate order.
func nearestFreeCell(gs *state.GameState, mover *state.ChampionState, candidates []board.Position) (board.Position, bool) {
	occupied := gs.OccupiedCells(mover.ID)
	var free []board.Position
	for _, pos := range candidates {
		if cellFree(gs, occupied, pos) {
			free = append(free, pos)
		}
	}
	if len(free) == 0 {
		return board.Position{}, false
	}
	sort.Slice(free, func(i, j int) bool {
		di := board.Chebyshev(mover.Position, free[i])
		dj := board.Chebyshev(mover.Position, free[j])
		if di != dj {
			return di < dj
		}
		if free[i].Y != free[j].Y {
			return free[i].Y < free[j].Y
		}
		return free[i].X < free[j].X
	})
	return free[0], true
}

// safestCell picks the free cell within distance of the mover that maximizes
// the minimum distance to any living enemy champion.
func safestCell(gs *state.GameState, mover *state.ChampionState, distance int) (board.Position, bool) {
	enemies := gs.LivingChampionsOf(rules.Opponent(mover.Owner))
	occupied := gs.OccupiedCells(mover.ID)

	best := mover.Position
	bestScore := minEnemyDistance(enemies, mover.Position)
	found := false
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			pos := board.Position{X: x, Y: y}
			if pos == mover.Position || board.Chebyshev(mover.Position, pos) > distance {
				continue
			}
			if !cellFree(gs, occupied, pos) {
				continue
			}
			if score := minEnemyDistance(enemies, pos); score > bestScore {
				best, bestScore, found = pos, score, true
			}
		}
	}
	return best, found
}

func minEnemyDistance(enemies []*state.ChampionState, pos board.Position) int {
	min := board.Size * 2
	for _, enemy := range enemies {
		if d := board.Chebyshev(enemy.Position, pos); d < min {
			min = d
		}
	}
	return min
}

// adjacentToCell places the mover on the free cell next to anchor that is
// closest to the mover's current position.
func adjacentToCell(gs *state.GameState, mover *state.ChampionState, anchor board.Position) (board.Position, bool) {
	var candidates []board.Position
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			candidates = append(candidates, board.Position{X: anchor.X + dx, Y: anchor.Y + dy})
		}
	}
	return nearestFreeCell(gs, mover, candidates)
}

// relocate moves a champion to its computed destination and publishes the
// move event.
func (in *Interpreter) relocate(gs *state.GameState, champ *state.ChampionState, dest board.Position, cardID string) {
	from := champ.Position
	champ.Position = dest
	event := rules.NewEvent(rules.EventChampionMoved, champ.Owner, champ.ID, "")
	event.CardID = cardID
	event.Data = from.String() + ">" + dest.String()
	gs.Publish(event)
}

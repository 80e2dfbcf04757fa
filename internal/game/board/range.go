package board

// Chebyshev returns max(|dx|, |dy|), the 8-directional king-move distance.
func Chebyshev(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Manhattan returns |dx| + |dy|.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// SameCardinalLine reports whether b lies on one of the four axis-aligned
// lines through a.
func SameCardinalLine(a, b Position) bool {
	return a.X == b.X || a.Y == b.Y
}

// Adjacent reports whether a and b touch, including diagonally.
func Adjacent(a, b Position) bool {
	return a != b && Chebyshev(a, b) == 1
}

// CanAttack implements the attack-range rule. Melee units (attackRange <= 1)
// threaten all 8 surrounding cells within their range. Ranged units
// (attackRange >= 2) shoot only along the 4 cardinal lines out to Manhattan
// distance attackRange, except that adjacency always counts as a valid melee
// fallback. The ranged asymmetry is a balance rule, not an oversight.
func CanAttack(from, to Position, attackRange int) bool {
	if from == to {
		return false
	}
	if attackRange <= 1 {
		return Chebyshev(from, to) <= attackRange
	}
	if Chebyshev(from, to) == 1 {
		return true
	}
	return SameCardinalLine(from, to) && Manhattan(from, to) <= attackRange
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

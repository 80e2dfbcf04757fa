package board

import "testing"

func TestCanAttackMeleeChebyshev(t *testing.T) {
	from := Position{4, 4}
	for x := 2; x <= 6; x++ {
		for y := 2; y <= 6; y++ {
			to := Position{x, y}
			if to == from {
				if CanAttack(from, to, 1) {
					t.Fatalf("self-target must never be attackable")
				}
				continue
			}
			want := Chebyshev(from, to) <= 1
			if got := CanAttack(from, to, 1); got != want {
				t.Fatalf("melee range 1 vs %v: got %v want %v", to, got, want)
			}
		}
	}
}

func TestCanAttackRangedCardinalOnly(t *testing.T) {
	from := Position{4, 4}

	if !CanAttack(from, Position{4, 1}, 3) {
		t.Fatalf("cardinal target within range must be attackable")
	}
	if CanAttack(from, Position{4, 0}, 3) {
		t.Fatalf("cardinal target past range must not be attackable")
	}
	// Off-axis at distance 2: no shot.
	if CanAttack(from, Position{6, 6}, 3) {
		t.Fatalf("diagonal target must not be attackable by ranged unit")
	}
	if CanAttack(from, Position{6, 5}, 3) {
		t.Fatalf("off-axis target must not be attackable by ranged unit")
	}
}

func TestCanAttackRangedMeleeFallback(t *testing.T) {
	from := Position{4, 4}
	// Diagonal adjacency is always a valid melee fallback for ranged units.
	if !CanAttack(from, Position{5, 5}, 3) {
		t.Fatalf("adjacent diagonal must be attackable via melee fallback")
	}
	if !CanAttack(from, Position{3, 4}, 3) {
		t.Fatalf("adjacent cardinal must be attackable")
	}
}

func TestDistances(t *testing.T) {
	a := Position{1, 2}
	b := Position{4, 6}
	if d := Chebyshev(a, b); d != 4 {
		t.Fatalf("Chebyshev = %d, want 4", d)
	}
	if d := Manhattan(a, b); d != 7 {
		t.Fatalf("Manhattan = %d, want 7", d)
	}
	if !SameCardinalLine(a, Position{1, 9}) || SameCardinalLine(a, b) {
		t.Fatalf("cardinal line check wrong")
	}
	if !Adjacent(a, Position{2, 3}) || Adjacent(a, a) || Adjacent(a, b) {
		t.Fatalf("adjacency check wrong")
	}
}

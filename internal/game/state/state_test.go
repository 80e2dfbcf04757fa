package state

import (
	"testing"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
)

func testArchetype() content.ChampionArchetype {
	return content.ChampionArchetype{Name: "Warrior", Power: 5, Range: 1, Movement: 3, StartingHP: 20}
}

func newTestState() *GameState {
	gs := NewGameState("m1", []string{"strike", "mend", "fireball"}, []string{"strike"})
	gs.AddChampion(NewChampion("c1", testArchetype(), 1, board.Position{X: 1, Y: 1}))
	gs.AddChampion(NewChampion("c2", testArchetype(), 2, board.Position{X: 8, Y: 8}))
	return gs
}

func TestDerivedStats(t *testing.T) {
	champ := NewChampion("c1", testArchetype(), 1, board.Position{X: 1, Y: 1})

	if champ.CurrentPower() != 5 {
		t.Fatalf("expected base power 5, got %d", champ.CurrentPower())
	}
	champ.ApplyStatMod(buffs.StatPower, 2, buffs.DurationPermanent, "warCry")
	champ.ApplyStatMod(buffs.StatPower, -1, 2, "exposeWeakness")
	if champ.CurrentPower() != 6 {
		t.Fatalf("expected 5+2-1=6, got %d", champ.CurrentPower())
	}

	champ.ApplyStatMod(buffs.StatMovement, -5, 1, "slowingMire")
	if champ.CurrentMovement() != 0 {
		t.Fatalf("movement must floor at zero, got %d", champ.CurrentMovement())
	}

	champ.Debuffs.Add(buffs.Root, 1, 1, "vines")
	champ.ApplyStatMod(buffs.StatMovement, 10, 1, "gale")
	if champ.CurrentMovement() != 0 {
		t.Fatalf("rooted champion must have zero movement")
	}
}

func TestDeckDrawFromEnd(t *testing.T) {
	p := NewPlayerState([]string{"a", "b", "c"})

	card, ok := p.Draw()
	if !ok || card != "c" {
		t.Fatalf("deck must draw from the end, got %q", card)
	}
	p.Draw()
	p.Draw()
	if _, ok := p.Draw(); ok {
		t.Fatalf("empty deck must not draw")
	}
	if len(p.Hand) != 3 {
		t.Fatalf("expected hand size 3, got %d", len(p.Hand))
	}
}

func TestManaAccounting(t *testing.T) {
	p := NewPlayerState(nil)

	if !p.SpendMana(4) || p.Mana != ManaPerTurn-4 {
		t.Fatalf("spend failed: mana=%d", p.Mana)
	}
	p.LockedMana = ManaPerTurn
	if p.SpendMana(1) {
		t.Fatalf("locked mana must not be spendable")
	}
	p.ResetMana()
	if p.Mana != ManaPerTurn || p.LockedMana != 0 {
		t.Fatalf("reset must restore the full pool and clear locks")
	}
}

func TestDamagePipeline(t *testing.T) {
	gs := newTestState()
	target, _ := gs.Champion("c2")

	// Flat reduction floors at 1.
	target.Buffs.Add(buffs.DamageReduction, buffs.DurationPermanent, 2, "ironWall")
	res := gs.DealDamage(target, 2, DamageContext{SourceID: "c1"})
	if res.Dealt != 1 {
		t.Fatalf("reduced damage must floor at 1, got %d", res.Dealt)
	}
	target.Buffs.Remove(buffs.DamageReduction)

	// Vulnerability adds, marked doubles once then clears.
	target.Debuffs.Add(buffs.Vulnerability, buffs.DurationPermanent, 1, "hex")
	target.Debuffs.Add(buffs.Marked, buffs.DurationPermanent, 1, "hexMark")
	res = gs.DealDamage(target, 3, DamageContext{SourceID: "c1"})
	if res.Dealt != 8 {
		t.Fatalf("expected (3+1)*2=8, got %d", res.Dealt)
	}
	if target.Debuffs.Has(buffs.Marked) {
		t.Fatalf("marked must clear after doubling")
	}

	// One-shot shield absorbs a hit entirely.
	target.Debuffs.Remove(buffs.Vulnerability)
	target.Buffs.Add(buffs.Shield, buffs.DurationThisTurn, 1, "ward")
	res = gs.DealDamage(target, 9, DamageContext{SourceID: "c1"})
	if !res.Negated || res.Dealt != 0 {
		t.Fatalf("shield must negate the hit: %+v", res)
	}
	if target.Buffs.Has(buffs.Shield) {
		t.Fatalf("shield must be consumed")
	}
}

func TestStealthBlocksOnlyTargetedDamage(t *testing.T) {
	gs := newTestState()
	target, _ := gs.Champion("c2")
	target.Buffs.Add(buffs.Stealth, 1, 1, "smokeScreen")

	res := gs.DealDamage(target, 4, DamageContext{SourceID: "c1"})
	if !res.Negated {
		t.Fatalf("stealth must void targeted damage")
	}
	res = gs.DealDamage(target, 4, DamageContext{SourceID: "c1", IsArea: true})
	if res.Dealt != 4 {
		t.Fatalf("stealth must not stop area damage, got %d", res.Dealt)
	}
}

func TestCheatDeath(t *testing.T) {
	gs := newTestState()
	target, _ := gs.Champion("c2")
	target.Buffs.Add(buffs.CheatDeath, buffs.DurationPermanent, 1, "guardianAngel")

	gs.DealDamage(target, 100, DamageContext{SourceID: "c1"})
	if target.CurrentHP != 1 || !target.IsAlive() {
		t.Fatalf("cheat death must pin HP at 1, got %d", target.CurrentHP)
	}
	if target.Buffs.Has(buffs.CheatDeath) {
		t.Fatalf("cheat death must be consumed")
	}

	res := gs.DealDamage(target, 100, DamageContext{SourceID: "c1"})
	if !res.Died || target.IsAlive() {
		t.Fatalf("second lethal hit must kill")
	}
}

func TestSpiritLinkSharesDamage(t *testing.T) {
	gs := newTestState()
	gs.AddChampion(NewChampion("c3", testArchetype(), 2, board.Position{X: 8, Y: 1}))
	target, _ := gs.Champion("c2")
	partner, _ := gs.Champion("c3")
	target.Buffs.Add(buffs.SpiritLink, buffs.DurationPermanent, 1, "c3")

	gs.Bus = rules.NewEventBus()
	var partnerHits, partnerHeals []int
	gs.Bus.Subscribe(func(e rules.Event) {
		if e.TargetID != "c3" {
			return
		}
		switch e.Type {
		case rules.EventDamageDealt:
			partnerHits = append(partnerHits, e.Amount)
		case rules.EventHealingDone:
			partnerHeals = append(partnerHeals, e.Amount)
		}
	})

	res := gs.DealDamage(target, 6, DamageContext{SourceID: "c1"})
	if res.Dealt != 3 {
		t.Fatalf("holder must keep half, got %d", res.Dealt)
	}
	if partner.CurrentHP != partner.MaxHP {
		t.Fatalf("partner must be healed back to full, hp=%d", partner.CurrentHP)
	}
	if len(partnerHits) != 1 || partnerHits[0] != 3 {
		t.Fatalf("partner must observe the shared damage, got %v", partnerHits)
	}
	if len(partnerHeals) != 1 || partnerHeals[0] != 3 {
		t.Fatalf("partner must observe the heal-back, got %v", partnerHeals)
	}
}

func TestEnrageStacksOnDamage(t *testing.T) {
	gs := newTestState()
	target, _ := gs.Champion("c2")
	target.Buffs.Add(buffs.Enrage, buffs.DurationPermanent, 1, "frenzy")

	gs.DealDamage(target, 2, DamageContext{SourceID: "c1"})
	gs.DealDamage(target, 2, DamageContext{SourceID: "c1"})
	if target.CurrentPower() != testArchetype().Power+2 {
		t.Fatalf("enrage must grant a power stack per hit, power=%d", target.CurrentPower())
	}
}

func TestCloneIndependence(t *testing.T) {
	gs := newTestState()
	gs.Grid.SetOverride(board.Position{X: 3, Y: 3}, board.TerrainWall)
	champ, _ := gs.Champion("c1")
	champ.Buffs.Add(buffs.Agility, 2, 1, "catReflexes")
	champ.Equipment["healingCharm"] = 3
	gs.Player(1).Hand = append(gs.Player(1).Hand, "fireball")

	cpy := gs.Clone()

	// Mutate the copy in every nested structure.
	copyChamp, _ := cpy.Champion("c1")
	copyChamp.CurrentHP = 1
	copyChamp.Buffs.Remove(buffs.Agility)
	copyChamp.Equipment["healingCharm"] = 0
	cpy.Player(1).Hand[0] = "mutated"
	cpy.Grid.SetOverride(board.Position{X: 4, Y: 6}, board.TerrainPit)

	if champ.CurrentHP == 1 || !champ.Buffs.Has(buffs.Agility) || champ.Equipment["healingCharm"] != 3 {
		t.Fatalf("champion aliased into clone")
	}
	if gs.Player(1).Hand[0] == "mutated" {
		t.Fatalf("hand aliased into clone")
	}
	if gs.Grid.TerrainAt(board.Position{X: 4, Y: 6}) == board.TerrainPit {
		t.Fatalf("terrain overrides aliased into clone")
	}
	if cpy.Bus != nil {
		t.Fatalf("clone must not carry the event bus")
	}
}

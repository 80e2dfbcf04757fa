package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

func TestMatchStartsInActionPhase(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)

	gs := h.State()
	assert.Equal(t, 1, gs.ActivePlayer)
	assert.Equal(t, state.PhaseAction, gs.Phase)
	assert.Equal(t, state.ManaPerTurn, gs.Player(1).Mana)
	assert.Len(t, gs.Champions, 4)
}

func TestBasicAttackDealsPowerDamage(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	assert.Equal(t, 5, result.DamageDealt)

	target := h.Champion("p2-warrior")
	assert.Equal(t, target.MaxHP-5, target.CurrentHP)
	assert.True(t, h.Champion("p1-warrior").HasAttacked)

	// Second attack the same turn is rejected.
	result = h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "already attacked")
}

func TestAttackOutOfRangeRejected(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 2})
	h.PlaceChampion("p2-warrior", board.Position{X: 6, Y: 6})

	result := h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "out of range")
}

func TestMoveSpendsMovement(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 2})

	h.MustSucceed(h.Engine().MoveChampion("m1", 1, "p1-warrior", board.Position{X: 2, Y: 4}))

	champ := h.Champion("p1-warrior")
	assert.Equal(t, board.Position{X: 2, Y: 4}, champ.Position)
	assert.Equal(t, 1, champ.MovementRemaining())

	// A second leg further than the remaining movement is rejected.
	result := h.Engine().MoveChampion("m1", 1, "p1-warrior", board.Position{X: 2, Y: 6})
	assert.False(t, result.Success)
}

func TestCastSpendsManaAndDiscards(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 6, Y: 4})
	h.GiveCard(1, "fireball")

	result := h.MustSucceed(h.Engine().CastCard("m1", 1, "fireball", "p1-warrior", []string{"p2-warrior"}, nil))
	assert.Equal(t, 4, result.DamageDealt)

	ps := h.State().Player(1)
	assert.Equal(t, state.ManaPerTurn-3, ps.Mana)
	assert.NotContains(t, ps.Hand, "fireball")
	assert.Contains(t, ps.Discard, "fireball")
}

func TestCastWithoutManaRejected(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.GiveCard(1, "fireball")
	h.SetMana(1, 1)

	result := h.Engine().CastCard("m1", 1, "fireball", "p1-warrior", []string{"p2-warrior"}, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not enough mana")
	// Failed validation leaves the hand untouched.
	assert.Contains(t, h.State().Player(1).Hand, "fireball")
}

func TestMindRotDiscardsFromOpponentHand(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.GiveCard(1, "mindRot")
	h.GiveCard(2, "strike")
	h.GiveCard(2, "mend")
	h.GiveCard(2, "fireball")

	h.MustSucceed(h.Engine().CastCard("m1", 1, "mindRot", "p1-warrior", nil, nil))

	p2 := h.State().Player(2)
	assert.Equal(t, []string{"strike"}, p2.Hand)
	assert.Equal(t, []string{"fireball", "mend"}, p2.Discard)
}

func TestManaSealLocksOpponentMana(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.GiveCard(1, "manaSeal")

	h.MustSucceed(h.Engine().CastCard("m1", 1, "manaSeal", "p1-warrior", nil, nil))

	p2 := h.State().Player(2)
	assert.Equal(t, 2, p2.LockedMana)
	assert.Equal(t, state.ManaPerTurn-2, p2.UsableMana())
}

func TestSiphonStealsOpponentMana(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.GiveCard(1, "siphon")

	h.MustSucceed(h.Engine().CastCard("m1", 1, "siphon", "p1-warrior", nil, nil))

	// Cost 1 out, 2 stolen in.
	assert.Equal(t, state.ManaPerTurn+1, h.State().Player(1).Mana)
	assert.Equal(t, state.ManaPerTurn-2, h.State().Player(2).Mana)
}

func TestEndTurnHandLimitDiscardsFromTail(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	hand := []string{"fireball", "strike", "mend", "warCry", "shove", "gale", "insight", "siphon", "manaSpring"}
	for _, id := range hand {
		h.GiveCard(1, id)
	}

	h.MustSucceed(h.Engine().EndTurn("m1", 1))

	ps := h.State().Player(1)
	require.Len(t, ps.Hand, state.HandLimit)
	assert.Equal(t, hand[:state.HandLimit], ps.Hand)
	// The tail cards went to the discard pile.
	assert.Contains(t, ps.Discard, "siphon")
	assert.Contains(t, ps.Discard, "manaSpring")
	assert.Equal(t, 2, h.State().ActivePlayer)
}

func TestEndTurnHandLimitKeepsDuplicateOrder(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	hand := []string{"strike", "mend", "warCry", "shove", "gale", "insight", "manaSpring", "strike", "fireball"}
	for _, id := range hand {
		h.GiveCard(1, id)
	}

	h.MustSucceed(h.Engine().EndTurn("m1", 1))

	ps := h.State().Player(1)
	// The leading strike copy survives; the tail copy is the one discarded.
	assert.Equal(t, hand[:state.HandLimit], ps.Hand)
	assert.Equal(t, []string{"fireball", "strike"}, ps.Discard)
}

func TestEndTurnExpiresThisTurnModifiers(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	champ := h.Champion("p1-warrior")
	champ.Buffs.Add(buffs.Shield, buffs.DurationThisTurn, 1, "test")
	champ.Buffs.Add(buffs.Enrage, buffs.DurationPermanent, 1, "test")
	h.State().Grid.SetOverride(board.Position{X: 3, Y: 3}, board.TerrainWall)

	h.MustSucceed(h.Engine().EndTurn("m1", 1))

	assert.False(t, champ.Buffs.Has(buffs.Shield))
	assert.True(t, champ.Buffs.Has(buffs.Enrage))
	assert.Equal(t, board.TerrainEmpty, h.State().Grid.TerrainAt(board.Position{X: 3, Y: 3}))
	assert.Equal(t, state.ManaPerTurn, h.State().Player(2).Mana)
}

func TestEndTurnRejectedForInactivePlayer(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)

	result := h.Engine().EndTurn("m1", 2)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not your turn")
}

func TestBeforeDamageWindowNegatesAttack(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.GiveCard(2, "counterPulse")

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	require.True(t, result.WindowOpened)

	// The defender counters, then both players pass.
	h.MustSucceed(h.Engine().PlayResponse("m1", 2, "counterPulse", "p2-warrior"))
	h.MustSucceed(h.Engine().PassResponse("m1", 1))
	result = h.MustSucceed(h.Engine().PassResponse("m1", 2))

	// The freshly-applied negate consumed the hit.
	target := h.Champion("p2-warrior")
	assert.Equal(t, target.MaxHP, target.CurrentHP)
	assert.False(t, target.Buffs.Has(buffs.Negate))
	// The attack still consumed the turn resource.
	assert.True(t, h.Champion("p1-warrior").HasAttacked)
}

func TestDeadTargetAbortsAttackAfterWindow(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.GiveCard(2, "counterPulse")

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	require.True(t, result.WindowOpened)

	// The target dies while the window is open.
	h.Champion("p2-warrior").CurrentHP = 0
	h.MustSucceed(h.Engine().PassResponse("m1", 2))
	result = h.MustSucceed(h.Engine().PassResponse("m1", 1))

	assert.True(t, result.Missed)
	assert.True(t, h.Champion("p1-warrior").HasAttacked)
}

func TestLastChampionDeadInWindowEndsGame(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.Champion("p2-archer").CurrentHP = 0
	h.GiveCard(2, "counterPulse")

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	require.True(t, result.WindowOpened)

	// Player 2's last champion falls while the window is open. Closing
	// the window must settle the match, not wait for a later action.
	h.Champion("p2-warrior").CurrentHP = 0
	h.MustSucceed(h.Engine().PassResponse("m1", 2))
	result = h.MustSucceed(h.Engine().PassResponse("m1", 1))

	assert.True(t, result.Missed)
	assert.True(t, result.GameOver)
	assert.Equal(t, 1, result.Winner)
	assert.True(t, h.State().GameOver)
}

func TestResponseStackResolvesLIFO(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.GiveCard(1, "retribution")
	h.GiveCard(2, "retribution")
	h.GiveCard(2, "retribution")

	var resolved []string
	h.Match().bus.SubscribeTyped(rules.EventResponseResolved, func(e rules.Event) {
		resolved = append(resolved, e.CardID+"/"+e.SourceID)
	})

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	require.True(t, result.WindowOpened) // after-damage window

	// p2 responds, p1 responds, p2 responds again, then both pass.
	h.MustSucceed(h.Engine().PlayResponse("m1", 2, "retribution", "p2-warrior"))
	h.MustSucceed(h.Engine().PlayResponse("m1", 1, "retribution", "p1-warrior"))
	h.MustSucceed(h.Engine().PlayResponse("m1", 2, "retribution", "p2-warrior"))
	h.MustSucceed(h.Engine().PassResponse("m1", 1))
	h.MustSucceed(h.Engine().PassResponse("m1", 2))

	// Last in, first out: p2's second response resolves before p1's,
	// which resolves before p2's first.
	require.Len(t, resolved, 3)
	assert.Equal(t, "retribution/p2-warrior", resolved[0])
	assert.Equal(t, "retribution/p1-warrior", resolved[1])
	assert.Equal(t, "retribution/p2-warrior", resolved[2])
}

func TestPlayResetsPassCounter(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.GiveCard(1, "retribution")
	h.GiveCard(2, "retribution")

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	require.True(t, result.WindowOpened)

	// pass, play, pass: the intervening play resets the counter, so the
	// window stays open.
	h.MustSucceed(h.Engine().PassResponse("m1", 2))
	h.MustSucceed(h.Engine().PlayResponse("m1", 1, "retribution", "p1-warrior"))
	h.MustSucceed(h.Engine().PassResponse("m1", 2))
	assert.NotNil(t, h.Match().window)

	h.MustSucceed(h.Engine().PassResponse("m1", 1))
	assert.Nil(t, h.Match().window)
}

func TestWindowNeedsEligibleResponder(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	// The defender holds a response but cannot afford it.
	h.GiveCard(2, "counterPulse")
	h.SetMana(2, 1)

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	assert.False(t, result.WindowOpened)
	assert.Equal(t, 5, result.DamageDealt)
}

func TestUndoRestoresExactState(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})

	before := SnapshotState(h.State()).Checksum()

	h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	assert.NotEqual(t, before, SnapshotState(h.State()).Checksum())

	h.MustSucceed(h.Engine().UndoLastAction("m1", 1))
	assert.Equal(t, before, SnapshotState(h.State()).Checksum())
}

func TestRedoReappliesAndNewActionTruncates(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 2})

	h.MustSucceed(h.Engine().MoveChampion("m1", 1, "p1-warrior", board.Position{X: 3, Y: 2}))
	after := SnapshotState(h.State()).Checksum()

	h.MustSucceed(h.Engine().UndoLastAction("m1", 1))
	h.MustSucceed(h.Engine().RedoAction("m1", 1))
	assert.Equal(t, after, SnapshotState(h.State()).Checksum())

	// Undo, take a different action: the redo tail is gone.
	h.MustSucceed(h.Engine().UndoLastAction("m1", 1))
	h.MustSucceed(h.Engine().MoveChampion("m1", 1, "p1-warrior", board.Position{X: 2, Y: 3}))
	result := h.Engine().RedoAction("m1", 1)
	assert.False(t, result.Success)
}

func TestUndoRejectedDuringWindow(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.GiveCard(2, "counterPulse")

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	require.True(t, result.WindowOpened)

	undo := h.Engine().UndoLastAction("m1", 1)
	assert.False(t, undo.Success)
	assert.Contains(t, undo.Error, "window")
}

func TestSuspendedCastResumesThroughBoundary(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 7, Y: 4})
	h.GiveCard(1, "overcharge")

	result := h.MustSucceed(h.Engine().CastCard("m1", 1, "overcharge", "p1-warrior", []string{"p2-warrior"}, nil))
	require.True(t, result.Suspended)
	require.NotNil(t, result.Request)

	// Further actions are rejected while input is pending.
	blocked := h.Engine().MoveChampion("m1", 1, "p1-warrior", board.Position{X: 3, Y: 4})
	assert.False(t, blocked.Success)

	result = h.MustSucceed(h.Engine().ProvideXValue("m1", 1, 2))
	assert.False(t, result.Suspended)
	assert.Equal(t, 3, result.DamageDealt) // base 1 + X 2

	// Base cost 1 plus X 2.
	assert.Equal(t, state.ManaPerTurn-3, h.State().Player(1).Mana)
}

func TestEquipmentChargesDeplete(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.GiveCard(1, "healingCharm")
	h.MustSucceed(h.Engine().CastCard("m1", 1, "healingCharm", "p1-warrior", []string{"p1-warrior"}, nil))

	champ := h.Champion("p1-warrior")
	require.Equal(t, 3, champ.Equipment["healingCharm"])

	champ.CurrentHP = champ.MaxHP - 10
	for i := 0; i < 3; i++ {
		h.MustSucceed(h.Engine().UseEquipment("m1", 1, "p1-warrior", "healingCharm"))
	}
	assert.Equal(t, champ.MaxHP-4, champ.CurrentHP)
	_, equipped := champ.Equipment["healingCharm"]
	assert.False(t, equipped)

	result := h.Engine().UseEquipment("m1", 1, "p1-warrior", "healingCharm")
	assert.False(t, result.Success)
}

func TestWinByElimination(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.Champion("p2-warrior").CurrentHP = 3
	h.Champion("p2-archer").CurrentHP = 0

	result := h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
	assert.True(t, result.TargetDied)
	assert.True(t, result.GameOver)
	assert.Equal(t, 1, result.Winner)

	// No further actions once the game is over.
	blocked := h.Engine().EndTurn("m1", 1)
	assert.False(t, blocked.Success)
}

func TestDeterministicReplay(t *testing.T) {
	run := func() string {
		h := NewArenaTestHarness(t, "m1", 1234)
		h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
		h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
		h.GiveCard(1, "gamble")
		h.Champion("p1-warrior").Buffs.Add(buffs.CriticalHit, buffs.DurationPermanent, 1, "test")

		h.MustSucceed(h.Engine().AttackChampion("m1", 1, "p1-warrior", "p2-warrior"))
		h.MustSucceed(h.Engine().CastCard("m1", 1, "gamble", "p1-warrior", []string{"p2-warrior"}, nil))
		h.MustSucceed(h.Engine().EndTurn("m1", 1))
		return SnapshotState(h.State()).Checksum()
	}

	first := run()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, run())
	}
}

func TestQueriesReflectState(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.PlaceChampion("p1-warrior", board.Position{X: 2, Y: 4})
	h.PlaceChampion("p2-warrior", board.Position{X: 2, Y: 3})
	h.GiveCard(1, "fireball")
	h.GiveCard(1, "counterPulse")

	moves, err := h.Engine().GetValidMoves("m1", "p1-warrior")
	require.NoError(t, err)
	assert.NotEmpty(t, moves)

	targets, err := h.Engine().GetValidAttackTargets("m1", "p1-warrior")
	require.NoError(t, err)
	assert.Contains(t, targets, "p2-warrior")

	// Responses are not playable during the action phase.
	playable, err := h.Engine().GetPlayableCards("m1", 1)
	require.NoError(t, err)
	assert.Contains(t, playable, "fireball")
	assert.NotContains(t, playable, "counterPulse")

	view, err := h.Engine().GetGameState("m1")
	require.NoError(t, err)
	assert.Equal(t, "ACTION", view.Phase)
	assert.Len(t, view.Champions, 4)
}

func TestStateCopyIsIndependent(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)

	cpy, err := h.Engine().GetStateCopy("m1")
	require.NoError(t, err)

	champ, _ := cpy.Champion("p1-warrior")
	champ.CurrentHP = 1
	assert.NotEqual(t, 1, h.Champion("p1-warrior").CurrentHP)
}

func TestSnapshotRoundTrip(t *testing.T) {
	h := NewArenaTestHarness(t, "m1", 42)
	h.Champion("p1-warrior").Buffs.Add(buffs.Agility, 2, 1, "catReflexes")
	h.State().Grid.SetOverride(board.Position{X: 3, Y: 3}, board.TerrainPit)
	h.GiveCard(1, "fireball")

	data, err := h.Engine().SaveMatch("m1")
	require.NoError(t, err)

	snap, err := DeserializeSnapshot(data)
	require.NoError(t, err)

	restored := snap.RestoreState()
	assert.Equal(t, SnapshotState(h.State()).Checksum(), SnapshotState(restored).Checksum())
}

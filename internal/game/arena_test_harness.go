package game

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

// ArenaTestHarness provides utilities for setting up and running match
// scenarios in tests.
type ArenaTestHarness struct {
	t       *testing.T
	engine  *ArenaEngine
	matchID string
}

// NewArenaTestHarness starts a match with empty decks (no draw variance) and
// the standard corner deployment, seeded for reproducible rolls.
func NewArenaTestHarness(t *testing.T, matchID string, seed int64) *ArenaTestHarness {
	logger := zaptest.NewLogger(t)
	engine := NewArenaEngine(logger, nil)

	err := engine.CreateMatch(matchID, MatchConfig{
		Seed:  seed,
		Deck1: []string{},
		Deck2: []string{},
	})
	if err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return &ArenaTestHarness{t: t, engine: engine, matchID: matchID}
}

// Engine exposes the engine for boundary calls.
func (h *ArenaTestHarness) Engine() *ArenaEngine { return h.engine }

// Match returns the internal match for direct manipulation.
func (h *ArenaTestHarness) Match() *matchState {
	h.engine.mu.RLock()
	m := h.engine.matches[h.matchID]
	h.engine.mu.RUnlock()
	return m
}

// State returns the live game state.
func (h *ArenaTestHarness) State() *state.GameState {
	return h.Match().state
}

// Champion fetches a champion or fails the test.
func (h *ArenaTestHarness) Champion(id string) *state.ChampionState {
	champ, ok := h.State().Champion(id)
	if !ok {
		h.t.Fatalf("champion %s not found", id)
	}
	return champ
}

// PlaceChampion teleports a champion for scenario setup.
func (h *ArenaTestHarness) PlaceChampion(id string, pos board.Position) {
	h.Champion(id).Position = pos
}

// GiveCard puts a card directly into a player's hand.
func (h *ArenaTestHarness) GiveCard(player int, cardID string) {
	ps := h.State().Player(player)
	ps.Hand = append(ps.Hand, cardID)
}

// SetMana overrides a player's current mana.
func (h *ArenaTestHarness) SetMana(player, mana int) {
	h.State().Player(player).Mana = mana
}

// MustSucceed fails the test if the command did not succeed.
func (h *ArenaTestHarness) MustSucceed(result CommandResult) CommandResult {
	h.t.Helper()
	if !result.Success {
		h.t.Fatalf("command failed: %s", result.Error)
	}
	return result
}

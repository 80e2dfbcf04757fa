package game

import (
	"errors"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

// beginTurn runs the start phase for the active player: mana reset, per-turn
// flags reset, one card drawn (skipped on an empty deck), then the start-turn
// and on-draw response windows before play moves to the action phase.
func (m *matchState) beginTurn() {
	gs := m.state
	gs.Phase = state.PhaseStart
	active := gs.ActivePlayer

	gs.Player(active).ResetMana()
	for _, champ := range gs.ChampionsOf(active) {
		champ.ResetTurnFlags()
	}

	event := rules.NewEvent(rules.EventTurnStarted, active, "", "")
	event.Amount = gs.Round
	gs.Publish(event)

	if cardID, ok := gs.Player(active).Draw(); ok {
		drawn := rules.NewEvent(rules.EventCardDrawn, active, "", "")
		drawn.CardID = cardID
		gs.Publish(drawn)
		m.openWindow(content.TriggerOnDraw, map[string]string{"card": cardID}, active)
	}
	if m.window == nil {
		m.openWindow(content.TriggerStartTurn, m.turnContext(active), active)
	}

	if m.window == nil {
		gs.Phase = state.PhaseAction
	} else {
		// The window interrupted the start phase; play resumes in the
		// action phase once it closes.
		m.phaseBeforeWindow = state.PhaseAction
	}
}

// turnContext names a representative champion so character-bound turn
// responses can check their binding.
func (m *matchState) turnContext(player int) map[string]string {
	ctx := map[string]string{}
	if champs := m.state.LivingChampionsOf(player); len(champs) > 0 {
		ctx["actor"] = champs[0].ID
	}
	return ctx
}

// requestEndTurn begins ending the active player's turn. It may be
// interrupted by an end-turn response window; the end phase itself runs once
// the window closes.
func (m *matchState) requestEndTurn(player int) error {
	gs := m.state
	if gs.GameOver {
		return errors.New("the game is over")
	}
	if gs.ActivePlayer != player {
		return ErrNotYourTurn
	}
	if gs.Phase != state.PhaseAction {
		return ErrWrongPhase
	}

	if m.openWindow(content.TriggerEndTurn, m.turnContext(player), player) {
		m.pendingEnd = true
		return nil
	}
	m.finishTurn()
	return nil
}

// finishTurn runs the end phase: hand limit, modifier expiry, terrain
// overlay cleanup and the win check, then hands off to the next player.
func (m *matchState) finishTurn() {
	gs := m.state
	gs.Phase = state.PhaseEnd
	active := gs.ActivePlayer

	// Hand limit: excess cards are discarded from the tail.
	player := gs.Player(active)
	for len(player.Hand) > state.HandLimit {
		cardID, _ := player.DiscardLast()
		event := rules.NewEvent(rules.EventCardDiscarded, active, "", "")
		event.CardID = cardID
		gs.Publish(event)
	}

	// This-turn modifiers expire and timed ones tick down for the player
	// whose turn is ending.
	for _, champ := range gs.ChampionsOf(active) {
		for _, name := range champ.Buffs.TickEndOfTurn() {
			event := rules.NewEvent(rules.EventBuffExpired, active, "", champ.ID)
			event.Data = name
			gs.Publish(event)
		}
		for _, name := range champ.Debuffs.TickEndOfTurn() {
			event := rules.NewEvent(rules.EventDebuffExpired, active, "", champ.ID)
			event.Data = name
			gs.Publish(event)
		}
	}

	gs.Grid.ClearOverrides()

	ended := rules.NewEvent(rules.EventTurnEnded, active, "", "")
	ended.Amount = gs.Round
	gs.Publish(ended)

	if gs.EvaluateWinner() {
		m.publishGameEnded()
		return
	}

	// Undo never crosses a turn boundary.
	m.history.Clear()

	gs.ActivePlayer = rules.Opponent(active)
	if gs.ActivePlayer == 1 {
		gs.Round++
	}
	m.beginTurn()
}

func (m *matchState) publishGameEnded() {
	event := rules.NewEvent(rules.EventGameEnded, m.state.Winner, "", "")
	event.Description = "match over"
	m.state.Publish(event)
}

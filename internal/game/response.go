package game

import (
	"errors"
	"fmt"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoOpenWindow  = errors.New("no response window is open")
	ErrNotPriority   = errors.New("you do not hold priority")
	ErrWrongTrigger  = errors.New("card does not answer this trigger")
	ErrWindowAlready = errors.New("a response window is already open")
)

// responderFor computes which player gets first priority for a trigger.
// Damage triggers go to the owner of the damaged champion; move, heal, cast
// and draw triggers go to the opponent of the acting player; turn-boundary
// triggers go to the active player themself.
func responderFor(gs *state.GameState, trigger content.Trigger, ctx map[string]string, triggeringPlayer int) int {
	switch trigger {
	case content.TriggerBeforeDamage, content.TriggerAfterDamage:
		if target, ok := gs.Champion(ctx["target"]); ok {
			return target.Owner
		}
		return rules.Opponent(triggeringPlayer)
	case content.TriggerOnMove, content.TriggerOnHeal, content.TriggerOnCast, content.TriggerOnDraw:
		return rules.Opponent(triggeringPlayer)
	case content.TriggerStartTurn, content.TriggerEndTurn:
		return triggeringPlayer
	default:
		return rules.Opponent(triggeringPlayer)
	}
}

// contextActor finds the champion a character-bound response card must
// match: the damaged or acted-upon entity named in the window context.
func contextActor(gs *state.GameState, ctx map[string]string) (*state.ChampionState, bool) {
	for _, key := range []string{"target", "mover", "actor", "source"} {
		if id, ok := ctx[key]; ok {
			if champ, found := gs.Champion(id); found {
				return champ, true
			}
		}
	}
	return nil, false
}

// responseEligible checks one hand card against a trigger: matching trigger,
// affordable mana, character binding, and the move-trigger range rule.
func responseEligible(gs *state.GameState, card *content.Card, player int, trigger content.Trigger, ctx map[string]string) bool {
	if card.Type != content.CardTypeResponse || card.Trigger != trigger {
		return false
	}
	if gs.Player(player).UsableMana() < card.Cost {
		return false
	}
	if card.Character != "" {
		actor, ok := contextActor(gs, ctx)
		if !ok || actor.Archetype != card.Character {
			return false
		}
	}
	// Move-triggered cards need the mover within range of one of the
	// responder's champions.
	if trigger == content.TriggerOnMove && card.Range > 0 {
		mover, ok := gs.Champion(ctx["mover"])
		if !ok {
			return false
		}
		inRange := false
		for _, champ := range gs.LivingChampionsOf(player) {
			if board.Chebyshev(champ.Position, mover.Position) <= card.Range {
				inRange = true
				break
			}
		}
		if !inRange {
			return false
		}
	}
	return true
}

// eligibleResponses lists the hand cards the responder could legally play.
func (m *matchState) eligibleResponses(player int, trigger content.Trigger, ctx map[string]string) []string {
	var out []string
	for _, cardID := range m.state.Player(player).Hand {
		card, ok := m.library.Card(cardID)
		if !ok {
			continue
		}
		if responseEligible(m.state, card, player, trigger, ctx) {
			out = append(out, cardID)
		}
	}
	return out
}

// openWindow opens a response window for the trigger if the computed
// responder holds at least one eligible response card. Returns false when no
// window opens and the triggering flow should proceed directly. Response
// cards resolving inside a window never open nested windows.
func (m *matchState) openWindow(trigger content.Trigger, ctx map[string]string, triggeringPlayer int) bool {
	if m.window != nil {
		return false
	}
	responder := responderFor(m.state, trigger, ctx, triggeringPlayer)
	if len(m.eligibleResponses(responder, trigger, ctx)) == 0 {
		return false
	}

	m.window = rules.NewResponseWindow(trigger, ctx, triggeringPlayer, responder)
	m.phaseBeforeWindow = m.state.Phase
	m.state.Phase = state.PhaseResponse

	event := rules.NewEvent(rules.EventResponseWindowOpened, responder, ctx["source"], ctx["target"])
	event.Data = string(trigger)
	gs := m.state
	gs.Publish(event)
	return true
}

// playResponse validates and queues a response card for the priority player:
// mana is spent and the card leaves the hand immediately; resolution waits
// for the window to close.
func (m *matchState) playResponse(player int, cardID, casterID string) error {
	if m.window == nil {
		return ErrNoOpenWindow
	}
	if m.window.Priority != player {
		return ErrNotPriority
	}
	card, ok := m.library.Card(cardID)
	if !ok {
		return fmt.Errorf("unknown card id: %s", cardID)
	}
	if card.Trigger != m.window.Trigger {
		return ErrWrongTrigger
	}
	if !responseEligible(m.state, card, player, m.window.Trigger, m.window.Context) {
		return fmt.Errorf("%s cannot answer this trigger", cardID)
	}
	caster, ok := m.state.Champion(casterID)
	if !ok || caster.Owner != player || !caster.IsAlive() {
		return ErrInvalidTarget
	}

	ps := m.state.Player(player)
	if !ps.SpendMana(card.Cost) {
		return ErrNotEnoughMana
	}
	ps.RemoveFromHand(cardID)

	targets := responseTargets(m.state, card, player, casterID, m.window.Context)
	m.state.Stack.Push(rules.ResponseEntry{
		ID:       uuid.NewString(),
		CardID:   cardID,
		Player:   player,
		CasterID: casterID,
		Targets:  targets,
		Trigger:  m.window.Trigger,
		Context:  m.window.Context,
	})
	m.window.RecordPlay()

	event := rules.NewEvent(rules.EventResponsePlayed, player, casterID, "")
	event.CardID = cardID
	m.state.Publish(event)
	return nil
}

// passResponse records a pass for the priority player. The second
// consecutive pass resolves the stack and closes the window; the caller then
// continues whatever action the window interrupted.
func (m *matchState) passResponse(player int) (resolved bool, err error) {
	if m.window == nil {
		return false, ErrNoOpenWindow
	}
	if m.window.Priority != player {
		return false, ErrNotPriority
	}

	event := rules.NewEvent(rules.EventResponsePassed, player, "", "")
	m.state.Publish(event)

	if !m.window.RecordPass() {
		return false, nil
	}
	m.resolveResponseStack()
	m.closeWindow()
	return true, nil
}

// responseTargets picks the effect target for a response card from the
// window context, honoring the card's target mode: a counter on your own
// damaged champion binds to the context target, a punish card binds to the
// enemy actor.
func responseTargets(gs *state.GameState, card *content.Card, player int, casterID string, ctx map[string]string) []string {
	if card.Target == content.TargetSelf || card.Target == content.TargetNone {
		return []string{casterID}
	}
	for _, key := range []string{"target", "mover", "source", "actor"} {
		id, ok := ctx[key]
		if !ok {
			continue
		}
		champ, found := gs.Champion(id)
		if !found {
			continue
		}
		switch card.Target {
		case content.TargetEnemy:
			if champ.Owner != player {
				return []string{id}
			}
		case content.TargetAlly:
			if champ.Owner == player {
				return []string{id}
			}
		case content.TargetAny:
			return []string{id}
		}
	}
	return []string{casterID}
}

// resolveResponseStack pops queued responses last-in-first-out, resolving
// each against the caster captured at queue time and discarding the card.
func (m *matchState) resolveResponseStack() {
	for !m.state.Stack.IsEmpty() {
		entry, err := m.state.Stack.Pop()
		if err != nil {
			return
		}
		result, err := m.interp.ProcessCard(m.state, entry.CardID, entry.CasterID, entry.Targets, nil)
		if err != nil {
			m.log.Warn("response card failed to resolve",
				zap.String("card", entry.CardID),
				zap.Error(err))
		} else if result.Suspended {
			// Response cards are expected to resolve synchronously.
			m.log.Warn("response card suspended mid-window, dropping",
				zap.String("card", entry.CardID))
		}
		m.state.Player(entry.Player).Discard = append(m.state.Player(entry.Player).Discard, entry.CardID)

		event := rules.NewEvent(rules.EventResponseResolved, entry.Player, entry.CasterID, "")
		event.CardID = entry.CardID
		m.state.Publish(event)
	}
}

// closeWindow restores the interrupted phase.
func (m *matchState) closeWindow() {
	if m.window == nil {
		return
	}
	m.state.Phase = m.phaseBeforeWindow
	m.window = nil
	m.state.Publish(rules.NewEvent(rules.EventResponseWindowClosed, 0, "", ""))
}

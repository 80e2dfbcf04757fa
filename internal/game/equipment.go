package game

import (
	"errors"
	"fmt"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

var ErrNoCharges = errors.New("equipment has no charges left")

// EquipmentAction spends one charge of an equipped item and resolves its
// effects through the interpreter. Depleted items fall off the champion.
type EquipmentAction struct {
	player     int
	championID string
	cardID     string

	Result *effectsResult
}

type effectsResult struct {
	DamageDealt int
	HealingDone int
}

func NewEquipmentAction(player int, championID, cardID string) *EquipmentAction {
	return &EquipmentAction{player: player, championID: championID, cardID: cardID}
}

func (a *EquipmentAction) Player() int { return a.player }

func (a *EquipmentAction) Describe() string {
	return fmt.Sprintf("use %s on %s", a.cardID, a.championID)
}

func (a *EquipmentAction) IsValid(gs *state.GameState) error {
	champ, err := validateActor(gs, a.player, a.championID)
	if err != nil {
		return err
	}
	charges, equipped := champ.Equipment[a.cardID]
	if !equipped {
		return fmt.Errorf("%s is not equipped on %s", a.cardID, a.championID)
	}
	if charges <= 0 {
		return ErrNoCharges
	}
	return nil
}

func (a *EquipmentAction) Execute(gs *state.GameState, m *matchState) error {
	champ, _ := gs.Champion(a.championID)
	card, ok := m.library.Card(a.cardID)
	if !ok || card.Type != content.CardTypeEquipment {
		return fmt.Errorf("%w: %s", ErrWrongCardType, a.cardID)
	}

	champ.Equipment[a.cardID]--
	if champ.Equipment[a.cardID] <= 0 {
		delete(champ.Equipment, a.cardID)
	}

	result, err := m.interp.ProcessCard(gs, a.cardID, a.championID, []string{a.championID}, nil)
	if err != nil {
		return err
	}
	a.Result = &effectsResult{DamageDealt: result.DamageDealt, HealingDone: result.HealingDone}

	event := rules.NewEvent(rules.EventEquipmentUsed, a.player, a.championID, "")
	event.CardID = a.cardID
	event.Amount = champ.Equipment[a.cardID]
	gs.Publish(event)
	return nil
}

// UseEquipment spends a charge of an item equipped on one of the player's
// champions.
func (e *ArenaEngine) UseEquipment(matchID string, player int, championID, cardID string) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	action := NewEquipmentAction(player, championID, cardID)
	if err := action.IsValid(m.state); err != nil {
		return failure(err)
	}

	before := m.snapshot()
	if err := action.Execute(m.state, m); err != nil {
		return failure(err)
	}
	m.history.Record(action, before, m.snapshot())
	m.publishActionPerformed(action)

	result := CommandResult{Success: true}
	if action.Result != nil {
		result.DamageDealt = action.Result.DamageDealt
		result.HealingDone = action.Result.HealingDone
	}
	if m.state.EvaluateWinner() {
		m.publishGameEnded()
	}
	return m.gameResult(result)
}

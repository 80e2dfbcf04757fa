package game

import (
	"errors"
	"fmt"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/effects"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

var (
	ErrNotYourTurn     = errors.New("not your turn")
	ErrWrongPhase      = errors.New("actions are only accepted in the action phase")
	ErrUnknownChampion = errors.New("unknown champion id")
	ErrNotYourChampion = errors.New("champion belongs to the other player")
	ErrChampionDead    = errors.New("champion is dead")
	ErrNoPath          = errors.New("no path to destination")
	ErrNotEnoughMoves  = errors.New("path exceeds remaining movement")
	ErrAlreadyAttacked = errors.New("champion has already attacked this turn")
	ErrStunned         = errors.New("champion is stunned")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrOutOfRange      = errors.New("target out of range")
	ErrNotEnoughMana   = errors.New("not enough mana")
	ErrCardNotInHand   = errors.New("card not in hand")
	ErrWrongCardType   = errors.New("card cannot be played this way")
)

// Action is one atomic player-initiated state transition. Validation never
// mutates; Execute mutates only after IsValid has passed. Undo at the
// history level restores a pre-execute snapshot, so actions themselves only
// need forward logic.
type Action interface {
	Player() int
	Describe() string
	IsValid(gs *state.GameState) error
	Execute(gs *state.GameState, m *matchState) error
}

// validateActor checks the shared preconditions of board actions: right
// phase, right player, a living champion the player owns.
func validateActor(gs *state.GameState, player int, championID string) (*state.ChampionState, error) {
	if gs.GameOver {
		return nil, errors.New("the game is over")
	}
	if gs.ActivePlayer != player {
		return nil, ErrNotYourTurn
	}
	if gs.Phase != state.PhaseAction {
		return nil, ErrWrongPhase
	}
	champ, ok := gs.Champion(championID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChampion, championID)
	}
	if champ.Owner != player {
		return nil, ErrNotYourChampion
	}
	if !champ.IsAlive() || !champ.OnBoard {
		return nil, ErrChampionDead
	}
	return champ, nil
}

// MoveAction walks a champion along a path found at validation time.
type MoveAction struct {
	player     int
	championID string
	to         board.Position

	// path is recomputed by IsValid so execution never uses a stale route.
	path []board.Position
}

func NewMoveAction(player int, championID string, to board.Position) *MoveAction {
	return &MoveAction{player: player, championID: championID, to: to}
}

func (a *MoveAction) Player() int { return a.player }

func (a *MoveAction) Describe() string {
	return fmt.Sprintf("move %s to %s", a.championID, a.to)
}

func (a *MoveAction) IsValid(gs *state.GameState) error {
	champ, err := validateActor(gs, a.player, a.championID)
	if err != nil {
		return err
	}
	if champ.Debuffs.Has(buffs.Stun) {
		return ErrStunned
	}
	if _, taken := gs.ChampionAt(a.to); taken {
		return errors.New("destination is occupied")
	}

	pf := board.NewPathfinder(gs.Grid, gs.OccupiedCells(champ.ID))
	path := pf.FindPath(champ.Position, a.to, champ.MoveProfile())
	if path == nil {
		return ErrNoPath
	}
	if len(path) > champ.MovementRemaining() {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughMoves, len(path), champ.MovementRemaining())
	}
	a.path = path
	return nil
}

func (a *MoveAction) Execute(gs *state.GameState, m *matchState) error {
	champ, _ := gs.Champion(a.championID)
	from := champ.Position
	champ.Position = a.to
	champ.HasMoved = true
	champ.MovementSpent += len(a.path)

	event := rules.NewEvent(rules.EventChampionMoved, a.player, champ.ID, "")
	event.Data = from.String() + ">" + a.to.String()
	gs.Publish(event)
	return nil
}

// AttackAction resolves a basic attack with all combat modifiers.
type AttackAction struct {
	player     int
	attackerID string
	targetID   string

	// Outcome fields populated by Execute for the command result.
	DamageDealt int
	Missed      bool
	TargetDied  bool
}

func NewAttackAction(player int, attackerID, targetID string) *AttackAction {
	return &AttackAction{player: player, attackerID: attackerID, targetID: targetID}
}

func (a *AttackAction) Player() int { return a.player }

func (a *AttackAction) Describe() string {
	return fmt.Sprintf("attack %s with %s", a.targetID, a.attackerID)
}

func (a *AttackAction) IsValid(gs *state.GameState) error {
	attacker, err := validateActor(gs, a.player, a.attackerID)
	if err != nil {
		return err
	}
	if attacker.Debuffs.Has(buffs.Stun) {
		return ErrStunned
	}
	if attacker.HasAttacked && !attacker.Buffs.Has(buffs.ExtraAttack) {
		return ErrAlreadyAttacked
	}

	target, ok := gs.Champion(a.targetID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChampion, a.targetID)
	}
	if target.ID == attacker.ID {
		return fmt.Errorf("%w: cannot attack self", ErrInvalidTarget)
	}
	if !target.IsAlive() || !target.OnBoard {
		return fmt.Errorf("%w: target is dead", ErrInvalidTarget)
	}
	// An attack-heals buff inverts the allegiance restriction: only allies
	// become legal targets.
	if attacker.Buffs.Has(buffs.AttackHeals) {
		if target.Owner != attacker.Owner {
			return fmt.Errorf("%w: healing attacks only target allies", ErrInvalidTarget)
		}
	} else if target.Owner == attacker.Owner {
		return fmt.Errorf("%w: cannot attack an ally", ErrInvalidTarget)
	}
	if !board.CanAttack(attacker.Position, target.Position, attacker.CurrentRange()) {
		return ErrOutOfRange
	}
	return nil
}

func (a *AttackAction) Execute(gs *state.GameState, m *matchState) error {
	attacker, _ := gs.Champion(a.attackerID)
	target, _ := gs.Champion(a.targetID)

	a.consumeAttackResource(attacker)

	damage := attacker.CurrentPower()
	if attacker.Buffs.Has(buffs.CriticalHit) && m.rng.Intn(2) == 0 {
		damage *= 2
	}

	if attacker.Buffs.Has(buffs.AttackHeals) {
		gs.HealChampion(target, damage, attacker.ID)
		return nil
	}

	dmgCtx := state.DamageContext{SourceID: attacker.ID}

	// Redirect bounces the whole hit back at the attacker, consuming the
	// debuff.
	if target.Debuffs.Has(buffs.Redirect) {
		target.Debuffs.ConsumeStack(buffs.Redirect)
		res := gs.DealDamage(attacker, damage, dmgCtx)
		a.DamageDealt = res.Dealt
		return nil
	}

	res := gs.DealDamage(target, damage, dmgCtx)
	a.DamageDealt = res.Dealt
	a.Missed = res.Negated
	a.TargetDied = res.Died

	if res.Dealt > 0 {
		if attacker.Buffs.Has(buffs.Leech) {
			gs.HealChampion(attacker, res.Dealt, attacker.ID)
		}
		if target.Buffs.Has(buffs.ReturnDamage) && attacker.IsAlive() {
			gs.DealDamage(attacker, res.Dealt, state.DamageContext{SourceID: target.ID})
		}
	}
	return nil
}

// consumeAttackResource spends the turn's attack: a second attack burns an
// extra-attack stack instead of the has-attacked flag.
func (a *AttackAction) consumeAttackResource(attacker *state.ChampionState) {
	if attacker.HasAttacked && attacker.Buffs.Has(buffs.ExtraAttack) {
		attacker.Buffs.ConsumeStack(buffs.ExtraAttack)
		return
	}
	attacker.HasAttacked = true
}

// ConsumeResource marks the attack as spent without dealing damage. Used
// when a response window invalidated the attack: the turn resource is still
// consumed.
func (a *AttackAction) ConsumeResource(gs *state.GameState) {
	if attacker, ok := gs.Champion(a.attackerID); ok {
		a.consumeAttackResource(attacker)
	}
}

// CastAction pays for a card and hands it to the effect interpreter.
type CastAction struct {
	player    int
	cardID    string
	casterID  string
	targetIDs []string
	position  *board.Position

	// Result is the interpreter outcome, populated by Execute.
	Result *effects.Result
}

func NewCastAction(player int, cardID, casterID string, targetIDs []string, position *board.Position) *CastAction {
	return &CastAction{
		player:    player,
		cardID:    cardID,
		casterID:  casterID,
		targetIDs: targetIDs,
		position:  position,
	}
}

func (a *CastAction) Player() int { return a.player }

func (a *CastAction) Describe() string {
	return fmt.Sprintf("cast %s from %s", a.cardID, a.casterID)
}

func (a *CastAction) validateCard(gs *state.GameState, m *matchState) (*content.Card, error) {
	card, ok := m.library.Card(a.cardID)
	if !ok {
		return nil, fmt.Errorf("unknown card id: %s", a.cardID)
	}
	if card.Type == content.CardTypeResponse {
		return nil, fmt.Errorf("%w: responses are played in response windows", ErrWrongCardType)
	}
	player := gs.Player(a.player)
	if !player.HasInHand(a.cardID) {
		return nil, fmt.Errorf("%w: %s", ErrCardNotInHand, a.cardID)
	}
	if player.UsableMana() < card.Cost {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughMana, card.Cost, player.UsableMana())
	}
	return card, nil
}

func (a *CastAction) isValid(gs *state.GameState, m *matchState) error {
	caster, err := validateActor(gs, a.player, a.casterID)
	if err != nil {
		return err
	}
	card, err := a.validateCard(gs, m)
	if err != nil {
		return err
	}

	var target *state.ChampionState
	if len(a.targetIDs) > 0 {
		tgt, ok := gs.Champion(a.targetIDs[0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownChampion, a.targetIDs[0])
		}
		target = tgt
	}
	// Resurrection-style cards aside, targets must satisfy the card's
	// target mode and range.
	if card.ID == "resurrection" {
		if target == nil || target.IsAlive() || target.Owner != a.player {
			return fmt.Errorf("%w: needs a dead ally", ErrInvalidTarget)
		}
		return nil
	}
	if !effects.ValidateTarget(gs, card, caster, target) {
		return fmt.Errorf("%w for %s", ErrInvalidTarget, a.cardID)
	}
	return nil
}

// IsValid only covers the state-independent checks; the engine calls
// isValid with the match to reach the card library.
func (a *CastAction) IsValid(gs *state.GameState) error {
	_, err := validateActor(gs, a.player, a.casterID)
	return err
}

func (a *CastAction) Execute(gs *state.GameState, m *matchState) error {
	card, _ := m.library.Card(a.cardID)
	player := gs.Player(a.player)

	if !player.SpendMana(card.Cost) {
		return ErrNotEnoughMana
	}
	player.RemoveFromHand(a.cardID)

	// Equipment attaches to the caster rather than resolving effects now.
	if card.Type == content.CardTypeEquipment {
		caster, _ := gs.Champion(a.casterID)
		caster.Equipment[card.ID] = card.Charges
		event := rules.NewEvent(rules.EventCardCast, a.player, a.casterID, "")
		event.CardID = card.ID
		gs.Publish(event)
		return nil
	}

	result, err := m.interp.ProcessCard(gs, a.cardID, a.casterID, a.targetIDs, a.position)
	if err != nil {
		return err
	}
	a.Result = result

	player.Discard = append(player.Discard, a.cardID)

	event := rules.NewEvent(rules.EventCardCast, a.player, a.casterID, "")
	event.CardID = card.ID
	gs.Publish(event)
	return nil
}

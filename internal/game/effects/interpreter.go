package effects

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

var (
	ErrUnknownCard     = errors.New("unknown card id")
	ErrUnknownChampion = errors.New("unknown champion id")
	ErrResolutionBusy  = errors.New("a card resolution is already awaiting input")
	ErrNoPendingInput  = errors.New("no resolution is awaiting input")
	ErrWrongInputKind  = errors.New("resume call does not match the pending request")
	ErrInvalidInput    = errors.New("invalid input value")
)

// Result accumulates what a card resolution actually did. A suspended result
// is partial; the same Result keeps accumulating across resume calls.
type Result struct {
	CardID   string
	CasterID string

	DamageDealt int
	HealingDone int
	Applied     []string
	Moved       []string
	CardsDrawn  int

	Suspended bool
	Request   *InputRequest
}

// castContext carries the bindings of one card resolution: the card, the
// caster, the declared targets (dead ones included, for handlers that want
// them), an optional target cell, and the X value once bound.
type castContext struct {
	card    *content.Card
	caster  *state.ChampionState
	targets []*state.ChampionState
	pos     *board.Position
	x       int
	xBound  bool
}

// areaCenter is the cell an area effect radiates from: the declared position
// if one was given, otherwise the first declared target's cell.
func (ctx *castContext) areaCenter() (board.Position, bool) {
	if ctx.pos != nil {
		return *ctx.pos, true
	}
	if len(ctx.targets) > 0 {
		return ctx.targets[0].Position, true
	}
	return board.Position{}, false
}

// Interpreter resolves a card's ordered effect list against the game state.
// Resolution is synchronous except at the four suspension points
// (destination, X value, choice, position), where it parks a continuation
// and waits for the matching resume call.
type Interpreter struct {
	lib     *content.Library
	log     *zap.Logger
	rng     *rand.Rand
	status  Status
	pending *pendingCast
}

// NewInterpreter builds an interpreter over the given card library. The rng
// drives chance conditions, coin flips and random area targeting; seed it
// for reproducible matches.
func NewInterpreter(lib *content.Library, logger *zap.Logger, rng *rand.Rand) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		lib:    lib,
		log:    logger,
		rng:    rng,
		status: StatusIdle,
	}
}

// Status reports whether a resolution is idle, suspended, or just finished.
func (in *Interpreter) Status() Status {
	return in.status
}

// PendingRequest returns the input request a suspended resolution waits on.
func (in *Interpreter) PendingRequest() (InputRequest, bool) {
	if in.status != StatusAwaitingInput || in.pending == nil {
		return InputRequest{}, false
	}
	return in.pending.request, true
}

// ProcessCard resolves the card's effect list in order against the given
// caster and declared targets. If resolution needs player input it returns
// a suspended Result naming the request; the caller completes it through
// the matching resume method.
func (in *Interpreter) ProcessCard(gs *state.GameState, cardID, casterID string, targetIDs []string, pos *board.Position) (*Result, error) {
	if in.status == StatusAwaitingInput {
		return nil, ErrResolutionBusy
	}

	card, ok := in.lib.Card(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	caster, ok := gs.Champion(casterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChampion, casterID)
	}
	ctx := &castContext{card: card, caster: caster, pos: pos}
	for _, id := range targetIDs {
		target, ok := gs.Champion(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChampion, id)
		}
		ctx.targets = append(ctx.targets, target)
	}

	in.pending = &pendingCast{
		ctx:    ctx,
		queue:  append([]content.Effect(nil), card.Effects...),
		result: &Result{CardID: cardID, CasterID: casterID},
	}

	if card.XCost && !ctx.xBound {
		in.suspend(gs, InputRequest{
			Kind:     InputXValue,
			CardID:   cardID,
			CasterID: casterID,
			Player:   caster.Owner,
			MaxX:     gs.Player(caster.Owner).UsableMana(),
		})
		return in.pending.result, nil
	}
	if card.Target == content.TargetPosition && ctx.pos == nil {
		in.suspend(gs, InputRequest{
			Kind:     InputPosition,
			CardID:   cardID,
			CasterID: casterID,
			Player:   caster.Owner,
		})
		return in.pending.result, nil
	}

	return in.run(gs), nil
}

// ResumeXValue binds the X value of a suspended X-cost resolution. The
// caller is responsible for spending the extra mana.
func (in *Interpreter) ResumeXValue(gs *state.GameState, x int) (*Result, error) {
	if err := in.expect(InputXValue); err != nil {
		return nil, err
	}
	if x < 0 || x > in.pending.request.MaxX {
		return nil, fmt.Errorf("%w: x=%d (max %d)", ErrInvalidInput, x, in.pending.request.MaxX)
	}
	in.pending.ctx.x = x
	in.pending.ctx.xBound = true
	in.resumed(gs)

	if in.pending.ctx.card.Target == content.TargetPosition && in.pending.ctx.pos == nil {
		in.suspend(gs, InputRequest{
			Kind:     InputPosition,
			CardID:   in.pending.ctx.card.ID,
			CasterID: in.pending.ctx.caster.ID,
			Player:   in.pending.ctx.caster.Owner,
		})
		return in.pending.result, nil
	}
	return in.run(gs), nil
}

// ResumePosition binds the target cell of a suspended position-targeted
// resolution.
func (in *Interpreter) ResumePosition(gs *state.GameState, pos board.Position) (*Result, error) {
	if err := in.expect(InputPosition); err != nil {
		return nil, err
	}
	if !gs.Grid.InBounds(pos) {
		return nil, fmt.Errorf("%w: %s out of bounds", ErrInvalidInput, pos)
	}
	in.pending.ctx.pos = &pos
	in.resumed(gs)
	return in.run(gs), nil
}

// ResumeChoice picks one of the offered effect alternatives and continues.
func (in *Interpreter) ResumeChoice(gs *state.GameState, index int) (*Result, error) {
	if err := in.expect(InputChoice); err != nil {
		return nil, err
	}
	choice := in.pending.choiceEffect
	if index < 0 || index >= len(choice.Options) {
		return nil, fmt.Errorf("%w: choice index %d", ErrInvalidInput, index)
	}
	in.resumed(gs)
	// A chosen option may itself suspend, e.g. an immediate move asking for
	// a destination. Queue the option's remaining effects so they resolve
	// after that input arrives.
	for i, sub := range choice.Options[index].Effects {
		in.applyEffect(gs, in.pending.ctx, sub)
		if in.status == StatusAwaitingInput {
			rest := choice.Options[index].Effects[i+1:]
			in.pending.queue = append(append([]content.Effect(nil), rest...), in.pending.queue...)
			return in.pending.result, nil
		}
	}
	return in.run(gs), nil
}

// ResumeDestination moves the champion awaiting an immediate-move
// destination, then either asks for the next champion's destination or
// continues resolution.
func (in *Interpreter) ResumeDestination(gs *state.GameState, dest board.Position) (*Result, error) {
	if err := in.expect(InputDestination); err != nil {
		return nil, err
	}
	legal := false
	for _, pos := range in.pending.request.Reachable {
		if pos == dest {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: %s is not reachable", ErrInvalidInput, dest)
	}

	champ, ok := gs.Champion(in.pending.request.ChampionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChampion, in.pending.request.ChampionID)
	}
	in.relocate(gs, champ, dest, in.pending.ctx.card.ID)
	in.pending.result.Moved = append(in.pending.result.Moved, champ.ID)
	in.resumed(gs)

	in.pending.moveQueue = in.pending.moveQueue[1:]
	if len(in.pending.moveQueue) > 0 {
		in.requestNextDestination(gs)
		return in.pending.result, nil
	}
	return in.run(gs), nil
}

func (in *Interpreter) expect(kind InputKind) error {
	if in.status != StatusAwaitingInput || in.pending == nil {
		return ErrNoPendingInput
	}
	if in.pending.request.Kind != kind {
		return fmt.Errorf("%w: pending %s", ErrWrongInputKind, in.pending.request.Kind)
	}
	return nil
}

func (in *Interpreter) suspend(gs *state.GameState, request InputRequest) {
	in.status = StatusAwaitingInput
	in.pending.request = request
	in.pending.result.Suspended = true
	in.pending.result.Request = &request

	event := rules.NewEvent(rules.EventInputRequested, request.Player, request.CasterID, "")
	event.CardID = request.CardID
	event.Data = string(request.Kind)
	gs.Publish(event)
}

func (in *Interpreter) resumed(gs *state.GameState) {
	in.status = StatusIdle
	in.pending.result.Suspended = false
	in.pending.result.Request = nil

	event := rules.NewEvent(rules.EventInputResolved, in.pending.request.Player, in.pending.request.CasterID, "")
	event.CardID = in.pending.request.CardID
	event.Data = string(in.pending.request.Kind)
	gs.Publish(event)
}

// run drains the remaining effect queue until it is empty or an effect
// suspends resolution.
func (in *Interpreter) run(gs *state.GameState) *Result {
	pending := in.pending
	if in.status == StatusAwaitingInput {
		return pending.result
	}
	for len(pending.queue) > 0 {
		effect := pending.queue[0]
		pending.queue = pending.queue[1:]
		in.applyEffect(gs, pending.ctx, effect)
		if in.status == StatusAwaitingInput {
			return pending.result
		}
	}
	in.status = StatusResolved
	result := pending.result
	in.pending = nil
	return result
}

// applyEffect applies one effect to all its resolved targets. Unknown effect
// types are logged and skipped.
func (in *Interpreter) applyEffect(gs *state.GameState, ctx *castContext, effect content.Effect) {
	switch effect.Type {
	case content.EffectDamage:
		in.applyDamage(gs, ctx, effect)
	case content.EffectHeal:
		in.applyHeal(gs, ctx, effect)
	case content.EffectStatMod:
		in.applyStatMod(gs, ctx, effect)
	case content.EffectBuff:
		in.applyModifier(gs, ctx, effect, false)
	case content.EffectDebuff:
		in.applyModifier(gs, ctx, effect, true)
	case content.EffectMove:
		in.applyMove(gs, ctx, effect)
	case content.EffectDraw:
		in.applyDraw(gs, ctx, effect)
	case content.EffectDiscard:
		in.applyDiscard(gs, ctx, effect)
	case content.EffectGainMana:
		in.applyGainMana(gs, ctx, effect)
	case content.EffectLockMana:
		in.applyLockMana(gs, ctx, effect)
	case content.EffectStealMana:
		in.applyStealMana(gs, ctx, effect)
	case content.EffectChoice:
		in.applyChoice(gs, ctx, effect)
	case content.EffectCustom:
		in.applyCustom(gs, ctx, effect)
	default:
		in.log.Warn("unknown effect type, skipping",
			zap.String("card", ctx.card.ID),
			zap.String("type", string(effect.Type)))
	}
}

// evalValue turns a value spec into a number under the current bindings.
func (in *Interpreter) evalValue(gs *state.GameState, ctx *castContext, v content.Value) int {
	if v.Literal != nil {
		return *v.Literal
	}
	switch v.Formula {
	case content.FormulaPower:
		return ctx.caster.CurrentPower()
	case content.FormulaDoublePower:
		return 2 * ctx.caster.CurrentPower()
	case content.FormulaHandSize:
		return len(gs.Player(ctx.caster.Owner).Hand)
	case content.FormulaOppHandSize:
		return len(gs.Player(rules.Opponent(ctx.caster.Owner)).Hand)
	case content.FormulaX:
		return ctx.x
	}
	if v.IsScaling() {
		return v.Base +
			v.PerPower*ctx.caster.CurrentPower() +
			v.PerX*ctx.x +
			v.PerDiscard*len(gs.Player(ctx.caster.Owner).Discard)
	}
	return 0
}

func isAreaScope(scope content.Scope) bool {
	switch scope {
	case content.ScopeArea, content.ScopeRandomAOE, content.ScopeAllEnemies, content.ScopeAllAllies, content.ScopeAll:
		return true
	}
	return false
}

func (in *Interpreter) applyDamage(gs *state.GameState, ctx *castContext, effect content.Effect) {
	dmgCtx := state.DamageContext{
		SourceID: ctx.caster.ID,
		CardID:   ctx.card.ID,
		IsArea:   isAreaScope(effect.Scope),
	}
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		if !in.conditionMet(gs, ctx, target, effect.Condition) {
			continue
		}
		amount := in.evalValue(gs, ctx, effect.Value)
		res := gs.DealDamage(target, amount, dmgCtx)
		in.pending.result.DamageDealt += res.Dealt
	}
}

func (in *Interpreter) applyHeal(gs *state.GameState, ctx *castContext, effect content.Effect) {
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		if !in.conditionMet(gs, ctx, target, effect.Condition) {
			continue
		}
		amount := in.evalValue(gs, ctx, effect.Value)
		in.pending.result.HealingDone += gs.HealChampion(target, amount, ctx.caster.ID)
	}
}

func effectDuration(effect content.Effect) int {
	if effect.Duration != nil {
		return *effect.Duration
	}
	return buffs.DurationPermanent
}

func (in *Interpreter) applyStatMod(gs *state.GameState, ctx *castContext, effect content.Effect) {
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		if !in.conditionMet(gs, ctx, target, effect.Condition) {
			continue
		}
		magnitude := in.evalValue(gs, ctx, effect.Value)
		target.ApplyStatMod(effect.Name, magnitude, effectDuration(effect), ctx.card.ID)
		in.pending.result.Applied = append(in.pending.result.Applied, effect.Name)
	}
}

func (in *Interpreter) applyModifier(gs *state.GameState, ctx *castContext, effect content.Effect, debuff bool) {
	if !buffs.Known(effect.Name) {
		in.log.Warn("unknown modifier, skipping",
			zap.String("card", ctx.card.ID),
			zap.String("name", effect.Name))
		return
	}
	stacks := in.evalValue(gs, ctx, effect.Value)
	if stacks <= 0 {
		stacks = 1
	}
	eventType := rules.EventBuffApplied
	if debuff {
		eventType = rules.EventDebuffApplied
	}
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		if !in.conditionMet(gs, ctx, target, effect.Condition) {
			continue
		}
		if debuff {
			target.Debuffs.Add(effect.Name, effectDuration(effect), stacks, ctx.caster.ID)
		} else {
			target.Buffs.Add(effect.Name, effectDuration(effect), stacks, ctx.caster.ID)
		}
		in.pending.result.Applied = append(in.pending.result.Applied, effect.Name)

		event := rules.NewEvent(eventType, target.Owner, ctx.caster.ID, target.ID)
		event.CardID = ctx.card.ID
		event.Data = effect.Name
		event.Amount = stacks
		gs.Publish(event)
	}
}

func (in *Interpreter) applyMove(gs *state.GameState, ctx *castContext, effect content.Effect) {
	targets := in.resolveTargets(gs, ctx, effect)

	if effect.Strategy == content.MoveImmediate {
		// Interactive movement: the controlling player picks each
		// destination, one champion at a time.
		for _, target := range targets {
			if in.conditionMet(gs, ctx, target, effect.Condition) {
				in.pending.moveQueue = append(in.pending.moveQueue, target.ID)
			}
		}
		if len(in.pending.moveQueue) > 0 {
			in.pending.moveEff = effect
			in.requestNextDestination(gs)
		}
		return
	}

	for _, target := range targets {
		if !in.conditionMet(gs, ctx, target, effect.Condition) {
			continue
		}
		dest, ok := computeDestination(gs, effect.Strategy, target, ctx.caster, effect.Distance)
		if !ok {
			continue
		}
		in.relocate(gs, target, dest, ctx.card.ID)
		in.pending.result.Moved = append(in.pending.result.Moved, target.ID)
	}
}

// requestNextDestination suspends on the head of the move queue, offering
// the cells the champion can reach with the effect's distance.
func (in *Interpreter) requestNextDestination(gs *state.GameState) {
	champID := in.pending.moveQueue[0]
	champ, ok := gs.Champion(champID)
	if !ok || !champ.IsAlive() {
		in.pending.moveQueue = in.pending.moveQueue[1:]
		if len(in.pending.moveQueue) > 0 {
			in.requestNextDestination(gs)
		}
		return
	}

	pf := board.NewPathfinder(gs.Grid, gs.OccupiedCells(champ.ID))
	reachable := pf.ReachableTiles(champ.Position, in.pending.moveEff.Distance, champ.MoveProfile())
	if len(reachable) == 0 {
		in.pending.moveQueue = in.pending.moveQueue[1:]
		if len(in.pending.moveQueue) > 0 {
			in.requestNextDestination(gs)
		}
		return
	}

	in.suspend(gs, InputRequest{
		Kind:       InputDestination,
		CardID:     in.pending.ctx.card.ID,
		CasterID:   in.pending.ctx.caster.ID,
		Player:     champ.Owner,
		ChampionID: champ.ID,
		Reachable:  reachable,
	})
}

func (in *Interpreter) applyDraw(gs *state.GameState, ctx *castContext, effect content.Effect) {
	count := in.evalValue(gs, ctx, effect.Value)
	if count <= 0 {
		count = 1
	}
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		player := gs.Player(target.Owner)
		for i := 0; i < count; i++ {
			cardID, ok := player.Draw()
			if !ok {
				break
			}
			in.pending.result.CardsDrawn++
			event := rules.NewEvent(rules.EventCardDrawn, target.Owner, "", "")
			event.CardID = cardID
			gs.Publish(event)
		}
	}
}

func (in *Interpreter) applyDiscard(gs *state.GameState, ctx *castContext, effect content.Effect) {
	count := in.evalValue(gs, ctx, effect.Value)
	if count <= 0 {
		count = 1
	}
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		player := gs.Player(target.Owner)
		for i := 0; i < count; i++ {
			cardID, ok := player.DiscardLast()
			if !ok {
				break
			}
			event := rules.NewEvent(rules.EventCardDiscarded, target.Owner, "", "")
			event.CardID = cardID
			gs.Publish(event)
		}
	}
}

func (in *Interpreter) applyGainMana(gs *state.GameState, ctx *castContext, effect content.Effect) {
	amount := in.evalValue(gs, ctx, effect.Value)
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		gs.Player(target.Owner).Mana += amount
		event := rules.NewEvent(rules.EventManaChanged, target.Owner, ctx.caster.ID, "")
		event.Amount = amount
		gs.Publish(event)
	}
}

func (in *Interpreter) applyLockMana(gs *state.GameState, ctx *castContext, effect content.Effect) {
	amount := in.evalValue(gs, ctx, effect.Value)
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		gs.Player(target.Owner).LockedMana += amount
		event := rules.NewEvent(rules.EventManaChanged, target.Owner, ctx.caster.ID, "")
		event.Amount = -amount
		gs.Publish(event)
	}
}

func (in *Interpreter) applyStealMana(gs *state.GameState, ctx *castContext, effect content.Effect) {
	amount := in.evalValue(gs, ctx, effect.Value)
	caster := gs.Player(ctx.caster.Owner)
	for _, target := range in.resolveTargets(gs, ctx, effect) {
		if target.Owner == ctx.caster.Owner {
			continue
		}
		victim := gs.Player(target.Owner)
		stolen := amount
		if stolen > victim.Mana {
			stolen = victim.Mana
		}
		if stolen <= 0 {
			continue
		}
		victim.Mana -= stolen
		caster.Mana += stolen
		event := rules.NewEvent(rules.EventManaChanged, target.Owner, ctx.caster.ID, "")
		event.Amount = -stolen
		gs.Publish(event)
	}
}

func (in *Interpreter) applyChoice(gs *state.GameState, ctx *castContext, effect content.Effect) {
	if len(effect.Options) == 0 {
		return
	}
	labels := make([]string, len(effect.Options))
	for i, opt := range effect.Options {
		labels[i] = opt.Label
	}
	in.pending.choiceEffect = &effect
	in.suspend(gs, InputRequest{
		Kind:     InputChoice,
		CardID:   ctx.card.ID,
		CasterID: ctx.caster.ID,
		Player:   ctx.caster.Owner,
		Options:  labels,
	})
}

package effects

import (
	"go.uber.org/zap"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

// resolveTargets turns an effect scope into a concrete champion list for the
// current cast. Only living, on-board champions are ever returned.
func (in *Interpreter) resolveTargets(gs *state.GameState, ctx *castContext, effect content.Effect) []*state.ChampionState {
	switch effect.Scope {
	case content.ScopeSelf, "":
		if ctx.caster.IsAlive() {
			return []*state.ChampionState{ctx.caster}
		}
		return nil

	case content.ScopeTarget:
		var out []*state.ChampionState
		for _, target := range ctx.targets {
			if target.OnBoard && target.IsAlive() {
				out = append(out, target)
			}
		}
		return out

	// ScopeOpponent stands in for the opposing player. Hand and mana
	// effects read the owner off the resolved champion, so one living
	// enemy is enough; returning all of them would apply the effect
	// once per champion.
	case content.ScopeOpponent:
		enemies := gs.LivingChampionsOf(rules.Opponent(ctx.caster.Owner))
		if len(enemies) == 0 {
			return nil
		}
		return enemies[:1]

	case content.ScopeAllAllies:
		return gs.LivingChampionsOf(ctx.caster.Owner)

	case content.ScopeAllEnemies:
		return gs.LivingChampionsOf(rules.Opponent(ctx.caster.Owner))

	case content.ScopeAll:
		var out []*state.ChampionState
		for _, champ := range gs.AllChampions() {
			if champ.OnBoard && champ.IsAlive() {
				out = append(out, champ)
			}
		}
		return out

	case content.ScopeArea:
		center, ok := ctx.areaCenter()
		if !ok {
			return nil
		}
		return championsWithin(gs, center, effect.Radius)

	case content.ScopeRandomAOE:
		enemies := gs.LivingChampionsOf(rules.Opponent(ctx.caster.Owner))
		if len(enemies) == 0 {
			return nil
		}
		center := enemies[in.rng.Intn(len(enemies))].Position
		return championsWithin(gs, center, effect.Radius)

	default:
		in.log.Warn("unknown effect scope, skipping",
			zap.String("card", ctx.card.ID),
			zap.String("scope", string(effect.Scope)))
		return nil
	}
}

// championsWithin lists living champions within Chebyshev radius of a cell.
func championsWithin(gs *state.GameState, center board.Position, radius int) []*state.ChampionState {
	var out []*state.ChampionState
	for _, champ := range gs.AllChampions() {
		if champ.OnBoard && champ.IsAlive() && board.Chebyshev(center, champ.Position) <= radius {
			out = append(out, champ)
		}
	}
	return out
}

// ValidateTarget checks a declared target against the card's target mode and
// range. Cards with SelfRange use the caster's live attack geometry instead
// of a printed range.
func ValidateTarget(gs *state.GameState, card *content.Card, caster, target *state.ChampionState) bool {
	switch card.Target {
	case content.TargetNone, content.TargetPosition, content.TargetDirection:
		return true
	case content.TargetSelf:
		return target != nil && target.ID == caster.ID
	case content.TargetEnemy:
		if target == nil || target.Owner == caster.Owner || !target.IsAlive() {
			return false
		}
	case content.TargetAlly:
		if target == nil || target.Owner != caster.Owner || !target.IsAlive() {
			return false
		}
	case content.TargetAny:
		if target == nil || !target.IsAlive() {
			return false
		}
	default:
		return false
	}

	if card.SelfRange {
		return board.CanAttack(caster.Position, target.Position, caster.CurrentRange())
	}
	if card.Range > 0 {
		return board.Chebyshev(caster.Position, target.Position) <= card.Range
	}
	return true
}

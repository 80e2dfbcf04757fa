package effects

import (
	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

// conditionMet evaluates an effect's gating condition against one target.
// Life thresholds are percentages of max HP. A nil condition always passes.
func (in *Interpreter) conditionMet(gs *state.GameState, ctx *castContext, target *state.ChampionState, cond *content.Condition) bool {
	if cond == nil {
		return true
	}

	if cond.IfLifeBelow != nil {
		if target.CurrentHP*100 >= *cond.IfLifeBelow*target.MaxHP {
			return false
		}
	}
	if cond.IfLifeAbove != nil {
		if target.CurrentHP*100 <= *cond.IfLifeAbove*target.MaxHP {
			return false
		}
	}
	if cond.IfHasBuff != "" && !target.Buffs.Has(cond.IfHasBuff) {
		return false
	}
	if cond.IfHasDebuff != "" && !target.Debuffs.Has(cond.IfHasDebuff) {
		return false
	}
	if cond.IfNotInRange != nil {
		if board.Chebyshev(ctx.caster.Position, target.Position) <= *cond.IfNotInRange {
			return false
		}
	}
	if cond.IfInDiscard != "" && !gs.Player(ctx.caster.Owner).InDiscard(cond.IfInDiscard) {
		return false
	}
	if cond.Chance != nil {
		if in.rng.Intn(100) >= *cond.Chance {
			return false
		}
	}
	return true
}

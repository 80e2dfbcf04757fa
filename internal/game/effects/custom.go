package effects

import (
	"go.uber.org/zap"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

// applyCustom dispatches a named one-off behavior. Unknown names are logged
// and skipped so the rest of the card's effect list still resolves.
func (in *Interpreter) applyCustom(gs *state.GameState, ctx *castContext, effect content.Effect) {
	switch effect.Name {
	case "resurrection":
		in.customResurrection(gs, ctx)
	case "spiritLink":
		in.customSpiritLink(ctx)
	case "stealBuff":
		in.customStealBuff(ctx)
	case "transferDebuff":
		in.customTransferDebuff(ctx)
	case "coinFlip":
		in.customCoinFlip(gs, ctx, effect)
	case "houseOdds":
		in.customHouseOdds(gs, ctx)
	default:
		in.log.Warn("unknown custom effect, skipping",
			zap.String("card", ctx.card.ID),
			zap.String("name", effect.Name))
	}
}

// customResurrection swaps position and HP with a dead ally, leaving the
// caster at 1 HP. The dead ally is taken from the declared targets since
// normal target resolution filters out the dead.
func (in *Interpreter) customResurrection(gs *state.GameState, ctx *castContext) {
	var ally *state.ChampionState
	for _, target := range ctx.targets {
		if target.Owner == ctx.caster.Owner && !target.IsAlive() && target.ID != ctx.caster.ID {
			ally = target
			break
		}
	}
	if ally == nil {
		in.log.Warn("resurrection with no dead ally target", zap.String("card", ctx.card.ID))
		return
	}

	ctx.caster.Position, ally.Position = ally.Position, ctx.caster.Position
	ally.CurrentHP = ctx.caster.CurrentHP
	ally.OnBoard = true
	ctx.caster.CurrentHP = 1

	event := rules.NewEvent(rules.EventHealingDone, ctx.caster.Owner, ctx.caster.ID, ally.ID)
	event.Amount = ally.CurrentHP
	event.CardID = ctx.card.ID
	gs.Publish(event)
}

// customSpiritLink links caster and target so each shares incoming damage
// with the other.
func (in *Interpreter) customSpiritLink(ctx *castContext) {
	if len(ctx.targets) == 0 {
		return
	}
	target := ctx.targets[0]
	ctx.caster.Buffs.Add(buffs.SpiritLink, buffs.DurationPermanent, 1, target.ID)
	target.Buffs.Add(buffs.SpiritLink, buffs.DurationPermanent, 1, ctx.caster.ID)
}

// customStealBuff moves the target's first buff (by name order) onto the
// caster, keeping its remaining duration and stacks.
func (in *Interpreter) customStealBuff(ctx *castContext) {
	if len(ctx.targets) == 0 {
		return
	}
	target := ctx.targets[0]
	names := target.Buffs.Names()
	if len(names) == 0 {
		return
	}
	name := names[0]
	instance := target.Buffs[name]
	target.Buffs.Remove(name)
	ctx.caster.Buffs.Add(name, instance.Duration, instance.Stacks, instance.SourceID)
}

// customTransferDebuff moves the caster's first debuff onto the target.
func (in *Interpreter) customTransferDebuff(ctx *castContext) {
	if len(ctx.targets) == 0 {
		return
	}
	target := ctx.targets[0]
	names := ctx.caster.Debuffs.Names()
	if len(names) == 0 {
		return
	}
	name := names[0]
	instance := ctx.caster.Debuffs[name]
	ctx.caster.Debuffs.Remove(name)
	target.Debuffs.Add(name, instance.Duration, instance.Stacks, instance.SourceID)
}

// customCoinFlip resolves the success or failure sub-effect list on a fair
// flip.
func (in *Interpreter) customCoinFlip(gs *state.GameState, ctx *castContext, effect content.Effect) {
	branch := effect.OnFailure
	if in.rng.Intn(2) == 0 {
		branch = effect.OnSuccess
	}
	for _, sub := range branch {
		in.applyEffect(gs, ctx, sub)
	}
}

// customHouseOdds rolls a die: a low roll burns the caster, a middling roll
// burns one random enemy, a high roll burns every enemy. Damage equals the
// roll.
func (in *Interpreter) customHouseOdds(gs *state.GameState, ctx *castContext) {
	roll := in.rng.Intn(6) + 1
	dmgCtx := state.DamageContext{SourceID: ctx.caster.ID, CardID: ctx.card.ID}
	switch {
	case roll <= 2:
		gs.DealDamage(ctx.caster, roll, dmgCtx)
	case roll <= 4:
		enemies := gs.LivingChampionsOf(rules.Opponent(ctx.caster.Owner))
		if len(enemies) > 0 {
			gs.DealDamage(enemies[in.rng.Intn(len(enemies))], roll, dmgCtx)
		}
	default:
		dmgCtx.IsArea = true
		for _, enemy := range gs.LivingChampionsOf(rules.Opponent(ctx.caster.Owner)) {
			gs.DealDamage(enemy, roll, dmgCtx)
		}
	}
}

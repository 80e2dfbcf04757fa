package state

import (
	"fmt"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
)

// DamageContext describes where a hit came from, so that the modifier
// pipeline can distinguish area damage and attribute the source.
type DamageContext struct {
	SourceID string
	CardID   string
	IsArea   bool
}

// DamageResult reports what a hit actually did after modifiers.
type DamageResult struct {
	Requested int
	Dealt     int
	Negated   bool
	Died      bool
}

// ModifyIncomingDamage runs the defensive modifier pipeline for a champion
// about to take damage, consuming one-shot protections as it goes. Order:
// stealth voids non-area damage, then negate/shield/immune absorb the hit,
// then flat damage reduction (floored at 1), then vulnerability stacks, then
// marked doubles once and clears.
func ModifyIncomingDamage(target *ChampionState, amount int, ctx DamageContext) (int, bool) {
	if amount <= 0 {
		return 0, false
	}

	if !ctx.IsArea && target.Buffs.Has(buffs.Stealth) {
		return 0, true
	}
	for _, oneShot := range []string{buffs.Negate, buffs.Shield, buffs.Immune} {
		if target.Buffs.Has(oneShot) {
			target.Buffs.ConsumeStack(oneShot)
			return 0, true
		}
	}

	if reduction := target.Buffs.Stacks(buffs.DamageReduction); reduction > 0 {
		amount -= reduction
		if amount < 1 {
			amount = 1
		}
	}
	amount += target.Debuffs.Stacks(buffs.Vulnerability)
	if target.Debuffs.Has(buffs.Marked) {
		amount *= 2
		target.Debuffs.Remove(buffs.Marked)
	}
	return amount, false
}

// DealDamage applies damage to a champion through the full pipeline:
// defensive modifiers, spirit-link sharing, cheat-death, on-damage triggers
// and death handling. Events are published for observation only.
func (gs *GameState) DealDamage(target *ChampionState, amount int, ctx DamageContext) DamageResult {
	result := DamageResult{Requested: amount}
	if amount <= 0 || !target.IsAlive() {
		return result
	}

	modified, negated := ModifyIncomingDamage(target, amount, ctx)
	if negated {
		result.Negated = true
		event := rules.NewEvent(rules.EventDamageNegated, target.Owner, ctx.SourceID, target.ID)
		event.Description = fmt.Sprintf("%s negated %d damage", target.ID, amount)
		gs.Publish(event)
		return result
	}
	if modified <= 0 {
		return result
	}

	// Spirit-link shares incoming damage with the linked champion, who is
	// then healed by the shared amount. The partner's HP ends unchanged but
	// the damage and heal both pass through the normal pipelines so
	// cheat-death, enrage and event observers still see them.
	if target.Buffs.Has(buffs.SpiritLink) {
		if partner, ok := gs.Champion(target.Buffs.Source(buffs.SpiritLink)); ok && partner.IsAlive() && partner.ID != target.ID {
			shared := modified / 2
			if shared > 0 {
				modified -= shared
				gs.applyRawDamage(partner, shared, ctx)
				if partner.IsAlive() {
					gs.HealChampion(partner, shared, ctx.SourceID)
				}
			}
		}
	}

	gs.applyRawDamage(target, modified, ctx)
	result.Dealt = modified
	result.Died = !target.IsAlive()

	// On-damage reactions fire only after the hit has landed.
	if target.IsAlive() && target.Buffs.Has(buffs.Enrage) {
		target.Buffs.Add(buffs.StatPower, buffs.DurationPermanent, 1, target.ID)
	}

	return result
}

// applyRawDamage subtracts HP directly, honoring cheat-death and publishing
// the damage and death events.
func (gs *GameState) applyRawDamage(target *ChampionState, amount int, ctx DamageContext) {
	target.CurrentHP -= amount

	event := rules.NewEvent(rules.EventDamageDealt, target.Owner, ctx.SourceID, target.ID)
	event.Amount = amount
	event.CardID = ctx.CardID
	event.Description = fmt.Sprintf("%s took %d damage", target.ID, amount)
	gs.Publish(event)

	if target.CurrentHP <= 0 && target.Buffs.Has(buffs.CheatDeath) {
		target.Buffs.ConsumeStack(buffs.CheatDeath)
		target.CurrentHP = 1
		return
	}
	if target.CurrentHP <= 0 {
		target.CurrentHP = 0
		death := rules.NewEvent(rules.EventChampionDied, target.Owner, ctx.SourceID, target.ID)
		death.Description = fmt.Sprintf("%s died", target.ID)
		gs.Publish(death)
	}
}

// HealChampion restores HP and publishes the healing event.
func (gs *GameState) HealChampion(target *ChampionState, amount int, sourceID string) int {
	healed := target.Heal(amount)
	if healed > 0 {
		event := rules.NewEvent(rules.EventHealingDone, target.Owner, sourceID, target.ID)
		event.Amount = healed
		gs.Publish(event)
	}
	return healed
}

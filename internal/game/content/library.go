package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Library is the read-only content table injected into the engine at
// construction. The engine never mutates it, which keeps many matches in one
// process safe to run against a single shared library.
type Library struct {
	cards     map[string]Card
	champions map[string]ChampionArchetype
}

// NewLibrary builds a library from explicit definitions.
func NewLibrary(cards []Card, champions []ChampionArchetype) *Library {
	lib := &Library{
		cards:     make(map[string]Card, len(cards)),
		champions: make(map[string]ChampionArchetype, len(champions)),
	}
	for _, c := range cards {
		lib.cards[c.ID] = c
	}
	for _, ch := range champions {
		lib.champions[ch.Name] = ch
	}
	return lib
}

// Card resolves a card definition by id. The returned pointer addresses a
// copy; callers cannot corrupt the shared library through it.
func (l *Library) Card(id string) (*Card, bool) {
	c, ok := l.cards[id]
	if !ok {
		return nil, false
	}
	return &c, true
}

// Champion resolves a champion archetype by name.
func (l *Library) Champion(name string) (ChampionArchetype, bool) {
	ch, ok := l.champions[name]
	return ch, ok
}

// CardIDs returns every card id in sorted order.
func (l *Library) CardIDs() []string {
	ids := make([]string, 0, len(l.cards))
	for id := range l.cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ChampionNames returns every archetype name in sorted order.
func (l *Library) ChampionNames() []string {
	names := make([]string, 0, len(l.champions))
	for name := range l.champions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// libraryFile is the on-disk JSON shape consumed by LoadLibrary and the
// import script.
type libraryFile struct {
	Cards     []Card              `json:"cards"`
	Champions []ChampionArchetype `json:"champions"`
}

// LoadLibrary reads a JSON content file.
func LoadLibrary(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	var file libraryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse content file %s: %w", path, err)
	}
	for _, c := range file.Cards {
		if c.ID == "" {
			return nil, fmt.Errorf("content file %s: card with empty id", path)
		}
	}
	return NewLibrary(file.Cards, file.Champions), nil
}

func duration(n int) *int {
	return &n
}

func intp(n int) *int {
	return &n
}

// DefaultLibrary returns the built-in card and champion set used by tests and
// by matches started without external content.
func DefaultLibrary() *Library {
	return NewLibrary(defaultCards(), defaultChampions())
}

func defaultChampions() []ChampionArchetype {
	return []ChampionArchetype{
		{Name: "Warrior", Power: 5, Range: 1, Movement: 3, StartingHP: 20},
		{Name: "Archer", Power: 3, Range: 4, Movement: 3, StartingHP: 16},
		{Name: "Mage", Power: 2, Range: 3, Movement: 2, StartingHP: 14},
		{Name: "Cleric", Power: 3, Range: 2, Movement: 2, StartingHP: 18},
	}
}

func defaultCards() []Card {
	return []Card{
		// Direct damage and healing.
		{
			ID: "fireball", Name: "Fireball", Type: CardTypeSpell, Cost: 3,
			Target: TargetEnemy, Range: 5,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(4)}},
		},
		{
			ID: "strike", Name: "Precise Strike", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, SelfRange: true,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Form(FormulaPower)}},
		},
		{
			ID: "crushingBlow", Name: "Crushing Blow", Type: CardTypeSpell, Cost: 4,
			Target: TargetEnemy, SelfRange: true,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Form(FormulaDoublePower)}},
		},
		{
			ID: "mend", Name: "Mend", Type: CardTypeSpell, Cost: 2,
			Target: TargetAlly, Range: 4,
			Effects: []Effect{{Type: EffectHeal, Scope: ScopeTarget, Value: Lit(3)}},
		},
		{
			ID: "secondWind", Name: "Second Wind", Type: CardTypeSpell, Cost: 1,
			Target: TargetSelf,
			Effects: []Effect{{
				Type: EffectHeal, Scope: ScopeSelf, Value: Lit(5),
				Condition: &Condition{IfLifeBelow: intp(50)},
			}},
		},
		{
			ID: "arcaneStorm", Name: "Arcane Storm", Type: CardTypeSpell, Cost: 5,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeAllEnemies, Value: Lit(2)}},
		},
		{
			ID: "meteor", Name: "Meteor", Type: CardTypeSpell, Cost: 6,
			Target: TargetPosition,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeArea, Radius: 1, Value: Lit(5)}},
		},
		{
			ID: "chaosBolt", Name: "Chaos Bolt", Type: CardTypeSpell, Cost: 3,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeRandomAOE, Value: Lit(3)}},
		},
		{
			ID: "overcharge", Name: "Overcharge", Type: CardTypeSpell, Cost: 1, XCost: true,
			Target: TargetEnemy, Range: 5,
			Effects: []Effect{{
				Type: EffectDamage, Scope: ScopeTarget,
				Value: Value{Base: 1, PerX: 1},
			}},
		},
		{
			ID: "mindSpike", Name: "Mind Spike", Type: CardTypeSpell, Cost: 3,
			Target: TargetEnemy, Range: 0,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Form(FormulaHandSize)}},
		},
		{
			ID: "snipe", Name: "Snipe", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 0,
			Effects: []Effect{{
				Type: EffectDamage, Scope: ScopeTarget, Value: Lit(4),
				Condition: &Condition{IfNotInRange: intp(2)},
			}},
		},
		{
			ID: "echoBlast", Name: "Echo Blast", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 4,
			Effects: []Effect{
				{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(2)},
				{
					Type: EffectDamage, Scope: ScopeTarget, Value: Lit(2),
					Condition: &Condition{IfInDiscard: "echoBlast"},
				},
			},
		},

		// Stat modifiers and buffs.
		{
			ID: "warCry", Name: "War Cry", Type: CardTypeSpell, Cost: 2,
			Target: TargetSelf,
			Effects: []Effect{{Type: EffectStatMod, Scope: ScopeSelf, Name: "power", Value: Lit(2), Duration: duration(2)}},
		},
		{
			ID: "slowingMire", Name: "Slowing Mire", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 4,
			Effects: []Effect{{Type: EffectStatMod, Scope: ScopeTarget, Name: "movement", Value: Lit(-2), Duration: duration(1)}},
		},
		{
			ID: "smokeScreen", Name: "Smoke Screen", Type: CardTypeSpell, Cost: 2,
			Target: TargetAlly, Range: 3,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeTarget, Name: "stealth", Duration: duration(1)}},
		},
		{
			ID: "ironWall", Name: "Iron Wall", Type: CardTypeSpell, Cost: 3,
			Target: TargetSelf,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeSelf, Name: "damageReduction", Value: Lit(2), Duration: duration(2)}},
		},
		{
			ID: "guardianAngel", Name: "Guardian Angel", Type: CardTypeSpell, Cost: 4,
			Target: TargetAlly, Range: 0,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeTarget, Name: "cheatDeath", Duration: duration(-1)}},
		},
		{
			ID: "catReflexes", Name: "Cat Reflexes", Type: CardTypeSpell, Cost: 2,
			Target: TargetSelf,
			Effects: []Effect{
				{Type: EffectBuff, Scope: ScopeSelf, Name: "agility", Duration: duration(2)},
				{Type: EffectBuff, Scope: ScopeSelf, Name: "criticalHit", Duration: duration(2)},
			},
		},
		{
			ID: "frenzy", Name: "Frenzy", Type: CardTypeSpell, Cost: 3,
			Target: TargetSelf,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeSelf, Name: "extraAttack", Duration: duration(0)}},
		},
		{
			ID: "hexMark", Name: "Hex Mark", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 4,
			Effects: []Effect{{Type: EffectDebuff, Scope: ScopeTarget, Name: "marked", Duration: duration(2)}},
		},
		{
			ID: "exposeWeakness", Name: "Expose Weakness", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 4,
			Effects: []Effect{{Type: EffectDebuff, Scope: ScopeTarget, Name: "vulnerability", Value: Lit(2), Duration: duration(2)}},
		},
		{
			ID: "mirrorCurse", Name: "Mirror Curse", Type: CardTypeSpell, Cost: 3,
			Target: TargetEnemy, Range: 3,
			Effects: []Effect{{Type: EffectDebuff, Scope: ScopeTarget, Name: "redirect", Duration: duration(1)}},
		},

		// Forced movement.
		{
			ID: "shove", Name: "Shove", Type: CardTypeSpell, Cost: 1,
			Target: TargetEnemy, Range: 1,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MovePushAway, Distance: 2}},
		},
		{
			ID: "gale", Name: "Gale", Type: CardTypeSpell, Cost: 4,
			Target: TargetEnemy, Range: 5,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MovePushToWall}},
		},
		{
			ID: "catapult", Name: "Catapult", Type: CardTypeSpell, Cost: 4,
			Target: TargetEnemy, Range: 3,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MovePushOverWall}},
		},
		{
			ID: "banishment", Name: "Banishment", Type: CardTypeSpell, Cost: 5,
			Target: TargetEnemy, Range: 0,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MovePushToCorner}},
		},
		{
			ID: "sanctuary", Name: "Sanctuary", Type: CardTypeSpell, Cost: 3,
			Target: TargetAlly, Range: 0,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MovePushToSafest}},
		},
		{
			ID: "magnetize", Name: "Magnetize", Type: CardTypeSpell, Cost: 3,
			Target: TargetEnemy, Range: 5,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MovePushToSource}},
		},
		{
			ID: "tacticalShift", Name: "Tactical Shift", Type: CardTypeSpell, Cost: 1,
			Target: TargetAlly, Range: 0,
			Effects: []Effect{{Type: EffectMove, Scope: ScopeTarget, Strategy: MoveImmediate, Distance: 3}},
		},

		// Hand and mana manipulation.
		{
			ID: "insight", Name: "Insight", Type: CardTypeSpell, Cost: 2,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectDraw, Scope: ScopeSelf, Value: Lit(2)}},
		},
		{
			ID: "mindRot", Name: "Mind Rot", Type: CardTypeSpell, Cost: 3,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectDiscard, Scope: ScopeOpponent, Value: Lit(2)}},
		},
		{
			ID: "manaSpring", Name: "Mana Spring", Type: CardTypeSpell, Cost: 0,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectGainMana, Scope: ScopeSelf, Value: Lit(2)}},
		},
		{
			ID: "manaSeal", Name: "Mana Seal", Type: CardTypeSpell, Cost: 2,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectLockMana, Scope: ScopeOpponent, Value: Lit(2)}},
		},
		{
			ID: "siphon", Name: "Siphon", Type: CardTypeSpell, Cost: 1,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectStealMana, Scope: ScopeOpponent, Value: Lit(2)}},
		},

		// Choice and custom behaviors.
		{
			ID: "crossroads", Name: "Crossroads", Type: CardTypeSpell, Cost: 3,
			Target: TargetEnemy, Range: 4,
			Effects: []Effect{{
				Type: EffectChoice,
				Options: []Option{
					{Label: "Scorch", Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(4)}}},
					{Label: "Shackle", Effects: []Effect{{Type: EffectStatMod, Scope: ScopeTarget, Name: "movement", Value: Lit(-3), Duration: duration(1)}}},
				},
			}},
		},
		{
			ID: "resurrection", Name: "Resurrection", Type: CardTypeSpell, Cost: 6,
			Target: TargetAlly, Range: 0,
			Effects: []Effect{{Type: EffectCustom, Name: "resurrection", Scope: ScopeTarget}},
		},
		{
			ID: "spiritLink", Name: "Spirit Link", Type: CardTypeSpell, Cost: 3,
			Target: TargetAlly, Range: 0,
			Effects: []Effect{{Type: EffectCustom, Name: "spiritLink", Scope: ScopeTarget, Duration: duration(-1)}},
		},
		{
			ID: "pickpocket", Name: "Pickpocket", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 2,
			Effects: []Effect{{Type: EffectCustom, Name: "stealBuff", Scope: ScopeTarget}},
		},
		{
			ID: "curseTransfer", Name: "Curse Transfer", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 3,
			Effects: []Effect{{Type: EffectCustom, Name: "transferDebuff", Scope: ScopeTarget}},
		},
		{
			ID: "gamble", Name: "Gamble", Type: CardTypeSpell, Cost: 2,
			Target: TargetEnemy, Range: 4,
			Effects: []Effect{{
				Type: EffectCustom, Name: "coinFlip", Scope: ScopeTarget,
				OnSuccess: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(6)}},
				OnFailure: []Effect{{Type: EffectDamage, Scope: ScopeSelf, Value: Lit(3)}},
			}},
		},
		{
			ID: "houseOdds", Name: "House Odds", Type: CardTypeSpell, Cost: 3,
			Target: TargetNone,
			Effects: []Effect{{Type: EffectCustom, Name: "houseOdds", Scope: ScopeSelf, Value: Lit(3)}},
		},

		// Responses.
		{
			ID: "counterPulse", Name: "Counter Pulse", Type: CardTypeResponse, Cost: 2,
			Target: TargetAlly, Trigger: TriggerBeforeDamage,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeTarget, Name: "negate", Duration: duration(0)}},
		},
		{
			ID: "retribution", Name: "Retribution", Type: CardTypeResponse, Cost: 3,
			Target: TargetEnemy, Range: 0, Trigger: TriggerAfterDamage,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(3)}},
		},
		{
			ID: "tripwire", Name: "Tripwire", Type: CardTypeResponse, Cost: 1,
			Target: TargetEnemy, Range: 2, Trigger: TriggerOnMove,
			Effects: []Effect{{Type: EffectDamage, Scope: ScopeTarget, Value: Lit(2)}},
		},
		{
			ID: "inspiration", Name: "Inspiration", Type: CardTypeResponse, Cost: 1,
			Target: TargetNone, Trigger: TriggerOnDraw,
			Effects: []Effect{{Type: EffectDraw, Scope: ScopeSelf, Value: Lit(1)}},
		},
		{
			ID: "wardingEcho", Name: "Warding Echo", Type: CardTypeResponse, Cost: 2,
			Target: TargetAlly, Trigger: TriggerOnHeal,
			Effects: []Effect{{Type: EffectHeal, Scope: ScopeTarget, Value: Lit(2)}},
		},
		{
			ID: "spellbreaker", Name: "Spellbreaker", Type: CardTypeResponse, Cost: 2,
			Target: TargetEnemy, Range: 0, Trigger: TriggerOnCast,
			Effects: []Effect{{Type: EffectDebuff, Scope: ScopeTarget, Name: "vulnerability", Value: Lit(1), Duration: duration(1)}},
		},
		{
			ID: "lastStand", Name: "Last Stand", Type: CardTypeResponse, Cost: 2,
			Target: TargetSelf, Trigger: TriggerStartTurn, Character: "Warrior",
			Effects: []Effect{{Type: EffectStatMod, Scope: ScopeSelf, Name: "power", Value: Lit(2), Duration: duration(1)}},
		},
		{
			ID: "nightfall", Name: "Nightfall", Type: CardTypeResponse, Cost: 1,
			Target: TargetSelf, Trigger: TriggerEndTurn,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeSelf, Name: "stealth", Duration: duration(1)}},
		},

		// Equipment.
		{
			ID: "healingCharm", Name: "Healing Charm", Type: CardTypeEquipment, Cost: 3,
			Target: TargetSelf, Charges: 3,
			Effects: []Effect{{Type: EffectHeal, Scope: ScopeSelf, Value: Lit(2)}},
		},
		{
			ID: "vampiricFang", Name: "Vampiric Fang", Type: CardTypeEquipment, Cost: 4,
			Target: TargetSelf, Charges: 2,
			Effects: []Effect{{Type: EffectBuff, Scope: ScopeSelf, Name: "leech", Duration: duration(1)}},
		},
	}
}

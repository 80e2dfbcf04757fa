package content

// CardType distinguishes how a card is played.
type CardType string

const (
	// CardTypeSpell is cast from hand during the owner's action phase.
	CardTypeSpell CardType = "SPELL"
	// CardTypeResponse is played from hand into an open response window.
	CardTypeResponse CardType = "RESPONSE"
	// CardTypeEquipment attaches to a champion and is used charge by charge.
	CardTypeEquipment CardType = "EQUIPMENT"
)

// TargetMode describes what a card must be aimed at when cast.
type TargetMode string

const (
	TargetNone      TargetMode = "NONE"
	TargetSelf      TargetMode = "SELF"
	TargetEnemy     TargetMode = "ENEMY"
	TargetAlly      TargetMode = "ALLY"
	TargetAny       TargetMode = "ANY"
	TargetDirection TargetMode = "DIRECTION"
	TargetPosition  TargetMode = "POSITION"
)

// Trigger names the game events a response card may answer.
type Trigger string

const (
	TriggerBeforeDamage Trigger = "beforeDamage"
	TriggerAfterDamage  Trigger = "afterDamage"
	TriggerOnMove       Trigger = "onMove"
	TriggerOnHeal       Trigger = "onHeal"
	TriggerOnCast       Trigger = "onCast"
	TriggerOnDraw       Trigger = "onDraw"
	TriggerStartTurn    Trigger = "startTurn"
	TriggerEndTurn      Trigger = "endTurn"
)

// EffectType is the discriminator of the declarative effect language.
type EffectType string

const (
	EffectDamage    EffectType = "damage"
	EffectHeal      EffectType = "heal"
	EffectStatMod   EffectType = "statMod"
	EffectBuff      EffectType = "buff"
	EffectDebuff    EffectType = "debuff"
	EffectMove      EffectType = "move"
	EffectDraw      EffectType = "draw"
	EffectDiscard   EffectType = "discard"
	EffectCustom    EffectType = "custom"
	EffectGainMana  EffectType = "gainMana"
	EffectLockMana  EffectType = "lockMana"
	EffectStealMana EffectType = "stealMana"
	EffectChoice    EffectType = "choice"
)

// Scope selects which champions (or player, for hand/mana effects) an effect
// touches.
type Scope string

const (
	ScopeSelf       Scope = "self"
	ScopeTarget     Scope = "target"
	ScopeOpponent   Scope = "opponent"
	ScopeAllAllies  Scope = "allAllies"
	ScopeAllEnemies Scope = "allEnemies"
	ScopeAll        Scope = "all"
	ScopeArea       Scope = "area"
	ScopeRandomAOE  Scope = "randomAOE"
)

// Formula names a value computed from game state at resolution time.
type Formula string

const (
	FormulaPower       Formula = "power"
	FormulaDoublePower Formula = "doublePower"
	FormulaHandSize    Formula = "handSize"
	FormulaOppHandSize Formula = "oppHandSize"
	FormulaX           Formula = "x"
)

// Value is an effect magnitude: a literal, a named formula, or a structured
// scaling object. Exactly one representation is meaningful; scaling applies
// when any of the per-unit fields is set.
type Value struct {
	Literal    *int    `json:"literal,omitempty"`
	Formula    Formula `json:"formula,omitempty"`
	Base       int     `json:"base,omitempty"`
	PerPower   int     `json:"perPower,omitempty"`
	PerX       int     `json:"perX,omitempty"`
	PerDiscard int     `json:"perDiscard,omitempty"`
}

// IsScaling reports whether the value uses the structured scaling form.
func (v Value) IsScaling() bool {
	return v.PerPower != 0 || v.PerX != 0 || v.PerDiscard != 0 || (v.Literal == nil && v.Formula == "" && v.Base != 0)
}

// Lit builds a literal value.
func Lit(n int) Value {
	return Value{Literal: &n}
}

// Form builds a formula value.
func Form(f Formula) Value {
	return Value{Formula: f}
}

// Condition gates an effect. Every set field must hold for the effect to
// apply; an unmet condition suppresses the effect without aborting the rest
// of the card.
type Condition struct {
	// IfLifeBelow holds when the subject's HP percentage is strictly below
	// the threshold.
	IfLifeBelow *int `json:"ifLifeBelow,omitempty"`
	// IfLifeAbove holds when the subject's HP percentage is strictly above
	// the threshold.
	IfLifeAbove *int   `json:"ifLifeAbove,omitempty"`
	IfHasBuff   string `json:"ifHasBuff,omitempty"`
	IfHasDebuff string `json:"ifHasDebuff,omitempty"`
	// Chance holds with the given percent probability, rolled once per
	// affected champion.
	Chance *int `json:"chance,omitempty"`
	// IfNotInRange holds when the subject is farther than the given Chebyshev
	// distance from the caster.
	IfNotInRange *int `json:"ifNotInRange,omitempty"`
	// IfInDiscard holds when the named card id sits in the caster's discard.
	IfInDiscard string `json:"ifInDiscard,omitempty"`
}

// MoveStrategy names how a forced-movement destination is computed.
type MoveStrategy string

const (
	MovePushAway     MoveStrategy = "pushAway"
	MovePushToWall   MoveStrategy = "pushToWall"
	MovePushOverWall MoveStrategy = "pushOverWall"
	MovePushToCorner MoveStrategy = "pushToCorner"
	MovePushToSafest MoveStrategy = "pushToSafest"
	MovePushToSource MoveStrategy = "pushAdjacentToSource"
	// MoveImmediate suspends resolution until the controlling player supplies
	// a destination for each affected champion.
	MoveImmediate MoveStrategy = "immediate"
)

// Effect is one step of a card's ordered effect list.
type Effect struct {
	Type     EffectType `json:"type"`
	Scope    Scope      `json:"scope,omitempty"`
	Duration *int       `json:"duration,omitempty"`
	Value    Value      `json:"value,omitempty"`
	// Name is the buff/debuff name for buff-family effects, the stat name for
	// statMod, or the handler name for custom effects.
	Name     string       `json:"name,omitempty"`
	Strategy MoveStrategy `json:"strategy,omitempty"`
	// Distance bounds forced movement in cells; 0 means unbounded (to wall,
	// corner, etc. per strategy).
	Distance int `json:"distance,omitempty"`
	// Radius is the area scope radius in Chebyshev distance.
	Radius    int        `json:"radius,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
	// OnSuccess/OnFailure are the sub-effect lists of coin-flip style customs.
	OnSuccess []Effect `json:"onSuccess,omitempty"`
	OnFailure []Effect `json:"onFailure,omitempty"`
	// Options are the alternatives of a choice effect.
	Options []Option `json:"options,omitempty"`
}

// Option is one alternative of a choice effect.
type Option struct {
	Label   string   `json:"label"`
	Effects []Effect `json:"effects"`
}

// Card is a static, read-only card definition addressed by a stable id.
type Card struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type CardType `json:"type"`
	Cost int      `json:"cost"`
	// XCost marks cards whose cost/effect scale with additional spent mana;
	// casting one suspends until the X value is supplied.
	XCost  bool       `json:"xCost,omitempty"`
	Target TargetMode `json:"target"`
	// Range bounds target selection in Chebyshev distance; 0 means unlimited.
	Range int `json:"range,omitempty"`
	// SelfRange marks cards whose range is "self": the caster's own attack
	// range geometry is used instead of a plain distance.
	SelfRange bool `json:"selfRange,omitempty"`
	// Trigger is set on response cards.
	Trigger Trigger `json:"trigger,omitempty"`
	// Character binds a response card to a champion archetype.
	Character string `json:"character,omitempty"`
	// Charges is the starting charge count of equipment cards.
	Charges int      `json:"charges,omitempty"`
	Effects []Effect `json:"effect"`
}

// ChampionArchetype holds the base stats a champion is created from.
type ChampionArchetype struct {
	Name       string `json:"name"`
	Power      int    `json:"power"`
	Range      int    `json:"range"`
	Movement   int    `json:"movement"`
	StartingHP int    `json:"startingHp"`
}

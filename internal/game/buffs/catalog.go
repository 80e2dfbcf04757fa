package buffs

// Category classifies what part of the rules a modifier participates in.
type Category string

const (
	// CategoryStatModifier adjusts power/range/movement derivation.
	CategoryStatModifier Category = "STAT_MODIFIER"
	// CategoryActionModifier changes how actions validate or resolve.
	CategoryActionModifier Category = "ACTION_MODIFIER"
	// CategoryDamageModifier participates in the damage pipeline.
	CategoryDamageModifier Category = "DAMAGE_MODIFIER"
	// CategoryProtection prevents or reduces incoming damage.
	CategoryProtection Category = "PROTECTION"
	// CategoryMovement changes movement capabilities.
	CategoryMovement Category = "MOVEMENT"
	// CategoryControl restricts what the champion may do.
	CategoryControl Category = "CONTROL"
	// CategorySpecial covers one-off named behaviors.
	CategorySpecial Category = "SPECIAL"
)

// Canonical modifier names. Card content refers to these by string, so the
// constants double as the content vocabulary.
const (
	// Stat modifiers: stack count is the signed magnitude applied to the stat.
	StatPower    = "power"
	StatRange    = "range"
	StatMovement = "movement"

	// Movement capabilities.
	Agility  = "agility"
	WallWalk = "wallWalk"

	// Action modifiers.
	AttackHeals = "attackHeals"
	CriticalHit = "criticalHit"
	ExtraAttack = "extraAttack"
	Leech       = "leech"

	// Protections.
	Stealth         = "stealth"
	Negate          = "negate"
	Shield          = "shield"
	Immune          = "immune"
	DamageReduction = "damageReduction"
	CheatDeath      = "cheatDeath"

	// Damage modifiers.
	ReturnDamage  = "returnDamage"
	Vulnerability = "vulnerability"
	Marked        = "marked"
	Redirect      = "redirect"

	// Control.
	Stun = "stun"
	Root = "root"

	// Specials.
	Enrage     = "enrage"
	SpiritLink = "spiritLink"
)

// Definition describes the static semantics of one named modifier.
type Definition struct {
	Name      string
	Category  Category
	Stackable bool
}

var catalog = map[string]Definition{
	StatPower:       {StatPower, CategoryStatModifier, true},
	StatRange:       {StatRange, CategoryStatModifier, true},
	StatMovement:    {StatMovement, CategoryStatModifier, true},
	Agility:         {Agility, CategoryMovement, false},
	WallWalk:        {WallWalk, CategoryMovement, false},
	AttackHeals:     {AttackHeals, CategoryActionModifier, false},
	CriticalHit:     {CriticalHit, CategoryActionModifier, false},
	ExtraAttack:     {ExtraAttack, CategoryActionModifier, true},
	Leech:           {Leech, CategoryActionModifier, false},
	Stealth:         {Stealth, CategoryProtection, false},
	Negate:          {Negate, CategoryProtection, true},
	Shield:          {Shield, CategoryProtection, true},
	Immune:          {Immune, CategoryProtection, false},
	DamageReduction: {DamageReduction, CategoryProtection, true},
	CheatDeath:      {CheatDeath, CategoryProtection, false},
	ReturnDamage:    {ReturnDamage, CategoryDamageModifier, false},
	Vulnerability:   {Vulnerability, CategoryDamageModifier, true},
	Marked:          {Marked, CategoryDamageModifier, false},
	Redirect:        {Redirect, CategoryDamageModifier, false},
	Stun:            {Stun, CategoryControl, false},
	Root:            {Root, CategoryControl, false},
	Enrage:          {Enrage, CategorySpecial, true},
	SpiritLink:      {SpiritLink, CategorySpecial, false},
}

// Lookup returns the definition for a named modifier.
func Lookup(name string) (Definition, bool) {
	def, ok := catalog[name]
	return def, ok
}

// Known reports whether the name is in the catalog.
func Known(name string) bool {
	_, ok := catalog[name]
	return ok
}

// IsStackable reports whether stacks of the named modifier accumulate.
// Unknown names are treated as non-stackable.
func IsStackable(name string) bool {
	def, ok := catalog[name]
	return ok && def.Stackable
}

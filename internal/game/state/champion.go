package state

import (
	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
)

// ChampionState tracks a single champion on the board: identity, base stats,
// current life, per-turn action flags, active modifiers and equipped items.
// Current power/range/movement are never stored; they are derived from base
// stats plus the signed sum of stat-modifier stacks every time they are read.
type ChampionState struct {
	ID        string
	Archetype string
	Owner     int

	Position board.Position
	OnBoard  bool

	BasePower    int
	BaseRange    int
	BaseMovement int
	MaxHP        int
	CurrentHP    int

	// Per-turn action flags, reset at the owner's start phase.
	HasMoved      bool
	HasAttacked   bool
	MovementSpent int

	Buffs   buffs.Set
	Debuffs buffs.Set

	// Equipment maps equipped card ids to remaining charges.
	Equipment map[string]int
}

// NewChampion instantiates a champion from its archetype at the given cell.
func NewChampion(id string, archetype content.ChampionArchetype, owner int, pos board.Position) *ChampionState {
	return &ChampionState{
		ID:           id,
		Archetype:    archetype.Name,
		Owner:        owner,
		Position:     pos,
		OnBoard:      true,
		BasePower:    archetype.Power,
		BaseRange:    archetype.Range,
		BaseMovement: archetype.Movement,
		MaxHP:        archetype.StartingHP,
		CurrentHP:    archetype.StartingHP,
		Buffs:        buffs.NewSet(),
		Debuffs:      buffs.NewSet(),
		Equipment:    make(map[string]int),
	}
}

// IsAlive reports whether the champion is still in the fight.
func (c *ChampionState) IsAlive() bool {
	return c.CurrentHP > 0
}

func (c *ChampionState) statValue(base int, stat string) int {
	value := base + c.Buffs.Stacks(stat) - c.Debuffs.Stacks(stat)
	if value < 0 {
		return 0
	}
	return value
}

// CurrentPower is the champion's base power adjusted by power modifiers.
func (c *ChampionState) CurrentPower() int {
	return c.statValue(c.BasePower, buffs.StatPower)
}

// CurrentRange is the champion's base attack range adjusted by range modifiers.
func (c *ChampionState) CurrentRange() int {
	return c.statValue(c.BaseRange, buffs.StatRange)
}

// CurrentMovement is the champion's base movement adjusted by movement
// modifiers. A rooted champion cannot move at all.
func (c *ChampionState) CurrentMovement() int {
	if c.Debuffs.Has(buffs.Root) {
		return 0
	}
	return c.statValue(c.BaseMovement, buffs.StatMovement)
}

// MovementRemaining is the number of steps left this turn.
func (c *ChampionState) MovementRemaining() int {
	remaining := c.CurrentMovement() - c.MovementSpent
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasModifier reports whether the named buff or debuff is active.
func (c *ChampionState) HasModifier(name string) bool {
	return c.Buffs.Has(name) || c.Debuffs.Has(name)
}

// ApplyStatMod records a stat change as modifier stacks: positive magnitudes
// land in the buff set, negative in the debuff set.
func (c *ChampionState) ApplyStatMod(stat string, magnitude, duration int, sourceID string) {
	if magnitude > 0 {
		c.Buffs.Add(stat, duration, magnitude, sourceID)
	} else if magnitude < 0 {
		c.Debuffs.Add(stat, duration, -magnitude, sourceID)
	}
}

// ResetTurnFlags clears the per-turn action bookkeeping at start of turn.
func (c *ChampionState) ResetTurnFlags() {
	c.HasMoved = false
	c.HasAttacked = false
	c.MovementSpent = 0
}

// MoveProfile derives the champion's pathfinding rules from its modifiers.
func (c *ChampionState) MoveProfile() board.MoveProfile {
	return board.MoveProfile{
		Diagonal:   c.Buffs.Has(buffs.Agility),
		CrossWalls: c.Buffs.Has(buffs.WallWalk),
	}
}

// Heal raises current HP by the given amount, capped at MaxHP, and returns
// the amount actually restored.
func (c *ChampionState) Heal(amount int) int {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	before := c.CurrentHP
	c.CurrentHP += amount
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
	return c.CurrentHP - before
}

// Clone produces a fully independent copy of the champion.
func (c *ChampionState) Clone() *ChampionState {
	cpy := *c
	cpy.Buffs = c.Buffs.Clone()
	cpy.Debuffs = c.Debuffs.Clone()
	cpy.Equipment = make(map[string]int, len(c.Equipment))
	for id, charges := range c.Equipment {
		cpy.Equipment[id] = charges
	}
	return &cpy
}

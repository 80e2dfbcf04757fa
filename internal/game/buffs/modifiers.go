package buffs

import "sort"

// Duration encoding for modifier instances.
const (
	// DurationPermanent never expires on its own.
	DurationPermanent = -1
	// DurationThisTurn expires at the end of the current turn.
	DurationThisTurn = 0
)

// Instance is one named modifier applied to a champion.
type Instance struct {
	// Duration: -1 permanent, 0 expires at end of current turn, N>0 lasts N
	// full turn-cycles of the owning player.
	Duration int
	// Stacks is the accumulated stack count.
	Stacks int
	// SourceID identifies the champion or card that applied the modifier.
	SourceID string
}

// Set maps modifier names to their active instance. A champion carries two
// independent sets, one for buffs and one for debuffs.
type Set map[string]Instance

// NewSet creates an empty modifier set.
func NewSet() Set {
	return make(Set)
}

// Add applies stacks of the named modifier. Stackable modifiers accumulate;
// non-stackable ones keep a single stack. The longer of the existing and new
// duration wins, with permanent treated as longest.
func (s Set) Add(name string, duration, stacks int, sourceID string) {
	if stacks <= 0 {
		stacks = 1
	}
	existing, ok := s[name]
	if !ok {
		if !IsStackable(name) {
			stacks = 1
		}
		s[name] = Instance{Duration: duration, Stacks: stacks, SourceID: sourceID}
		return
	}
	if IsStackable(name) {
		existing.Stacks += stacks
	}
	existing.Duration = longerDuration(existing.Duration, duration)
	existing.SourceID = sourceID
	s[name] = existing
}

func longerDuration(a, b int) int {
	if a == DurationPermanent || b == DurationPermanent {
		return DurationPermanent
	}
	if a > b {
		return a
	}
	return b
}

// Has reports whether the named modifier is active.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Stacks returns the active stack count for the named modifier.
func (s Set) Stacks(name string) int {
	return s[name].Stacks
}

// Source returns the source id recorded for the named modifier.
func (s Set) Source(name string) string {
	return s[name].SourceID
}

// Remove deletes the named modifier entirely.
func (s Set) Remove(name string) {
	delete(s, name)
}

// ConsumeStack removes a single stack of the named modifier, deleting the
// entry when the last stack is spent. Returns false when the modifier is not
// active.
func (s Set) ConsumeStack(name string) bool {
	inst, ok := s[name]
	if !ok {
		return false
	}
	inst.Stacks--
	if inst.Stacks <= 0 {
		delete(s, name)
	} else {
		s[name] = inst
	}
	return true
}

// TickEndOfTurn advances durations at the end of the owning player's turn:
// this-turn modifiers expire, counted durations lose one cycle and expire on
// reaching zero, permanents are untouched. Returns the expired names sorted
// for deterministic event emission.
func (s Set) TickEndOfTurn() []string {
	var expired []string
	for name, inst := range s {
		switch {
		case inst.Duration == DurationPermanent:
			continue
		case inst.Duration == DurationThisTurn:
			expired = append(expired, name)
		default:
			inst.Duration--
			if inst.Duration <= 0 {
				expired = append(expired, name)
			} else {
				s[name] = inst
			}
		}
	}
	sort.Strings(expired)
	for _, name := range expired {
		delete(s, name)
	}
	return expired
}

// Names returns the active modifier names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone produces an independent copy of the set.
func (s Set) Clone() Set {
	cpy := make(Set, len(s))
	for name, inst := range s {
		cpy[name] = inst
	}
	return cpy
}

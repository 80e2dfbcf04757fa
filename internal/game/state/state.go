package state

import (
	"sort"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
)

const (
	// ManaPerTurn is the fixed mana allotment each player starts their turn
	// with. Mana does not carry over between turns.
	ManaPerTurn = 10

	// HandLimit is the maximum hand size enforced at end of turn.
	HandLimit = 7
)

// Phase identifies where in the turn sequence the match currently is.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseAction
	PhaseResponse
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseStart:    "START",
	PhaseAction:   "ACTION",
	PhaseResponse: "RESPONSE",
	PhaseEnd:      "END",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// PlayerState carries one player's resources: mana, hand, deck and discard.
// The deck is a stack drawn from the end.
type PlayerState struct {
	Mana       int
	LockedMana int
	Hand       []string
	Deck       []string
	Discard    []string
}

// NewPlayerState builds a player with a full mana pool and the given deck.
func NewPlayerState(deck []string) *PlayerState {
	return &PlayerState{
		Mana: ManaPerTurn,
		Deck: append([]string(nil), deck...),
	}
}

// Draw pops the top of the deck into the hand. Returns false on an empty
// deck; running out of cards is not a loss condition, the draw is skipped.
func (p *PlayerState) Draw() (string, bool) {
	if len(p.Deck) == 0 {
		return "", false
	}
	cardID := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, cardID)
	return cardID, true
}

// HasInHand reports whether the card is currently held.
func (p *PlayerState) HasInHand(cardID string) bool {
	for _, id := range p.Hand {
		if id == cardID {
			return true
		}
	}
	return false
}

// RemoveFromHand takes the first copy of the card out of the hand without
// discarding it. Returns false if the card is not held.
func (p *PlayerState) RemoveFromHand(cardID string) bool {
	for i, id := range p.Hand {
		if id == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// DiscardFromHand moves the first copy of the card from hand to discard.
func (p *PlayerState) DiscardFromHand(cardID string) bool {
	if !p.RemoveFromHand(cardID) {
		return false
	}
	p.Discard = append(p.Discard, cardID)
	return true
}

// DiscardLast moves the last card in hand to discard and returns its id.
// With duplicate ids in hand this is not the same as discarding the last
// id's first copy.
func (p *PlayerState) DiscardLast() (string, bool) {
	if len(p.Hand) == 0 {
		return "", false
	}
	cardID := p.Hand[len(p.Hand)-1]
	p.Hand = p.Hand[:len(p.Hand)-1]
	p.Discard = append(p.Discard, cardID)
	return cardID, true
}

// InDiscard reports whether a copy of the card sits in the discard pile.
func (p *PlayerState) InDiscard(cardID string) bool {
	for _, id := range p.Discard {
		if id == cardID {
			return true
		}
	}
	return false
}

// UsableMana is the mana available after locks.
func (p *PlayerState) UsableMana() int {
	usable := p.Mana - p.LockedMana
	if usable < 0 {
		return 0
	}
	return usable
}

// SpendMana deducts the cost if affordable.
func (p *PlayerState) SpendMana(cost int) bool {
	if cost < 0 || p.UsableMana() < cost {
		return false
	}
	p.Mana -= cost
	return true
}

// ResetMana restores the fixed per-turn allotment and releases locks.
func (p *PlayerState) ResetMana() {
	p.Mana = ManaPerTurn
	p.LockedMana = 0
}

// Clone produces a fully independent copy of the player's resources.
func (p *PlayerState) Clone() *PlayerState {
	return &PlayerState{
		Mana:       p.Mana,
		LockedMana: p.LockedMana,
		Hand:       append([]string(nil), p.Hand...),
		Deck:       append([]string(nil), p.Deck...),
		Discard:    append([]string(nil), p.Discard...),
	}
}

// GameState is the authoritative snapshot of a match: board terrain and its
// transient overrides, both champion rosters, per-player resources, turn
// bookkeeping and the pending response stack. All mutation flows through the
// action system and the effect interpreter.
type GameState struct {
	MatchID      string
	Round        int
	ActivePlayer int
	Phase        Phase
	GameOver     bool
	Winner       int

	Grid      *board.Grid
	Champions map[string]*ChampionState
	Players   map[int]*PlayerState

	Stack *rules.ResponseStack

	// Bus distributes observation events. It is shared infrastructure, not
	// game data: Clone leaves it nil so lookahead copies stay silent.
	Bus *rules.EventBus
}

// NewGameState builds an empty match shell for two players.
func NewGameState(matchID string, deck1, deck2 []string) *GameState {
	return &GameState{
		MatchID:      matchID,
		Round:        1,
		ActivePlayer: 1,
		Phase:        PhaseStart,
		Grid:         board.NewGrid(),
		Champions:    make(map[string]*ChampionState),
		Players: map[int]*PlayerState{
			1: NewPlayerState(deck1),
			2: NewPlayerState(deck2),
		},
		Stack: rules.NewResponseStack(),
	}
}

// AddChampion registers a champion in the match.
func (gs *GameState) AddChampion(champ *ChampionState) {
	gs.Champions[champ.ID] = champ
}

// Champion looks up a champion by id.
func (gs *GameState) Champion(id string) (*ChampionState, bool) {
	champ, ok := gs.Champions[id]
	return champ, ok
}

// ChampionAt returns the living champion occupying the given cell, if any.
func (gs *GameState) ChampionAt(pos board.Position) (*ChampionState, bool) {
	for _, champ := range gs.Champions {
		if champ.OnBoard && champ.IsAlive() && champ.Position == pos {
			return champ, true
		}
	}
	return nil, false
}

// ChampionsOf lists a player's champions in a deterministic order.
func (gs *GameState) ChampionsOf(player int) []*ChampionState {
	var out []*ChampionState
	for _, champ := range gs.Champions {
		if champ.Owner == player {
			out = append(out, champ)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LivingChampionsOf lists a player's champions that are still alive and on
// the board, in a deterministic order.
func (gs *GameState) LivingChampionsOf(player int) []*ChampionState {
	var out []*ChampionState
	for _, champ := range gs.ChampionsOf(player) {
		if champ.OnBoard && champ.IsAlive() {
			out = append(out, champ)
		}
	}
	return out
}

// AllChampions lists every champion in a deterministic order.
func (gs *GameState) AllChampions() []*ChampionState {
	var out []*ChampionState
	for _, champ := range gs.Champions {
		out = append(out, champ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OccupiedCells maps every cell held by a living champion, optionally
// ignoring one champion (the mover, when pathfinding for it).
func (gs *GameState) OccupiedCells(ignoreID string) map[board.Position]bool {
	occupied := make(map[board.Position]bool)
	for _, champ := range gs.Champions {
		if champ.ID == ignoreID || !champ.OnBoard || !champ.IsAlive() {
			continue
		}
		occupied[champ.Position] = true
	}
	return occupied
}

// Player returns a player's resource state.
func (gs *GameState) Player(player int) *PlayerState {
	return gs.Players[player]
}

// Publish emits an event if a bus is attached. Lookahead clones have none.
func (gs *GameState) Publish(event rules.Event) {
	if gs.Bus != nil {
		gs.Bus.Publish(event)
	}
}

// EvaluateWinner checks the win condition: a player with no living champions
// loses. Returns true if the match just ended.
func (gs *GameState) EvaluateWinner() bool {
	if gs.GameOver {
		return false
	}
	alive1 := len(gs.LivingChampionsOf(1))
	alive2 := len(gs.LivingChampionsOf(2))
	switch {
	case alive1 == 0 && alive2 == 0:
		// Simultaneous wipe: the player whose turn it is takes the win.
		gs.GameOver = true
		gs.Winner = gs.ActivePlayer
	case alive1 == 0:
		gs.GameOver = true
		gs.Winner = 2
	case alive2 == 0:
		gs.GameOver = true
		gs.Winner = 1
	default:
		return false
	}
	return true
}

// Clone produces a fully independent deep copy for simulation/lookahead use.
// Every nested map, slice and champion is copied; the event bus is not
// carried over.
func (gs *GameState) Clone() *GameState {
	cpy := &GameState{
		MatchID:      gs.MatchID,
		Round:        gs.Round,
		ActivePlayer: gs.ActivePlayer,
		Phase:        gs.Phase,
		GameOver:     gs.GameOver,
		Winner:       gs.Winner,
		Grid:         gs.Grid.Clone(),
		Champions:    make(map[string]*ChampionState, len(gs.Champions)),
		Players:      make(map[int]*PlayerState, len(gs.Players)),
		Stack:        gs.Stack.Clone(),
	}
	for id, champ := range gs.Champions {
		cpy.Champions[id] = champ.Clone()
	}
	for player, ps := range gs.Players {
		cpy.Players[player] = ps.Clone()
	}
	return cpy
}

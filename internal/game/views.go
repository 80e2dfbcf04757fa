package game

import (
	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
)

// ChampionView is a read-only description of a champion for external
// callers. Current stats are the derived values, modifiers included.
type ChampionView struct {
	ID              string
	Archetype       string
	Owner           int
	Position        board.Position
	Alive           bool
	CurrentHP       int
	MaxHP           int
	CurrentPower    int
	CurrentRange    int
	CurrentMovement int
	HasMoved        bool
	HasAttacked     bool
	Buffs           []string
	Debuffs         []string
	Equipment       map[string]int
}

// PlayerView is a read-only description of a player's resources. Only hand
// and discard contents are listed; the deck is counted, not revealed.
type PlayerView struct {
	Player     int
	Mana       int
	LockedMana int
	Hand       []string
	DeckCount  int
	Discard    []string
}

// MatchView is the read snapshot the boundary exposes for rendering.
type MatchView struct {
	MatchID      string
	Round        int
	ActivePlayer int
	Phase        string
	GameOver     bool
	Winner       int
	Champions    []ChampionView
	Players      []PlayerView
	Window       ResponseWindowView
}

// GetGameState returns a read snapshot of the match for UI/AI observation.
// It shares nothing with the live state.
func (e *ArenaEngine) GetGameState(matchID string) (MatchView, error) {
	m, err := e.match(matchID)
	if err != nil {
		return MatchView{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	view := MatchView{
		MatchID:      m.state.MatchID,
		Round:        m.state.Round,
		ActivePlayer: m.state.ActivePlayer,
		Phase:        m.state.Phase.String(),
		GameOver:     m.state.GameOver,
		Winner:       m.state.Winner,
	}

	for _, champ := range m.state.AllChampions() {
		cv := ChampionView{
			ID:              champ.ID,
			Archetype:       champ.Archetype,
			Owner:           champ.Owner,
			Position:        champ.Position,
			Alive:           champ.IsAlive(),
			CurrentHP:       champ.CurrentHP,
			MaxHP:           champ.MaxHP,
			CurrentPower:    champ.CurrentPower(),
			CurrentRange:    champ.CurrentRange(),
			CurrentMovement: champ.CurrentMovement(),
			HasMoved:        champ.HasMoved,
			HasAttacked:     champ.HasAttacked,
			Buffs:           champ.Buffs.Names(),
			Debuffs:         champ.Debuffs.Names(),
			Equipment:       make(map[string]int, len(champ.Equipment)),
		}
		for id, charges := range champ.Equipment {
			cv.Equipment[id] = charges
		}
		view.Champions = append(view.Champions, cv)
	}

	for _, player := range []int{1, 2} {
		ps := m.state.Player(player)
		view.Players = append(view.Players, PlayerView{
			Player:     player,
			Mana:       ps.Mana,
			LockedMana: ps.LockedMana,
			Hand:       append([]string(nil), ps.Hand...),
			DeckCount:  len(ps.Deck),
			Discard:    append([]string(nil), ps.Discard...),
		})
	}

	if m.window != nil {
		view.Window = ResponseWindowView{
			Open:     true,
			Trigger:  string(m.window.Trigger),
			Priority: m.window.Priority,
			Passes:   m.window.Passes(),
		}
		for _, entry := range m.state.Stack.List() {
			view.Window.Stack = append(view.Window.Stack, entry.CardID)
		}
	}
	return view, nil
}

package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/effects"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

const snapshotVersion = 1

// TerrainOverride records one transient terrain cell in a snapshot.
type TerrainOverride struct {
	Position board.Position
	Terrain  board.Terrain
}

// ChampionSnapshot is the serializable form of a champion.
type ChampionSnapshot struct {
	ID            string
	Archetype     string
	Owner         int
	Position      board.Position
	OnBoard       bool
	BasePower     int
	BaseRange     int
	BaseMovement  int
	MaxHP         int
	CurrentHP     int
	HasMoved      bool
	HasAttacked   bool
	MovementSpent int
	Buffs         map[string]buffs.Instance
	Debuffs       map[string]buffs.Instance
	Equipment     map[string]int
}

// PlayerSnapshot is the serializable form of a player's resources.
type PlayerSnapshot struct {
	Mana       int
	LockedMana int
	Hand       []string
	Deck       []string
	Discard    []string
}

// MatchSnapshot is a structural serialization of a match sufficient to
// reconstruct an identical state object graph, for save and replay.
type MatchSnapshot struct {
	Version      int
	MatchID      string
	Round        int
	ActivePlayer int
	Phase        int
	GameOver     bool
	Winner       int
	Overrides    []TerrainOverride
	Champions    []ChampionSnapshot
	Players      map[int]PlayerSnapshot
	Stack        []rules.ResponseEntry
}

// SnapshotState captures the full state of a match.
func SnapshotState(gs *state.GameState) *MatchSnapshot {
	snap := &MatchSnapshot{
		Version:      snapshotVersion,
		MatchID:      gs.MatchID,
		Round:        gs.Round,
		ActivePlayer: gs.ActivePlayer,
		Phase:        int(gs.Phase),
		GameOver:     gs.GameOver,
		Winner:       gs.Winner,
		Players:      make(map[int]PlayerSnapshot, len(gs.Players)),
	}

	overrides := gs.Grid.Overrides()
	keys := make([]board.Position, 0, len(overrides))
	for pos := range overrides {
		keys = append(keys, pos)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	for _, pos := range keys {
		snap.Overrides = append(snap.Overrides, TerrainOverride{Position: pos, Terrain: overrides[pos]})
	}

	for _, champ := range gs.AllChampions() {
		cs := ChampionSnapshot{
			ID:            champ.ID,
			Archetype:     champ.Archetype,
			Owner:         champ.Owner,
			Position:      champ.Position,
			OnBoard:       champ.OnBoard,
			BasePower:     champ.BasePower,
			BaseRange:     champ.BaseRange,
			BaseMovement:  champ.BaseMovement,
			MaxHP:         champ.MaxHP,
			CurrentHP:     champ.CurrentHP,
			HasMoved:      champ.HasMoved,
			HasAttacked:   champ.HasAttacked,
			MovementSpent: champ.MovementSpent,
			Buffs:         champ.Buffs.Clone(),
			Debuffs:       champ.Debuffs.Clone(),
			Equipment:     make(map[string]int, len(champ.Equipment)),
		}
		for id, charges := range champ.Equipment {
			cs.Equipment[id] = charges
		}
		snap.Champions = append(snap.Champions, cs)
	}

	for player, ps := range gs.Players {
		snap.Players[player] = PlayerSnapshot{
			Mana:       ps.Mana,
			LockedMana: ps.LockedMana,
			Hand:       append([]string(nil), ps.Hand...),
			Deck:       append([]string(nil), ps.Deck...),
			Discard:    append([]string(nil), ps.Discard...),
		}
	}

	snap.Stack = gs.Stack.List()
	return snap
}

// RestoreState rebuilds a GameState from a snapshot.
func (snap *MatchSnapshot) RestoreState() *state.GameState {
	gs := state.NewGameState(snap.MatchID, nil, nil)
	gs.Round = snap.Round
	gs.ActivePlayer = snap.ActivePlayer
	gs.Phase = state.Phase(snap.Phase)
	gs.GameOver = snap.GameOver
	gs.Winner = snap.Winner

	for _, override := range snap.Overrides {
		gs.Grid.SetOverride(override.Position, override.Terrain)
	}

	for _, cs := range snap.Champions {
		champ := &state.ChampionState{
			ID:            cs.ID,
			Archetype:     cs.Archetype,
			Owner:         cs.Owner,
			Position:      cs.Position,
			OnBoard:       cs.OnBoard,
			BasePower:     cs.BasePower,
			BaseRange:     cs.BaseRange,
			BaseMovement:  cs.BaseMovement,
			MaxHP:         cs.MaxHP,
			CurrentHP:     cs.CurrentHP,
			HasMoved:      cs.HasMoved,
			HasAttacked:   cs.HasAttacked,
			MovementSpent: cs.MovementSpent,
			Buffs:         buffs.Set(cs.Buffs).Clone(),
			Debuffs:       buffs.Set(cs.Debuffs).Clone(),
			Equipment:     make(map[string]int, len(cs.Equipment)),
		}
		for id, charges := range cs.Equipment {
			champ.Equipment[id] = charges
		}
		gs.AddChampion(champ)
	}

	for player, ps := range snap.Players {
		gs.Players[player] = &state.PlayerState{
			Mana:       ps.Mana,
			LockedMana: ps.LockedMana,
			Hand:       append([]string(nil), ps.Hand...),
			Deck:       append([]string(nil), ps.Deck...),
			Discard:    append([]string(nil), ps.Discard...),
		}
	}

	// List returns top-first; pushing in reverse restores order.
	for i := len(snap.Stack) - 1; i >= 0; i-- {
		gs.Stack.Push(snap.Stack[i].Clone())
	}
	return gs
}

// SerializeToBytes encodes the snapshot with gob.
func (snap *MatchSnapshot) SerializeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeSnapshot decodes a snapshot produced by SerializeToBytes.
func DeserializeSnapshot(data []byte) (*MatchSnapshot, error) {
	var snap MatchSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// Checksum computes a deterministic SHA-256 over a canonical representation
// of the snapshot, independent of map iteration order. Equal states always
// produce equal checksums, which guards replays against divergence.
func (snap *MatchSnapshot) Checksum() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MATCH:%s|%d|%d|%d|%t|%d\n",
		snap.MatchID, snap.Round, snap.ActivePlayer, snap.Phase, snap.GameOver, snap.Winner)

	for _, override := range snap.Overrides {
		fmt.Fprintf(&buf, "TERRAIN:%s|%d\n", override.Position, override.Terrain)
	}

	for _, cs := range snap.Champions {
		fmt.Fprintf(&buf, "CHAMPION:%s|%s|%d|%s|%t|%d|%d|%d|%d|%d|%t|%t|%d\n",
			cs.ID, cs.Archetype, cs.Owner, cs.Position, cs.OnBoard,
			cs.BasePower, cs.BaseRange, cs.BaseMovement, cs.MaxHP, cs.CurrentHP,
			cs.HasMoved, cs.HasAttacked, cs.MovementSpent)
		writeModifierLines(&buf, "BUFF", cs.Buffs)
		writeModifierLines(&buf, "DEBUFF", cs.Debuffs)

		equipIDs := make([]string, 0, len(cs.Equipment))
		for id := range cs.Equipment {
			equipIDs = append(equipIDs, id)
		}
		sort.Strings(equipIDs)
		for _, id := range equipIDs {
			fmt.Fprintf(&buf, "  EQUIP:%s|%d\n", id, cs.Equipment[id])
		}
	}

	players := make([]int, 0, len(snap.Players))
	for player := range snap.Players {
		players = append(players, player)
	}
	sort.Ints(players)
	for _, player := range players {
		ps := snap.Players[player]
		fmt.Fprintf(&buf, "PLAYER:%d|%d|%d\n", player, ps.Mana, ps.LockedMana)
		for _, cardID := range ps.Hand {
			fmt.Fprintf(&buf, "  HAND:%s\n", cardID)
		}
		for _, cardID := range ps.Deck {
			fmt.Fprintf(&buf, "  DECK:%s\n", cardID)
		}
		for _, cardID := range ps.Discard {
			fmt.Fprintf(&buf, "  DISCARD:%s\n", cardID)
		}
	}

	for _, entry := range snap.Stack {
		fmt.Fprintf(&buf, "STACK:%s|%d|%s|%s\n", entry.CardID, entry.Player, entry.CasterID, entry.Trigger)
	}

	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:])
}

func writeModifierLines(buf *bytes.Buffer, label string, set map[string]buffs.Instance) {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		instance := set[name]
		fmt.Fprintf(buf, "  %s:%s|%d|%d|%s\n", label, name, instance.Duration, instance.Stacks, instance.SourceID)
	}
}

// SaveMatch serializes a match for persistence or replay.
func (e *ArenaEngine) SaveMatch(matchID string) ([]byte, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return SnapshotState(m.state).SerializeToBytes()
}

// LoadMatch reconstructs a saved match under the given id.
func (e *ArenaEngine) LoadMatch(matchID string, data []byte, seed int64) error {
	snap, err := DeserializeSnapshot(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.matches[matchID]; exists {
		return fmt.Errorf("%w: %s", ErrMatchExists, matchID)
	}

	gs := snap.RestoreState()
	gs.MatchID = matchID
	bus := rules.NewEventBus()
	gs.Bus = bus
	e.bridgeNotifications(matchID, bus)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	e.matches[matchID] = &matchState{
		id:      matchID,
		state:   gs,
		bus:     bus,
		library: e.library,
		interp:  effects.NewInterpreter(e.library, e.logger, rng),
		history: NewHistory(),
		rng:     rng,
		log:     e.logger,
	}
	return nil
}

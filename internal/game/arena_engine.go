package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/buffs"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/effects"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/rules"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/state"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match already exists")
	ErrWindowOpen    = errors.New("a response window is open")
	ErrAwaitingInput = errors.New("resolution is awaiting player input")
)

// GameNotification carries an engine event to external observers such as the
// websocket gateway.
type GameNotification struct {
	Type      string
	MatchID   string
	Player    int
	Timestamp time.Time
	Data      map[string]interface{}
}

// NotificationHandler receives game notifications for UI/transport layers.
type NotificationHandler func(notification GameNotification)

// CommandResult is the structured outcome of every boundary command. A
// failed command leaves the game state untouched and carries a
// human-readable reason.
type CommandResult struct {
	Success bool
	Error   string

	// WindowOpened reports that the command was intercepted by a response
	// window; the interrupted action continues after the window closes.
	WindowOpened bool

	// Suspended reports that card resolution is waiting on player input.
	Suspended bool
	Request   *effects.InputRequest

	DamageDealt int
	HealingDone int
	Missed      bool
	TargetDied  bool

	GameOver bool
	Winner   int
}

func failure(err error) CommandResult {
	return CommandResult{Error: err.Error()}
}

// ChampionSetup positions one champion at match creation.
type ChampionSetup struct {
	ID        string
	Archetype string
	Owner     int
	Position  board.Position
}

// MatchConfig describes a new match. Zero-value fields fall back to the
// default decks and the standard corner deployment.
type MatchConfig struct {
	Seed      int64
	Deck1     []string
	Deck2     []string
	Champions []ChampionSetup
}

// matchState bundles everything one running match owns. All commands on a
// match serialize through its mutex; the core itself is single-threaded.
type matchState struct {
	mu      sync.Mutex
	id      string
	state   *state.GameState
	bus     *rules.EventBus
	library *content.Library
	interp  *effects.Interpreter
	history *History
	rng     *rand.Rand
	log     *zap.Logger

	window            *rules.ResponseWindow
	phaseBeforeWindow state.Phase
	pendingAttack     *AttackAction
	pendingCast       *CastAction
	pendingEnd        bool

	// suspendedCast holds a cast whose resolution is parked on player
	// input, together with its pre-execute snapshot for the history entry
	// written once resolution completes.
	suspendedCast   *CastAction
	suspendedBefore *state.GameState
}

// snapshot takes a deep copy of the match state for history bookkeeping.
func (m *matchState) snapshot() *state.GameState {
	return m.state.Clone()
}

// restore swaps in a snapshot and reattaches the live event bus.
func (m *matchState) restore(snap *state.GameState) {
	snap.Bus = m.bus
	m.state = snap
}

// ArenaEngine hosts running matches and exposes the boundary API consumed by
// UI and AI callers.
type ArenaEngine struct {
	logger              *zap.Logger
	mu                  sync.RWMutex
	matches             map[string]*matchState
	library             *content.Library
	notificationHandler NotificationHandler
}

// NewArenaEngine creates an engine over the given card library.
func NewArenaEngine(logger *zap.Logger, library *content.Library) *ArenaEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if library == nil {
		library = content.DefaultLibrary()
	}
	return &ArenaEngine{
		logger:  logger,
		matches: make(map[string]*matchState),
		library: library,
	}
}

// SetNotificationHandler registers the handler for engine notifications so
// external systems receive real-time updates.
func (e *ArenaEngine) SetNotificationHandler(handler NotificationHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notificationHandler = handler
}

// emitNotification forwards a notification without blocking game logic.
func (e *ArenaEngine) emitNotification(notification GameNotification) {
	e.mu.RLock()
	handler := e.notificationHandler
	e.mu.RUnlock()
	if handler != nil {
		go handler(notification)
	}
}

// bridgeNotifications forwards every event on a match bus to the engine's
// notification handler. Both newly created and restored matches go through
// here.
func (e *ArenaEngine) bridgeNotifications(matchID string, bus *rules.EventBus) {
	bus.Subscribe(func(event rules.Event) {
		e.emitNotification(GameNotification{
			Type:      string(event.Type),
			MatchID:   matchID,
			Player:    event.Player,
			Timestamp: event.Timestamp,
			Data: map[string]interface{}{
				"source": event.SourceID,
				"target": event.TargetID,
				"card":   event.CardID,
				"amount": event.Amount,
				"data":   event.Data,
			},
		})
	})
}

// CreateMatch starts a new match. The seed makes every random roll in the
// match reproducible.
func (e *ArenaEngine) CreateMatch(matchID string, cfg MatchConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.matches[matchID]; exists {
		return fmt.Errorf("%w: %s", ErrMatchExists, matchID)
	}

	deck1, deck2 := cfg.Deck1, cfg.Deck2
	if deck1 == nil {
		deck1 = defaultDeck(e.library)
	}
	if deck2 == nil {
		deck2 = defaultDeck(e.library)
	}
	gs := state.NewGameState(matchID, deck1, deck2)

	setups := cfg.Champions
	if len(setups) == 0 {
		setups = defaultDeployment(gs)
	}
	for _, setup := range setups {
		archetype, ok := e.library.Champion(setup.Archetype)
		if !ok {
			return fmt.Errorf("unknown champion archetype: %s", setup.Archetype)
		}
		gs.AddChampion(state.NewChampion(setup.ID, archetype, setup.Owner, setup.Position))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bus := rules.NewEventBus()
	gs.Bus = bus
	e.bridgeNotifications(matchID, bus)

	m := &matchState{
		id:      matchID,
		state:   gs,
		bus:     bus,
		library: e.library,
		interp:  effects.NewInterpreter(e.library, e.logger, rng),
		history: NewHistory(),
		rng:     rng,
		log:     e.logger,
	}
	e.matches[matchID] = m

	gs.Publish(rules.NewEvent(rules.EventMatchStarted, 0, "", ""))
	m.beginTurn()

	e.logger.Info("match created",
		zap.String("match", matchID),
		zap.Int64("seed", seed))
	return nil
}

// defaultDeck deals every library card once, giving long games content to
// draw through.
func defaultDeck(library *content.Library) []string {
	return library.CardIDs()
}

// defaultDeployment places a warrior and an archer per player on opposing
// corners.
func defaultDeployment(gs *state.GameState) []ChampionSetup {
	corners := gs.Grid.Corners()
	return []ChampionSetup{
		{ID: "p1-warrior", Archetype: "Warrior", Owner: 1, Position: corners[0]},
		{ID: "p1-archer", Archetype: "Archer", Owner: 1, Position: corners[2]},
		{ID: "p2-warrior", Archetype: "Warrior", Owner: 2, Position: corners[3]},
		{ID: "p2-archer", Archetype: "Archer", Owner: 2, Position: corners[1]},
	}
}

func (e *ArenaEngine) match(matchID string) (*matchState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return m, nil
}

// RemoveMatch drops a finished match.
func (e *ArenaEngine) RemoveMatch(matchID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.matches, matchID)
}

// checkReady rejects commands while a window or suspension is pending.
func (m *matchState) checkReady() error {
	if m.window != nil {
		return ErrWindowOpen
	}
	if m.interp.Status() == effects.StatusAwaitingInput {
		return ErrAwaitingInput
	}
	return nil
}

func (m *matchState) gameResult(result CommandResult) CommandResult {
	result.GameOver = m.state.GameOver
	result.Winner = m.state.Winner
	return result
}

// MoveChampion walks a champion to a destination along a freshly computed
// path. A move may open an on-move response window after it lands.
func (e *ArenaEngine) MoveChampion(matchID string, player int, championID string, to board.Position) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	action := NewMoveAction(player, championID, to)
	if err := action.IsValid(m.state); err != nil {
		return failure(err)
	}

	before := m.snapshot()
	if err := action.Execute(m.state, m); err != nil {
		return failure(err)
	}
	m.history.Record(action, before, m.snapshot())
	m.publishActionPerformed(action)

	opened := m.openWindow(content.TriggerOnMove, map[string]string{"mover": championID}, player)
	return m.gameResult(CommandResult{Success: true, WindowOpened: opened})
}

// AttackChampion declares an attack. If the defender holds an eligible
// before-damage response, a window opens first and the attack resolves, and
// is re-validated, after it closes.
func (e *ArenaEngine) AttackChampion(matchID string, player int, attackerID, targetID string) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	action := NewAttackAction(player, attackerID, targetID)
	if err := action.IsValid(m.state); err != nil {
		return failure(err)
	}

	ctx := map[string]string{"source": attackerID, "target": targetID}
	if m.openWindow(content.TriggerBeforeDamage, ctx, player) {
		m.pendingAttack = action
		return m.gameResult(CommandResult{Success: true, WindowOpened: true})
	}
	return m.performAttack(action)
}

// performAttack executes a validated attack, records it, and opens the
// after-damage window when the match is still live.
func (m *matchState) performAttack(action *AttackAction) CommandResult {
	before := m.snapshot()
	if err := action.Execute(m.state, m); err != nil {
		return failure(err)
	}
	m.history.Record(action, before, m.snapshot())
	m.publishActionPerformed(action)

	result := CommandResult{
		Success:     true,
		DamageDealt: action.DamageDealt,
		Missed:      action.Missed,
		TargetDied:  action.TargetDied,
	}
	if m.state.EvaluateWinner() {
		m.publishGameEnded()
		return m.gameResult(result)
	}
	if action.DamageDealt > 0 {
		ctx := map[string]string{"source": action.attackerID, "target": action.targetID}
		result.WindowOpened = m.openWindow(content.TriggerAfterDamage, ctx, action.player)
	}
	return m.gameResult(result)
}

// CastCard pays for and resolves a card. The opponent may intercept with an
// on-cast response; resolution may also suspend on player input.
func (e *ArenaEngine) CastCard(matchID string, player int, cardID, casterID string, targetIDs []string, position *board.Position) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	action := NewCastAction(player, cardID, casterID, targetIDs, position)
	if err := action.isValid(m.state, m); err != nil {
		return failure(err)
	}

	ctx := map[string]string{"source": casterID, "actor": casterID, "card": cardID}
	if m.openWindow(content.TriggerOnCast, ctx, player) {
		m.pendingCast = action
		return m.gameResult(CommandResult{Success: true, WindowOpened: true})
	}
	return m.performCast(action)
}

// performCast executes a validated cast. Suspended resolutions defer their
// history entry until the final resume call completes them.
func (m *matchState) performCast(action *CastAction) CommandResult {
	before := m.snapshot()
	if err := action.Execute(m.state, m); err != nil {
		return failure(err)
	}

	if action.Result != nil && action.Result.Suspended {
		m.suspendedCast = action
		m.suspendedBefore = before
		return m.gameResult(CommandResult{
			Success:   true,
			Suspended: true,
			Request:   action.Result.Request,
		})
	}
	return m.completeCast(action, before)
}

// completeCast records the finished cast and runs its follow-up windows.
func (m *matchState) completeCast(action *CastAction, before *state.GameState) CommandResult {
	m.history.Record(action, before, m.snapshot())
	m.publishActionPerformed(action)

	result := CommandResult{Success: true}
	if action.Result != nil {
		result.DamageDealt = action.Result.DamageDealt
		result.HealingDone = action.Result.HealingDone
	}
	if m.state.EvaluateWinner() {
		m.publishGameEnded()
		return m.gameResult(result)
	}
	if result.HealingDone > 0 {
		ctx := map[string]string{"source": action.casterID, "actor": action.casterID}
		result.WindowOpened = m.openWindow(content.TriggerOnHeal, ctx, action.player)
	}
	return m.gameResult(result)
}

// resumeOutcome folds an interpreter resume result back into the suspended
// cast bookkeeping.
func (m *matchState) resumeOutcome(result *effects.Result, err error) CommandResult {
	if err != nil {
		return failure(err)
	}
	if result.Suspended {
		return m.gameResult(CommandResult{Success: true, Suspended: true, Request: result.Request})
	}
	action := m.suspendedCast
	before := m.suspendedBefore
	m.suspendedCast = nil
	m.suspendedBefore = nil
	if action == nil {
		// Resolution without a suspended cast: a response or equipment
		// effect resumed; nothing to record.
		return m.gameResult(CommandResult{Success: true})
	}
	action.Result = result
	return m.completeCast(action, before)
}

// ProvideXValue answers a pending X-value request, spending the extra mana.
func (e *ArenaEngine) ProvideXValue(matchID string, player, x int) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.interp.PendingRequest()
	if !ok {
		return failure(effects.ErrNoPendingInput)
	}
	if request.Player != player {
		return failure(ErrNotPriority)
	}
	if !m.state.Player(player).SpendMana(x) {
		return failure(ErrNotEnoughMana)
	}
	result, err := m.interp.ResumeXValue(m.state, x)
	if err != nil {
		// The mana was provisionally spent; give it back on a bad value.
		m.state.Player(player).Mana += x
		return failure(err)
	}
	return m.resumeOutcome(result, nil)
}

// ProvideChoice answers a pending choice request.
func (e *ArenaEngine) ProvideChoice(matchID string, player, index int) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if request, ok := m.interp.PendingRequest(); !ok {
		return failure(effects.ErrNoPendingInput)
	} else if request.Player != player {
		return failure(ErrNotPriority)
	}
	return m.resumeOutcome(m.interp.ResumeChoice(m.state, index))
}

// ProvideDestination answers a pending destination request.
func (e *ArenaEngine) ProvideDestination(matchID string, player int, dest board.Position) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if request, ok := m.interp.PendingRequest(); !ok {
		return failure(effects.ErrNoPendingInput)
	} else if request.Player != player {
		return failure(ErrNotPriority)
	}
	return m.resumeOutcome(m.interp.ResumeDestination(m.state, dest))
}

// ProvidePosition answers a pending position request.
func (e *ArenaEngine) ProvidePosition(matchID string, player int, pos board.Position) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if request, ok := m.interp.PendingRequest(); !ok {
		return failure(effects.ErrNoPendingInput)
	} else if request.Player != player {
		return failure(ErrNotPriority)
	}
	return m.resumeOutcome(m.interp.ResumePosition(m.state, pos))
}

// EndTurn requests the end of the active player's turn, which an end-turn
// response window may interrupt.
func (e *ArenaEngine) EndTurn(matchID string, player int) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	if err := m.requestEndTurn(player); err != nil {
		return failure(err)
	}
	return m.gameResult(CommandResult{Success: true, WindowOpened: m.window != nil})
}

// PlayResponse queues a response card in the open window for the priority
// player.
func (e *ArenaEngine) PlayResponse(matchID string, player int, cardID, casterID string) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.playResponse(player, cardID, casterID); err != nil {
		return failure(err)
	}
	return m.gameResult(CommandResult{Success: true})
}

// PassResponse passes priority. The second consecutive pass resolves the
// stack, closes the window, and continues the interrupted action.
func (e *ArenaEngine) PassResponse(matchID string, player int) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	resolved, err := m.passResponse(player)
	if err != nil {
		return failure(err)
	}
	if !resolved {
		return m.gameResult(CommandResult{Success: true})
	}
	return m.continueAfterWindow()
}

// continueAfterWindow re-validates and finishes whatever action the closed
// window interrupted. An invalidated attack or cast still consumes its turn
// resource.
func (m *matchState) continueAfterWindow() CommandResult {
	switch {
	case m.pendingAttack != nil:
		action := m.pendingAttack
		m.pendingAttack = nil
		if err := action.IsValid(m.state); err != nil {
			// Dead target, out-of-range, or similar: the attack fizzles
			// but the attack for the turn is spent.
			before := m.snapshot()
			action.ConsumeResource(m.state)
			action.Missed = true
			m.history.Record(action, before, m.snapshot())
			m.publishActionPerformed(action)
			// A response may have eliminated the last champion.
			if m.state.EvaluateWinner() {
				m.publishGameEnded()
			}
			return m.gameResult(CommandResult{Success: true, Missed: true})
		}
		return m.performAttack(action)

	case m.pendingCast != nil:
		action := m.pendingCast
		m.pendingCast = nil
		if err := action.isValid(m.state, m); err != nil {
			// The cast fizzles but the card and mana are still spent.
			before := m.snapshot()
			if card, ok := m.library.Card(action.cardID); ok {
				player := m.state.Player(action.player)
				cost := card.Cost
				if cost > player.UsableMana() {
					cost = player.UsableMana()
				}
				player.SpendMana(cost)
				player.DiscardFromHand(action.cardID)
			}
			m.history.Record(action, before, m.snapshot())
			m.publishActionPerformed(action)
			if m.state.EvaluateWinner() {
				m.publishGameEnded()
			}
			return m.gameResult(CommandResult{Success: true, Missed: true})
		}
		return m.performCast(action)

	case m.pendingEnd:
		m.pendingEnd = false
		m.finishTurn()
		return m.gameResult(CommandResult{Success: true})

	default:
		if m.state.EvaluateWinner() {
			m.publishGameEnded()
		}
		return m.gameResult(CommandResult{Success: true})
	}
}

// UndoLastAction reverses the most recent action by restoring its
// pre-execute snapshot. Undo is rejected while a window or suspension is
// open.
func (e *ArenaEngine) UndoLastAction(matchID string, player int) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	snap, action, err := m.history.Undo()
	if err != nil {
		return failure(err)
	}
	m.restore(snap)

	event := rules.NewEvent(rules.EventActionUndone, player, "", "")
	event.Description = action.Describe()
	m.state.Publish(event)
	return m.gameResult(CommandResult{Success: true})
}

// RedoAction reapplies the most recently undone action.
func (e *ArenaEngine) RedoAction(matchID string, player int) CommandResult {
	m, err := e.match(matchID)
	if err != nil {
		return failure(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkReady(); err != nil {
		return failure(err)
	}
	snap, action, err := m.history.Redo()
	if err != nil {
		return failure(err)
	}
	m.restore(snap)

	event := rules.NewEvent(rules.EventActionRedone, player, "", "")
	event.Description = action.Describe()
	m.state.Publish(event)
	return m.gameResult(CommandResult{Success: true})
}

func (m *matchState) publishActionPerformed(action Action) {
	event := rules.NewEvent(rules.EventActionPerformed, action.Player(), "", "")
	event.Description = action.Describe()
	m.state.Publish(event)
}

// GetValidMoves lists the cells the champion can still reach this turn.
func (e *ArenaEngine) GetValidMoves(matchID, championID string) ([]board.Position, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	champ, ok := m.state.Champion(championID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChampion, championID)
	}
	if !champ.IsAlive() || champ.Debuffs.Has(buffs.Stun) {
		return nil, nil
	}
	pf := board.NewPathfinder(m.state.Grid, m.state.OccupiedCells(champ.ID))
	return pf.ReachableTiles(champ.Position, champ.MovementRemaining(), champ.MoveProfile()), nil
}

// GetValidAttackTargets lists the champion ids a champion may attack now.
// An attack-heals buff flips the list to allies.
func (e *ArenaEngine) GetValidAttackTargets(matchID, championID string) ([]string, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	champ, ok := m.state.Champion(championID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChampion, championID)
	}
	if !champ.IsAlive() {
		return nil, nil
	}
	if champ.HasAttacked && !champ.Buffs.Has(buffs.ExtraAttack) {
		return nil, nil
	}

	wantOwner := rules.Opponent(champ.Owner)
	if champ.Buffs.Has(buffs.AttackHeals) {
		wantOwner = champ.Owner
	}
	var out []string
	for _, candidate := range m.state.LivingChampionsOf(wantOwner) {
		if candidate.ID == champ.ID {
			continue
		}
		if board.CanAttack(champ.Position, candidate.Position, champ.CurrentRange()) {
			out = append(out, candidate.ID)
		}
	}
	return out, nil
}

// GetPlayableCards lists, in hand order, the cards the player could legally
// start playing right now: affordable spells and equipment during their
// action phase, eligible responses while they hold priority in a window.
func (e *ArenaEngine) GetPlayableCards(matchID string, player int) ([]string, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.window != nil {
		if m.window.Priority != player {
			return nil, nil
		}
		return m.eligibleResponses(player, m.window.Trigger, m.window.Context), nil
	}
	if m.state.ActivePlayer != player || m.state.Phase != state.PhaseAction {
		return nil, nil
	}

	ps := m.state.Player(player)
	var out []string
	for _, cardID := range ps.Hand {
		card, ok := m.library.Card(cardID)
		if !ok || card.Type == content.CardTypeResponse {
			continue
		}
		if card.Cost <= ps.UsableMana() {
			out = append(out, cardID)
		}
	}
	return out, nil
}

// GetStateCopy returns a fully independent deep copy of the match state for
// lookahead search. Mutating it never touches the live match.
func (e *ArenaEngine) GetStateCopy(matchID string) (*state.GameState, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), nil
}

// PendingInput reports the input request a suspended resolution waits on.
func (e *ArenaEngine) PendingInput(matchID string) (effects.InputRequest, bool) {
	m, err := e.match(matchID)
	if err != nil {
		return effects.InputRequest{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interp.PendingRequest()
}

// ResponseWindowView describes an open response window to external callers.
type ResponseWindowView struct {
	Open     bool
	Trigger  string
	Priority int
	Passes   int
	Stack    []string
}

// GetResponseWindow reports the open window, if any.
func (e *ArenaEngine) GetResponseWindow(matchID string) (ResponseWindowView, error) {
	m, err := e.match(matchID)
	if err != nil {
		return ResponseWindowView{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.window == nil {
		return ResponseWindowView{}, nil
	}
	view := ResponseWindowView{
		Open:     true,
		Trigger:  string(m.window.Trigger),
		Priority: m.window.Priority,
		Passes:   m.window.Passes(),
	}
	for _, entry := range m.state.Stack.List() {
		view.Stack = append(view.Stack, entry.CardID)
	}
	return view, nil
}

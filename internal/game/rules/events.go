package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of an engine event. Events are emitted for
// external observation (combat log, animation, statistics) and never feed
// back into resolution.
type EventType string

const (
	// Turn flow events
	EventTurnStarted  EventType = "TURN_STARTED"
	EventTurnEnded    EventType = "TURN_ENDED"
	EventPhaseChanged EventType = "PHASE_CHANGED"

	// Action events
	EventActionPerformed EventType = "ACTION_PERFORMED"
	EventActionUndone    EventType = "ACTION_UNDONE"
	EventActionRedone    EventType = "ACTION_REDONE"

	// Champion events
	EventChampionMoved EventType = "CHAMPION_MOVED"
	EventChampionDied  EventType = "CHAMPION_DIED"
	EventDamageDealt   EventType = "DAMAGE_DEALT"
	EventDamageNegated EventType = "DAMAGE_NEGATED"
	EventHealingDone   EventType = "HEALING_DONE"
	EventBuffApplied   EventType = "BUFF_APPLIED"
	EventBuffExpired   EventType = "BUFF_EXPIRED"
	EventDebuffApplied EventType = "DEBUFF_APPLIED"
	EventDebuffExpired EventType = "DEBUFF_EXPIRED"

	// Card events
	EventCardDrawn     EventType = "CARD_DRAWN"
	EventCardDiscarded EventType = "CARD_DISCARDED"
	EventCardCast      EventType = "CARD_CAST"
	EventEquipmentUsed EventType = "EQUIPMENT_USED"
	EventManaChanged   EventType = "MANA_CHANGED"

	// Response protocol events
	EventResponseWindowOpened EventType = "RESPONSE_WINDOW_OPENED"
	EventResponseWindowClosed EventType = "RESPONSE_WINDOW_CLOSED"
	EventResponsePlayed       EventType = "RESPONSE_PLAYED"
	EventResponsePassed       EventType = "RESPONSE_PASSED"
	EventResponseResolved     EventType = "RESPONSE_RESOLVED"

	// Interpreter suspension events
	EventInputRequested EventType = "INPUT_REQUESTED"
	EventInputResolved  EventType = "INPUT_RESOLVED"

	// Match events
	EventMatchStarted EventType = "MATCH_STARTED"
	EventGameEnded    EventType = "GAME_ENDED"
)

// Event represents a state change that external observers may react to.
type Event struct {
	Type EventType
	ID   string
	// Player is the acting player (1 or 2), 0 when not player-scoped.
	Player int
	// SourceID and TargetID identify champions or cards involved.
	SourceID    string
	TargetID    string
	CardID      string
	Amount      int
	Data        string
	Timestamp   time.Time
	Metadata    map[string]string
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	if typed, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typed {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, player int, sourceID, targetID string) Event {
	return Event{
		Type:      eventType,
		Player:    player,
		SourceID:  sourceID,
		TargetID:  targetID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

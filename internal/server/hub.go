// Package server exposes the arena engine over a websocket gateway. Clients
// send JSON commands and receive command results plus pushed game
// notifications for the matches they joined.
package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/gnoobs75/Arena3D-sub000/internal/game"
)

// Hub tracks connected clients and fans engine notifications out to the
// clients watching each match.
type Hub struct {
	engine *game.ArenaEngine
	log    *zap.Logger

	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub wires a hub to an engine. The hub installs itself as the engine's
// notification handler; notifications reach every client joined to the
// originating match.
func NewHub(engine *game.ArenaEngine, log *zap.Logger) *Hub {
	h := &Hub{
		engine:     engine,
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
	engine.SetNotificationHandler(h.handleNotification)
	return h
}

// Run processes client registration until the context backing the listener
// shuts the channels down. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Info("client connected", zap.String("remote", client.remote))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Info("client disconnected", zap.String("remote", client.remote))
		}
	}
}

func (h *Hub) handleNotification(n game.GameNotification) {
	payload, err := json.Marshal(ServerMessage{
		Type:    "notification",
		MatchID: n.MatchID,
		Event:   &n,
	})
	if err != nil {
		h.log.Error("failed to encode notification", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.matchID != n.MatchID {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer: drop the notification rather than block
			// the engine's emit goroutine.
			h.log.Warn("dropping notification for slow client",
				zap.String("remote", client.remote))
		}
	}
}

// broadcastState pushes a fresh view of the match to every joined client.
func (h *Hub) broadcastState(matchID string) {
	view, err := h.engine.GetGameState(matchID)
	if err != nil {
		return
	}
	payload, err := json.Marshal(ServerMessage{
		Type:    "state",
		MatchID: matchID,
		State:   &view,
	})
	if err != nil {
		h.log.Error("failed to encode state broadcast", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.matchID != matchID {
			continue
		}
		select {
		case client.send <- payload:
		default:
		}
	}
}

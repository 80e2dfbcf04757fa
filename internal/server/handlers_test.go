package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gnoobs75/Arena3D-sub000/internal/game"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
)

// testClient builds a hub and a directly-wired client, bypassing the
// websocket transport.
func testClient(t *testing.T) (*Hub, *Client) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	engine := game.NewArenaEngine(logger, nil)
	hub := NewHub(engine, logger)

	client := &Client{hub: hub, send: make(chan []byte, 16), remote: "test"}
	hub.clients[client] = true
	return hub, client
}

// recv pops the next queued reply, skipping asynchronously pushed
// notification frames.
func recv(t *testing.T, c *Client) ServerMessage {
	t.Helper()
	for i := 0; i < 32; i++ {
		select {
		case payload := <-c.send:
			var msg ServerMessage
			require.NoError(t, json.Unmarshal(payload, &msg))
			if msg.Type == "notification" {
				continue
			}
			return msg
		default:
			t.Fatal("no message queued for client")
		}
	}
	t.Fatal("only notifications queued for client")
	return ServerMessage{}
}

// drainReplies asserts that nothing but notification frames is queued.
func drainReplies(t *testing.T, c *Client) {
	t.Helper()
	for {
		select {
		case payload := <-c.send:
			var msg ServerMessage
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, "notification", msg.Type)
		default:
			return
		}
	}
}

func TestCreateMatchRepliesWithState(t *testing.T) {
	hub, client := testClient(t)

	hub.handleCommand(client, ClientCommand{Type: "create_match", RequestID: "r1", MatchID: "m1", Player: 1})

	msg := recv(t, client)
	assert.Equal(t, "state", msg.Type)
	assert.Equal(t, "r1", msg.RequestID)
	require.NotNil(t, msg.State)
	assert.Equal(t, "m1", msg.State.MatchID)
	assert.Equal(t, 1, msg.State.ActivePlayer)
	assert.Equal(t, "m1", client.matchID)
}

func TestDuplicateMatchIDRejected(t *testing.T) {
	hub, client := testClient(t)

	hub.handleCommand(client, ClientCommand{Type: "create_match", MatchID: "m1"})
	recv(t, client)

	hub.handleCommand(client, ClientCommand{Type: "create_match", RequestID: "r2", MatchID: "m1"})
	msg := recv(t, client)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "already exists")
}

func TestCommandResultAndBroadcast(t *testing.T) {
	hub, client := testClient(t)
	hub.handleCommand(client, ClientCommand{Type: "create_match", MatchID: "m1", Player: 1})
	recv(t, client)

	// Watcher joined to the same match sees the state broadcast.
	watcher := &Client{hub: hub, send: make(chan []byte, 16), remote: "watcher", matchID: "m1"}
	hub.clients[watcher] = true

	hub.handleCommand(client, ClientCommand{
		Type: "move", RequestID: "r3", MatchID: "m1", Player: 1,
		ChampionID: "p1-warrior", Position: &board.Position{X: 2, Y: 1},
	})

	msg := recv(t, client)
	assert.Equal(t, "result", msg.Type)
	require.NotNil(t, msg.Result)
	assert.True(t, msg.Result.Success)

	broadcast := recv(t, watcher)
	assert.Equal(t, "state", broadcast.Type)
	require.NotNil(t, broadcast.State)
}

func TestFailedCommandDoesNotBroadcast(t *testing.T) {
	hub, client := testClient(t)
	hub.handleCommand(client, ClientCommand{Type: "create_match", MatchID: "m1", Player: 1})
	recv(t, client)

	hub.handleCommand(client, ClientCommand{Type: "end_turn", RequestID: "r4", MatchID: "m1", Player: 2})

	msg := recv(t, client)
	require.NotNil(t, msg.Result)
	assert.False(t, msg.Result.Success)
	assert.Contains(t, msg.Result.Error, "not your turn")
	drainReplies(t, client)
}

func TestMoveWithoutPositionRejected(t *testing.T) {
	hub, client := testClient(t)
	hub.handleCommand(client, ClientCommand{Type: "create_match", MatchID: "m1", Player: 1})
	recv(t, client)

	hub.handleCommand(client, ClientCommand{Type: "move", RequestID: "r5", MatchID: "m1", Player: 1, ChampionID: "p1-warrior"})
	msg := recv(t, client)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "position")
}

func TestQueryCommands(t *testing.T) {
	hub, client := testClient(t)
	hub.handleCommand(client, ClientCommand{Type: "create_match", MatchID: "m1", Player: 1})
	recv(t, client)

	hub.handleCommand(client, ClientCommand{Type: "valid_moves", MatchID: "m1", ChampionID: "p1-warrior"})
	msg := recv(t, client)
	assert.Equal(t, "cells", msg.Type)
	assert.NotEmpty(t, msg.Cells)

	hub.handleCommand(client, ClientCommand{Type: "playable_cards", MatchID: "m1", Player: 1})
	msg = recv(t, client)
	assert.Equal(t, "cards", msg.Type)
}

func TestUnknownCommandType(t *testing.T) {
	hub, client := testClient(t)
	hub.handleCommand(client, ClientCommand{Type: "launch_missiles", RequestID: "r6"})
	msg := recv(t, client)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "unknown command type")
}

func TestNotificationRouting(t *testing.T) {
	hub, client := testClient(t)
	client.matchID = "m1"

	other := &Client{hub: hub, send: make(chan []byte, 16), remote: "other", matchID: "m2"}
	hub.clients[other] = true

	hub.handleNotification(game.GameNotification{Type: "turn_started", MatchID: "m1", Player: 1})

	var msg ServerMessage
	select {
	case payload := <-client.send:
		require.NoError(t, json.Unmarshal(payload, &msg))
	default:
		t.Fatal("no notification queued for client")
	}
	assert.Equal(t, "notification", msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, "turn_started", msg.Event.Type)
	assert.Empty(t, other.send)
}

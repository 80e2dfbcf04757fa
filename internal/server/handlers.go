package server

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnoobs75/Arena3D-sub000/internal/game"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
)

// ClientCommand is the JSON envelope clients send. Fields beyond Type are
// read per command; unknown fields are ignored.
type ClientCommand struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	MatchID   string `json:"match_id,omitempty"`
	Player    int    `json:"player,omitempty"`

	ChampionID string   `json:"champion_id,omitempty"`
	TargetID   string   `json:"target_id,omitempty"`
	CardID     string   `json:"card_id,omitempty"`
	Targets    []string `json:"targets,omitempty"`

	Position *board.Position `json:"position,omitempty"`
	Value    int             `json:"value,omitempty"`
	Seed     int64           `json:"seed,omitempty"`
}

// ServerMessage is the JSON envelope the gateway sends back: command
// results, state snapshots, pushed notifications, and errors.
type ServerMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	MatchID   string `json:"match_id,omitempty"`
	Error     string `json:"error,omitempty"`

	Result  *game.CommandResult   `json:"result,omitempty"`
	State   *game.MatchView       `json:"state,omitempty"`
	Event   *game.GameNotification `json:"event,omitempty"`
	Strings []string              `json:"strings,omitempty"`
	Cells   []board.Position      `json:"cells,omitempty"`
}

// handleCommand dispatches one decoded client command against the engine and
// replies on the issuing client. State-changing commands also broadcast a
// fresh view to everyone in the match.
func (h *Hub) handleCommand(c *Client, cmd ClientCommand) {
	h.log.Debug("command received",
		zap.String("type", cmd.Type),
		zap.String("match", cmd.MatchID),
		zap.Int("player", cmd.Player),
		zap.String("remote", c.remote))

	switch cmd.Type {
	case "create_match":
		if err := h.engine.CreateMatch(cmd.MatchID, game.MatchConfig{Seed: cmd.Seed}); err != nil {
			c.sendError(cmd.RequestID, err.Error())
			return
		}
		c.matchID = cmd.MatchID
		c.player = cmd.Player
		h.replyState(c, cmd)

	case "join_match":
		if _, err := h.engine.GetGameState(cmd.MatchID); err != nil {
			c.sendError(cmd.RequestID, err.Error())
			return
		}
		c.matchID = cmd.MatchID
		c.player = cmd.Player
		h.replyState(c, cmd)

	case "move":
		if cmd.Position == nil {
			c.sendError(cmd.RequestID, "move requires a position")
			return
		}
		h.replyResult(c, cmd, h.engine.MoveChampion(cmd.MatchID, cmd.Player, cmd.ChampionID, *cmd.Position))

	case "attack":
		h.replyResult(c, cmd, h.engine.AttackChampion(cmd.MatchID, cmd.Player, cmd.ChampionID, cmd.TargetID))

	case "cast":
		h.replyResult(c, cmd, h.engine.CastCard(cmd.MatchID, cmd.Player, cmd.CardID, cmd.ChampionID, cmd.Targets, cmd.Position))

	case "use_equipment":
		h.replyResult(c, cmd, h.engine.UseEquipment(cmd.MatchID, cmd.Player, cmd.ChampionID, cmd.CardID))

	case "end_turn":
		h.replyResult(c, cmd, h.engine.EndTurn(cmd.MatchID, cmd.Player))

	case "play_response":
		h.replyResult(c, cmd, h.engine.PlayResponse(cmd.MatchID, cmd.Player, cmd.CardID, cmd.ChampionID))

	case "pass_response":
		h.replyResult(c, cmd, h.engine.PassResponse(cmd.MatchID, cmd.Player))

	case "provide_x":
		h.replyResult(c, cmd, h.engine.ProvideXValue(cmd.MatchID, cmd.Player, cmd.Value))

	case "provide_choice":
		h.replyResult(c, cmd, h.engine.ProvideChoice(cmd.MatchID, cmd.Player, cmd.Value))

	case "provide_destination":
		if cmd.Position == nil {
			c.sendError(cmd.RequestID, "provide_destination requires a position")
			return
		}
		h.replyResult(c, cmd, h.engine.ProvideDestination(cmd.MatchID, cmd.Player, *cmd.Position))

	case "provide_position":
		if cmd.Position == nil {
			c.sendError(cmd.RequestID, "provide_position requires a position")
			return
		}
		h.replyResult(c, cmd, h.engine.ProvidePosition(cmd.MatchID, cmd.Player, *cmd.Position))

	case "undo":
		h.replyResult(c, cmd, h.engine.UndoLastAction(cmd.MatchID, cmd.Player))

	case "redo":
		h.replyResult(c, cmd, h.engine.RedoAction(cmd.MatchID, cmd.Player))

	case "get_state":
		h.replyState(c, cmd)

	case "valid_moves":
		cells, err := h.engine.GetValidMoves(cmd.MatchID, cmd.ChampionID)
		if err != nil {
			c.sendError(cmd.RequestID, err.Error())
			return
		}
		c.sendMessage(ServerMessage{Type: "cells", RequestID: cmd.RequestID, MatchID: cmd.MatchID, Cells: cells})

	case "attack_targets":
		targets, err := h.engine.GetValidAttackTargets(cmd.MatchID, cmd.ChampionID)
		if err != nil {
			c.sendError(cmd.RequestID, err.Error())
			return
		}
		c.sendMessage(ServerMessage{Type: "targets", RequestID: cmd.RequestID, MatchID: cmd.MatchID, Strings: targets})

	case "playable_cards":
		cards, err := h.engine.GetPlayableCards(cmd.MatchID, cmd.Player)
		if err != nil {
			c.sendError(cmd.RequestID, err.Error())
			return
		}
		c.sendMessage(ServerMessage{Type: "cards", RequestID: cmd.RequestID, MatchID: cmd.MatchID, Strings: cards})

	default:
		c.sendError(cmd.RequestID, fmt.Sprintf("unknown command type: %s", cmd.Type))
	}
}

// replyResult sends the command outcome to the caller, then broadcasts the
// updated match view when the command changed state.
func (h *Hub) replyResult(c *Client, cmd ClientCommand, result game.CommandResult) {
	c.sendMessage(ServerMessage{
		Type:      "result",
		RequestID: cmd.RequestID,
		MatchID:   cmd.MatchID,
		Result:    &result,
	})
	if result.Success {
		h.broadcastState(cmd.MatchID)
	}
}

func (h *Hub) replyState(c *Client, cmd ClientCommand) {
	view, err := h.engine.GetGameState(cmd.MatchID)
	if err != nil {
		c.sendError(cmd.RequestID, err.Error())
		return
	}
	c.sendMessage(ServerMessage{
		Type:      "state",
		RequestID: cmd.RequestID,
		MatchID:   cmd.MatchID,
		State:     &view,
	})
}

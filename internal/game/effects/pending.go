package effects

import (
	"github.com/gnoobs75/Arena3D-sub000/internal/game/board"
	"github.com/gnoobs75/Arena3D-sub000/internal/game/content"
)

// Status tracks where the interpreter is in a card resolution.
type Status string

const (
	// StatusIdle means no resolution is in flight.
	StatusIdle Status = "IDLE"
	// StatusAwaitingInput means resolution is suspended on player input.
	StatusAwaitingInput Status = "AWAITING_INPUT"
	// StatusResolved means the last resolution ran to completion.
	StatusResolved Status = "RESOLVED"
)

// InputKind names the four suspension points of card resolution.
type InputKind string

const (
	// InputDestination asks the controlling player where a champion moves.
	InputDestination InputKind = "DESTINATION"
	// InputXValue asks how much extra mana to sink into an X-cost card.
	InputXValue InputKind = "X_VALUE"
	// InputChoice asks which of several effect alternatives to apply.
	InputChoice InputKind = "CHOICE"
	// InputPosition asks for a board cell to target.
	InputPosition InputKind = "POSITION"
)

// InputRequest describes what the interpreter is waiting for. It is exposed
// to the boundary so UI/AI callers know which resume call to make.
type InputRequest struct {
	Kind     InputKind
	CardID   string
	CasterID string
	Player   int

	// ChampionID is set for destination requests: the champion to move.
	ChampionID string
	// Reachable lists the legal destinations for a destination request.
	Reachable []board.Position
	// MaxX bounds an X-value request by the caster's remaining mana.
	MaxX int
	// Options lists the labels of a choice request.
	Options []string
}

// pendingCast is the interpreter's saved continuation: the cast context,
// the effects not yet applied, and the partial result, so that a resume
// call can pick up exactly where resolution suspended.
type pendingCast struct {
	ctx     *castContext
	queue   []content.Effect
	result  *Result
	request InputRequest

	// moveQueue holds champion ids still awaiting a destination for an
	// immediate-move effect, in resolution order.
	moveQueue []string
	moveEff   content.Effect

	// choiceEffect is the suspended choice effect whose option the player
	// has yet to pick.
	choiceEffect *content.Effect
}

package rules

import "github.com/gnoobs75/Arena3D-sub000/internal/game/content"

// Opponent returns the other player of a 1|2 pair.
func Opponent(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}

// ResponseWindow is one open interrupt window: the period during which the
// priority player may play response cards before a pending event resolves.
type ResponseWindow struct {
	Trigger content.Trigger
	// Context is the triggering event's context, keyed by well-known names
	// ("source", "target", "amount", ...).
	Context map[string]string
	// TriggeringPlayer caused the window to open.
	TriggeringPlayer int
	// Priority is the player currently entitled to act.
	Priority int
	// passes counts consecutive passes; two in a row resolve the window.
	passes int
}

// NewResponseWindow opens a window with priority handed to the responder.
func NewResponseWindow(trigger content.Trigger, context map[string]string, triggeringPlayer, responder int) *ResponseWindow {
	ctx := make(map[string]string, len(context))
	for k, v := range context {
		ctx[k] = v
	}
	return &ResponseWindow{
		Trigger:          trigger,
		Context:          ctx,
		TriggeringPlayer: triggeringPlayer,
		Priority:         responder,
	}
}

// RecordPlay notes that the priority player added a response: the pass
// counter resets and priority flips to the other player.
func (w *ResponseWindow) RecordPlay() {
	w.passes = 0
	w.Priority = Opponent(w.Priority)
}

// RecordPass notes a pass by the priority player and flips priority. Returns
// true when this was the second consecutive pass and the window must resolve.
func (w *ResponseWindow) RecordPass() bool {
	w.passes++
	if w.passes >= 2 {
		return true
	}
	w.Priority = Opponent(w.Priority)
	return false
}

// Passes returns the current consecutive-pass count.
func (w *ResponseWindow) Passes() int {
	return w.passes
}

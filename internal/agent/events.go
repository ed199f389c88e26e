// Package agent is the bridge between the canvas UI and the Anthropic API:
// it runs the conversation turn loop, exposes the canvas tool surface to the
// model, and translates tool invocations into typed events the UI applies on
// its own update loop.
package agent

import "canvas-cli/internal/canvas"

// Event is one bridge-to-UI notification. The UI drains the bridge's event
// channel inside its update loop, so canvas mutations stay serialized.
type Event interface{ isEvent() }

// CardEvent asks the canvas to upsert a dynamic card.
type CardEvent struct {
	ID           string
	Title        string
	Content      []any
	Design       map[string]any
	ClearHistory bool
	Size         *canvas.Size
}

// DeleteCardEvent asks the canvas to close a widget, by id or fuzzy title.
type DeleteCardEvent struct {
	ID    string
	Title string
}

// ThemeEvent changes the process-wide default theme color.
type ThemeEvent struct {
	Color string
}

// TextEvent carries assistant prose (shown in the status strip, logged to
// the transcript).
type TextEvent struct {
	Text string
}

// ErrorEvent surfaces a failed turn. The canvas keeps running.
type ErrorEvent struct {
	Err error
}

// TurnDoneEvent marks the end of a turn; the UI uses it to stop the busy
// indicator.
type TurnDoneEvent struct{}

func (CardEvent) isEvent()       {}
func (DeleteCardEvent) isEvent() {}
func (ThemeEvent) isEvent()      {}
func (TextEvent) isEvent()       {}
func (ErrorEvent) isEvent()      {}
func (TurnDoneEvent) isEvent()   {}

// Submission is the outbound interaction event emitted when a form block is
// submitted inside any card.
type Submission struct {
	Action    string
	Payload   map[string]any
	CardTitle string
}

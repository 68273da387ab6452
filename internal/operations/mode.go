package operations

import "github.com/julianstephens/botroom/internal/models"

// Mode is the controller's composition state. Exactly one of Idle, Adding
// or Editing is active; the unexported marker keeps the set closed.
type Mode interface {
	isMode()
	String() string
}

// Idle means nothing is being composed.
type Idle struct{}

// Adding holds the draft of a bot that does not exist yet.
type Adding struct {
	Draft models.BotDraft
}

// Editing holds an independent working copy of an existing bot.
type Editing struct {
	WorkingCopy models.BotRecord
}

func (Idle) isMode()    {}
func (Adding) isMode()  {}
func (Editing) isMode() {}

func (Idle) String() string    { return "idle" }
func (Adding) String() string  { return "adding" }
func (Editing) String() string { return "editing" }

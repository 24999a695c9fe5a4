package event

import (
	"github.com/lixenwraith/skinvm/core"
)

// Event is one routed notification: a lowercase name, its target and ordered arguments
type Event struct {
	Name   string
	Target Target
	Args   []core.Value
}

// Target is anything able to carry per-object hooks
// Skin objects implement it by embedding a Hooks table
type Target interface {
	Hooks() *Hooks
}

// Handler processes a dispatched event
// Called synchronously inside Dispatch
type Handler interface {
	HandleEvent(ev Event)
}

// HandlerFunc adapts a plain function to Handler
type HandlerFunc func(ev Event)

// HandleEvent calls f(ev)
func (f HandlerFunc) HandleEvent(ev Event) { f(ev) }

// Listener observes named events on every target
// The dispatcher uses EventNames for registration
type Listener interface {
	Handler

	// EventNames returns the event names this listener processes
	EventNames() []string
}

package event

// Hooks is a per-object table of event handlers keyed by canonical name
// Zero value is ready to use; not safe for concurrent mutation
type Hooks struct {
	handlers map[string][]Handler
}

// On registers a handler for name; multiple handlers run in registration order
func (h *Hooks) On(name string, handler Handler) {
	if handler == nil {
		return
	}
	if h.handlers == nil {
		h.handlers = make(map[string][]Handler)
	}
	key := Canonical(name)
	h.handlers[key] = append(h.handlers[key], handler)
}

// OnFunc registers a plain function handler
func (h *Hooks) OnFunc(name string, fn func(ev Event)) {
	if fn == nil {
		return
	}
	h.On(name, HandlerFunc(fn))
}

// Off removes every handler for name
func (h *Hooks) Off(name string) {
	delete(h.handlers, Canonical(name))
}

// Lookup returns the handlers registered for an already canonical name
func (h *Hooks) Lookup(name string) []Handler {
	if h == nil {
		return nil
	}
	return h.handlers[name]
}

// Has reports whether any handler is registered for name
func (h *Hooks) Has(name string) bool {
	return len(h.Lookup(Canonical(name))) > 0
}

// Clear drops all handlers, used when the owning object is disposed
func (h *Hooks) Clear() {
	h.handlers = nil
}

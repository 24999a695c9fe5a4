package event

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/status"
)

// Dispatcher routes named events to a target's hooks and to global listeners
//
// Architecture:
//   - Synchronous, single-threaded: handlers run inside Dispatch on the caller's goroutine
//   - No queue: a handler that dispatches again nests (recursion bounded only by caller discipline)
//   - Target hooks run first in registration order, then listeners in registration order
//   - Holds no object references between calls; per-object state lives in each target's Hooks
//   - Unknown event names are a no-op
type Dispatcher struct {
	listeners map[string][]Listener
	log       *logrus.Entry
	depth     int

	// Optional counters, nil until SetMetrics
	total *atomic.Int64
	last  *status.Label
}

// NewDispatcher creates a dispatcher logging through log (nil uses a discarding entry)
func NewDispatcher(log *logrus.Entry) *Dispatcher {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Dispatcher{
		listeners: make(map[string][]Listener),
		log:       log.WithField("component", "dispatcher"),
	}
}

// SetMetrics publishes dispatch counts and the last event name into reg
func (d *Dispatcher) SetMetrics(reg *status.Registry) {
	if reg == nil {
		d.total, d.last = nil, nil
		return
	}
	d.total = reg.Ints.Get(status.DispatchTotal)
	d.last = reg.Strings.Get(status.DispatchLast)
}

// Register adds a listener for its declared event names
func (d *Dispatcher) Register(l Listener) {
	for _, name := range l.EventNames() {
		key := Canonical(name)
		d.listeners[key] = append(d.listeners[key], l)
	}
}

// Dispatch delivers name with args to target's hooks and matching listeners
// args are passed through unchanged and in order
func (d *Dispatcher) Dispatch(target Target, name string, args []core.Value) {
	key := Canonical(name)
	var hooks []Handler
	if target != nil {
		hooks = target.Hooks().Lookup(key)
	}
	listeners := d.listeners[key]
	if len(hooks) == 0 && len(listeners) == 0 {
		return
	}

	if d.total != nil {
		d.total.Add(1)
		d.last.Store(key)
	}

	d.depth++
	defer func() { d.depth-- }()
	if d.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		d.log.WithFields(logrus.Fields{
			"event": key,
			"args":  args,
			"depth": d.depth,
		}).Debug("dispatch")
	}

	ev := Event{Name: key, Target: target, Args: args}
	for _, h := range hooks {
		h.HandleEvent(ev)
	}
	for _, l := range listeners {
		l.HandleEvent(ev)
	}
}

// Depth returns the current nesting level, 0 outside any dispatch
func (d *Dispatcher) Depth() int {
	return d.depth
}

// HasListeners returns true if any listener is registered for name
func (d *Dispatcher) HasListeners(name string) bool {
	return len(d.listeners[Canonical(name)]) > 0
}

// ListenerCount returns the number of listeners registered for name
func (d *Dispatcher) ListenerCount(name string) int {
	return len(d.listeners[Canonical(name)])
}

// Package status holds runtime counters shared by the dispatcher, the terminal
// renderer and the viewer's status line
package status

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// Well-known metric keys
const (
	DispatchTotal = "dispatch.total"
	DispatchLast  = "dispatch.last"
	DrawFrames    = "draw.frames"
	DrawObjects   = "draw.objects"
	PointerHits   = "pointer.hits"
	PointerMisses = "pointer.misses"
	AudioState    = "audio.state"
	AudioClock    = "audio.clock"
)

// MaxStringLen bounds stored labels so the status row stays short
const MaxStringLen = 32

// Label is a lock-free string cell; the zero value holds ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncated to at most MaxStringLen bytes on a rune boundary
func (l *Label) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	l.ptr.Store(&val)
}

// Load returns the current value
func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Set is a named collection of metric cells of type T
// Lookups allocate on first use under the lock; writers cache the returned pointer
type Set[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
}

func newSet[T any]() *Set[T] {
	return &Set[T]{cells: make(map[string]*T)}
}

// Get returns the cell for key, allocating it if absent
func (s *Set[T]) Get(key string) *T {
	s.mu.RLock()
	c, ok := s.cells[key]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cells[key]; ok {
		return c
	}
	c = new(T)
	s.cells[key] = c
	return c
}

// Has reports whether key was ever requested
func (s *Set[T]) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cells[key]
	return ok
}

// Keys returns the known keys, sorted
func (s *Set[T]) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.cells))
	for k := range s.cells {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Len returns the number of cells
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// Registry groups counters and labels
type Registry struct {
	Ints    *Set[atomic.Int64]
	Strings *Set[Label]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    newSet[atomic.Int64](),
		Strings: newSet[Label](),
	}
}

// Count returns the number of metrics of all types
func (r *Registry) Count() int {
	return r.Ints.Len() + r.Strings.Len()
}

// Line formats keys as space separated "key=value" pairs, skipping unknown keys
// With no keys every metric is listed, counters first
func (r *Registry) Line(keys ...string) string {
	if len(keys) == 0 {
		keys = append(r.Ints.Keys(), r.Strings.Keys()...)
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch {
		case r.Ints.Has(k):
			parts = append(parts, k+"="+strconv.FormatInt(r.Ints.Get(k).Load(), 10))
		case r.Strings.Has(k):
			parts = append(parts, k+"="+r.Strings.Get(k).Load())
		}
	}
	return strings.Join(parts, " ")
}

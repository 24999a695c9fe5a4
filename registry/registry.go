// Package registry maps skin element kinds to object factories
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lixenwraith/skinvm/skin"
)

// ErrKindNotFound is returned for element kinds with no registered factory
var ErrKindNotFound = errors.New("unknown object kind")

// Factory creates an unconfigured object bound to deps
type Factory func(deps skin.Deps) skin.Object

// Registry holds kind factories; safe for concurrent use
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefault creates a registry with the builtin kinds
func NewDefault() *Registry {
	r := New()
	r.Register(skin.KindGuiObject, func(d skin.Deps) skin.Object { return skin.NewGuiObject(d) })
	r.Register(skin.KindContainer, func(d skin.Deps) skin.Object { return skin.NewContainer(d) })
	r.Register(skin.KindLayout, func(d skin.Deps) skin.Object { return skin.NewLayout(d) })
	r.Register(skin.KindGroup, func(d skin.Deps) skin.Object { return skin.NewGroup(d) })
	r.Register(skin.KindLayer, func(d skin.Deps) skin.Object { return skin.NewLayer(d) })
	r.Register(skin.KindButton, func(d skin.Deps) skin.Object { return skin.NewButton(d) })
	r.Register(skin.KindToggleButton, func(d skin.Deps) skin.Object { return skin.NewToggleButton(d) })
	r.Register(skin.KindText, func(d skin.Deps) skin.Object { return skin.NewText(d) })
	r.Register(skin.KindSlider, func(d skin.Deps) skin.Object { return skin.NewSlider(d) })
	return r
}

// Register adds or replaces the factory for kind
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(kind)] = factory
}

// Get retrieves the factory for kind
func (r *Registry) Get(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[strings.ToLower(kind)]
	return f, ok
}

// Kinds returns all registered kinds, sorted
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Create instantiates node's kind and applies its attributes in document order
// Attributes no part of the object recognized are returned for reporting
func (r *Registry) Create(node *skin.Node, deps skin.Deps) (skin.Object, []skin.Attr, error) {
	f, ok := r.Get(node.Kind)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrKindNotFound, node.Kind)
	}
	o := f(deps)
	unknown, err := skin.Configure(o, node.Attrs)
	if err != nil {
		return nil, nil, err
	}
	return o, unknown, nil
}

// Package skin implements the skin object model: the GuiObject base, the concrete
// object kinds, their lifecycle and the tree that owns them.
//
// Concrete kinds embed GuiObject and bind themselves as its self reference, so base
// behavior (drawing, pointer dispatch) always reaches the most specific kind.
// Attribute handling escalates: a kind handles its own keys and defers the rest to
// GuiObject.SetAttribute, which returns false for keys nobody recognizes.
package skin

import (
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/render"
)

// DefaultSize is the fallback width/height reported for objects without an explicit size
const DefaultSize = 100

// Object is the polymorphic contract shared by every skin object kind
type Object interface {
	event.Target

	// Base returns the embedded GuiObject carrying common state
	Base() *GuiObject

	// Kind returns the registry kind name
	Kind() string

	// SetAttribute applies one raw attribute, returning false for unrecognized keys
	// Use ApplyAttribute to get lifecycle checks
	SetAttribute(key, value string) bool

	// Initialize is the per-kind hook run once after attributes are applied
	Initialize(ctx *Context) error

	// Snapshot captures the logical state to present
	Snapshot() render.Snapshot
}

// Options tune object behavior shared by a whole tree
type Options struct {
	// DefaultSize is reported by GetWidth/GetHeight for unset sizes
	DefaultSize int
	// LegacyZeroSize makes an explicit 0 width/height report DefaultSize too
	LegacyZeroSize bool
}

// DefaultOptions returns the standard options
func DefaultOptions() Options {
	return Options{DefaultSize: DefaultSize}
}

// Deps are the collaborators injected into every object at construction
type Deps struct {
	Dispatcher *event.Dispatcher
	Renderer   render.Renderer
	Log        *logrus.Entry
	Options    Options
}

// Context is passed to Initialize
type Context struct {
	Tree *Tree
	Log  *logrus.Entry
}

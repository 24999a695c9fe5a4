package render

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/skinvm/core"
)

// Handle is an opaque presentation handle owned by the renderer
// Objects reference it; they never hold renderable resources themselves
type Handle string

// NewHandle allocates a unique handle
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Button identifies a pointer button
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// PointerFunc receives a pointer transition at screen coordinates
type PointerFunc func(button Button, x, y int)

// Snapshot is the logical state of one object pushed during draw
type Snapshot struct {
	Handle  Handle
	Parent  Handle // Empty for the tree root
	Kind    string
	ID      string
	Visible bool
	Ghost   bool // Drawn but excluded from pointer targeting
	Tooltip string
	X, Y    int
	Width   core.Length
	Height  core.Length
	Alpha   int       // [0,255]
	Label   string    // Optional text content
	Color   *core.RGB // Label color, nil for the renderer default
}

// Opacity maps alpha onto [0,1]
func (s Snapshot) Opacity() float64 {
	return float64(s.Alpha) / 255
}

// Renderer is the presentation backend consumed by skin objects
// Implementations own layout: BoundingBox may differ from the logical X/Y of the snapshot
type Renderer interface {
	// Present records the full state of one object
	Present(s Snapshot)

	// SetOpacity applies an opacity change without a full present
	SetOpacity(h Handle, opacity float64)

	// BoundingBox returns the on-screen box of a presented object
	BoundingBox(h Handle) core.Rect

	// RegisterPointerHandlers attaches pointer callbacks to a presented object
	RegisterPointerHandlers(h Handle, onUp, onDown PointerFunc)

	// Release forgets the handle; called when the object is disposed
	Release(h Handle)
}

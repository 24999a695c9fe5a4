package skin

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skinvm/coerce"
	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/render"
)

// Kind names of the builtin objects
const (
	KindGuiObject    = "guiobject"
	KindContainer    = "container"
	KindLayout       = "layout"
	KindGroup        = "group"
	KindLayer        = "layer"
	KindButton       = "button"
	KindToggleButton = "togglebutton"
	KindText         = "text"
	KindSlider       = "slider"
)

// GuiObject is the base of every skin object
// Geometry and visual flags follow the Winamp Modern global GuiObject params
type GuiObject struct {
	self   Object
	kind   string
	handle render.Handle
	deps   Deps
	log    *logrus.Entry
	hooks  event.Hooks
	state  State

	parent   Object
	children []Object

	id         string
	x, y       int
	width      core.Length
	height     core.Length
	visible    bool
	ghost      bool
	alpha      int
	tooltip    string
	dropTarget string
	dirty      bool

	pointerHooked bool
}

// NewGuiObject creates a plain base object
func NewGuiObject(deps Deps) *GuiObject {
	g := &GuiObject{}
	g.Bind(g, KindGuiObject, deps)
	return g
}

// Bind wires the base to its concrete kind; constructors call it before anything else
func (g *GuiObject) Bind(self Object, kind string, deps Deps) {
	if deps.Options.DefaultSize == 0 {
		deps.Options.DefaultSize = DefaultSize
	}
	g.self = self
	g.kind = kind
	g.deps = deps
	g.handle = render.NewHandle()
	g.visible = true
	g.alpha = coerce.AlphaMax
	if deps.Log != nil {
		g.log = deps.Log.WithField("kind", kind)
	} else {
		g.log = logrus.NewEntry(logrus.StandardLogger()).WithField("kind", kind)
	}
}

// Base implements Object
func (g *GuiObject) Base() *GuiObject { return g }

// Kind implements Object
func (g *GuiObject) Kind() string { return g.kind }

// Hooks implements event.Target
func (g *GuiObject) Hooks() *event.Hooks { return &g.hooks }

// SetAttribute implements Object for the global GuiObject params
func (g *GuiObject) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "id":
		g.id = strings.ToLower(value)
		g.log = g.log.WithField("id", g.id)
	case "w":
		g.width = coerce.ParseLength(value)
	case "h":
		g.height = coerce.ParseLength(value)
	case "x":
		g.x = coerce.ParseInt(value, 0)
	case "y":
		g.y = coerce.ParseInt(value, 0)
	case "droptarget":
		g.dropTarget = value
	case "ghost":
		g.ghost = coerce.ParseBool(value)
	case "visible":
		g.visible = coerce.ParseBool(value)
	case "tooltip":
		g.tooltip = value
	case "alpha":
		// (int) [0,255], 0 is transparent, 255 opaque. Out of range input is clamped
		g.alpha = coerce.ParseAlpha(value)
	default:
		return false
	}
	return true
}

// Initialize implements Object; the base has nothing to prepare
func (g *GuiObject) Initialize(ctx *Context) error {
	return nil
}

// Snapshot implements Object
func (g *GuiObject) Snapshot() render.Snapshot {
	var parent render.Handle
	if g.parent != nil {
		parent = g.parent.Base().handle
	}
	return render.Snapshot{
		Handle:  g.handle,
		Parent:  parent,
		Kind:    g.kind,
		ID:      g.id,
		Visible: g.visible,
		Ghost:   g.ghost,
		Tooltip: g.tooltip,
		X:       g.x,
		Y:       g.y,
		Width:   g.width,
		Height:  g.height,
		Alpha:   g.alpha,
	}
}

// Self returns the concrete object this base belongs to
func (g *GuiObject) Self() Object { return g.self }

// ID returns the lowercased id, empty when none was set
func (g *GuiObject) ID() string { return g.id }

// Handle returns the presentation handle
func (g *GuiObject) Handle() render.Handle { return g.handle }

// State returns the lifecycle state
func (g *GuiObject) State() State { return g.state }

// Log returns the object's log entry
func (g *GuiObject) Log() *logrus.Entry { return g.log }

// Deps returns the injected collaborators
func (g *GuiObject) Deps() Deps { return g.deps }

// Parent returns the owning object, nil for the root
func (g *GuiObject) Parent() Object { return g.parent }

// Children returns the direct children in document order
func (g *GuiObject) Children() []Object { return g.children }

// AddChild attaches child under this object
func (g *GuiObject) AddChild(child Object) {
	child.Base().parent = g.self
	g.children = append(g.children, child)
}

// X returns the logical x position
func (g *GuiObject) X() int { return g.x }

// Y returns the logical y position
func (g *GuiObject) Y() int { return g.y }

// Width returns the logical width, possibly unset
func (g *GuiObject) Width() core.Length { return g.width }

// Height returns the logical height, possibly unset
func (g *GuiObject) Height() core.Length { return g.height }

// Visible returns the visibility flag
func (g *GuiObject) Visible() bool { return g.visible }

// Ghost reports whether pointer input passes through the object
func (g *GuiObject) Ghost() bool { return g.ghost }

// Alpha returns the opacity in [0,255]
func (g *GuiObject) Alpha() int { return g.alpha }

// Tooltip returns the tooltip text
func (g *GuiObject) Tooltip() string { return g.tooltip }

// DropTarget returns the opaque drag/drop association
func (g *GuiObject) DropTarget() string { return g.dropTarget }

// Dirty reports whether state changed since the last draw
func (g *GuiObject) Dirty() bool { return g.dirty }

// MarkDirty flags the object for the next draw
func (g *GuiObject) MarkDirty() { g.dirty = true }

// settle marks attributes as applied
func (g *GuiObject) settle() {
	if g.state == StateUninitialized {
		g.state = StateAttributesApplied
	}
}

// Init runs the kind's Initialize hook once and enters the visible or hidden state
func (g *GuiObject) Init(ctx *Context) error {
	switch {
	case g.state == StateDisposed:
		return g.fail("Init", ErrDisposed)
	case g.state.Initialized():
		return g.fail("Init", ErrAlreadyInitialized)
	}
	if err := g.self.Initialize(ctx); err != nil {
		return g.fail("Init", err)
	}
	g.state = g.visibilityState()
	g.dirty = true
	return nil
}

func (g *GuiObject) visibilityState() State {
	if g.visible {
		return StateVisible
	}
	return StateHidden
}

// mutable guards operations valid only between init and dispose
func (g *GuiObject) mutable(op string) error {
	switch {
	case g.state == StateDisposed:
		return g.fail(op, ErrDisposed)
	case !g.state.Initialized():
		return g.fail(op, ErrNotInitialized)
	}
	return nil
}

func (g *GuiObject) fail(op string, err error) error {
	return &ObjectError{Op: g.kind + "." + op, Kind: g.kind, ID: g.id, Err: err}
}

// Show makes the object visible and marks it dirty
func (g *GuiObject) Show() error {
	return g.setVisible("Show", true)
}

// Hide makes the object invisible and marks it dirty
func (g *GuiObject) Hide() error {
	return g.setVisible("Hide", false)
}

func (g *GuiObject) setVisible(op string, v bool) error {
	if err := g.mutable(op); err != nil {
		return err
	}
	changed := g.visible != v
	g.visible = v
	g.state = g.visibilityState()
	g.dirty = true
	if changed {
		g.dispatch(event.SetVisible, core.Bool(v))
	}
	return nil
}

// Resize replaces position and size in one step and marks the object dirty
// There is no partial variant; read the current geometry to change one field
func (g *GuiObject) Resize(x, y, w, h int) error {
	if err := g.mutable("Resize"); err != nil {
		return err
	}
	g.x, g.y = x, y
	g.width, g.height = core.Px(w), core.Px(h)
	g.dirty = true
	g.dispatch(event.Resize, core.Int(x), core.Int(y), core.Int(w), core.Int(h))
	return nil
}

// SetAlpha sets the opacity, clamped to [0,255], and pushes it to the renderer immediately
func (g *GuiObject) SetAlpha(alpha int) error {
	if err := g.mutable("SetAlpha"); err != nil {
		return err
	}
	g.alpha = coerce.ClampAlpha(alpha)
	if g.deps.Renderer != nil {
		g.deps.Renderer.SetOpacity(g.handle, float64(g.alpha)/255)
	}
	return nil
}

// GetTop returns the rendered top edge in screen coordinates
// Read from the renderer, not from the logical y: containers may move the object
func (g *GuiObject) GetTop() int {
	if g.deps.Renderer == nil {
		return 0
	}
	return g.deps.Renderer.BoundingBox(g.handle).Top
}

// GetLeft returns the rendered left edge in screen coordinates
func (g *GuiObject) GetLeft() int {
	if g.deps.Renderer == nil {
		return 0
	}
	return g.deps.Renderer.BoundingBox(g.handle).Left
}

// GetWidth returns the logical width or the default size when unset
func (g *GuiObject) GetWidth() int {
	return g.sizeOrDefault(g.width)
}

// GetHeight returns the logical height or the default size when unset
func (g *GuiObject) GetHeight() int {
	return g.sizeOrDefault(g.height)
}

func (g *GuiObject) sizeOrDefault(l core.Length) int {
	if g.deps.Options.LegacyZeroSize && l.Px == 0 {
		return g.deps.Options.DefaultSize
	}
	return l.Or(g.deps.Options.DefaultSize)
}

// Draw pushes the full logical state to the renderer and clears the dirty flag
// Pointer handlers are registered on the first draw only
func (g *GuiObject) Draw() error {
	if err := g.mutable("Draw"); err != nil {
		return err
	}
	if g.deps.Renderer == nil {
		g.dirty = false
		return nil
	}
	g.deps.Renderer.Present(g.self.Snapshot())
	if !g.pointerHooked {
		g.deps.Renderer.RegisterPointerHandlers(g.handle, g.pointerUp, g.pointerDown)
		g.pointerHooked = true
	}
	g.dirty = false
	return nil
}

func (g *GuiObject) pointerUp(b render.Button, x, y int) {
	if b == render.ButtonRight {
		g.OnRightButtonUp(x, y)
		return
	}
	g.OnLeftButtonUp(x, y)
}

func (g *GuiObject) pointerDown(b render.Button, x, y int) {
	if b == render.ButtonRight {
		g.OnRightButtonDown(x, y)
		return
	}
	g.OnLeftButtonDown(x, y)
}

// OnLeftButtonUp is hookable: the left button was down and is now up
func (g *GuiObject) OnLeftButtonUp(x, y int) {
	g.dispatch(event.LeftButtonUp, core.Int(x), core.Int(y))
}

// OnLeftButtonDown is hookable: the left button is pressed
func (g *GuiObject) OnLeftButtonDown(x, y int) {
	g.dispatch(event.LeftButtonDown, core.Int(x), core.Int(y))
}

// OnRightButtonUp is hookable: the right button was down and is now up
func (g *GuiObject) OnRightButtonUp(x, y int) {
	g.dispatch(event.RightButtonUp, core.Int(x), core.Int(y))
}

// OnRightButtonDown is hookable: the right button is pressed
func (g *GuiObject) OnRightButtonDown(x, y int) {
	g.dispatch(event.RightButtonDown, core.Int(x), core.Int(y))
}

// Dispatch sends a named event targeting this object
func (g *GuiObject) Dispatch(name string, args ...core.Value) {
	g.dispatch(name, args...)
}

func (g *GuiObject) dispatch(name string, args ...core.Value) {
	if g.deps.Dispatcher == nil || g.state == StateDisposed {
		return
	}
	g.deps.Dispatcher.Dispatch(g.self, name, args)
}

// Dispose releases the presentation handle and drops hooks; further mutation fails
// Children are not touched; Tree.Dispose walks them first
func (g *GuiObject) Dispose() {
	if g.state == StateDisposed {
		return
	}
	g.state = StateDisposed
	g.hooks.Clear()
	if g.deps.Renderer != nil {
		g.deps.Renderer.Release(g.handle)
	}
}

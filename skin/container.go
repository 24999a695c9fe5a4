package skin

import (
	"strings"

	"github.com/lixenwraith/skinvm/coerce"
	"github.com/lixenwraith/skinvm/core"
)

// Container is a top-level window holding one or more layouts
type Container struct {
	GuiObject
	name string
}

// NewContainer creates a container
func NewContainer(deps Deps) *Container {
	c := &Container{}
	c.Bind(c, KindContainer, deps)
	return c
}

// SetAttribute implements Object
func (c *Container) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "name":
		c.name = value
	case "default_visible":
		c.visible = coerce.ParseBool(value)
	default:
		return c.GuiObject.SetAttribute(key, value)
	}
	return true
}

// Name returns the display name
func (c *Container) Name() string { return c.name }

// Layout is one visual arrangement of a container
type Layout struct {
	GuiObject
	background string
	minW, minH core.Length
	maxW, maxH core.Length
}

// NewLayout creates a layout
func NewLayout(deps Deps) *Layout {
	l := &Layout{}
	l.Bind(l, KindLayout, deps)
	return l
}

// SetAttribute implements Object
func (l *Layout) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "background":
		l.background = value
	case "minimum_w":
		l.minW = coerce.ParseLength(value)
	case "minimum_h":
		l.minH = coerce.ParseLength(value)
	case "maximum_w":
		l.maxW = coerce.ParseLength(value)
	case "maximum_h":
		l.maxH = coerce.ParseLength(value)
	default:
		return l.GuiObject.SetAttribute(key, value)
	}
	return true
}

// Background returns the background bitmap id
func (l *Layout) Background() string { return l.background }

// Resize clamps the requested size into the layout's min/max bounds
func (l *Layout) Resize(x, y, w, h int) error {
	return l.GuiObject.Resize(x, y, clampLength(w, l.minW, l.maxW), clampLength(h, l.minH, l.maxH))
}

func clampLength(v int, lo, hi core.Length) int {
	if lo.Set && v < lo.Px {
		v = lo.Px
	}
	if hi.Set && v > hi.Px {
		v = hi.Px
	}
	return v
}

// Group is a reusable cluster of objects
type Group struct {
	GuiObject
	background string
}

// NewGroup creates a group
func NewGroup(deps Deps) *Group {
	g := &Group{}
	g.Bind(g, KindGroup, deps)
	return g
}

// SetAttribute implements Object
func (g *Group) SetAttribute(key, value string) bool {
	if strings.EqualFold(key, "background") {
		g.background = value
		return true
	}
	return g.GuiObject.SetAttribute(key, value)
}

// Background returns the background bitmap id
func (g *Group) Background() string { return g.background }

// Layer is a static bitmap
type Layer struct {
	GuiObject
	image  string
	tile   bool
	resize string
}

// NewLayer creates a layer
func NewLayer(deps Deps) *Layer {
	l := &Layer{}
	l.Bind(l, KindLayer, deps)
	return l
}

// SetAttribute implements Object
func (l *Layer) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "image":
		l.image = value
	case "tile":
		l.tile = coerce.ParseBool(value)
	case "resize":
		l.resize = value
	default:
		return l.GuiObject.SetAttribute(key, value)
	}
	return true
}

// Image returns the bitmap id
func (l *Layer) Image() string { return l.image }

// Tile reports whether the bitmap repeats
func (l *Layer) Tile() bool { return l.tile }

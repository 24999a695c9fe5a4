package skin

import (
	"strings"

	"github.com/lixenwraith/skinvm/coerce"
	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/event"
)

// Button activates on left button release and optionally names a player action
type Button struct {
	GuiObject
	action      string
	param       string
	image       string
	downImage   string
	hoverImage  string
	activeImage string
}

// NewButton creates a button
func NewButton(deps Deps) *Button {
	b := &Button{}
	b.Bind(b, KindButton, deps)
	return b
}

// SetAttribute implements Object
func (b *Button) SetAttribute(key, value string) bool {
	if b.setButtonAttr(key, value) {
		return true
	}
	return b.GuiObject.SetAttribute(key, value)
}

func (b *Button) setButtonAttr(key, value string) bool {
	switch strings.ToLower(key) {
	case "action":
		b.action = strings.ToUpper(strings.TrimSpace(value))
	case "param":
		b.param = value
	case "image":
		b.image = value
	case "downimage":
		b.downImage = value
	case "hoverimage":
		b.hoverImage = value
	case "activeimage":
		b.activeImage = value
	default:
		return false
	}
	return true
}

// Initialize implements Object: releasing the left button over the button clicks it
func (b *Button) Initialize(ctx *Context) error {
	b.hooks.OnFunc(event.LeftButtonUp, func(event.Event) { b.Click() })
	return nil
}

// Click dispatches onactivate
func (b *Button) Click() {
	b.dispatch(event.Activate)
}

// Action returns the uppercased player action, empty when none
func (b *Button) Action() string { return b.action }

// Param returns the action parameter
func (b *Button) Param() string { return b.param }

// Image returns the normal state bitmap id
func (b *Button) Image() string { return b.image }

// ToggleButton is a button with a persistent activated state
type ToggleButton struct {
	Button
	activated bool
	cfgAttrib string
}

// NewToggleButton creates a toggle button
func NewToggleButton(deps Deps) *ToggleButton {
	t := &ToggleButton{}
	t.Bind(t, KindToggleButton, deps)
	return t
}

// SetAttribute implements Object
func (t *ToggleButton) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "activated":
		t.activated = coerce.ParseBool(value)
	case "cfgattrib":
		t.cfgAttrib = value
	default:
		return t.Button.SetAttribute(key, value)
	}
	return true
}

// Initialize implements Object
func (t *ToggleButton) Initialize(ctx *Context) error {
	t.hooks.OnFunc(event.LeftButtonUp, func(event.Event) { t.Click() })
	return nil
}

// Click flips the activated state, dispatches ontoggle then onactivate
func (t *ToggleButton) Click() {
	t.activated = !t.activated
	t.dirty = true
	t.dispatch(event.Toggle, core.Bool(t.activated))
	t.dispatch(event.Activate)
}

// Activated returns the toggle state
func (t *ToggleButton) Activated() bool { return t.activated }

// SetActivated changes the state without dispatching
func (t *ToggleButton) SetActivated(v bool) {
	if t.activated != v {
		t.activated = v
		t.dirty = true
	}
}

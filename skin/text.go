package skin

import (
	"strings"

	"github.com/lixenwraith/skinvm/coerce"
	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/render"
)

// Text displays a static string or a live value named by display (e.g. "time", "songname")
type Text struct {
	GuiObject
	text     string
	display  string
	font     string
	fontSize int
	align    string
	color    core.RGB
	ticker   bool
}

// NewText creates a text object
func NewText(deps Deps) *Text {
	t := &Text{align: "left", color: core.RGBWhite}
	t.Bind(t, KindText, deps)
	return t
}

// SetAttribute implements Object
func (t *Text) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "text", "default":
		t.text = value
	case "display":
		t.display = strings.ToLower(value)
	case "font":
		t.font = value
	case "fontsize":
		t.fontSize = coerce.ParseInt(value, 0)
	case "align":
		t.align = strings.ToLower(value)
	case "color":
		if c, ok := core.ParseRGB(value); ok {
			t.color = c
		}
	case "ticker":
		t.ticker = coerce.ParseBool(value)
	default:
		return t.GuiObject.SetAttribute(key, value)
	}
	return true
}

// Snapshot implements Object, carrying the text as label in its color
func (t *Text) Snapshot() render.Snapshot {
	s := t.GuiObject.Snapshot()
	s.Label = t.text
	c := t.color
	s.Color = &c
	return s
}

// Text returns the current string
func (t *Text) Text() string { return t.text }

// Display returns the live value source, empty for static text
func (t *Text) Display() string { return t.display }

// Color returns the text color
func (t *Text) Color() core.RGB { return t.color }

// SetText replaces the string, marks dirty and dispatches ontextchanged on change
func (t *Text) SetText(s string) error {
	if err := t.mutable("SetText"); err != nil {
		return err
	}
	if s == t.text {
		return nil
	}
	t.text = s
	t.dirty = true
	t.dispatch(event.TextChanged, core.String(s))
	return nil
}

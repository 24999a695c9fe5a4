package skin

import (
	"strings"

	"github.com/lixenwraith/skinvm/coerce"
	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/event"
)

// Slider maps pointer position onto an integer range [low, high]
type Slider struct {
	GuiObject
	action    string
	param     string
	low, high int
	vertical  bool
	thumb     string
	barLeft   string
	position  int
}

// NewSlider creates a slider with the default [0,255] range
func NewSlider(deps Deps) *Slider {
	s := &Slider{high: 255}
	s.Bind(s, KindSlider, deps)
	return s
}

// SetAttribute implements Object
func (s *Slider) SetAttribute(key, value string) bool {
	switch strings.ToLower(key) {
	case "action":
		s.action = strings.ToUpper(strings.TrimSpace(value))
	case "param":
		s.param = value
	case "low":
		s.low = coerce.ParseInt(value, 0)
	case "high":
		s.high = coerce.ParseInt(value, 255)
	case "orientation":
		v := strings.ToLower(strings.TrimSpace(value))
		s.vertical = v == "v" || v == "vertical"
	case "thumb":
		s.thumb = value
	case "barleft":
		s.barLeft = value
	default:
		return s.GuiObject.SetAttribute(key, value)
	}
	return true
}

// Initialize implements Object: a left release moves the slider under the pointer
func (s *Slider) Initialize(ctx *Context) error {
	if s.high < s.low {
		s.low, s.high = s.high, s.low
	}
	s.position = min(max(s.position, s.low), s.high)
	s.hooks.OnFunc(event.LeftButtonUp, func(ev event.Event) {
		if len(ev.Args) < 2 {
			return
		}
		s.SetPosition(s.positionAt(ev.Args[0].AsInt(), ev.Args[1].AsInt()))
	})
	return nil
}

// positionAt converts screen coordinates into a range value using the rendered box
func (s *Slider) positionAt(x, y int) int {
	offset, extent := x-s.GetLeft(), s.GetWidth()
	if s.vertical {
		// Vertical sliders grow upward
		offset, extent = s.GetHeight()-(y-s.GetTop()), s.GetHeight()
	}
	if extent <= 0 {
		return s.low
	}
	offset = min(max(offset, 0), extent)
	return s.low + offset*(s.high-s.low)/extent
}

// SetPosition clamps v into range, marks dirty and dispatches onsetposition
func (s *Slider) SetPosition(v int) {
	s.position = min(max(v, s.low), s.high)
	s.dirty = true
	s.dispatch(event.SetPosition, core.Int(s.position))
}

// Position returns the current value
func (s *Slider) Position() int { return s.position }

// Range returns the low and high bounds
func (s *Slider) Range() (low, high int) { return s.low, s.high }

// Action returns the uppercased player action
func (s *Slider) Action() string { return s.action }

// Param returns the action parameter
func (s *Slider) Param() string { return s.param }

// Vertical reports the orientation
func (s *Slider) Vertical() bool { return s.vertical }

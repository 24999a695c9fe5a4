package event

import "strings"

// Pointer and lifecycle events raised by the skin object model
const (
	LeftButtonUp    = "onleftbuttonup"
	LeftButtonDown  = "onleftbuttondown"
	RightButtonUp   = "onrightbuttonup"
	RightButtonDown = "onrightbuttondown"
	SetVisible      = "onsetvisible"
	Resize          = "onresize"
	Activate        = "onactivate"
	Toggle          = "ontoggle"
	SetPosition     = "onsetposition"
	TextChanged     = "ontextchanged"
)

// Canonical lowercases an event name for lookup
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

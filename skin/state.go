package skin

// State is the lifecycle position of an object
//
// Uninitialized -> AttributesApplied -> (Visible <-> Hidden) -> Disposed
// Visible and Hidden are the initialized states
type State uint8

const (
	StateUninitialized State = iota
	StateAttributesApplied
	StateVisible
	StateHidden
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAttributesApplied:
		return "attributes-applied"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Initialized reports whether init has run and the object is not disposed
func (s State) Initialized() bool {
	return s == StateVisible || s == StateHidden
}

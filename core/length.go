package core

// Length is a pixel size that may be unset
// Unset and an explicit zero are distinct states
type Length struct {
	Px  int
	Set bool
}

// Unset is the zero Length
var Unset = Length{}

// Px returns an explicit pixel length
func Px(n int) Length {
	return Length{Px: n, Set: true}
}

// Or returns the pixel value when set, fallback otherwise
func (l Length) Or(fallback int) int {
	if !l.Set {
		return fallback
	}
	return l.Px
}

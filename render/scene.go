package render

import (
	"github.com/lixenwraith/skinvm/core"
)

// node is the renderer-side record of a presented object
type node struct {
	snap     Snapshot
	opacity  float64
	onUp     PointerFunc
	onDown   PointerFunc
	presents int
}

// scene keeps presented snapshots in presentation order and resolves layout
// Later presentations stack above earlier ones
type scene struct {
	nodes map[Handle]*node
	order []Handle
}

func newScene() scene {
	return scene{nodes: make(map[Handle]*node)}
}

func (s *scene) present(snap Snapshot) {
	n, ok := s.nodes[snap.Handle]
	if !ok {
		n = &node{}
		s.nodes[snap.Handle] = n
		s.order = append(s.order, snap.Handle)
	}
	n.snap = snap
	n.opacity = snap.Opacity()
	n.presents++
}

func (s *scene) setOpacity(h Handle, opacity float64) {
	if n, ok := s.nodes[h]; ok {
		n.opacity = opacity
	}
}

func (s *scene) register(h Handle, onUp, onDown PointerFunc) {
	if n, ok := s.nodes[h]; ok {
		n.onUp = onUp
		n.onDown = onDown
	}
}

func (s *scene) release(h Handle) {
	if _, ok := s.nodes[h]; !ok {
		return
	}
	delete(s.nodes, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// bounds resolves absolute position by walking the parent chain
// Unset sizes take the parent's resolved size
func (s *scene) bounds(h Handle) core.Rect {
	n, ok := s.nodes[h]
	if !ok {
		return core.Rect{}
	}
	var parent core.Rect
	if n.snap.Parent != "" {
		parent = s.bounds(n.snap.Parent)
	}
	return core.Rect{
		Left:   parent.Left + n.snap.X,
		Top:    parent.Top + n.snap.Y,
		Width:  n.snap.Width.Or(parent.Width),
		Height: n.snap.Height.Or(parent.Height),
	}
}

// shown reports whether the object and all its ancestors are visible
func (s *scene) shown(h Handle) bool {
	for h != "" {
		n, ok := s.nodes[h]
		if !ok || !n.snap.Visible {
			return false
		}
		h = n.snap.Parent
	}
	return true
}

// hit returns the topmost shown, non-ghost object containing the point
func (s *scene) hit(x, y int) *node {
	for i := len(s.order) - 1; i >= 0; i-- {
		h := s.order[i]
		n := s.nodes[h]
		if n.snap.Ghost || !s.shown(h) {
			continue
		}
		if s.bounds(h).Contains(x, y) {
			return n
		}
	}
	return nil
}

// pointer routes a transition to the hit object, returns false when nothing was hit
func (s *scene) pointer(button Button, down bool, x, y int) bool {
	n := s.hit(x, y)
	if n == nil {
		return false
	}
	fn := n.onUp
	if down {
		fn = n.onDown
	}
	if fn != nil {
		fn(button, x, y)
	}
	return true
}

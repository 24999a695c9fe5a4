package render

import (
	"github.com/lixenwraith/skinvm/core"
)

// Recorder is an in-memory Renderer
// Used headless (validation, dumps) and by tests to observe presented state
type Recorder struct {
	scene
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{scene: newScene()}
}

// Present implements Renderer
func (r *Recorder) Present(s Snapshot) { r.present(s) }

// SetOpacity implements Renderer
func (r *Recorder) SetOpacity(h Handle, opacity float64) { r.setOpacity(h, opacity) }

// BoundingBox implements Renderer
func (r *Recorder) BoundingBox(h Handle) core.Rect { return r.bounds(h) }

// RegisterPointerHandlers implements Renderer
func (r *Recorder) RegisterPointerHandlers(h Handle, onUp, onDown PointerFunc) {
	r.register(h, onUp, onDown)
}

// Release implements Renderer
func (r *Recorder) Release(h Handle) { r.release(h) }

// Snapshot returns the last presented state for h
func (r *Recorder) Snapshot(h Handle) (Snapshot, bool) {
	n, ok := r.nodes[h]
	if !ok {
		return Snapshot{}, false
	}
	return n.snap, true
}

// Opacity returns the current opacity for h, including SetOpacity updates
func (r *Recorder) Opacity(h Handle) float64 {
	if n, ok := r.nodes[h]; ok {
		return n.opacity
	}
	return 0
}

// Presents returns how many times h was presented
func (r *Recorder) Presents(h Handle) int {
	if n, ok := r.nodes[h]; ok {
		return n.presents
	}
	return 0
}

// HasPointerHandlers reports whether handlers were registered for h
func (r *Recorder) HasPointerHandlers(h Handle) bool {
	n, ok := r.nodes[h]
	return ok && n.onUp != nil && n.onDown != nil
}

// Handles returns presented handles in stacking order, bottom first
func (r *Recorder) Handles() []Handle {
	return append([]Handle(nil), r.order...)
}

// PointerDown simulates a button press at screen coordinates
func (r *Recorder) PointerDown(button Button, x, y int) bool {
	return r.pointer(button, true, x, y)
}

// PointerUp simulates a button release at screen coordinates
func (r *Recorder) PointerUp(button Button, x, y int) bool {
	return r.pointer(button, false, x, y)
}

package render

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/status"
)

// Terminal is a Renderer drawing presented objects as filled cell boxes on a tcell screen
// Skin pixel coordinates are scaled down by the cell size; mouse cells are scaled back up
type Terminal struct {
	scene
	screen  tcell.Screen
	cellW   int
	cellH   int
	pressed tcell.ButtonMask

	statusLine string
	frames     *atomic.Int64
	drawn      *atomic.Int64
	hits       *atomic.Int64
	misses     *atomic.Int64
}

// NewTerminal wraps an initialized screen, cellW/cellH are skin pixels per terminal cell
func NewTerminal(screen tcell.Screen, cellW, cellH int) *Terminal {
	return &Terminal{
		scene:  newScene(),
		screen: screen,
		cellW:  max(cellW, 1),
		cellH:  max(cellH, 1),
	}
}

// SetMetrics publishes frame, object and pointer counts into reg
func (t *Terminal) SetMetrics(reg *status.Registry) {
	t.frames = reg.Ints.Get(status.DrawFrames)
	t.drawn = reg.Ints.Get(status.DrawObjects)
	t.hits = reg.Ints.Get(status.PointerHits)
	t.misses = reg.Ints.Get(status.PointerMisses)
}

// SetStatus sets the text painted on the bottom row at the next Flush, "" hides it
func (t *Terminal) SetStatus(line string) { t.statusLine = line }

// Present implements Renderer
func (t *Terminal) Present(s Snapshot) { t.present(s) }

// SetOpacity implements Renderer
func (t *Terminal) SetOpacity(h Handle, opacity float64) { t.setOpacity(h, opacity) }

// BoundingBox implements Renderer
func (t *Terminal) BoundingBox(h Handle) core.Rect { return t.bounds(h) }

// RegisterPointerHandlers implements Renderer
func (t *Terminal) RegisterPointerHandlers(h Handle, onUp, onDown PointerFunc) {
	t.register(h, onUp, onDown)
}

// Release implements Renderer
func (t *Terminal) Release(h Handle) { t.release(h) }

// Flush paints every shown object in stacking order and shows the screen
func (t *Terminal) Flush() {
	bg := tcell.StyleDefault.Background(toTcell(RgbBackground))
	t.screen.Fill(' ', bg)

	drawn := 0
	for _, h := range t.order {
		if !t.shown(h) {
			continue
		}
		n := t.nodes[h]
		r := t.bounds(h)
		x0, y0 := r.Left/t.cellW, r.Top/t.cellH
		x1 := (r.Left + r.Width + t.cellW - 1) / t.cellW
		y1 := (r.Top + r.Height + t.cellH - 1) / t.cellH

		fill := RgbBackground.Blend(KindColor(n.snap.Kind), n.opacity)
		ink := RgbForeground
		if n.snap.Color != nil {
			ink = *n.snap.Color
		}
		fg := fill.Blend(ink, n.opacity)
		style := tcell.StyleDefault.Background(toTcell(fill)).Foreground(toTcell(fg))

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				t.screen.SetContent(x, y, ' ', nil, style)
			}
		}

		label := n.snap.Label
		if label == "" {
			label = n.snap.ID
		}
		t.drawText(x0, y0, x1, label, style)
		drawn++
	}

	if t.frames != nil {
		t.frames.Add(1)
		t.drawn.Store(int64(drawn))
	}
	if t.statusLine != "" {
		w, h := t.screen.Size()
		st := tcell.StyleDefault.Background(toTcell(RgbBackground)).Foreground(toTcell(RgbForeground)).Reverse(true)
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, h-1, ' ', nil, st)
		}
		t.drawText(0, h-1, w, t.statusLine, st)
	}
	t.screen.Show()
}

// drawText writes a single clipped line
func (t *Terminal) drawText(x0, y, x1 int, s string, style tcell.Style) {
	x := x0
	for _, r := range s {
		if x >= x1 {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// HandleEvent translates tcell mouse transitions into pointer callbacks
// Returns true if the event was a mouse event that hit an object
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	cx, cy := me.Position()
	x := cx*t.cellW + t.cellW/2
	y := cy*t.cellH + t.cellH/2

	buttons := me.Buttons() & (tcell.ButtonPrimary | tcell.ButtonSecondary)
	hit := false
	for _, b := range []struct {
		mask   tcell.ButtonMask
		button Button
	}{
		{tcell.ButtonPrimary, ButtonLeft},
		{tcell.ButtonSecondary, ButtonRight},
	} {
		was := t.pressed&b.mask != 0
		is := buttons&b.mask != 0
		if was == is {
			continue
		}
		if t.pointer(b.button, is, x, y) {
			hit = true
		}
	}
	newPress := buttons&^t.pressed != 0
	t.pressed = buttons
	if t.hits != nil && newPress {
		if hit {
			t.hits.Add(1)
		} else {
			t.misses.Add(1)
		}
	}
	return hit
}

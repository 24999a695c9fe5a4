package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skinvm/core"
	"github.com/lixenwraith/skinvm/status"
)

func box(h, parent Handle, x, y, w, hgt int) Snapshot {
	return Snapshot{
		Handle:  h,
		Parent:  parent,
		Kind:    "button",
		ID:      string(h),
		Visible: true,
		X:       x,
		Y:       y,
		Width:   core.Px(w),
		Height:  core.Px(hgt),
		Alpha:   255,
	}
}

// TestRecorderBoundsFollowParents verifies bounding boxes are resolved through the parent chain
func TestRecorderBoundsFollowParents(t *testing.T) {
	r := NewRecorder()
	r.Present(box("root", "", 100, 50, 300, 200))
	child := box("child", "root", 10, 5, 20, 10)
	r.Present(child)

	got := r.BoundingBox("child")
	want := core.Rect{Left: 110, Top: 55, Width: 20, Height: 10}
	if got != want {
		t.Errorf("BoundingBox = %+v, want %+v", got, want)
	}

	// Unset size inherits from parent
	fill := box("fill", "root", 0, 0, 0, 0)
	fill.Width, fill.Height = core.Unset, core.Unset
	r.Present(fill)
	if got := r.BoundingBox("fill"); got.Width != 300 || got.Height != 200 {
		t.Errorf("unset size should inherit parent, got %+v", got)
	}

	if got := r.BoundingBox("missing"); got != (core.Rect{}) {
		t.Errorf("unknown handle should give zero rect, got %+v", got)
	}
}

// TestRecorderPointerHitTesting verifies topmost, ghost and hidden handling
func TestRecorderPointerHitTesting(t *testing.T) {
	r := NewRecorder()
	r.Present(box("bottom", "", 0, 0, 50, 50))
	r.Present(box("top", "", 0, 0, 50, 50))

	var hits []Handle
	for _, h := range []Handle{"bottom", "top"} {
		h := h
		r.RegisterPointerHandlers(h,
			func(Button, int, int) { hits = append(hits, h+":up") },
			func(Button, int, int) { hits = append(hits, h+":down") })
	}

	r.PointerDown(ButtonLeft, 10, 10)
	if len(hits) != 1 || hits[0] != "top:down" {
		t.Fatalf("expected top to be hit, got %v", hits)
	}

	ghost := box("top", "", 0, 0, 50, 50)
	ghost.Ghost = true
	r.Present(ghost)
	r.PointerUp(ButtonLeft, 10, 10)
	if hits[len(hits)-1] != "bottom:up" {
		t.Errorf("ghost must pass input through, got %v", hits)
	}

	hidden := box("bottom", "", 0, 0, 50, 50)
	hidden.Visible = false
	r.Present(hidden)
	if r.PointerDown(ButtonLeft, 10, 10) {
		t.Error("hidden and ghost objects must not be hit")
	}
}

func TestRecorderOpacityAndRelease(t *testing.T) {
	r := NewRecorder()
	s := box("a", "", 0, 0, 1, 1)
	s.Alpha = 51
	r.Present(s)
	if got := r.Opacity("a"); got != 0.2 {
		t.Errorf("Opacity = %v, want 0.2", got)
	}
	r.SetOpacity("a", 0.5)
	if got := r.Opacity("a"); got != 0.5 {
		t.Errorf("Opacity after SetOpacity = %v, want 0.5", got)
	}
	r.Release("a")
	if _, ok := r.Snapshot("a"); ok || len(r.Handles()) != 0 {
		t.Error("expected handle released")
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	s.SetSize(20, 10)
	t.Cleanup(s.Fini)
	return s
}

// TestTerminalFlushDrawsLabels verifies boxes are painted at scaled cell positions
func TestTerminalFlushDrawsLabels(t *testing.T) {
	screen := newSimScreen(t)
	term := NewTerminal(screen, 8, 16)

	term.Present(box("play", "", 16, 32, 32, 16))
	hidden := box("stop", "", 0, 0, 32, 16)
	hidden.Visible = false
	term.Present(hidden)
	term.Flush()

	mainc, _, _, _ := screen.GetContent(2, 2)
	if mainc != 'p' {
		t.Errorf("expected label at cell (2,2), got %q", mainc)
	}
	mainc, _, _, _ = screen.GetContent(0, 0)
	if mainc == 's' {
		t.Error("hidden object must not be painted")
	}
}

// TestTerminalMouseTransitions verifies press and release map to down and up callbacks
func TestTerminalMouseTransitions(t *testing.T) {
	screen := newSimScreen(t)
	term := NewTerminal(screen, 8, 8)
	term.Present(box("btn", "", 0, 0, 16, 16))

	var got []string
	term.RegisterPointerHandlers("btn",
		func(b Button, x, y int) { got = append(got, "up:"+b.String()) },
		func(b Button, x, y int) {
			got = append(got, "down:"+b.String())
			if x != 4 || y != 4 {
				t.Errorf("expected pixel (4,4), got (%d,%d)", x, y)
			}
		})

	if !term.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone)) {
		t.Error("expected press to hit")
	}
	// Motion with the button held is not a transition
	term.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonSecondary, tcell.ModNone))

	want := []string{"down:left", "up:left", "down:right"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	if term.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Error("key events are not pointer input")
	}
}

// TestTerminalStatusAndMetrics verifies the bottom status row and published counters
func TestTerminalStatusAndMetrics(t *testing.T) {
	screen := newSimScreen(t)
	term := NewTerminal(screen, 8, 8)
	reg := status.NewRegistry()
	term.SetMetrics(reg)

	term.Present(box("btn", "", 0, 0, 16, 16))
	term.SetStatus("ok")
	term.Flush()

	mainc, _, _, _ := screen.GetContent(0, 9)
	if mainc != 'o' {
		t.Errorf("expected status at bottom row, got %q", mainc)
	}

	term.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(15, 5, tcell.ButtonPrimary, tcell.ModNone))

	if got := reg.Line(status.DrawFrames, status.DrawObjects, status.PointerHits, status.PointerMisses); got != "draw.frames=1 draw.objects=1 pointer.hits=1 pointer.misses=1" {
		t.Errorf("metrics = %q", got)
	}
}

// TestTerminalLabelColor verifies a snapshot color overrides the default label ink
func TestTerminalLabelColor(t *testing.T) {
	screen := newSimScreen(t)
	term := NewTerminal(screen, 8, 8)

	orange := core.RGB{R: 255, G: 128}
	colored := box("time", "", 0, 0, 32, 8)
	colored.Color = &orange
	term.Present(colored)
	term.Present(box("plain", "", 0, 16, 32, 8))
	term.Flush()

	_, _, style, _ := screen.GetContent(0, 0)
	if fg, _, _ := style.Decompose(); fg != toTcell(orange) {
		t.Errorf("colored label fg = %v, want %v", fg, toTcell(orange))
	}
	_, _, style, _ = screen.GetContent(0, 2)
	if fg, _, _ := style.Decompose(); fg != toTcell(RgbForeground) {
		t.Errorf("default label fg = %v, want %v", fg, toTcell(RgbForeground))
	}
}

package skin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/skinvm/event"
)

func buildTree(t *testing.T) (*Tree, Deps) {
	t.Helper()
	deps, _ := testDeps(t)
	root := NewContainer(deps)
	layout := NewLayout(deps)
	play := NewButton(deps)
	stop := NewButton(deps)
	Configure(root, []Attr{{"id", "main"}})
	Configure(layout, []Attr{{"id", "normal"}})
	Configure(play, []Attr{{"id", "Play"}, {"w", "20"}, {"h", "10"}, {"alpha", "255"}})
	Configure(stop, []Attr{{"id", "stop"}, {"x", "20"}, {"w", "20"}, {"h", "10"}})
	root.AddChild(layout)
	layout.AddChild(play)
	layout.AddChild(stop)
	return NewTree(root), deps
}

// TestTreeFind verifies case-insensitive lookup and the missing-id error
func TestTreeFind(t *testing.T) {
	tree, _ := buildTree(t)
	if tree.Len() != 4 {
		t.Fatalf("Len = %d, want 4", tree.Len())
	}
	o, ok := tree.Find("PLAY")
	if !ok || o.Kind() != KindButton {
		t.Fatalf("Find(PLAY) = %v, %v", o, ok)
	}
	if o.Base().Parent().Base().ID() != "normal" {
		t.Error("parent link missing")
	}

	_, err := tree.MustFind("eject")
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("MustFind: got %v, want ErrMissingID", err)
	}
}

// TestTreeInitDrawDispose verifies lifecycle ordering across the tree
func TestTreeInitDrawDispose(t *testing.T) {
	tree, _ := buildTree(t)
	var inits []string
	for _, o := range tree.Objects() {
		id := o.Base().ID()
		o.Hooks().OnFunc(event.SetVisible, func(event.Event) { inits = append(inits, id) })
	}
	if err := tree.Init(); err != nil {
		t.Fatal(err)
	}
	if err := tree.Draw(); err != nil {
		t.Fatal(err)
	}
	if n := tree.DrawDirty(); n != 0 {
		t.Errorf("DrawDirty after full draw = %d", n)
	}

	stop, _ := tree.Find("stop")
	stop.Base().Hide()
	if n := tree.DrawDirty(); n != 1 {
		t.Errorf("DrawDirty = %d, want 1", n)
	}
	if diff := cmp.Diff([]string{"stop"}, inits); diff != "" {
		t.Errorf("visibility events (-want +got):\n%s", diff)
	}

	tree.Dispose()
	for _, o := range tree.Objects() {
		if o.Base().State() != StateDisposed {
			t.Errorf("%s not disposed", o.Base().ID())
		}
	}
	if _, ok := tree.Find("play"); ok {
		t.Error("disposed tree must not resolve ids")
	}
}

// TestEndToEndPointerScenario verifies attribute coercion and pointer dispatch for a hooked button
func TestEndToEndPointerScenario(t *testing.T) {
	tree, _ := buildTree(t)
	if err := tree.Init(); err != nil {
		t.Fatal(err)
	}
	o, err := tree.MustFind("play")
	if err != nil {
		t.Fatal(err)
	}
	g := o.Base()
	if g.GetWidth() != 20 || g.GetHeight() != 10 || g.Alpha() != 255 || g.ID() != "play" {
		t.Fatalf("geometry w=%d h=%d alpha=%d id=%q", g.GetWidth(), g.GetHeight(), g.Alpha(), g.ID())
	}

	var got []event.Event
	o.Hooks().OnFunc(event.LeftButtonDown, func(ev event.Event) { got = append(got, ev) })
	g.OnLeftButtonDown(5, 5)

	if len(got) != 1 {
		t.Fatalf("handler ran %d times", len(got))
	}
	if got[0].Name != "onleftbuttondown" {
		t.Errorf("name = %q", got[0].Name)
	}
	var args []string
	for _, a := range got[0].Args {
		args = append(args, a.String())
	}
	if diff := cmp.Diff([]string{"{INT 5}", "{INT 5}"}, args); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

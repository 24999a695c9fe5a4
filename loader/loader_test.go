package loader

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/logger"
	"github.com/lixenwraith/skinvm/registry"
	"github.com/lixenwraith/skinvm/render"
	"github.com/lixenwraith/skinvm/skin"
)

func testDeps() (skin.Deps, *render.Recorder) {
	rec := render.NewRecorder()
	log := logger.Discard()
	return skin.Deps{
		Dispatcher: event.NewDispatcher(log),
		Renderer:   rec,
		Log:        log,
		Options:    skin.DefaultOptions(),
	}, rec
}

func parseFixture(t *testing.T, name string) *Document {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var doc *Document
	if strings.HasSuffix(name, ".xml") {
		doc, err = ParseXML(f)
	} else {
		doc, err = ParseYAML(f)
	}
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return doc
}

// TestParseXML verifies element structure, attribute order and skipped elements
func TestParseXML(t *testing.T) {
	doc := parseFixture(t, "classic.xml")

	if doc.Root.Kind != "container" {
		t.Fatalf("root kind = %q", doc.Root.Kind)
	}
	layout := doc.Root.Children[0]
	var kinds []string
	for _, c := range layout.Children {
		kinds = append(kinds, c.Kind)
	}
	if diff := cmp.Diff([]string{"layer", "button", "button", "togglebutton", "slider", "text"}, kinds); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
	play := layout.Children[1]
	if play.Attrs[0] != (skin.Attr{Key: "id", Value: "Play"}) || play.Attrs[1].Key != "action" {
		t.Errorf("attribute order lost: %v", play.Attrs)
	}
	if play.Line == 0 {
		t.Error("line number missing")
	}
	if diff := cmp.Diff([]string{"include", "script"}, doc.Skipped); diff != "" {
		t.Errorf("skipped (-want +got):\n%s", diff)
	}
	if doc.Info == nil || doc.Info.Name != "Classic Demo" || doc.Info.Version != "1.36" {
		t.Errorf("skininfo = %+v", doc.Info)
	}
}

// TestParseXMLMultipleTops verifies sibling containers are gathered under one root
func TestParseXMLMultipleTops(t *testing.T) {
	doc, err := ParseXML(strings.NewReader(`<WinampAbstractionLayer><container id="a"/><container id="b"/></WinampAbstractionLayer>`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Kind != skin.KindGuiObject || len(doc.Root.Children) != 2 {
		t.Errorf("root = %+v", doc.Root)
	}

	if _, err := ParseXML(strings.NewReader(`<WinampAbstractionLayer><include file="x"/></WinampAbstractionLayer>`)); !errors.Is(err, ErrEmptySkin) {
		t.Errorf("empty skin: got %v", err)
	}
	if _, err := ParseXML(strings.NewReader(`<container>`)); err == nil {
		t.Error("expected error for truncated markup")
	}
}

// TestBuildXML verifies the built tree, coercion and diagnostics
func TestBuildXML(t *testing.T) {
	doc := parseFixture(t, "classic.xml")
	deps, _ := testDeps()
	tree, diags, err := Build(doc.Root, registry.NewDefault(), deps, PolicyWarn)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 8 {
		t.Errorf("Len = %d, want 8", tree.Len())
	}

	want := []Diagnostic{{
		Path:  "container#main/layout#normal/text#timer",
		Line:  diags[0].Line,
		Key:   "rectrgn",
		Value: "1",
	}}
	if diff := cmp.Diff(want, diags); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	eq, _ := tree.Find("EQ")
	if tb, ok := eq.(*skin.ToggleButton); !ok || !tb.Activated() {
		t.Errorf("eq = %#v", eq)
	}
	for _, o := range tree.Objects() {
		if !o.Base().State().Initialized() {
			t.Errorf("%s not initialized", o.Base().ID())
		}
	}
}

// TestBuildPointerScenario verifies a built button dispatches pointer events with coerced args
func TestBuildPointerScenario(t *testing.T) {
	doc := parseFixture(t, "classic.xml")
	deps, rec := testDeps()
	tree, _, err := Build(doc.Root, registry.NewDefault(), deps, PolicyIgnore)
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Draw(); err != nil {
		t.Fatal(err)
	}
	play, err := tree.MustFind("play")
	if err != nil {
		t.Fatal(err)
	}
	g := play.Base()
	if g.GetWidth() != 20 || g.GetHeight() != 10 || g.Alpha() != 255 || g.ID() != "play" {
		t.Fatalf("w=%d h=%d alpha=%d id=%q", g.GetWidth(), g.GetHeight(), g.Alpha(), g.ID())
	}

	var got []event.Event
	play.Hooks().OnFunc(event.LeftButtonDown, func(ev event.Event) { got = append(got, ev) })
	if !rec.PointerDown(render.ButtonLeft, g.GetLeft()+5, g.GetTop()+5) {
		t.Fatal("press missed")
	}
	if len(got) != 1 {
		t.Fatalf("handler ran %d times", len(got))
	}
	var args []string
	for _, a := range got[0].Args {
		args = append(args, a.String())
	}
	if got[0].Name != "onleftbuttondown" || len(args) != 2 {
		t.Fatalf("event = %s %v", got[0].Name, args)
	}
}

// TestBuildPolicies verifies unknown child kinds are skipped and reported while the
// error policy aborts with the node path
func TestBuildPolicies(t *testing.T) {
	deps, _ := testDeps()
	reg := registry.NewDefault()

	root := &skin.Node{
		Kind:  "container",
		Attrs: []skin.Attr{{Key: "id", Value: "main"}},
		Children: []*skin.Node{
			{Kind: "button", Attrs: []skin.Attr{{Key: "id", Value: "play"}}},
			{Kind: "vis", Attrs: []skin.Attr{{Key: "id", Value: "vis"}}, Line: 7,
				Children: []*skin.Node{{Kind: "button", Attrs: []skin.Attr{{Key: "id", Value: "inner"}}}}},
			{Kind: "button", Attrs: []skin.Attr{{Key: "id", Value: "stop"}}},
		},
	}
	for _, policy := range []Policy{PolicyWarn, PolicyIgnore, PolicyError} {
		tree, diags, err := Build(root, reg, deps, policy)
		if err != nil {
			t.Fatalf("%s: unknown child kind must not fail the build: %v", policy, err)
		}
		if tree.Len() != 3 {
			t.Errorf("%s: Len = %d, want 3", policy, tree.Len())
		}
		for _, id := range []string{"play", "stop"} {
			if _, ok := tree.Find(id); !ok {
				t.Errorf("%s: sibling %q missing", policy, id)
			}
		}
		if _, ok := tree.Find("inner"); ok {
			t.Errorf("%s: subtree of unknown kind must be skipped", policy)
		}
		if len(diags) != 1 || !errors.Is(diags[0].Err, registry.ErrKindNotFound) ||
			diags[0].Path != "container#main/vis#vis" || diags[0].Line != 7 {
			t.Fatalf("%s: diags = %v", policy, diags)
		}
		if !strings.HasPrefix(diags[0].String(), "container#main/vis#vis (line 7): ") {
			t.Errorf("%s: diagnostic = %q", policy, diags[0].String())
		}
		tree.Dispose()
	}

	_, _, err := Build(&skin.Node{Kind: "vis"}, reg, deps, PolicyWarn)
	if !errors.Is(err, registry.ErrKindNotFound) || !strings.HasPrefix(err.Error(), "vis[0]:") {
		t.Errorf("unknown root kind: got %v", err)
	}

	root = &skin.Node{Kind: "button", Attrs: []skin.Attr{{Key: "id", Value: "b"}, {Key: "bogus", Value: "1"}}}
	_, _, err = Build(root, reg, deps, PolicyError)
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("error policy: got %v", err)
	}

	_, diags, err := Build(root, reg, deps, PolicyIgnore)
	if err != nil || len(diags) != 0 {
		t.Errorf("ignore policy: diags=%v err=%v", diags, err)
	}
}

// TestParseYAML verifies the YAML form builds the same kind of tree
func TestParseYAML(t *testing.T) {
	doc := parseFixture(t, "classic.yaml")
	if doc.Info.Version != "" {
		t.Errorf("malformed version should be dropped, got %q", doc.Info.Version)
	}
	button := doc.Root.Children[0].Children[0]
	keys := make([]string, 0, len(button.Attrs))
	for _, a := range button.Attrs {
		keys = append(keys, a.Key)
	}
	if diff := cmp.Diff([]string{"id", "action", "x", "y", "w", "h", "alpha"}, keys); diff != "" {
		t.Errorf("attr order (-want +got):\n%s", diff)
	}

	deps, _ := testDeps()
	tree, diags, err := Build(doc.Root, registry.NewDefault(), deps, PolicyError)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 4 || len(diags) != 0 {
		t.Errorf("Len=%d diags=%v", tree.Len(), diags)
	}

	if _, err := ParseYAML(strings.NewReader("root:\n  attrs: {id: x}\n")); err == nil {
		t.Error("expected error for object without kind")
	}
	if _, err := ParseYAML(strings.NewReader("")); !errors.Is(err, ErrEmptySkin) {
		t.Errorf("empty: got %v", err)
	}
}

// TestArchiveItem verifies the archive.org identifier extraction
func TestArchiveItem(t *testing.T) {
	tests := []struct {
		homepage, want string
	}{
		{"https://archive.org/details/winampskin_Foo", "winampskin_Foo"},
		{"archive.org/details/winampskin_Bar/", "winampskin_Bar"},
		{"https://example.com/skins", "https://example.com/skins"},
		{"", ""},
	}
	for _, tt := range tests {
		info := &SkinInfo{Homepage: tt.homepage}
		if got := info.ArchiveItem(); got != tt.want {
			t.Errorf("ArchiveItem(%q) = %q, want %q", tt.homepage, got, tt.want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": PolicyWarn, "Ignore": PolicyIgnore, "error": PolicyError} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("loud"); err == nil {
		t.Error("expected error")
	}
}

package skin

import (
	"testing"

	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/logger"
	"github.com/lixenwraith/skinvm/render"
)

func testDeps(t *testing.T) (Deps, *render.Recorder) {
	t.Helper()
	rec := render.NewRecorder()
	log := logger.Discard()
	return Deps{
		Dispatcher: event.NewDispatcher(log),
		Renderer:   rec,
		Log:        log,
		Options:    DefaultOptions(),
	}, rec
}

// ready configures and initializes o
func ready(t *testing.T, o Object, attrs ...Attr) {
	t.Helper()
	if _, err := Configure(o, attrs); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := o.Base().Init(&Context{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

// record captures events for one name on an object
func record(o Object, name string) *[]event.Event {
	var got []event.Event
	o.Hooks().OnFunc(name, func(ev event.Event) { got = append(got, ev) })
	return &got
}

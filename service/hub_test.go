package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeService struct {
	name     string
	deps     []string
	startErr error
	stopErr  error
	trace    *[]string
	gotArgs  []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init(args ...any) error {
	f.gotArgs = args
	*f.trace = append(*f.trace, "init:"+f.name)
	return nil
}
func (f *fakeService) Start() error {
	*f.trace = append(*f.trace, "start:"+f.name)
	return f.startErr
}
func (f *fakeService) Stop() error {
	*f.trace = append(*f.trace, "stop:"+f.name)
	return f.stopErr
}

func TestHubDependencyOrder(t *testing.T) {
	var trace []string
	h := NewHub()
	ui := &fakeService{name: "ui", deps: []string{"audio"}, trace: &trace}
	audio := &fakeService{name: "audio", trace: &trace}
	h.Register(ui)
	h.Register(audio, true)

	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := h.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	want := []string{"init:audio", "init:ui", "start:audio", "start:ui", "stop:ui", "stop:audio"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{true}, audio.gotArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestHubStartFailureStopsStarted(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	h := NewHub()
	h.Register(&fakeService{name: "a", trace: &trace})
	h.Register(&fakeService{name: "b", startErr: boom, trace: &trace})

	if err := h.Start(); !errors.Is(err, boom) {
		t.Fatalf("Start error = %v, want boom", err)
	}
	want := []string{"init:a", "init:b", "start:a", "start:b", "stop:a"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

// TestHubStartFailureReportsStopErrors verifies rollback errors are joined to the start error
func TestHubStartFailureReportsStopErrors(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	stuck := errors.New("stuck")
	h := NewHub()
	h.Register(&fakeService{name: "a", stopErr: stuck, trace: &trace})
	h.Register(&fakeService{name: "b", startErr: boom, trace: &trace})

	err := h.Start()
	if !errors.Is(err, boom) || !errors.Is(err, stuck) {
		t.Fatalf("Start error = %v, want both boom and stuck", err)
	}
	if err := h.Stop(); err != nil {
		t.Errorf("second Stop should have nothing left to stop, got %v", err)
	}
}

func TestHubOrderErrors(t *testing.T) {
	var trace []string
	h := NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, trace: &trace})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, trace: &trace})
	if _, err := h.Order(); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}

	h = NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"missing"}, trace: &trace})
	if _, err := h.Order(); err == nil {
		t.Error("expected missing dependency error")
	}
}

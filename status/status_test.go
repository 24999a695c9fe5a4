package status

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// TestConcurrentGet verifies every goroutine receives the same cell
func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				r.Ints.Get(DispatchTotal).Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get(DispatchTotal).Load(); got != 1600 {
		t.Errorf("total = %d, want 1600", got)
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d", r.Count())
	}
}

func TestLine(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(DrawFrames).Store(3)
	r.Ints.Get(DispatchTotal).Store(7)
	r.Strings.Get(DispatchLast).Store("onleftbuttonup")

	if got := r.Line(DrawFrames, "missing", DispatchLast); got != "draw.frames=3 dispatch.last=onleftbuttonup" {
		t.Errorf("Line = %q", got)
	}
	if got := r.Line(); got != "dispatch.total=7 draw.frames=3 dispatch.last=onleftbuttonup" {
		t.Errorf("Line() = %q", got)
	}
}

func TestLabelTruncates(t *testing.T) {
	var l Label
	if l.Load() != "" {
		t.Error("zero value should be empty")
	}
	l.Store(strings.Repeat("x", MaxStringLen+5))
	if len(l.Load()) != MaxStringLen {
		t.Errorf("len = %d", len(l.Load()))
	}

	// "é" is two bytes; an odd prefix pushes one across the limit
	l.Store("x" + strings.Repeat("é", MaxStringLen))
	got := l.Load()
	if !utf8.ValidString(got) || len(got) != MaxStringLen-1 {
		t.Errorf("multi-byte truncation = %q (%d bytes)", got, len(got))
	}
}

func TestKeysSorted(t *testing.T) {
	s := newSet[int]()
	for _, k := range []string{"b", "c", "a"} {
		*s.Get(k) = len(k)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

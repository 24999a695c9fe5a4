// Package action connects skin controls to the audio player
package action

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skinvm/audio"
	"github.com/lixenwraith/skinvm/event"
	"github.com/lixenwraith/skinvm/skin"
)

// Player actions named by the action attribute
const (
	Play     = "PLAY"
	Pause    = "PAUSE"
	Stop     = "STOP"
	EqToggle = "EQ_TOGGLE"
	Volume   = "VOLUME"
	Pan      = "PAN"
	Preamp   = "PREAMP"
	EqPreamp = "EQ_PREAMP"
	EqBand   = "EQ_BAND"
	Seek     = "SEEK"
)

// Text display sources fed by the player
const (
	DisplayTime       = "time"
	DisplaySongLength = "songlength"
)

// Scheduler runs fn on the goroutine that owns the skin tree
// Player events may arrive on the audio goroutine
type Scheduler func(fn func())

// Binding is the set of controls wired to one player
type Binding struct {
	player      audio.Player
	log         *logrus.Entry
	schedule    Scheduler
	unsupported map[string]bool

	Bound int // Controls wired to an action or display
}

// Bind walks tree and wires every control whose action or display the player supports
// Sliders and toggles start out reflecting the player's current state
func Bind(tree *skin.Tree, player audio.Player, log *logrus.Entry, schedule Scheduler) *Binding {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	b := &Binding{
		player:      player,
		log:         log.WithField("component", "action"),
		schedule:    schedule,
		unsupported: make(map[string]bool),
	}
	for _, o := range tree.Objects() {
		switch obj := o.(type) {
		case *skin.ToggleButton:
			b.bindToggle(obj)
		case *skin.Button:
			b.bindButton(obj)
		case *skin.Slider:
			b.bindSlider(obj)
		case *skin.Text:
			b.bindText(obj)
		}
	}
	return b
}

func (b *Binding) bindButton(btn *skin.Button) {
	var run func() error
	switch btn.Action() {
	case "":
		return
	case Play:
		run = b.player.Play
	case Pause:
		run = b.player.Pause
	case Stop:
		run = b.player.Stop
	case EqToggle:
		run = func() error {
			b.setEq(!b.player.Status().EqEnabled)
			return nil
		}
	default:
		b.reject(btn.Action(), btn.ID())
		return
	}
	btn.Hooks().OnFunc(event.Activate, func(event.Event) {
		if err := run(); err != nil {
			b.log.WithError(err).WithField("action", btn.Action()).Warn("action failed")
		}
	})
	b.Bound++
}

func (b *Binding) bindToggle(tb *skin.ToggleButton) {
	if tb.Action() != EqToggle {
		b.bindButton(&tb.Button)
		return
	}
	tb.SetActivated(b.player.Status().EqEnabled)
	tb.Hooks().OnFunc(event.Toggle, func(ev event.Event) {
		if len(ev.Args) > 0 {
			b.setEq(ev.Args[0].AsBool())
		}
	})
	b.Bound++
}

func (b *Binding) setEq(on bool) {
	if on {
		b.player.EnableEq()
	} else {
		b.player.DisableEq()
	}
}

func (b *Binding) bindSlider(s *skin.Slider) {
	st := b.player.Status()
	var apply func(frac float64) error
	switch s.Action() {
	case "":
		return
	case Volume:
		s.SetPosition(fromFraction(s, float64(st.Volume)/100))
		apply = func(f float64) error { b.player.SetVolume(scale(f, 0, 100)); return nil }
	case Pan:
		s.SetPosition(fromFraction(s, float64(st.Balance+100)/200))
		apply = func(f float64) error { b.player.SetBalance(scale(f, -100, 100)); return nil }
	case Preamp, EqPreamp:
		s.SetPosition(fromFraction(s, float64(st.Preamp)/100))
		apply = func(f float64) error { b.player.SetPreamp(scale(f, 0, 100)); return nil }
	case EqBand:
		hz, err := bandFrequency(s.Param())
		if err != nil {
			b.log.WithError(err).WithField("id", s.ID()).Warn("equalizer slider ignored")
			return
		}
		s.SetPosition(fromFraction(s, 0.5))
		apply = func(f float64) error { return b.player.SetEqBand(hz, scale(f, 0, 100)) }
	case Seek:
		apply = func(f float64) error { return b.player.SeekToPercent(f * 100) }
	default:
		b.reject(s.Action(), s.ID())
		return
	}
	s.Hooks().OnFunc(event.SetPosition, func(ev event.Event) {
		if err := apply(fraction(s)); err != nil {
			b.log.WithError(err).WithField("action", s.Action()).Warn("action failed")
		}
	})
	b.Bound++
}

func (b *Binding) bindText(t *skin.Text) {
	var source string
	var update func()
	switch t.Display() {
	case "":
		return
	case DisplayTime:
		source = audio.EventTimeUpdate
		update = func() { b.setText(t, FormatClock(b.player.Status().Elapsed)) }
	case DisplaySongLength:
		source = audio.EventFileLoaded
		update = func() { b.setText(t, FormatClock(b.player.Status().Duration)) }
	default:
		b.reject("display:"+t.Display(), t.ID())
		return
	}
	b.player.On(source, func() { b.schedule(update) })
	b.Bound++
}

func (b *Binding) setText(t *skin.Text, s string) {
	if err := t.SetText(s); err != nil {
		b.log.WithError(err).Debug("text update dropped")
	}
}

// reject logs an unsupported action once per name
func (b *Binding) reject(action, id string) {
	if b.unsupported[action] {
		return
	}
	b.unsupported[action] = true
	b.log.WithFields(logrus.Fields{"action": action, "id": id}).Info("unsupported action ignored")
}

// Unsupported returns the names of actions that were skipped
func (b *Binding) Unsupported() []string {
	names := make([]string, 0, len(b.unsupported))
	for n := range b.unsupported {
		names = append(names, n)
	}
	return names
}

// fraction returns the slider position as 0..1 of its range
func fraction(s *skin.Slider) float64 {
	low, high := s.Range()
	if high == low {
		return 0
	}
	return float64(s.Position()-low) / float64(high-low)
}

// fromFraction is the inverse of fraction
func fromFraction(s *skin.Slider, f float64) int {
	low, high := s.Range()
	return low + int(f*float64(high-low)+0.5)
}

// scale maps 0..1 onto [lo,hi], rounding to the nearest integer
func scale(f float64, lo, hi int) int {
	return lo + int(f*float64(hi-lo)+0.5)
}

// bandFrequency accepts a 1-based band index or a center frequency in Hz
func bandFrequency(param string) (int, error) {
	n, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("band %q: %w", param, err)
	}
	if n >= 1 && n <= len(audio.Bands) {
		return audio.Bands[n-1], nil
	}
	for _, hz := range audio.Bands {
		if hz == n {
			return hz, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", audio.ErrBandNotFound, n)
}

// FormatClock renders d as m:ss
func FormatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

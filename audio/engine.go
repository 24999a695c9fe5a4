package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/sirupsen/logrus"
)

// timeUpdateInterval paces timeupdate events in stream time
const timeUpdateInterval = 250 * time.Millisecond

// Engine plays one track through preamp, equalizer, balance and volume stages
// Engine is itself a beep.Streamer; hand it to the speaker or pull it directly
type Engine struct {
	mu sync.Mutex

	format beep.Format
	source beep.StreamSeeker
	ctrl   *beep.Ctrl
	preamp *effects.Gain
	eq     *equalizer
	pan    *effects.Pan
	volume *effects.Volume

	playing   bool
	sinceTick int

	volumeLevel  int
	balanceLevel int
	preampLevel  int
	bandLevels   map[int]int
	eqEnabled    bool

	listeners map[string][]func()
	log       *logrus.Entry
}

// NewEngine creates an idle engine with full volume, centered balance and a flat equalizer
func NewEngine(log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	e := &Engine{
		volumeLevel: 100,
		preampLevel: 50,
		bandLevels:  make(map[int]int, len(Bands)),
		eqEnabled:   true,
		listeners:   make(map[string][]func()),
		log:         log.WithField("component", "audio"),
	}
	for _, hz := range Bands {
		e.bandLevels[hz] = 50
	}
	return e
}

// On registers fn for an engine event; handlers run on the goroutine that caused the event
func (e *Engine) On(event string, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], fn)
}

// emit runs handlers for each event; callers must not hold mu
func (e *Engine) emit(events ...string) {
	for _, ev := range events {
		e.mu.Lock()
		fns := append([]func(){}, e.listeners[ev]...)
		e.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	}
}

// Load replaces the current track and rebuilds the signal chain, keeping parameters
func (e *Engine) Load(s beep.StreamSeeker, format beep.Format) {
	e.mu.Lock()
	e.format = format
	e.source = s
	e.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	e.preamp = &effects.Gain{Streamer: e.ctrl}
	e.eq = newEqualizer(e.preamp, format.SampleRate)
	e.pan = &effects.Pan{Streamer: e.eq}
	e.volume = &effects.Volume{Streamer: e.pan, Base: 2}
	e.playing = false
	e.sinceTick = 0
	e.applyParams()
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"rate":     format.SampleRate,
		"duration": format.SampleRate.D(s.Len()),
	}).Debug("track loaded")
	e.emit(EventFileLoaded)
}

// applyParams pushes stored levels into a freshly built chain
func (e *Engine) applyParams() {
	setVolume(e.volume, float64(e.volumeLevel)/100)
	e.pan.Pan = float64(e.balanceLevel) / 100
	e.preamp.Gain = e.preampGain()
	for hz, v := range e.bandLevels {
		e.eq.setGain(hz, sliderDB(v))
	}
	e.eq.Bypass = !e.eqEnabled
}

// Play starts or resumes playback; a finished track restarts from the beginning
func (e *Engine) Play() error {
	e.mu.Lock()
	if e.source == nil {
		e.mu.Unlock()
		return ErrNoTrack
	}
	if e.source.Position() >= e.source.Len() {
		if err := e.source.Seek(0); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("rewind: %w", err)
		}
		e.eq.reset()
	}
	e.ctrl.Paused = false
	e.playing = true
	e.mu.Unlock()

	e.emit(EventPlaying)
	return nil
}

// Pause holds the current position
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return ErrNoTrack
	}
	e.ctrl.Paused = true
	e.playing = false
	return nil
}

// Stop pauses and rewinds
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.source == nil {
		e.mu.Unlock()
		return ErrNoTrack
	}
	e.ctrl.Paused = true
	e.playing = false
	err := e.source.Seek(0)
	e.eq.reset()
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	e.emit(EventTimeUpdate)
	return nil
}

// SeekToPercent moves to percent (0..100) of the track
func (e *Engine) SeekToPercent(percent float64) error {
	e.mu.Lock()
	if e.source == nil {
		e.mu.Unlock()
		return ErrNoTrack
	}
	percent = min(max(percent, 0), 100)
	err := e.source.Seek(int(percent / 100 * float64(e.source.Len())))
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	e.emit(EventTimeUpdate)
	return nil
}

// SeekToTime moves to d from the start, clamped to the track
func (e *Engine) SeekToTime(d time.Duration) error {
	e.mu.Lock()
	if e.source == nil {
		e.mu.Unlock()
		return ErrNoTrack
	}
	pos := min(max(e.format.SampleRate.N(d), 0), e.source.Len())
	err := e.source.Seek(pos)
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	e.emit(EventTimeUpdate)
	return nil
}

// TimeElapsed returns the playback position
func (e *Engine) TimeElapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return 0
	}
	return e.format.SampleRate.D(e.source.Position())
}

// Duration returns the track length
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return 0
	}
	return e.format.SampleRate.D(e.source.Len())
}

// PercentComplete returns the position as 0..100
func (e *Engine) PercentComplete() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil || e.source.Len() == 0 {
		return 0
	}
	return float64(e.source.Position()) / float64(e.source.Len()) * 100
}

// SetVolume sets the output level, 0..100
func (e *Engine) SetVolume(v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volumeLevel = clampInt(v, 0, 100)
	if e.volume != nil {
		setVolume(e.volume, float64(e.volumeLevel)/100)
	}
}

// SetBalance sets the stereo balance, -100 (left) .. 100 (right)
func (e *Engine) SetBalance(v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.balanceLevel = clampInt(v, -100, 100)
	if e.pan != nil {
		e.pan.Pan = float64(e.balanceLevel) / 100
	}
}

// SetPreamp sets the gain ahead of the equalizer, 0..100 mapping onto -12..+12 dB
// The preamp is part of the equalizer stage and has no effect while it is disabled
func (e *Engine) SetPreamp(v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.preampLevel = clampInt(v, 0, 100)
	if e.preamp != nil {
		e.preamp.Gain = e.preampGain()
	}
}

// SetEqBand sets the band centered at hz, 0..100 mapping onto -12..+12 dB
func (e *Engine) SetEqBand(hz, v int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.bandLevels[hz]; !ok {
		return fmt.Errorf("%w: %d", ErrBandNotFound, hz)
	}
	v = clampInt(v, 0, 100)
	e.bandLevels[hz] = v
	if e.eq != nil {
		e.eq.setGain(hz, sliderDB(v))
	}
	return nil
}

// EnableEq routes the signal through the equalizer
func (e *Engine) EnableEq() { e.setEq(true) }

// DisableEq bypasses the preamp and the equalizer without losing their settings
func (e *Engine) DisableEq() { e.setEq(false) }

func (e *Engine) setEq(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eqEnabled = on
	if e.eq != nil {
		e.eq.Bypass = !on
		e.preamp.Gain = e.preampGain()
	}
}

// preampGain is the effects.Gain factor for the stored preamp level, unity while the equalizer is off
func (e *Engine) preampGain() float64 {
	if !e.eqEnabled {
		return 0
	}
	return dbToGain(sliderDB(e.preampLevel)) - 1
}

// Status implements Player
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Status{
		Loaded:    e.source != nil,
		Playing:   e.playing,
		Volume:    e.volumeLevel,
		Balance:   e.balanceLevel,
		Preamp:    e.preampLevel,
		EqEnabled: e.eqEnabled,
	}
	if e.source != nil {
		s.Elapsed = e.format.SampleRate.D(e.source.Position())
		s.Duration = e.format.SampleRate.D(e.source.Len())
	}
	return s
}

// Stream implements beep.Streamer; it never drains so the speaker keeps pulling
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	var events []string
	if e.source == nil || !e.playing {
		e.mu.Unlock()
		clear(samples)
		return len(samples), true
	}

	n, ok = e.volume.Stream(samples)
	clear(samples[n:])

	e.sinceTick += n
	ended := !ok || e.source.Position() >= e.source.Len()
	if ended || e.sinceTick >= e.format.SampleRate.N(timeUpdateInterval) {
		e.sinceTick = 0
		events = append(events, EventTimeUpdate)
	}
	if ended {
		e.ctrl.Paused = true
		e.playing = false
		events = append(events, EventEnded)
	}
	e.mu.Unlock()

	e.emit(events...)
	return len(samples), true
}

// Err implements beep.Streamer
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return nil
	}
	return e.source.Err()
}

var _ Player = (*Engine)(nil)

package audio

import (
	"errors"
	"time"
)

// Sentinel errors
var (
	ErrNoTrack      = errors.New("no track loaded")
	ErrBandNotFound = errors.New("no equalizer band at frequency")
)

// Engine events, named after the media element events a skin script observes
const (
	EventPlaying    = "playing"
	EventTimeUpdate = "timeupdate"
	EventEnded      = "ended"
	EventFileLoaded = "fileLoaded"
)

// Bands are the ten equalizer center frequencies in Hz
// The first band is a low shelf, the last a high shelf, the rest peaking
var Bands = [10]int{60, 170, 310, 600, 1000, 3000, 6000, 12000, 14000, 16000}

// Transport controls playback position
type Transport interface {
	Play() error
	Pause() error
	Stop() error
	SeekToPercent(percent float64) error
}

// Params controls the signal chain; values use the skin scales
// volume and preamp 0..100, balance -100..100, band gains 0..100 (50 is flat)
type Params interface {
	SetVolume(v int)
	SetBalance(v int)
	SetPreamp(v int)
	SetEqBand(hz, v int) error
	EnableEq()
	DisableEq()
}

// Player is the audio surface bound to skin actions
type Player interface {
	Transport
	Params
	Status() Status
	On(event string, fn func())
}

// Status is a point-in-time view of the engine
type Status struct {
	Loaded    bool
	Playing   bool
	Elapsed   time.Duration
	Duration  time.Duration
	Volume    int
	Balance   int
	Preamp    int
	EqEnabled bool
}

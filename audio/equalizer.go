package audio

import (
	"math"

	"github.com/gopxl/beep"
)

type filterShape int

const (
	shapePeaking filterShape = iota
	shapeLowShelf
	shapeHighShelf
)

// biquad is one second-order section with per-channel direct form I state
type biquad struct {
	freq  float64
	shape filterShape
	gain  float64 // dB

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

// design computes RBJ cookbook coefficients, Q 1 for peaking and slope 1 for shelves
// Bands at or above Nyquist pass the signal through
func (f *biquad) design(rate beep.SampleRate) {
	if f.freq <= 0 || f.freq >= float64(rate)/2 {
		f.b0, f.b1, f.b2, f.a1, f.a2 = 1, 0, 0, 0, 0
		return
	}
	a := math.Pow(10, f.gain/40)
	w0 := 2 * math.Pi * f.freq / float64(rate)
	cosw, sinw := math.Cos(w0), math.Sin(w0)

	var b0, b1, b2, a0, a1, a2 float64
	alpha := sinw / 2
	k := 2 * math.Sqrt(a) * alpha * math.Sqrt2
	switch f.shape {
	case shapePeaking:
		b0, b1, b2 = 1+alpha*a, -2*cosw, 1-alpha*a
		a0, a1, a2 = 1+alpha/a, -2*cosw, 1-alpha/a
	case shapeLowShelf:
		b0 = a * ((a + 1) - (a-1)*cosw + k)
		b1 = 2 * a * ((a - 1) - (a+1)*cosw)
		b2 = a * ((a + 1) - (a-1)*cosw - k)
		a0 = (a + 1) + (a-1)*cosw + k
		a1 = -2 * ((a - 1) + (a+1)*cosw)
		a2 = (a + 1) + (a-1)*cosw - k
	case shapeHighShelf:
		b0 = a * ((a + 1) + (a-1)*cosw + k)
		b1 = -2 * a * ((a - 1) + (a+1)*cosw)
		b2 = a * ((a + 1) + (a-1)*cosw - k)
		a0 = (a + 1) - (a-1)*cosw + k
		a1 = 2 * ((a - 1) - (a+1)*cosw)
		a2 = (a + 1) - (a-1)*cosw - k
	}
	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = a1/a0, a2/a0
}

func (f *biquad) process(ch int, x float64) float64 {
	y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
	f.x2[ch], f.x1[ch] = f.x1[ch], x
	f.y2[ch], f.y1[ch] = f.y1[ch], y
	return y
}

func (f *biquad) reset() {
	f.x1, f.x2, f.y1, f.y2 = [2]float64{}, [2]float64{}, [2]float64{}, [2]float64{}
}

// equalizer runs the ten bands in series; gains change live between Stream calls
type equalizer struct {
	Streamer beep.Streamer
	Bypass   bool

	rate  beep.SampleRate
	bands [len(Bands)]biquad
}

func newEqualizer(s beep.Streamer, rate beep.SampleRate) *equalizer {
	eq := &equalizer{Streamer: s, rate: rate}
	for i, hz := range Bands {
		shape := shapePeaking
		switch i {
		case 0:
			shape = shapeLowShelf
		case len(Bands) - 1:
			shape = shapeHighShelf
		}
		eq.bands[i] = biquad{freq: float64(hz), shape: shape}
		eq.bands[i].design(rate)
	}
	return eq
}

// setGain updates one band in dB, reports false for an unknown frequency
func (eq *equalizer) setGain(hz int, db float64) bool {
	for i, f := range Bands {
		if f == hz {
			eq.bands[i].gain = db
			eq.bands[i].design(eq.rate)
			return true
		}
	}
	return false
}

func (eq *equalizer) gain(hz int) (float64, bool) {
	for i, f := range Bands {
		if f == hz {
			return eq.bands[i].gain, true
		}
	}
	return 0, false
}

func (eq *equalizer) reset() {
	for i := range eq.bands {
		eq.bands[i].reset()
	}
}

func (eq *equalizer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = eq.Streamer.Stream(samples)
	if eq.Bypass {
		return n, ok
	}
	for i := range samples[:n] {
		for ch := range 2 {
			v := samples[i][ch]
			for b := range eq.bands {
				v = eq.bands[b].process(ch, v)
			}
			samples[i][ch] = v
		}
	}
	return n, ok
}

func (eq *equalizer) Err() error { return eq.Streamer.Err() }

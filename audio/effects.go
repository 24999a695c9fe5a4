package audio

import (
	"math"

	"github.com/gopxl/beep/effects"
)

// setVolume maps a linear 0..1 level onto a base-2 Volume effect
// math.Log2(0) is -Inf, so 0 becomes silence
func setVolume(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(level), false
}

// sliderDB maps 0..100 onto -12..+12 dB
func sliderDB(v int) float64 {
	return float64(v)/100*24 - 12
}

// dbToGain converts decibels to a linear amplitude factor
func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

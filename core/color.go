package core

import (
	"strconv"
	"strings"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// RGBWhite is the default text color
var RGBWhite = RGB{255, 255, 255}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// ParseRGB reads the skin "r,g,b" color notation
// Missing or malformed channels yield ok=false
func ParseRGB(raw string) (RGB, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return RGB{}, false
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, false
		}
		ch[i] = uint8(min(max(n, 0), 255))
	}
	return RGB{ch[0], ch[1], ch[2]}, true
}

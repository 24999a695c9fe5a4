package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skinvm/core"
)

// Palette used by the terminal renderer, keyed by object kind
var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38} // Tokyo Night background
	RgbForeground = core.RGB{R: 192, G: 202, B: 245}
	RgbDefault    = core.RGB{R: 65, G: 72, B: 104}

	kindColors = map[string]core.RGB{
		"container":    {R: 36, G: 40, B: 59},
		"layout":       {R: 41, G: 46, B: 66},
		"group":        {R: 52, G: 59, B: 88},
		"layer":        {R: 68, G: 75, B: 106},
		"button":       {R: 122, G: 162, B: 247},
		"togglebutton": {R: 187, G: 154, B: 247},
		"text":         {R: 36, G: 40, B: 59},
		"slider":       {R: 158, G: 206, B: 106},
	}
)

// KindColor returns the fill color for an object kind
func KindColor(kind string) core.RGB {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return RgbDefault
}

// toTcell converts core.RGB to a tcell color
func toTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

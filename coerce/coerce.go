// Package coerce converts raw markup attribute strings into typed values
// All functions are total: malformed input yields a reported miss or a default, never a panic
package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/skinvm/core"
)

// Alpha bounds
const (
	AlphaMin = 0
	AlphaMax = 255
)

// ParseNumber parses a decimal or floating point number
// Empty, non-numeric, NaN and infinite input report ok=false
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt parses a number truncated toward zero, returning def on failure
func ParseInt(raw string, def int) int {
	f, ok := ParseNumber(raw)
	if !ok {
		return def
	}
	return truncate(f)
}

// truncate converts toward zero, saturating at the int32 range
func truncate(f float64) int {
	return int(math.Trunc(min(max(f, math.MinInt32), math.MaxInt32)))
}

// ParseBool maps "1" and "true" (case-insensitive) to true, everything else to false
func ParseBool(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "1" || strings.EqualFold(s, "true")
}

// ParseLength parses a pixel length ("12" or "12px")
// Anything else, including relative units, is Unset
func ParseLength(raw string) core.Length {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(strings.ToLower(s), "px")
	f, ok := ParseNumber(s)
	if !ok {
		return core.Unset
	}
	return core.Px(truncate(f))
}

// ParseAlpha parses an opacity in [0,255], clamping out-of-range input
// Unparseable input keeps the opaque default
func ParseAlpha(raw string) int {
	return ClampAlpha(ParseInt(raw, AlphaMax))
}

// ClampAlpha bounds an alpha value to [0,255]
func ClampAlpha(a int) int {
	return min(max(a, AlphaMin), AlphaMax)
}

// FormatPx renders a pixel length in CSS notation
func FormatPx(n int) string {
	return strconv.Itoa(n) + "px"
}

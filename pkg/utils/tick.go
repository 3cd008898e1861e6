package utils

import "math"

const tickEpsilon = 1e-9

// RoundToTick rounds val to the nearest multiple of tick. A zero tick leaves
// val untouched.
func RoundToTick(val, tick float64) float64 {
	if tick <= 0 {
		return val
	}
	return math.Round(val/tick) * tick
}

// IsValidTick reports whether val sits on the tick grid.
func IsValidTick(val, tick float64) bool {
	if tick <= 0 {
		return true
	}
	return math.Abs(val-RoundToTick(val, tick)) < tickEpsilon
}

package tiles

import "math"

// SplitZoom decomposes a fractional zoom level into the integer pyramid
// level actually rendered and the remaining fraction in [0,1).
func SplitZoom(zoom float64) (int, float64) {
	z := math.Floor(zoom)
	return int(z), zoom - z
}

// ZoomScale returns the visual magnification 2^fraction applied on top of
// the integer pyramid level, always in [1,2).
func ZoomScale(zoom float64) float64 {
	_, frac := SplitZoom(zoom)
	return math.Exp2(frac)
}

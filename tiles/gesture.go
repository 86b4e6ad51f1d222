package tiles

import "math"

// DefaultTapDistance is the largest pointer translation, in pixels on each
// axis, for a released gesture to count as a tap.
const DefaultTapDistance = 5.0

type GestureKind uint8

const (
	GesturePan GestureKind = iota
	GestureTap
)

// Gesture is the state of a finished drag over the viewport. Translation
// is the pointer movement since the press, Position the press position
// within the viewport, Viewport the viewport size in pixels.
type Gesture struct {
	Center      LatLng
	Zoom        float64
	TileSize    float64
	Translation Point
	Position    Point
	Viewport    Point
	TapDistance float64 // 0 means DefaultTapDistance
}

// GestureResult is either the coordinate under a tap or the viewport
// center after a pan.
type GestureResult struct {
	Kind      GestureKind
	Tapped    LatLng // set for GestureTap
	NewCenter LatLng // set for GesturePan
}

// ResolveGesture classifies a finished gesture and computes the coordinate
// it produces. A gesture is a tap only if the translation on both axes is
// strictly below the tap distance; a translation exactly at the threshold
// pans. Pan translation is divided by the continuous-zoom scale so equal
// finger movement covers equal world distance at any magnification.
func ResolveGesture(g Gesture) GestureResult {
	tap := g.TapDistance
	if tap == 0 {
		tap = DefaultTapDistance
	}
	zi, _ := SplitZoom(g.Zoom)
	scale := ZoomScale(g.Zoom)
	c := Project(g.Center, zi)

	if math.Abs(g.Translation.X) < tap && math.Abs(g.Translation.Y) < tap {
		dx := (g.Position.X - g.Viewport.X/2) / scale
		dy := (g.Position.Y - g.Viewport.Y/2) / scale
		return GestureResult{
			Kind: GestureTap,
			Tapped: Unproject(TileCoordinate{
				X: c.X + dx/g.TileSize,
				Y: c.Y + dy/g.TileSize,
			}, zi),
		}
	}

	dx := g.Translation.X / (g.TileSize * scale)
	dy := g.Translation.Y / (g.TileSize * scale)
	return GestureResult{
		Kind: GesturePan,
		NewCenter: Unproject(TileCoordinate{
			X: c.X - dx,
			Y: c.Y - dy,
		}, zi),
	}
}

package tiles

import (
	"fmt"
	"math"
)

const (
	// TileSize is the edge length of a map tile in pixels.
	TileSize = 256

	earthCircumference = 40075016.686 // meters at equator

	// MercatorLatMax is the highest latitude representable in the
	// Web-Mercator projection. The projection math diverges beyond it.
	MercatorLatMax = 85.05112878
)

// Tile identifies a map tile in the XYZ slippy-map scheme.
type Tile struct {
	X, Y, Zoom int
}

// Key returns the z/x/y cache key for the tile.
func (t Tile) Key() string {
	return fmt.Sprintf("%d/%d/%d", t.Zoom, t.X, t.Y)
}

// Valid reports whether the tile indices exist at the tile's zoom level.
func (t Tile) Valid() bool {
	if t.Zoom < 0 || t.Zoom > 30 {
		return false
	}
	n := 1 << uint(t.Zoom)
	return t.X >= 0 && t.X < n && t.Y >= 0 && t.Y < n
}

// LatLng represents a geographical point in degrees.
type LatLng struct {
	Lat, Lng float64
}

// TileCoordinate is a continuous position in the tile grid at a fixed
// integer zoom level. The integer part selects the tile, the fractional
// part the position within it.
type TileCoordinate struct {
	X, Y float64
}

// Point is a 2D pixel vector.
type Point struct {
	X, Y float64
}

// Project converts a geographical point to fractional tile-grid
// coordinates at the given zoom level, using the spherical Web-Mercator
// formula. Latitudes beyond MercatorLatMax produce non-finite results.
func Project(ll LatLng, zoom int) TileCoordinate {
	n := math.Exp2(float64(zoom))
	latRad := ll.Lat * math.Pi / 180
	return TileCoordinate{
		X: (ll.Lng + 180) / 360 * n,
		Y: (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n,
	}
}

// Unproject is the exact inverse of Project.
func Unproject(tc TileCoordinate, zoom int) LatLng {
	n := math.Exp2(float64(zoom))
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*tc.Y/n)))
	return LatLng{
		Lat: latRad * 180 / math.Pi,
		Lng: tc.X/n*360 - 180,
	}
}

// LatLngToTile returns the tile containing the given point.
func LatLngToTile(ll LatLng, zoom int) Tile {
	tc := Project(ll, zoom)
	return Tile{
		X:    int(math.Floor(tc.X)),
		Y:    int(math.Floor(tc.Y)),
		Zoom: zoom,
	}
}

// TileToLatLng returns the north-west corner of a tile.
func TileToLatLng(t Tile) LatLng {
	return Unproject(TileCoordinate{X: float64(t.X), Y: float64(t.Y)}, t.Zoom)
}

// WorldCoordinates converts a geographical point to continuous world pixel
// coordinates at a fractional zoom level.
func WorldCoordinates(ll LatLng, zoom float64) (float64, float64) {
	n := math.Exp2(zoom)
	latRad := ll.Lat * math.Pi / 180
	x := TileSize * n * (ll.Lng + 180) / 360
	y := TileSize * n * (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return x, y
}

// WorldToLatLng converts world pixel coordinates back to a geographical
// point.
func WorldToLatLng(x, y, zoom float64) LatLng {
	n := math.Exp2(zoom)
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*y/(TileSize*n))))
	return LatLng{
		Lat: latRad * 180 / math.Pi,
		Lng: x/(TileSize*n)*360 - 180,
	}
}

// MetersPerPixel returns the ground resolution at a given latitude and
// fractional zoom level.
func MetersPerPixel(lat, zoom float64) float64 {
	return earthCircumference * math.Cos(lat*math.Pi/180) / (math.Exp2(zoom) * TileSize)
}

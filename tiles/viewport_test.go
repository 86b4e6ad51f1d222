package tiles

import (
	"math"
	"testing"
)

func TestSplitZoom(t *testing.T) {
	zi, frac := SplitZoom(5.5)
	if zi != 5 || math.Abs(frac-0.5) > 1e-12 {
		t.Errorf("SplitZoom(5.5) = %d, %v", zi, frac)
	}
	zi, frac = SplitZoom(12)
	if zi != 12 || frac != 0 {
		t.Errorf("SplitZoom(12) = %d, %v", zi, frac)
	}
}

func TestZoomScale(t *testing.T) {
	if got := ZoomScale(5.5); math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Errorf("ZoomScale(5.5) = %v, want sqrt(2)", got)
	}
	if got := ZoomScale(7); got != 1 {
		t.Errorf("ZoomScale(7) = %v, want 1", got)
	}
}

func TestGridOddCentered(t *testing.T) {
	g := GridAt(TileCoordinate{X: 100, Y: 50}, 5, 256, 3)

	want := []Tile{
		{99, 49, 5}, {100, 49, 5}, {101, 49, 5},
		{99, 50, 5}, {100, 50, 5}, {101, 50, 5},
		{99, 51, 5}, {100, 51, 5}, {101, 51, 5},
	}
	if len(g.Tiles) != len(want) {
		t.Fatalf("got %d tiles, want %d", len(g.Tiles), len(want))
	}
	for i, tile := range want {
		if g.Tiles[i] != tile {
			t.Errorf("tile %d: got %+v, want %+v", i, g.Tiles[i], tile)
		}
	}

	// frac = 0 on both axes, so the grid shifts back half a tile.
	if g.OffsetX != -128 || g.OffsetY != -128 {
		t.Errorf("offsets (%v, %v), want (-128, -128)", g.OffsetX, g.OffsetY)
	}
}

func TestGridEvenAlignment(t *testing.T) {
	g := GridAt(TileCoordinate{X: 100.25, Y: 50.75}, 5, 256, 2)

	want := []Tile{
		{99, 50, 5}, {100, 50, 5},
		{99, 51, 5}, {100, 51, 5},
	}
	for i, tile := range want {
		if g.Tiles[i] != tile {
			t.Errorf("tile %d: got %+v, want %+v", i, g.Tiles[i], tile)
		}
	}

	// fracX = 0.25 keeps the seam left of center, fracY = 0.75 flips it.
	if math.Abs(g.OffsetX+64) > 1e-9 || math.Abs(g.OffsetY-64) > 1e-9 {
		t.Errorf("offsets (%v, %v), want (-64, 64)", g.OffsetX, g.OffsetY)
	}
}

func TestVisibleGridContainsCenter(t *testing.T) {
	center := LatLng{Lat: 51.507222, Lng: -0.1275}
	for _, zoom := range []float64{12, 12.7} {
		g := VisibleGrid(center, zoom, 256, 3)
		if len(g.Tiles) != 9 {
			t.Fatalf("zoom %v: got %d tiles", zoom, len(g.Tiles))
		}
		if want := LatLngToTile(center, 12); g.Tiles[4] != want {
			t.Errorf("zoom %v: middle tile %+v, want %+v", zoom, g.Tiles[4], want)
		}
	}
}

func TestVisibleGridFractionalZoomSameTiles(t *testing.T) {
	// The fraction only magnifies; the fetched pyramid level is floor(zoom).
	center := LatLng{Lat: -33.865143, Lng: 151.2099}
	a := VisibleGrid(center, 10, 256, 5)
	b := VisibleGrid(center, 10.99, 256, 5)
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Fatalf("tile %d differs between zoom 10 and 10.99: %+v vs %+v",
				i, a.Tiles[i], b.Tiles[i])
		}
	}
}

func TestMarkerOffset(t *testing.T) {
	center := Unproject(TileCoordinate{X: 10, Y: 10}, 5)
	loc := Unproject(TileCoordinate{X: 10.5, Y: 10.25}, 5)

	for _, zoom := range []float64{5, 5.9} {
		off := MarkerOffset(loc, center, zoom, 256)
		if math.Abs(off.X-128) > 1e-6 || math.Abs(off.Y-64) > 1e-6 {
			t.Errorf("zoom %v: offset (%v, %v), want (128, 64)", zoom, off.X, off.Y)
		}
	}
}

package tiles

import (
	"math"
	"testing"
)

func baseGesture() Gesture {
	return Gesture{
		Center:   Unproject(TileCoordinate{X: 10, Y: 10}, 5),
		Zoom:     5,
		TileSize: 256,
		Viewport: Point{X: 800, Y: 600},
	}
}

func TestTapPanBoundary(t *testing.T) {
	g := baseGesture()
	g.TapDistance = 5

	// Exactly at the threshold on one axis: a pan, the comparison is strict.
	g.Translation = Point{X: 5, Y: 0}
	if res := ResolveGesture(g); res.Kind != GesturePan {
		t.Errorf("translation (5,0) with tap distance 5: got %v, want pan", res.Kind)
	}

	g.Translation = Point{X: 4.9, Y: 4.9}
	if res := ResolveGesture(g); res.Kind != GestureTap {
		t.Errorf("translation (4.9,4.9) with tap distance 5: got %v, want tap", res.Kind)
	}
}

func TestTapDefaultDistance(t *testing.T) {
	g := baseGesture()
	g.Translation = Point{X: 4, Y: 4}
	if res := ResolveGesture(g); res.Kind != GestureTap {
		t.Errorf("translation (4,4): got %v, want tap", res.Kind)
	}
	g.Translation = Point{X: 6, Y: 0}
	if res := ResolveGesture(g); res.Kind != GesturePan {
		t.Errorf("translation (6,0): got %v, want pan", res.Kind)
	}
}

func TestPanInversion(t *testing.T) {
	g := baseGesture()
	g.Translation = Point{X: -256, Y: 0}

	res := ResolveGesture(g)
	if res.Kind != GesturePan {
		t.Fatalf("got %v, want pan", res.Kind)
	}

	// One tile dragged left moves the center one tile right.
	want := Unproject(TileCoordinate{X: 11, Y: 10}, 5)
	if math.Abs(res.NewCenter.Lat-want.Lat) > 1e-9 || math.Abs(res.NewCenter.Lng-want.Lng) > 1e-9 {
		t.Errorf("new center %+v, want %+v", res.NewCenter, want)
	}
}

func TestPanScaledByContinuousZoom(t *testing.T) {
	g := baseGesture()
	g.Zoom = 5.5
	g.Translation = Point{X: 100, Y: 0}

	res := ResolveGesture(g)
	if res.Kind != GesturePan {
		t.Fatalf("got %v, want pan", res.Kind)
	}

	// The drag is divided by 2^0.5 before it is applied in tile units.
	wantX := 10 - 100/(256*math.Sqrt2)
	got := Project(res.NewCenter, 5)
	if math.Abs(got.X-wantX) > 1e-9 {
		t.Errorf("new center tile x %v, want %v", got.X, wantX)
	}
	if math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("new center tile y %v, want 10", got.Y)
	}
}

func TestTapCoordinate(t *testing.T) {
	g := Gesture{
		Center:   Unproject(TileCoordinate{X: 10.5, Y: 10.5}, 5),
		Zoom:     5,
		TileSize: 256,
		Viewport: Point{X: 512, Y: 512},
		Position: Point{X: 384, Y: 128},
	}

	res := ResolveGesture(g)
	if res.Kind != GestureTap {
		t.Fatalf("got %v, want tap", res.Kind)
	}

	// Half a tile right of center, half a tile up.
	want := Unproject(TileCoordinate{X: 11, Y: 10}, 5)
	if math.Abs(res.Tapped.Lat-want.Lat) > 1e-9 || math.Abs(res.Tapped.Lng-want.Lng) > 1e-9 {
		t.Errorf("tapped %+v, want %+v", res.Tapped, want)
	}
}

func TestTapScaledByContinuousZoom(t *testing.T) {
	g := Gesture{
		Center:   Unproject(TileCoordinate{X: 10.5, Y: 10.5}, 5),
		Zoom:     5.5,
		TileSize: 256,
		Viewport: Point{X: 512, Y: 512},
		Position: Point{X: 384, Y: 256},
	}

	res := ResolveGesture(g)
	if res.Kind != GestureTap {
		t.Fatalf("got %v, want tap", res.Kind)
	}

	wantX := 10.5 + 128/(math.Sqrt2*256)
	got := Project(res.Tapped, 5)
	if math.Abs(got.X-wantX) > 1e-9 {
		t.Errorf("tapped tile x %v, want %v", got.X, wantX)
	}
}

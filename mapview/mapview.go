package mapview

import (
	"image"
	"log"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"slippymap/tiles"
)

// zoomStep is the zoom change applied per scroll-wheel notch.
const zoomStep = 0.25

// MapView is a pannable, continuously zoomable slippy-map widget. It owns
// the viewport state: Center, Zoom and Heading are plain fields mutated
// only here (pan, scroll) or by the embedding application. Gesture math is
// resolved by the tiles package; MapView applies the results.
type MapView struct {
	TileManager *tiles.TileManager
	Center      tiles.LatLng
	Zoom        float64
	MinZoom     float64
	MaxZoom     float64

	// UserLocation, when set, is drawn by Marker rotated to Heading
	// (degrees clockwise from north, passed through unvalidated).
	UserLocation *tiles.LatLng
	Heading      float64
	Marker       MarkerRenderer

	// OnTap receives the coordinate under a tap. OnPan receives the new
	// center after a completed drag.
	OnTap func(tiles.LatLng)
	OnPan func(tiles.LatLng)

	// GridSize fixes the number of tiles per row and column. Zero sizes
	// the grid to the viewport.
	GridSize int

	// TapDistance overrides tiles.DefaultTapDistance when positive.
	TapDistance float64

	size      image.Point
	grid      tiles.Grid
	imageOps  *tiles.ImageOpCache
	pressPos  f32.Point
	dragDelta f32.Point
	dragging  bool
	refresh   chan struct{}
}

// New returns a MapView over OpenStreetMap tiles with placeholder
// fallbacks, centered on London. refresh, if non-nil, receives a signal
// whenever a tile loads and the window should redraw.
func New(refresh chan struct{}) *MapView {
	mv := &MapView{
		Center:   tiles.LatLng{Lat: 51.507222, Lng: -0.1275}, // London
		Zoom:     12,
		MinZoom:  0,
		MaxZoom:  19,
		Marker:   DefaultMarker{},
		imageOps: tiles.NewImageOpCache(),
		refresh:  refresh,
	}
	mv.SetTileManager(tiles.NewTileManager(
		tiles.NewFallbackTileProvider(
			tiles.NewHTTPTileProvider(""),
			tiles.NewPlaceholderTileProvider(),
		),
		nil,
	))
	return mv
}

// SetTileManager swaps the tile source and rewires redraw notification.
func (mv *MapView) SetTileManager(tm *tiles.TileManager) {
	mv.TileManager = tm
	tm.SetOnLoadCallback(mv.invalidate)
	mv.imageOps.Clear()
	mv.updateVisibleTiles()
}

// SetZoom clamps the zoom to [MinZoom, MaxZoom] and refreshes the grid.
func (mv *MapView) SetZoom(zoom float64) {
	mv.Zoom = math.Max(mv.MinZoom, math.Min(zoom, mv.MaxZoom))
	mv.updateVisibleTiles()
}

// MetersPerPixel reports the ground resolution at the current center and
// zoom.
func (mv *MapView) MetersPerPixel() float64 {
	return tiles.MetersPerPixel(mv.Center.Lat, mv.Zoom)
}

func (mv *MapView) Layout(gtx layout.Context) layout.Dimensions {
	tag := mv

	// process pointer events
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
		x, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch x.Kind {
		case pointer.Press:
			mv.pressPos = x.Position
			mv.dragDelta = f32.Point{}
			mv.dragging = true
		case pointer.Drag:
			if mv.dragging {
				mv.dragDelta = x.Position.Sub(mv.pressPos)
			}
		case pointer.Scroll:
			if x.Scroll.Y < 0 {
				mv.zoomAround(x.Position, zoomStep)
			} else if x.Scroll.Y > 0 {
				mv.zoomAround(x.Position, -zoomStep)
			}
		case pointer.Release, pointer.Cancel:
			if mv.dragging {
				mv.dragging = false
				mv.finishGesture()
			}
		}
	}

	// Update size if changed
	if mv.size != gtx.Constraints.Max {
		mv.size = gtx.Constraints.Max
		mv.updateVisibleTiles()
	}

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, tag)

	mv.draw(gtx)

	return layout.Dimensions{Size: mv.size}
}

// finishGesture resolves the completed drag as a tap or a pan and applies
// the result.
func (mv *MapView) finishGesture() {
	res := tiles.ResolveGesture(tiles.Gesture{
		Center:      mv.Center,
		Zoom:        mv.Zoom,
		TileSize:    tiles.TileSize,
		Translation: tiles.Point{X: float64(mv.dragDelta.X), Y: float64(mv.dragDelta.Y)},
		Position:    tiles.Point{X: float64(mv.pressPos.X), Y: float64(mv.pressPos.Y)},
		Viewport:    tiles.Point{X: float64(mv.size.X), Y: float64(mv.size.Y)},
		TapDistance: mv.TapDistance,
	})
	mv.dragDelta = f32.Point{}
	mv.applyGesture(res)
}

func (mv *MapView) applyGesture(res tiles.GestureResult) {
	switch res.Kind {
	case tiles.GestureTap:
		if mv.OnTap != nil {
			mv.OnTap(res.Tapped)
		}
	case tiles.GesturePan:
		mv.Center = res.NewCenter
		mv.updateVisibleTiles()
		if mv.OnPan != nil {
			mv.OnPan(res.NewCenter)
		}
	}
}

// zoomAround changes the zoom by delta, keeping the world point under the
// pointer fixed on screen.
func (mv *MapView) zoomAround(pos f32.Point, delta float64) {
	oldZoom := mv.Zoom
	newZoom := math.Max(mv.MinZoom, math.Min(oldZoom+delta, mv.MaxZoom))
	if newZoom == oldZoom {
		return
	}

	offX := float64(pos.X) - float64(mv.size.X)/2
	offY := float64(pos.Y) - float64(mv.size.Y)/2

	worldX, worldY := tiles.WorldCoordinates(mv.Center, oldZoom)
	factor := math.Exp2(newZoom - oldZoom)
	newCenterX := (worldX+offX)*factor - offX
	newCenterY := (worldY+offY)*factor - offY

	mv.Center = tiles.WorldToLatLng(newCenterX, newCenterY, newZoom)
	mv.Zoom = newZoom
	mv.updateVisibleTiles()
}

func (mv *MapView) updateVisibleTiles() {
	if mv.size == (image.Point{}) {
		return
	}
	gs := mv.GridSize
	if gs <= 0 {
		gs = autoGridSize(mv.size, tiles.TileSize)
	}
	mv.grid = tiles.VisibleGrid(mv.Center, mv.Zoom, tiles.TileSize, gs)
	mv.TileManager.Prefetch(mv.grid.Tiles)
}

// autoGridSize picks an odd grid edge large enough to cover the viewport
// with a one-tile margin on each side.
func autoGridSize(size image.Point, tileSize int) int {
	px := max(size.X, size.Y)
	n := px/tileSize + 2
	if n%2 == 0 {
		n++
	}
	return n
}

func (mv *MapView) draw(gtx layout.Context) {
	zoomInt, _ := tiles.SplitZoom(mv.Zoom)
	scale := tiles.ZoomScale(mv.Zoom)
	cx := float64(mv.size.X) / 2
	cy := float64(mv.size.Y) / 2

	// Continuous zoom: everything below is drawn at the integer pyramid
	// level and magnified about the viewport center.
	zoomed := op.Affine(f32.Affine2D{}.Scale(
		f32.Pt(float32(cx), float32(cy)),
		f32.Pt(float32(scale), float32(scale)),
	)).Push(gtx.Ops)
	defer zoomed.Pop()

	// In-flight drag offset, divided by scale so the grid tracks the
	// pointer after magnification.
	var dragX, dragY float64
	if mv.dragging {
		dragX = float64(mv.dragDelta.X) / scale
		dragY = float64(mv.dragDelta.Y) / scale
	}

	c := tiles.Project(mv.Center, zoomInt)
	for _, t := range mv.grid.Tiles {
		if !t.Valid() {
			continue
		}
		img, err := mv.TileManager.GetTile(t)
		if err != nil {
			log.Printf("loading tile %s: %v", t.Key(), err)
			continue
		}

		x := cx + dragX + (float64(t.X)-c.X)*tiles.TileSize
		y := cy + dragY + (float64(t.Y)-c.Y)*tiles.TileSize
		pos := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
		mv.tileOp(t, img).Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		pos.Pop()
	}

	if mv.UserLocation != nil && mv.Marker != nil {
		off := tiles.MarkerOffset(*mv.UserLocation, mv.Center, mv.Zoom, tiles.TileSize)
		pos := f32.Pt(float32(cx+dragX+off.X), float32(cy+dragY+off.Y))
		inv := float32(1 / scale)
		// Inverse-scaled so the marker keeps its screen size at any
		// continuous-zoom magnification.
		tr := op.Affine(f32.Affine2D{}.
			Offset(pos).
			Scale(pos, f32.Pt(inv, inv)),
		).Push(gtx.Ops)
		mv.Marker.Layout(gtx, mv.Heading)
		tr.Pop()
	}
}

func (mv *MapView) tileOp(t tiles.Tile, img image.Image) paint.ImageOp {
	if cached, ok := mv.imageOps.Get(t.Key()); ok {
		return cached
	}
	imgOp := paint.NewImageOp(img)
	mv.imageOps.Set(t.Key(), imgOp)
	return imgOp
}

func (mv *MapView) invalidate() {
	mv.imageOps.Clear()
	if mv.refresh == nil {
		return
	}
	select {
	case mv.refresh <- struct{}{}:
	default:
	}
}

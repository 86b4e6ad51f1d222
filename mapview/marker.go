package mapview

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// MarkerRenderer draws the user-location marker centered on the origin of
// the current transform. heading is in degrees clockwise from north.
type MarkerRenderer interface {
	Layout(gtx layout.Context, heading float64) layout.Dimensions
}

// DefaultMarker is a filled dot with a heading wedge.
type DefaultMarker struct {
	Color  color.NRGBA // zero value means the default blue
	Radius int         // dot radius in pixels, 0 means 8
}

func (m DefaultMarker) Layout(gtx layout.Context, heading float64) layout.Dimensions {
	col := m.Color
	if col == (color.NRGBA{}) {
		col = color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	}
	r := m.Radius
	if r <= 0 {
		r = 8
	}

	// Heading wedge, rotated about the dot center.
	rot := op.Affine(f32.Affine2D{}.Rotate(f32.Point{}, float32(heading*math.Pi/180))).Push(gtx.Ops)
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(0, -2*float32(r)))
	p.LineTo(f32.Pt(0.75*float32(r), -0.5*float32(r)))
	p.LineTo(f32.Pt(-0.75*float32(r), -0.5*float32(r)))
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
	rot.Pop()

	// White halo behind the dot.
	halo := r + 2
	paint.FillShape(gtx.Ops, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		clip.Ellipse{Min: image.Pt(-halo, -halo), Max: image.Pt(halo, halo)}.Op(gtx.Ops))
	paint.FillShape(gtx.Ops, col,
		clip.Ellipse{Min: image.Pt(-r, -r), Max: image.Pt(r, r)}.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(2*r, 2*r)}
}

package tiles

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderTileProvider renders flat tiles labelled with their z/x/y
// index. It stands in for a network provider while real imagery loads.
type PlaceholderTileProvider struct {
	Background color.RGBA
	Border     color.RGBA
	Label      color.RGBA
}

func NewPlaceholderTileProvider() *PlaceholderTileProvider {
	return &PlaceholderTileProvider{
		Background: color.RGBA{0xe8, 0xee, 0xf4, 0xff},
		Border:     color.RGBA{0xb0, 0xb8, 0xc0, 0xff},
		Label:      color.RGBA{0x40, 0x48, 0x50, 0xff},
	}
}

func (p *PlaceholderTileProvider) GetTile(t Tile) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{p.Background}, image.Point{}, draw.Src)

	for _, r := range []image.Rectangle{
		image.Rect(0, 0, TileSize, 1),
		image.Rect(0, TileSize-1, TileSize, TileSize),
		image.Rect(0, 0, 1, TileSize),
		image.Rect(TileSize-1, 0, TileSize, TileSize),
	} {
		draw.Draw(img, r, &image.Uniform{p.Border}, image.Point{}, draw.Src)
	}

	p.drawLabel(img, t.Key())
	return img, nil
}

func (p *PlaceholderTileProvider) drawLabel(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(p.Label),
		Face: face,
	}
	w := d.MeasureString(text).Round()
	d.Dot = fixed.Point26_6{
		X: fixed.I((TileSize - w) / 2),
		Y: fixed.I(TileSize / 2),
	}
	d.DrawString(text)
}

package tiles

import "math"

// Grid is the block of tiles to draw for a viewport, in row-major order
// (y outer, x inner), together with the pixel offset that aligns the grid
// under the viewport center.
type Grid struct {
	Tiles            []Tile
	OffsetX, OffsetY float64
}

// VisibleGrid enumerates the gridSize×gridSize block of tiles around the
// center at the integer part of zoom. The block always contains the tile
// under the center point.
func VisibleGrid(center LatLng, zoom, tileSize float64, gridSize int) Grid {
	zi, _ := SplitZoom(zoom)
	return GridAt(Project(center, zi), zi, tileSize, gridSize)
}

// GridAt is VisibleGrid for an already-projected center.
func GridAt(c TileCoordinate, zoom int, tileSize float64, gridSize int) Grid {
	halfSpan := float64(gridSize-1) / 2
	g := Grid{Tiles: make([]Tile, 0, gridSize*gridSize)}
	for row := 0; row < gridSize; row++ {
		dy := float64(row) - halfSpan
		for col := 0; col < gridSize; col++ {
			dx := float64(col) - halfSpan
			g.Tiles = append(g.Tiles, Tile{
				X:    int(math.Floor(c.X + dx)),
				Y:    int(math.Floor(c.Y + dy)),
				Zoom: zoom,
			})
		}
	}
	g.OffsetX = gridShift(c.X-math.Floor(c.X), gridSize) * tileSize
	g.OffsetY = gridShift(c.Y-math.Floor(c.Y), gridSize) * tileSize
	return g
}

// gridShift positions the tile grid under the viewport center. Odd grids
// center on the tile containing the center point; even grids keep the seam
// between the two middle tiles through it. The even branch is a fixed
// convention: alternate formulas shift the grid by a whole tile in places.
func gridShift(frac float64, gridSize int) float64 {
	if gridSize%2 == 1 {
		return frac - 0.5
	}
	if frac > 0.5 {
		return 1 - frac
	}
	return -frac
}

// MarkerOffset is the pixel offset of loc from the viewport center at the
// integer part of zoom, before continuous-zoom scaling is applied.
func MarkerOffset(loc, center LatLng, zoom, tileSize float64) Point {
	zi, _ := SplitZoom(zoom)
	l := Project(loc, zi)
	c := Project(center, zi)
	return Point{
		X: (l.X - c.X) * tileSize,
		Y: (l.Y - c.Y) * tileSize,
	}
}

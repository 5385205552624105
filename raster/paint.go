// seehuhn.de/go/engrave - laser engraving toolpaths from raster images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// pixelCentres maps integer pixel coordinates to the centre of the
// corresponding device pixel.
var pixelCentres = matrix.Matrix{1, 0, 0, 1, 0.5, 0.5}

// Coverage thresholds for turning anti-aliased output into mask bits.
const (
	fillThreshold = 0.5 // pixels with at least this coverage are filled
	bandThreshold = 0.5 // pixels with more than this coverage are in a band
)

// Painter draws polygons given in pixel coordinates into masks.
// Polygon vertices refer to pixel centres.
//
// A Painter is not safe for concurrent use.
type Painter struct {
	// Cap is the end shape of band segments.  LineCapRound gives rounded
	// offset corners, LineCapSquare gives square ones.
	Cap graphics.LineCapStyle

	r *Rasteriser
}

// NewPainter returns a Painter drawing bands with round caps.
func NewPainter() *Painter {
	return &Painter{
		Cap: graphics.LineCapRound,
		r:   NewRasteriser(rect.Rect{}),
	}
}

func (p *Painter) prepare(m *Mask) {
	p.r.Reset(m.Clip())
	p.r.CTM = pixelCentres
}

// FillPolygon sets all pixels of m which lie inside poly or on its pixel
// chain.
func (p *Painter) FillPolygon(m *Mask, poly []image.Point) {
	p.prepare(m)
	p.r.FillNonZero(polygonPath(poly), func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c >= fillThreshold {
				m.Set(xMin+i, y, true)
			}
		}
	})
	DrawChain(m, poly, true)
}

// Band sets (v == true) or clears (v == false) every pixel within
// distance width/2 of one of the polygon edges, as well as the pixel
// chains of the polygons themselves.
func (p *Painter) Band(m *Mask, polys [][]image.Point, width float64, v bool) {
	if width > 0 {
		p.prepare(m)
		p.r.Width = width
		p.r.Cap = p.Cap
		p.r.StrokeSegments(polygonPath(polys...), func(y, xMin int, coverage []float32) {
			for i, c := range coverage {
				if c > bandThreshold {
					m.Set(xMin+i, y, v)
				}
			}
		})
	}
	for _, poly := range polys {
		DrawChain(m, poly, v)
	}
}

// polygonPath converts closed polygons to a path, one subpath each.
func polygonPath(polys ...[]image.Point) *path.Data {
	p := &path.Data{}
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		p = p.MoveTo(toVec(poly[0]))
		for _, pt := range poly[1:] {
			p = p.LineTo(toVec(pt))
		}
		p = p.Close()
	}
	return p
}

func toVec(pt image.Point) vec.Vec2 {
	return vec.Vec2{X: float64(pt.X), Y: float64(pt.Y)}
}

// DrawChain sets or clears the pixels on the straight lines connecting
// consecutive points of poly, including the closing line.
func DrawChain(m *Mask, poly []image.Point, v bool) {
	switch len(poly) {
	case 0:
		return
	case 1:
		m.Set(poly[0].X, poly[0].Y, v)
		return
	}
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		drawLine(m, a, b, v)
	}
}

// drawLine draws the pixels of a Bresenham line from a to b, inclusive.
func drawLine(m *Mask, a, b image.Point, v bool) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		m.Set(x, y, v)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

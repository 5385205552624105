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

package peel

import (
	"fmt"
	"image"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/engrave/contour"
	"seehuhn.de/go/engrave/raster"
)

// Corner selects the shape of offset corners.
type Corner int

const (
	// RoundCorners offsets every boundary pixel by a disc, which rounds
	// convex corners.
	RoundCorners Corner = iota

	// SquareCorners offsets every boundary pixel by a square, which keeps
	// axis-aligned corners sharp.
	SquareCorners
)

func (c Corner) String() string {
	switch c {
	case RoundCorners:
		return "round"
	case SquareCorners:
		return "square"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

func (c Corner) capStyle() graphics.LineCapStyle {
	if c == SquareCorners {
		return graphics.LineCapSquare
	}
	return graphics.LineCapRound
}

// Offsetter moves the boundary of raster areas by whole pixels.
//
// Offsetting is done on the raster: a band centred on the boundary
// polygons is painted into the mask and the new boundary is found by
// tracing the result again.  Features no wider than twice the offset
// disappear completely.
//
// An Offsetter is not safe for concurrent use.
type Offsetter struct {
	painter *raster.Painter
}

// NewOffsetter returns an Offsetter using the given corner shape.
func NewOffsetter(corner Corner) *Offsetter {
	p := raster.NewPainter()
	p.Cap = corner.capStyle()
	return &Offsetter{painter: p}
}

// Shrink removes the d outermost pixel layers along the given boundary
// polygons from m.  The boundary pixels themselves form the first layer.
func (o *Offsetter) Shrink(m *raster.Mask, polys []contour.Polygon, d int) {
	if d <= 0 {
		return
	}
	o.painter.Band(m, points(polys), float64(2*d-1), false)
}

// Grow adds d pixel layers to m outside the given boundary polygons.
func (o *Offsetter) Grow(m *raster.Mask, polys []contour.Polygon, d int) {
	if d <= 0 {
		return
	}
	o.painter.Band(m, points(polys), float64(2*d+1), true)
}

// Offset shrinks (d > 0) or grows (d < 0) m along the given polygons and
// returns the borders of the result.  An empty result means the area
// vanished.
func (o *Offsetter) Offset(m *raster.Mask, polys []contour.Polygon, d int) []contour.Polygon {
	switch {
	case d > 0:
		o.Shrink(m, polys, d)
	case d < 0:
		o.Grow(m, polys, -d)
	}
	return contour.Find(m).Polygons()
}

// OffsetPolygon fills poly and offsets the filled area by d.
func (o *Offsetter) OffsetPolygon(poly contour.Polygon, d int) []contour.Polygon {
	pad := 1 + max(-d, 0)
	m := raster.NewMask(poly.Bounds().Inset(-pad))
	o.painter.FillPolygon(m, poly)
	return o.Offset(m, []contour.Polygon{poly}, d)
}

// Fill sets all pixels inside poly or on its boundary.
func (o *Offsetter) Fill(m *raster.Mask, poly contour.Polygon) {
	o.painter.FillPolygon(m, poly)
}

func points(polys []contour.Polygon) [][]image.Point {
	res := make([][]image.Point, len(polys))
	for i, p := range polys {
		res[i] = p
	}
	return res
}

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

// Package testcases provides input images for tests and benchmarks.
//
// Every test case describes a binary image by a path which is filled or
// stroked in pixel coordinates: the unit square [x, x+1] × [y, y+1] is
// pixel (x, y).  Pixels covered by at least half are set.
package testcases

import (
	"image"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/engrave/raster"
)

// TestCase defines a single input image.
type TestCase struct {
	Name   string     // lowercase a-z and _ only
	Path   *path.Data // the geometry of the dark pixels
	Width  int        // image width in pixels
	Height int        // image height in pixels
	Op     Operation  // fill or stroke

	Shapes int // number of top-level solid regions
	Holes  int // number of holes, at any depth
}

// Operation is the rendering operation to apply to the path.
type Operation interface {
	isOperation()
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// Fill specifies a fill operation.
type Fill struct {
	Rule FillRule
}

func (Fill) isOperation() {}

// Stroke draws every segment of the path with the given width and caps.
type Stroke struct {
	Width float64
	Cap   graphics.LineCapStyle
}

func (Stroke) isOperation() {}

// Mask renders the test case.
func (tc TestCase) Mask() *raster.Mask {
	m := raster.NewMask(image.Rect(0, 0, tc.Width, tc.Height))
	r := raster.NewRasteriser(m.Clip())
	emit := func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c >= 0.5 {
				m.Set(xMin+i, y, true)
			}
		}
	}

	switch op := tc.Op.(type) {
	case Fill:
		if op.Rule == EvenOdd {
			r.FillEvenOdd(tc.Path, emit)
		} else {
			r.FillNonZero(tc.Path, emit)
		}
	case Stroke:
		r.Width = op.Width
		r.Cap = op.Cap
		r.StrokeSegments(tc.Path, emit)
	}
	return m
}

// Image renders the test case as dark shapes on a white background.
func (tc TestCase) Image() *image.Gray {
	return tc.Mask().Gray()
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// rect appends an axis-aligned rectangle as a closed subpath.
func rect(p *path.Data, x0, y0, x1, y1 float64) *path.Data {
	return p.MoveTo(pt(x0, y0)).
		LineTo(pt(x1, y0)).
		LineTo(pt(x1, y1)).
		LineTo(pt(x0, y1)).
		Close()
}

// rects builds a path from several rectangles, each given as x0, y0, x1, y1.
func rects(rs ...[4]float64) *path.Data {
	p := &path.Data{}
	for _, r := range rs {
		p = rect(p, r[0], r[1], r[2], r[3])
	}
	return p
}

// polygon builds a closed path through the given points.
func polygon(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p.Close()
}

// disc approximates a circle by a regular n-gon.
func disc(p *path.Data, cx, cy, r float64, n int) *path.Data {
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		q := pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
		if i == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p.Close()
}

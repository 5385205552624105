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

// Package contour extracts the borders of the set regions of a binary mask,
// together with their nesting hierarchy.
//
// Borders are traced with the border following algorithm of Suzuki and Abe
// (1985), using 8-connectivity for set pixels.  Every border is returned as
// a closed chain of pixel coordinates in which straight horizontal,
// vertical and diagonal runs are reduced to their end points.
package contour

import (
	"image"

	"seehuhn.de/go/engrave/raster"
)

// Polygon is a closed sequence of pixel coordinates.  The edge from the
// last point back to the first is implicit.  Polygons of one or two points
// describe single pixels and one pixel wide lines.
type Polygon []image.Point

// Bounds returns the smallest rectangle containing all pixels of the
// polygon.
func (p Polygon) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p[0], Max: p[0].Add(image.Pt(1, 1))}
	for _, pt := range p[1:] {
		r.Min.X = min(r.Min.X, pt.X)
		r.Min.Y = min(r.Min.Y, pt.Y)
		r.Max.X = max(r.Max.X, pt.X+1)
		r.Max.Y = max(r.Max.Y, pt.Y+1)
	}
	return r
}

// Contour is one traced border and its place in the hierarchy.
// Parent, FirstChild and Next are indices into the enclosing Tree,
// or -1 if there is no such contour.
type Contour struct {
	Points Polygon

	// Hole is set for borders between a set region and an enclosed
	// clear region.
	Hole bool

	Parent     int
	FirstChild int
	Next       int // next sibling with the same parent
}

// Tree holds all contours of a mask in discovery order: top to bottom,
// then left to right by the first pixel of each border.
type Tree []Contour

// Roots returns the indices of all top-level contours, in order.
func (t Tree) Roots() []int {
	var res []int
	for i := range t {
		if t[i].Parent < 0 {
			res = append(res, i)
		}
	}
	return res
}

// Children returns the indices of the direct children of contour i.
func (t Tree) Children(i int) []int {
	var res []int
	for c := t[i].FirstChild; c >= 0; c = t[c].Next {
		res = append(res, c)
	}
	return res
}

// Depth returns the nesting depth of contour i.  Top-level contours have
// depth 0.  Even depths are outer borders, odd depths are holes.
func (t Tree) Depth(i int) int {
	d := 0
	for p := t[i].Parent; p >= 0; p = t[p].Parent {
		d++
	}
	return d
}

// Polygons returns the point lists of all contours, in order.
func (t Tree) Polygons() []Polygon {
	res := make([]Polygon, len(t))
	for i := range t {
		res[i] = t[i].Points
	}
	return res
}

// Find traces every border in m.
func Find(m *raster.Mask) Tree {
	tr := newTracer(m)
	return tr.run()
}

// neighbour offsets, clockwise on screen (y pointing down), starting East
var dirs = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// tracer holds the label image of the Suzuki-Abe algorithm.  The image is
// padded by one clear pixel on every side.  Labels are 0 for background,
// 1 for set pixels not yet on a border, and ±NBD for border pixels.
type tracer struct {
	origin image.Point // image coordinates of label (1,1)
	w, h   int
	f      []int32

	// per border number: hole flag and parent border number
	hole   []bool
	parent []int32

	res       Tree
	lastChild []int // per contour, -1 if no children yet
	lastRoot  int

	chain []image.Point
}

func newTracer(m *raster.Mask) *tracer {
	r := m.Bounds()
	w, h := r.Dx()+2, r.Dy()+2
	f := make([]int32, w*h)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.Get(x, y) {
				f[(y-r.Min.Y+1)*w+(x-r.Min.X+1)] = 1
			}
		}
	}
	return &tracer{
		origin: r.Min,
		w:      w,
		h:      h,
		f:      f,
		// border 0 is unused, border 1 is the frame which acts as a hole
		hole:     []bool{false, true},
		parent:   []int32{0, 0},
		lastRoot: -1,
	}
}

func (t *tracer) at(p image.Point) int32 {
	return t.f[p.Y*t.w+p.X]
}

func (t *tracer) set(p image.Point, v int32) {
	t.f[p.Y*t.w+p.X] = v
}

func (t *tracer) run() Tree {
	nbd := int32(1)
	for i := 1; i < t.h-1; i++ {
		lnbd := int32(1)
		for j := 1; j < t.w-1; j++ {
			cur := image.Pt(j, i)
			fij := t.at(cur)
			if fij == 0 {
				continue
			}

			var from image.Point
			var isHole bool
			switch {
			case fij == 1 && t.f[i*t.w+j-1] == 0:
				from = image.Pt(j-1, i)
			case fij >= 1 && t.f[i*t.w+j+1] == 0:
				from = image.Pt(j+1, i)
				isHole = true
				if fij > 1 {
					lnbd = fij
				}
			default:
				if fij != 1 {
					lnbd = abs32(fij)
				}
				continue
			}

			nbd++
			var parent int32
			if isHole == t.hole[lnbd] {
				parent = t.parent[lnbd]
			} else {
				parent = lnbd
			}
			t.hole = append(t.hole, isHole)
			t.parent = append(t.parent, parent)

			t.follow(cur, from, nbd)
			t.record(isHole, parent)

			if v := t.at(cur); v != 1 {
				lnbd = abs32(v)
			}
		}
	}
	return t.res
}

// follow traces the border starting at start, where from is the clear
// neighbour through which the border was entered.  The visited pixels are
// left in t.chain.
func (t *tracer) follow(start, from image.Point, nbd int32) {
	t.chain = t.chain[:0]

	// 3.1: clockwise search for a set neighbour, starting at from
	d0 := dirIndex(start, from)
	found := -1
	for k := range 8 {
		d := (d0 + k) % 8
		if t.at(start.Add(dirs[d])) != 0 {
			found = d
			break
		}
	}
	if found < 0 {
		// isolated pixel
		t.set(start, -nbd)
		t.chain = append(t.chain, start)
		return
	}

	p1 := start.Add(dirs[found])
	p2 := p1
	p3 := start
	for {
		t.chain = append(t.chain, p3)

		// 3.3: counterclockwise search, starting after p2
		d2 := dirIndex(p3, p2)
		eastClear := false
		var p4 image.Point
		for k := 1; k <= 8; k++ {
			d := (d2 - k + 8) % 8
			q := p3.Add(dirs[d])
			if t.at(q) != 0 {
				p4 = q
				break
			}
			if d == 0 {
				eastClear = true
			}
		}

		// 3.4
		if eastClear {
			t.set(p3, -nbd)
		} else if t.at(p3) == 1 {
			t.set(p3, nbd)
		}

		// 3.5
		if p4 == start && p3 == p1 {
			return
		}
		p2, p3 = p3, p4
	}
}

// record stores the chain in t.chain as a new contour.
func (t *tracer) record(isHole bool, parentNBD int32) {
	idx := len(t.res)
	parent := int(parentNBD) - 2 // border 2 is contour 0; the frame maps to -1
	if parent < 0 {
		parent = -1
	}

	pts := compress(t.chain)
	for i := range pts {
		pts[i] = pts[i].Add(t.origin).Sub(image.Pt(1, 1))
	}
	t.res = append(t.res, Contour{
		Points:     pts,
		Hole:       isHole,
		Parent:     parent,
		FirstChild: -1,
		Next:       -1,
	})
	t.lastChild = append(t.lastChild, -1)

	if parent < 0 {
		if t.lastRoot >= 0 {
			t.res[t.lastRoot].Next = idx
		}
		t.lastRoot = idx
		return
	}
	if prev := t.lastChild[parent]; prev >= 0 {
		t.res[prev].Next = idx
	} else {
		t.res[parent].FirstChild = idx
	}
	t.lastChild[parent] = idx
}

// compress reduces straight runs of a closed chain to their end points.
// The first point is always kept.
func compress(chain []image.Point) Polygon {
	n := len(chain)
	if n <= 2 {
		return append(Polygon(nil), chain...)
	}
	res := Polygon{chain[0]}
	for k := 1; k < n; k++ {
		in := chain[k].Sub(chain[k-1])
		out := chain[(k+1)%n].Sub(chain[k])
		if in != out {
			res = append(res, chain[k])
		}
	}
	return res
}

// dirIndex returns the direction from p to its neighbour q.
func dirIndex(p, q image.Point) int {
	delta := q.Sub(p)
	for i, d := range dirs {
		if d == delta {
			return i
		}
	}
	panic("contour: pixels are not neighbours")
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

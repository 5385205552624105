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
	"seehuhn.de/go/engrave/contour"
	"seehuhn.de/go/engrave/raster"
)

// Compensate returns the area the beam centre may cover for the shape
// whose outer border is contour root of t.
//
// The shape is filled, every hole is removed after growing it by
// halfBeam pixels, and every island inside a hole is added back after
// shrinking it by halfBeam pixels.  This continues down the hierarchy
// with alternating parity.  The outer border itself is not moved; this
// is the first step of the Scheduler.
//
// The returned mask covers the bounding box of the root polygon and may
// be empty.
func (o *Offsetter) Compensate(t contour.Tree, root int, halfBeam int) *raster.Mask {
	m := raster.NewMask(t[root].Points.Bounds())
	o.Fill(m, t[root].Points)
	o.removeHoles(m, t, root, halfBeam)
	return m
}

// removeHoles handles the children of the solid contour parent.
func (o *Offsetter) removeHoles(m *raster.Mask, t contour.Tree, parent int, halfBeam int) {
	for _, hole := range t.Children(parent) {
		// The hole polygon runs through the solid pixels around the hole,
		// so the filled hole is already grown by one pixel.
		hm := raster.NewMask(m.Rect)
		o.Fill(hm, t[hole].Points)
		o.Grow(hm, []contour.Polygon{t[hole].Points}, halfBeam-1)
		m.AndNot(hm)

		for _, island := range t.Children(hole) {
			im := raster.NewMask(m.Rect)
			o.Fill(im, t[island].Points)
			o.Shrink(im, []contour.Polygon{t[island].Points}, halfBeam)
			o.removeHoles(im, t, island, halfBeam)
			m.Or(im)
		}
	}
}

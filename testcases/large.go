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

package testcases

import (
	"seehuhn.de/go/geom/path"
)

// largeCases contains test cases with bounding boxes > 65536 pixels
// to exercise Approach B (active edge list) in the rasteriser.
var largeCases = []TestCase{
	{
		Name:   "large_disc",
		Path:   disc(&path.Data{}, 256, 256, 200, 256),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
	{
		Name:   "large_ring",
		Path:   rects([4]float64{56, 56, 456, 456}, [4]float64{156, 156, 356, 356}),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 1,
		Holes:  1,
	},
	{
		Name:   "large_grid",
		Path:   rectangleGrid(4, 4, 512, 512, 8),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
		Shapes: 16,
	},
}

// rectangleGrid builds a grid of rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			p = rect(p,
				float64(col)*cellW+gap, float64(row)*cellH+gap,
				float64(col+1)*cellW-gap, float64(row+1)*cellH-gap)
		}
	}
	return p
}

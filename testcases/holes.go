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

import "seehuhn.de/go/geom/path"

// holeCases contains shapes with holes, and islands inside holes.
var holeCases = []TestCase{
	{
		Name:   "ring",
		Path:   rects([4]float64{8, 8, 56, 56}, [4]float64{24, 24, 40, 40}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 1,
		Holes:  1,
	},
	{
		Name: "two_holes",
		Path: rects(
			[4]float64{4, 4, 60, 36},
			[4]float64{12, 12, 24, 28},
			[4]float64{40, 12, 52, 28},
		),
		Width:  64,
		Height: 40,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 1,
		Holes:  2,
	},
	{
		// The island is part of the outer shape, nested in its hole.
		Name: "island",
		Path: rects(
			[4]float64{4, 4, 60, 60},
			[4]float64{14, 14, 50, 50},
			[4]float64{26, 26, 38, 38},
		),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 1,
		Holes:  1,
	},
	{
		Name:   "thin_ring",
		Path:   rects([4]float64{10, 10, 30, 30}, [4]float64{12, 12, 28, 28}),
		Width:  40,
		Height: 40,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 1,
		Holes:  1,
	},
	{
		Name:   "round_hole",
		Path:   disc(rect(&path.Data{}, 8, 8, 56, 56), 32, 32, 12, 48),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 1,
		Holes:  1,
	},
}

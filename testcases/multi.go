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

// multiCases contains images with several shapes.
var multiCases = []TestCase{
	{
		Name: "three_squares",
		Path: rects(
			[4]float64{4, 4, 16, 16},
			[4]float64{24, 4, 36, 16},
			[4]float64{44, 4, 56, 16},
		),
		Width:  64,
		Height: 24,
		Op:     Fill{Rule: NonZero},
		Shapes: 3,
	},
	{
		Name: "square_and_ring",
		Path: rects(
			[4]float64{4, 4, 20, 20},
			[4]float64{28, 4, 60, 36},
			[4]float64{36, 12, 52, 28},
		),
		Width:  64,
		Height: 40,
		Op:     Fill{Rule: EvenOdd},
		Shapes: 2,
		Holes:  1,
	},
	{
		// Squares meeting at a corner are connected.
		Name:   "corner_touch",
		Path:   rects([4]float64{4, 4, 12, 12}, [4]float64{12, 12, 20, 20}),
		Width:  24,
		Height: 24,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
}

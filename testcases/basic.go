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

// basicCases contains single solid shapes without holes.
var basicCases = []TestCase{
	{
		Name:   "square",
		Path:   rects([4]float64{10, 10, 30, 30}),
		Width:  40,
		Height: 40,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
	{
		Name:   "rectangle",
		Path:   rects([4]float64{4, 8, 60, 24}),
		Width:  64,
		Height: 32,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
	{
		Name:   "triangle",
		Path:   polygon(pt(8, 56), pt(32, 8), pt(56, 56)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
	{
		Name:   "diamond",
		Path:   polygon(pt(32, 4), pt(60, 32), pt(32, 60), pt(4, 32)),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
	{
		Name:   "disc",
		Path:   disc(&path.Data{}, 32, 32, 20, 64),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
}

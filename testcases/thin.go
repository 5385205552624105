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
	"seehuhn.de/go/pdf/graphics"
)

// thinCases contains features close to the size of the laser beam.
var thinCases = []TestCase{
	{
		Name:   "strip",
		Path:   rects([4]float64{8, 10, 56, 13}),
		Width:  64,
		Height: 24,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
	{
		Name:   "line",
		Path:   (&path.Data{}).MoveTo(pt(8, 12.5)).LineTo(pt(56, 12.5)),
		Width:  64,
		Height: 24,
		Op:     Stroke{Width: 1, Cap: graphics.LineCapButt},
		Shapes: 1,
	},
	{
		Name:   "diagonal",
		Path:   (&path.Data{}).MoveTo(pt(8, 8)).LineTo(pt(40, 40)),
		Width:  48,
		Height: 48,
		Op:     Stroke{Width: 1.5, Cap: graphics.LineCapRound},
		Shapes: 1,
	},
	{
		Name:   "dot",
		Path:   rects([4]float64{30, 30, 31, 31}),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		Shapes: 1,
	},
}

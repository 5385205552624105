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

package toolpath

import (
	"image"

	"seehuhn.de/go/engrave/raster"
	"seehuhn.de/go/engrave/scale"
)

// Interval is a run of set pixels in one row, from Start to End inclusive.
type Interval struct {
	Start, End int
}

// Row holds the intervals of one scanned row, left to right.
type Row struct {
	Y         int
	Intervals []Interval
}

// Rows scans every stride-th row of m, starting at the top row of the
// mask, and returns the rows which contain set pixels in ascending order.
func Rows(m *raster.Mask, stride int) []Row {
	stride = max(stride, 1)
	r := m.Bounds()

	var rows []Row
	for y := r.Min.Y; y < r.Max.Y; y += stride {
		var row Row
		start := -1
		for x := r.Min.X; x < r.Max.X; x++ {
			set := m.Get(x, y)
			switch {
			case set && start < 0:
				start = x
			case !set && start >= 0:
				row.Intervals = append(row.Intervals, Interval{start, x - 1})
				start = -1
			}
		}
		if start >= 0 {
			row.Intervals = append(row.Intervals, Interval{start, r.Max.X - 1})
		}
		if len(row.Intervals) > 0 {
			row.Y = y
			rows = append(rows, row)
		}
	}
	return rows
}

// Scan sweeps m row by row at beam spacing (linear mode).  The sweep
// direction alternates between consecutive non-empty rows, starting left
// to right.  Every interval is engraved separately, with the laser
// switched off and a dwell after each one.
func Scan(sc scale.Context, m *raster.Mask) []Segment {
	var res []Segment
	for k, row := range Rows(m, sc.BeamPx) {
		n := len(row.Intervals)
		for i := range n {
			iv := row.Intervals[i]
			entry, exit := iv.Start, iv.End
			if k%2 == 1 {
				iv = row.Intervals[n-1-i]
				entry, exit = iv.End, iv.Start
			}
			res = append(res,
				Segment{To: sc.ToMM(image.Pt(entry, row.Y)), Feed: Fast, Laser: On},
				Segment{To: sc.ToMM(image.Pt(exit, row.Y)), Feed: Slow, Laser: Off, Dwell: true},
			)
		}
	}
	return res
}

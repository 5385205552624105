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

// Package preview draws planned laser moves into a PDF file.
package preview

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/engrave/toolpath"
)

// PointsPerMM converts millimetres to PDF points.
const PointsPerMM = 72 / 25.4

// travelWidth is the line width of moves with the laser off, in mm.
const travelWidth = 0.02

// Options describes the page and the beam.
type Options struct {
	WidthMM, HeightMM float64
	BeamMM            float64
}

// Run is a maximal sequence of consecutive moves with the same laser
// state.  Points[0] is where the run starts.
type Run struct {
	Engrave bool
	Points  []vec.Vec2
}

// Runs splits a move stream, which starts at the origin with the laser
// off, into runs.  A move engraves if the laser is on while it is
// carried out, whatever its feed.
func Runs(segs []toolpath.Segment) []Run {
	var res []Run
	var pos vec.Vec2
	laser := false
	for _, s := range segs {
		if n := len(res); n == 0 || res[n-1].Engrave != laser {
			res = append(res, Run{Engrave: laser, Points: []vec.Vec2{pos}})
		}
		last := &res[len(res)-1]
		last.Points = append(last.Points, s.To)
		pos = s.To

		switch s.Laser {
		case toolpath.On:
			laser = true
		case toolpath.Off:
			laser = false
		}
	}
	return res
}

// Write creates a single page PDF file showing segs.  Engraved moves are
// drawn black at beam width, travel moves as thin grey lines.  The page
// has the physical size of the image, with the origin at the top left.
func Write(fname string, opt Options, segs []toolpath.Segment) error {
	paper := &pdf.Rectangle{
		URx: opt.WidthMM * PointsPerMM,
		URy: opt.HeightMM * PointsPerMM,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; moves use top-left.
	page.Transform(matrix.Matrix{PointsPerMM, 0, 0, -PointsPerMM, 0, paper.URy})

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	runs := Runs(segs)
	for _, engrave := range []bool{false, true} {
		if engrave {
			page.SetStrokeColor(color.DeviceGray(0))
			page.SetLineWidth(opt.BeamMM)
		} else {
			page.SetStrokeColor(color.DeviceGray(0.6))
			page.SetLineWidth(travelWidth)
		}
		drawn := false
		for _, run := range runs {
			if run.Engrave != engrave || len(run.Points) < 2 {
				continue
			}
			page.MoveTo(run.Points[0].X, run.Points[0].Y)
			for _, p := range run.Points[1:] {
				page.LineTo(p.X, p.Y)
			}
			drawn = true
		}
		if drawn {
			page.Stroke()
		}
	}

	return page.Close()
}

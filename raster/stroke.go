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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment represents a line segment in user coordinates
type strokeSegment struct {
	A, B vec.Vec2 // endpoints in user space
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// StrokeSegments renders every line segment of p as an independent stroke
// of thickness Width, with Cap at both ends.  Segments are never joined:
// the union of the capped segments is what gets painted.  A subpath
// without any non-zero segment becomes a dot (round caps) or an
// axis-aligned square (square caps).  Butt caps draw nothing for such
// subpaths.
//
// All outlines share one orientation, so the nonzero winding rule
// paints overlapping strokes exactly once.  The emit callback receives
// coverage row by row; its slice argument is valid only during the call.
func (r *Rasteriser) StrokeSegments(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.stroke = r.stroke[:0]
	r.strokeOff = r.strokeOff[:0]

	d := r.Width / 2
	if d <= 0 {
		return
	}

	var current, subpath vec.Vec2
	inSubpath := false
	drawn := false // current subpath produced at least one outline
	finish := func() {
		if inSubpath && !drawn {
			r.addDot(subpath, d)
		}
		inSubpath = false
		drawn = false
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			current = p.Coords[coordIdx]
			subpath = current
			inSubpath = true
			coordIdx++
		case path.CmdLineTo:
			next := p.Coords[coordIdx]
			coordIdx++
			if !inSubpath {
				continue
			}
			if r.addSegmentOutline(current, next, d) {
				drawn = true
			}
			current = next
		case path.CmdQuadTo:
			coordIdx += 2
		case path.CmdCubeTo:
			coordIdx += 3
		case path.CmdClose:
			if inSubpath && current != subpath {
				if r.addSegmentOutline(current, subpath, d) {
					drawn = true
				}
			}
			current = subpath
			finish()
		}
	}
	finish()

	r.fillStrokeOutlines(emit)
}

// addSegmentOutline appends the capped outline of the segment a→b.
// It reports false for zero-length segments, which are skipped.
func (r *Rasteriser) addSegmentOutline(a, b vec.Vec2, d float64) bool {
	delta := b.Sub(a)
	length := delta.Length()
	if length < zeroLengthThreshold {
		return false
	}
	t := delta.Mul(1 / length)
	seg := strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}}

	start := len(r.stroke)
	r.addCap(seg.A, seg.T.Mul(-1), d)
	r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)), seg.B.Add(seg.N.Mul(d)))
	r.addCap(seg.B, seg.T, d)
	r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)), seg.A.Sub(seg.N.Mul(d)))
	r.strokeOff = append(r.strokeOff, start)
	return true
}

// addDot appends the outline drawn for a subpath without orientation.
func (r *Rasteriser) addDot(pt vec.Vec2, d float64) {
	start := len(r.stroke)
	switch r.Cap {
	case graphics.LineCapRound:
		// clockwise, matching the segment outlines
		r.addArc(pt, d, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
	case graphics.LineCapSquare:
		r.addSquare(pt, vec.Vec2{X: 1, Y: 0}, d)
	default:
		return
	}
	r.strokeOff = append(r.strokeOff, start)
}

// addCap adds a line cap to the stroke outline at point P.
// T is the outward tangent direction (away from the line).
// d is half the stroke width.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X} // normal (90° CCW from T)

	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		// semicircle from N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addArc adds arc vertices to the stroke outline.
// startDir is the unit vector from center to arc start and sweep is the
// sweep angle in radians (positive = CCW).
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius, Y: 0}).Length(),
		r.transformLinear(vec.Vec2{X: 0, Y: radius}).Length(),
	)

	n := 1
	if devRadius >= r.Flatness {
		// A chord subtending θ deviates from the circle by r(1-cos(θ/2)),
		// which must stay below the flatness tolerance.
		angleStep := 2 * math.Acos(1-r.Flatness/devRadius)
		if angleStep <= 0 || math.IsNaN(angleStep) {
			angleStep = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/angleStep)), 1)
	}

	dt := sweep / float64(n)
	startI := 0
	if !includeStart {
		startI = 1
	}
	for i := startI; i <= n; i++ {
		cos, sin := math.Cos(float64(i)*dt), math.Sin(float64(i)*dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}

// addSquare adds a square of side 2d centred at center, oriented by T.
func (r *Rasteriser) addSquare(center vec.Vec2, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	r.stroke = append(r.stroke,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}

// transformLinear applies the linear part of the CTM.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// fillStrokeOutlines fills all collected outline polygons as one compound
// path with the nonzero winding rule.
func (r *Rasteriser) fillStrokeOutlines(emit func(y, xMin int, coverage []float32)) {
	if len(r.strokeOff) == 0 {
		return
	}

	r.beginEdges()
	for i, start := range r.strokeOff {
		end := len(r.stroke)
		if i+1 < len(r.strokeOff) {
			end = r.strokeOff[i+1]
		}
		poly := r.stroke[start:end]
		if len(poly) < 3 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	r.scan(xMin, xMax, yMin, yMax, fillNonZero, emit)
}

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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts polygonal paths to pixel coverage values, the
// fraction of each pixel's area inside the filled or stroked path.
// Internal buffers grow as needed and are reused between calls.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output in device coordinates.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the arc approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke thickness in user-space units.
	Width float64

	// Cap is the shape drawn at both ends of every stroked segment.
	Cap graphics.LineCapStyle

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (Approach A). Larger paths use the active edge
	// list (Approach B).
	smallPathThreshold int

	cover     []float32  // cover change per pixel; reused as output
	area      []float32  // area within pixel
	edges     []edge     // edge list for the current path
	activeIdx []int      // indices of active edges (Approach B)
	rowXMax   []int      // per-scanline maximum x with edge contribution
	crossings []float64  // y values where an edge crosses pixel columns
	stroke    []vec.Vec2 // stroke outline vertices, all polygons contiguous
	strokeOff []int      // start index of each outline polygon in stroke

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasteriser returns a Rasteriser for the given clip rectangle.
// Strokes default to width 1 with round caps.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1.0,
		Cap:      graphics.LineCapRound,

		smallPathThreshold: smallPathThreshold,
	}
}

// Reset prepares the Rasteriser for a new clip rectangle, restoring the
// default parameters but keeping the capacity of all internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapRound

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
	r.stroke = r.stroke[:0]
	r.strokeOff = r.strokeOff[:0]
}

// FillNonZero rasterises the path using the nonzero winding rule.
// Curve segments are ignored; the path must consist of lines.
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillNonZero, emit)
}

// FillEvenOdd rasterises the path using the even-odd rule.
// Curve segments are ignored; the path must consist of lines.
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillEvenOdd, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasteriser) fill(p *path.Data, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()

	var current, subpath vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[coordIdx]
			subpath = current
			coordIdx++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++
		case path.CmdQuadTo:
			coordIdx += 2
		case path.CmdCubeTo:
			coordIdx += 3
		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
		}
	}

	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	r.scan(xMin, xMax, yMin, yMax, rule, emit)
}

// scan picks the accumulation strategy based on the bounding box size.
func (r *Rasteriser) scan(xMin, xMax, yMin, yMax int, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, rule, emit)
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
}

// edgeBounds returns the device bounding box of the collected edges,
// clamped to the clip rectangle.
func (r *Rasteriser) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms a user-space segment to device space and records it.
// Horizontal edges do not contribute coverage and are dropped.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin, r.edgeDevXMax = min(dx0, dx1), max(dx0, dx1)
		r.edgeDevYMin, r.edgeDevYMax = min(dy0, dy1), max(dy0, dy1)
		r.edgeBBoxFirst = false
		return
	}
	r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
	r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
	r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
	r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
}

// Coverage accumulation model:
//
// For each pixel two values are tracked:
//   cover: signed vertical extent of the edges crossing this pixel column
//   area:  cover weighted by the distance of the crossing from the right
//
// Final coverage is computed left to right:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
//
// The result is the signed area of the path inside each pixel, clamped
// to [0,1] (nonzero) or folded (even-odd).

// accumulateEdge adds one edge's contribution within scanline y to the
// cover and area buffers, which are indexed by x - bboxXMin.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		// entirely left of the box: full cover enters at column 0
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		accumulateSpan(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge crosses several pixel columns: split it where it meets
	// integer x values and handle each piece separately.
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		yMid := (y0 + y1) / 2
		pix := int(math.Floor(e.x0 + e.dxdy*(yMid-e.y0)))
		accumulateSpan(e, y0, y1, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSpan handles the part of an edge between yTop and yBot, which
// lies within the single pixel column pix.
func accumulateSpan(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline turns accumulated cover/area values into coverage,
// in place.
func integrateScanline(cover, area []float32, rule fillRule) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == fillEvenOdd {
			// 1 - |1 - (raw mod 2)|
			mod := raw - 2*float32(int(raw/2))
			raw = 1 - abs32(1-mod)
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the non-zero portion of coverage and its offset,
// or nil if all values are zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// midX returns the pixel column of the edge's midpoint within scanline y,
// clamped to [xMin, xMax).
func (e *edge) midX(y, xMin, xMax int) (int, bool) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return 0, false
	}
	x := int(math.Floor(e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)))
	return min(max(x, xMin), xMax-1), true
}

// fillSmallPath rasterises using 2D buffers (Approach A).
// Used when width*height < smallPathThreshold.
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMax {
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]

		edgeYMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		edgeYMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			rowOffset := row * width
			r.accumulateEdge(e, y, r.cover[rowOffset:rowOffset+width], r.area[rowOffset:rowOffset+width], xMin, xMax)
			if x, ok := e.midX(y, xMin, xMax); ok {
				r.rowXMax[row] = max(r.rowXMax[row], x-xMin)
			}
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue // no edges touched this row
		}
		rowOffset := row * width
		coverage := r.cover[rowOffset : rowOffset+width]
		integrateScanline(coverage, r.area[rowOffset:rowOffset+width], rule)
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises using 1D buffers and an active edge list
// (Approach B). Used when width*height >= smallPathThreshold.
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)

		for nextEdge < len(r.edges) && min(r.edges[nextEdge].y0, r.edges[nextEdge].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				// finished: swap-remove from the active list
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if _, ok := e.midX(y, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area, rule)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Default values for rasteriser parameters.
const (
	// defaultFlatness is the arc flattening tolerance in device pixels.
	// Offset bands are only a few pixels wide, so this is much finer than
	// what a renderer would need.
	defaultFlatness = 0.05
)

// Numerical tolerances for the rasteriser.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (Approach A).
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimum length for a stroke segment.
	zeroLengthThreshold = 1e-10
)

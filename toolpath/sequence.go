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

	"seehuhn.de/go/engrave/contour"
	"seehuhn.de/go/engrave/peel"
	"seehuhn.de/go/engrave/scale"
)

// Sequencer converts peeled shapes into moves (vector mode).
//
// Tracks are engraved in order.  Between tracks the laser stays on if the
// next track starts within one beam width of the current position on both
// axes; otherwise it is switched off for the travel move.  Every shape
// starts from the machine origin and ends with the laser off.
type Sequencer struct {
	Scale scale.Context
}

// Sequence returns the moves for all shapes, in order.
func (s Sequencer) Sequence(shapes []*peel.Shape) []Segment {
	var res []Segment
	for _, shape := range shapes {
		res = append(res, s.Shape(shape)...)
	}
	return res
}

// Shape returns the moves for a single shape.
func (s Sequencer) Shape(shape *peel.Shape) []Segment {
	q := &sequencer{scale: s.Scale}
	for _, level := range shape.Levels {
		for _, track := range level.Tracks {
			q.track(track)
		}
	}
	q.laserOff()
	return q.out
}

type sequencer struct {
	scale scale.Context
	pos   image.Point // pixels
	laser bool
	out   []Segment
}

func (q *sequencer) track(track contour.Polygon) {
	if len(track) == 0 {
		return
	}
	beam := q.scale.BeamPx

	first := track[0]
	if q.laser && within(q.pos, first, beam) {
		q.move(first, Fast, Unchanged)
	} else {
		q.laserOff()
		q.move(first, Fast, On)
		q.laser = true
	}

	for _, p := range track[1:] {
		q.move(p, Slow, Unchanged)
	}

	// Re-extraction may leave a gap before the implicit closing edge.
	if len(track) > 2 && !within(track[len(track)-1], first, 2*beam) {
		q.move(first, Slow, Unchanged)
	}
}

func (q *sequencer) move(p image.Point, feed Feed, laser Laser) {
	q.out = append(q.out, Segment{To: q.scale.ToMM(p), Feed: feed, Laser: laser})
	q.pos = p
}

// laserOff switches the laser off at the current position.  The switch is
// attached to the previous move if that move left the laser alone.
func (q *sequencer) laserOff() {
	if !q.laser {
		return
	}
	q.laser = false
	if n := len(q.out); n > 0 && q.out[n-1].Laser == Unchanged {
		q.out[n-1].Laser = Off
		return
	}
	q.out = append(q.out, Segment{To: q.scale.ToMM(q.pos), Feed: Slow, Laser: Off})
}

// within reports whether a and b differ by at most d on both axes.
func within(a, b image.Point, d int) bool {
	return abs(a.X-b.X) <= d && abs(a.Y-b.Y) <= d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

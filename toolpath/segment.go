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

// Package toolpath orders engraving tracks into laser head motions.
//
// Two planners are provided.  The [Sequencer] follows the concentric
// levels computed by package peel (vector mode), and [Scan] sweeps the
// area row by row in alternating directions (linear mode).  Both produce
// a stream of [Segment] values in millimetres.
package toolpath

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Feed is the speed class of a move.
type Feed int

const (
	Fast Feed = iota // travel with the laser off
	Slow             // engraving
)

func (f Feed) String() string {
	switch f {
	case Fast:
		return "fast"
	case Slow:
		return "slow"
	default:
		return fmt.Sprintf("Feed(%d)", int(f))
	}
}

// Laser is the laser state after a move has arrived.
type Laser int

const (
	Unchanged Laser = iota
	On
	Off
)

func (l Laser) String() string {
	switch l {
	case Unchanged:
		return "unchanged"
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return fmt.Sprintf("Laser(%d)", int(l))
	}
}

// Segment is a straight move of the laser head.
type Segment struct {
	To    vec.Vec2 // target in millimetres
	Feed  Feed
	Laser Laser

	// Dwell requests a pause after the laser has been switched, to let
	// the laser turn off completely before the next move.
	Dwell bool
}

func (s Segment) String() string {
	res := fmt.Sprintf("%s (%.2f, %.2f)", s.Feed, s.To.X, s.To.Y)
	if s.Laser != Unchanged {
		res += " laser " + s.Laser.String()
	}
	if s.Dwell {
		res += " dwell"
	}
	return res
}

// Stats summarises a segment stream.
type Stats struct {
	Segments  int
	LaserOn   int // number of times the laser is switched on
	FastMM    float64
	EngraveMM float64
}

// Measure computes the statistics of segs, starting at the origin.
func Measure(segs []Segment) Stats {
	st := Stats{Segments: len(segs)}
	var pos vec.Vec2
	for _, s := range segs {
		d := s.To.Sub(pos).Length()
		if s.Feed == Fast {
			st.FastMM += d
		} else {
			st.EngraveMM += d
		}
		if s.Laser == On {
			st.LaserOn++
		}
		pos = s.To
	}
	return st
}

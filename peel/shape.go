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

// Package peel computes concentric engraving tracks for solid shapes.
//
// Each top-level shape is reduced to the area the beam centre may visit
// (see [Offsetter.Compensate]), moved inwards by half a beam, and then
// repeatedly traced and eroded by a full beam width until nothing is left.
// The traced borders of each round form one [Level].
package peel

import (
	"errors"

	"seehuhn.de/go/engrave/contour"
)

// ErrStalled is returned if an erosion step does not reduce the area of a
// shape.
var ErrStalled = errors.New("erosion did not reduce the shape area")

// Level holds the borders traced in one erosion round.
type Level struct {
	Tracks []contour.Polygon
}

// Shape is a top-level solid region together with its engraving levels,
// outermost level first.
type Shape struct {
	// Index is the position of the shape's outer border in the contour
	// tree.
	Index int

	Outline contour.Polygon
	Levels  []Level
}

// Empty reports whether the shape vanished completely.
func (s *Shape) Empty() bool {
	return len(s.Levels) == 0
}

// NumTracks returns the total number of tracks over all levels.
func (s *Shape) NumTracks() int {
	n := 0
	for _, l := range s.Levels {
		n += len(l.Tracks)
	}
	return n
}

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

// Package scale relates image pixels to physical millimetres.
package scale

import (
	"errors"
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrAspectMismatch is wrapped by AspectMismatchError.
	ErrAspectMismatch = errors.New("image size in mm is not proportional to size in pixels")

	// ErrBeamTooSmall indicates that the beam is narrower than half a pixel.
	ErrBeamTooSmall = errors.New("laser beam is narrower than half a pixel")

	// ErrInvalidSize indicates a non-positive image or beam size.
	ErrInvalidSize = errors.New("image and beam sizes must be positive")
)

// AspectMismatchError is returned when the millimetres per pixel differ
// between the two image axes.  The estimated sizes are what each axis
// would need to be to match the scale of the other axis.
type AspectMismatchError struct {
	WidthPx, HeightPx int

	WidthMM, HeightMM       float64 // as provided
	EstWidthMM, EstHeightMM float64 // estimated from the other axis
}

func (e *AspectMismatchError) Error() string {
	return fmt.Sprintf("%s: image is %dx%d px, "+
		"width given as %gmm (estimated from height: %fmm), "+
		"height given as %gmm (estimated from width: %fmm)",
		ErrAspectMismatch, e.WidthPx, e.HeightPx,
		e.WidthMM, e.EstWidthMM, e.HeightMM, e.EstHeightMM)
}

func (e *AspectMismatchError) Unwrap() error {
	return ErrAspectMismatch
}

// Context holds the scale of one conversion run.  The same scale applies
// to both axes.
type Context struct {
	MMPerPixel float64

	BeamMM     float64
	BeamPx     int // beam diameter in pixels, rounded
	HalfBeamPx int // half beam in pixels, rounded up at .5
}

// New validates the physical size of an image and derives the scale for
// the given beam diameter.  The millimetres per pixel must be exactly
// equal on both axes.
func New(size image.Point, widthMM, heightMM, beamMM float64) (Context, error) {
	if size.X <= 0 || size.Y <= 0 || !(widthMM > 0) || !(heightMM > 0) || !(beamMM > 0) {
		return Context{}, ErrInvalidSize
	}

	mmppX := widthMM / float64(size.X)
	mmppY := heightMM / float64(size.Y)
	if mmppX != mmppY {
		return Context{}, &AspectMismatchError{
			WidthPx:     size.X,
			HeightPx:    size.Y,
			WidthMM:     widthMM,
			HeightMM:    heightMM,
			EstWidthMM:  float64(size.X) * mmppY,
			EstHeightMM: float64(size.Y) * mmppX,
		}
	}

	beam := beamMM / mmppX
	c := Context{
		MMPerPixel: mmppX,
		BeamMM:     beamMM,
		BeamPx:     int(math.Round(beam)),
		HalfBeamPx: int(math.Round(beam/2 + 0.5)),
	}
	if c.BeamPx == 0 {
		return Context{}, fmt.Errorf("%w: %gmm at %gmm per pixel", ErrBeamTooSmall, beamMM, mmppX)
	}
	return c, nil
}

// Matrix returns the transformation from pixel coordinates to millimetres.
func (c Context) Matrix() matrix.Matrix {
	return matrix.Matrix{c.MMPerPixel, 0, 0, c.MMPerPixel, 0, 0}
}

// ToMM converts a pixel position to millimetres.  Every point is converted
// on its own, so no rounding error accumulates along a path.
func (c Context) ToMM(p image.Point) vec.Vec2 {
	m := c.Matrix()
	x, y := float64(p.X), float64(p.Y)
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

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

package scale

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestBeamRounding(t *testing.T) {
	// 50mm over 200px gives 0.25mm per pixel
	cases := []struct {
		beamMM   float64
		beamPx   int
		halfBeam int
	}{
		{0.125, 1, 1},
		{0.25, 1, 1},
		{0.5, 2, 2},
		{0.75, 3, 2},
		{1.0, 4, 3},
		{1.25, 5, 3},
	}
	for _, c := range cases {
		sc, err := New(image.Pt(200, 100), 50, 25, c.beamMM)
		if err != nil {
			t.Errorf("beam %g: %v", c.beamMM, err)
			continue
		}
		if sc.MMPerPixel != 0.25 {
			t.Errorf("beam %g: %g mm per pixel", c.beamMM, sc.MMPerPixel)
		}
		if sc.BeamPx != c.beamPx || sc.HalfBeamPx != c.halfBeam {
			t.Errorf("beam %g: got %d/%d px, want %d/%d",
				c.beamMM, sc.BeamPx, sc.HalfBeamPx, c.beamPx, c.halfBeam)
		}
	}
}

func TestBeamTooSmall(t *testing.T) {
	_, err := New(image.Pt(200, 100), 50, 25, 0.1)
	if !errors.Is(err, ErrBeamTooSmall) {
		t.Errorf("got %v, want ErrBeamTooSmall", err)
	}
}

func TestAspectMismatch(t *testing.T) {
	_, err := New(image.Pt(200, 100), 50, 30, 0.5)
	if !errors.Is(err, ErrAspectMismatch) {
		t.Fatalf("got %v, want ErrAspectMismatch", err)
	}

	var e *AspectMismatchError
	if !errors.As(err, &e) {
		t.Fatal("error is not an AspectMismatchError")
	}
	if e.WidthPx != 200 || e.HeightPx != 100 || e.WidthMM != 50 || e.HeightMM != 30 {
		t.Errorf("wrong fields: %+v", e)
	}
	if math.Abs(e.EstWidthMM-60) > 1e-9 || math.Abs(e.EstHeightMM-25) > 1e-9 {
		t.Errorf("estimates %g/%g, want 60/25", e.EstWidthMM, e.EstHeightMM)
	}
}

// TestNoTolerance checks that a tiny difference between the axes is
// rejected.
func TestNoTolerance(t *testing.T) {
	_, err := New(image.Pt(200, 100), 50, 25.000001, 0.5)
	if !errors.Is(err, ErrAspectMismatch) {
		t.Errorf("got %v, want ErrAspectMismatch", err)
	}
}

func TestInvalidSize(t *testing.T) {
	cases := []struct {
		size              image.Point
		width, height, mm float64
	}{
		{image.Pt(0, 100), 50, 25, 0.5},
		{image.Pt(200, 100), 0, 25, 0.5},
		{image.Pt(200, 100), 50, -25, 0.5},
		{image.Pt(200, 100), 50, 25, 0},
		{image.Pt(200, 100), math.NaN(), 25, 0.5},
	}
	for _, c := range cases {
		if _, err := New(c.size, c.width, c.height, c.mm); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("%v %g %g %g: got %v", c.size, c.width, c.height, c.mm, err)
		}
	}
}

func TestToMM(t *testing.T) {
	sc, err := New(image.Pt(1000, 500), 100, 50, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	for x := range 1000 {
		p := sc.ToMM(image.Pt(x, 499-x/2))
		if p.X != float64(x)*sc.MMPerPixel || p.Y != float64(499-x/2)*sc.MMPerPixel {
			t.Fatalf("pixel %d: got %v", x, p)
		}
	}
}

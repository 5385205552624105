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
	"fmt"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, threshold := range []int{1 << 30, 0} {
		t.Run(fmt.Sprintf("threshold%d", threshold), func(t *testing.T) {
			r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})
			r.smallPathThreshold = threshold

			coverage := make([]float32, 10)
			r.FillNonZero(trianglePath, func(y, xMin int, cov []float32) {
				if y == 0 {
					copy(coverage[xMin:], cov)
				}
			})

			const epsilon = 1e-6
			for x := range 10 {
				expected := float32(2*x+1) / 20.0
				if math.Abs(float64(coverage[x]-expected)) > epsilon {
					t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
				}
			}
		})
	}
}

// render collects the coverage of a fill into a w×h buffer.
func render(r *Rasteriser, w, h int, fill func(emit func(y, xMin int, coverage []float32))) []float32 {
	buf := make([]float32, w*h)
	fill(func(y, xMin int, coverage []float32) {
		copy(buf[y*w+xMin:], coverage)
	})
	return buf
}

func ring(cx, cy, outer, inner float64, n int) *path.Data {
	p := &path.Data{}
	for _, radius := range []float64{outer, inner} {
		for i := range n {
			a := 2 * math.Pi * float64(i) / float64(n)
			q := vec.Vec2{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
			if i == 0 {
				p = p.MoveTo(q)
			} else {
				p = p.LineTo(q)
			}
		}
		p = p.Close()
	}
	return p
}

// TestApproachesAgree checks that both accumulation strategies produce
// the same coverage.
func TestApproachesAgree(t *testing.T) {
	const size = 40
	clip := rect.Rect{LLx: 0, LLy: 0, URx: size, URy: size}
	p := ring(20, 20, 15.3, 7.7, 48)

	var results [2][]float32
	for i, threshold := range []int{1 << 30, 0} {
		r := NewRasteriser(clip)
		r.smallPathThreshold = threshold
		results[i] = render(r, size, size, func(emit func(int, int, []float32)) {
			r.FillEvenOdd(p, emit)
		})
	}

	for i := range results[0] {
		if d := math.Abs(float64(results[0][i] - results[1][i])); d > 1e-5 {
			t.Fatalf("pixel (%d, %d): A=%g B=%g", i%size, i/size, results[0][i], results[1][i])
		}
	}
}

func TestFillRules(t *testing.T) {
	const size = 40
	clip := rect.Rect{LLx: 0, LLy: 0, URx: size, URy: size}

	// both circles counter-clockwise
	p := ring(20, 20, 15, 8, 64)

	r := NewRasteriser(clip)
	nonZero := render(r, size, size, func(emit func(int, int, []float32)) {
		r.FillNonZero(p, emit)
	})
	evenOdd := render(r, size, size, func(emit func(int, int, []float32)) {
		r.FillEvenOdd(p, emit)
	})

	centre := 20*size + 20
	if math.Abs(float64(nonZero[centre])-1) > 1e-5 {
		t.Errorf("nonzero: centre coverage %g, want 1", nonZero[centre])
	}
	if math.Abs(float64(evenOdd[centre])) > 1e-5 {
		t.Errorf("even-odd: centre coverage %g, want 0", evenOdd[centre])
	}
	ringPixel := 20*size + 31
	if math.Abs(float64(nonZero[ringPixel])-1) > 1e-5 || math.Abs(float64(evenOdd[ringPixel])-1) > 1e-5 {
		t.Errorf("ring pixel coverage %g/%g, want 1/1", nonZero[ringPixel], evenOdd[ringPixel])
	}
}

func TestClip(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: -5, Y: -5}).
		LineTo(vec.Vec2{X: 15, Y: -5}).
		LineTo(vec.Vec2{X: 15, Y: 15}).
		LineTo(vec.Vec2{X: -5, Y: 15}).
		Close()

	r := NewRasteriser(rect.Rect{LLx: 2, LLy: 3, URx: 6, URy: 5})
	n := 0
	r.FillNonZero(p, func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			x := xMin + i
			if x < 2 || x >= 6 || y < 3 || y >= 5 {
				t.Errorf("pixel (%d, %d) outside clip", x, y)
			}
			if math.Abs(float64(c)-1) > 1e-5 {
				t.Errorf("pixel (%d, %d): coverage %g", x, y, c)
			}
			n++
		}
	})
	if n != 8 {
		t.Errorf("got %d pixels, want 8", n)
	}
}

func TestCurvesIgnored(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		CubeTo(vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 0, Y: 10}).
		Close()

	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10})
	r.FillNonZero(p, func(y, xMin int, coverage []float32) {
		for _, c := range coverage {
			if c != 0 {
				t.Fatalf("row %d: unexpected coverage %g", y, c)
			}
		}
	})
}

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

package raster_test

import (
	"fmt"
	"image"
	"image/color"
	"maps"
	"math"
	"slices"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/engrave/raster"
	"seehuhn.de/go/engrave/testcases"
)

// circleSteps is the number of polygon vertices used for circles.
const circleSteps = 64

// TestFixtures checks that every test image has the number of set pixels
// it was designed for, within the limits of the fixture bounds.
func TestFixtures(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				m := tc.Mask()
				if m.Empty() {
					t.Fatal("empty mask")
				}
				if m.Rect != image.Rect(0, 0, tc.Width, tc.Height) {
					t.Errorf("mask covers %v", m.Rect)
				}
				b := m.SetBounds()
				if b.Min.X == 0 || b.Min.Y == 0 || b.Max.X == tc.Width || b.Max.Y == tc.Height {
					t.Errorf("shapes touch the image border: %v", b)
				}
			})
		}
	}
}

// BenchmarkRasteriserO benchmarks the rasteriser drawing an "O" shape.
func BenchmarkRasteriserO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := raster.NewRasteriser(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			outerR := float64(size) * 0.45
			innerR := float64(size) * 0.30
			oPath := makeOPath(center, center, outerR, innerR)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(clip)
				r.FillEvenOdd(oPath, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing the same shape.
func BenchmarkVectorO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// makeOPath creates an "O" shape from two polygonal circles.
// The outer circle is counter-clockwise, the inner circle clockwise.
func makeOPath(cx, cy, outerR, innerR float64) *path.Data {
	p := &path.Data{}
	p = addCircleToPath(p, cx, cy, outerR, false)
	p = addCircleToPath(p, cx, cy, innerR, true)
	return p
}

func addCircleToPath(p *path.Data, cx, cy, r float64, clockwise bool) *path.Data {
	for i := range circleSteps {
		a := 2 * math.Pi * float64(i) / circleSteps
		if clockwise {
			a = -a
		}
		q := vec.Vec2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
		if i == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p.Close()
}

// addCircleToVector adds the same polygon to a vector.Rasterizer.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	for i := range circleSteps {
		a := 2 * math.Pi * float64(i) / circleSteps
		if clockwise {
			a = -a
		}
		x := cx + radius*float32(math.Cos(a))
		y := cy + radius*float32(math.Sin(a))
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}

// BenchmarkRasteriseAll measures steady-state performance by reusing a
// single Rasteriser across all test cases.
func BenchmarkRasteriseAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	r := raster.NewRasteriser(rect.Rect{})
	emit := func(y, xMin int, coverage []float32) {}

	b.ResetTimer()
	for b.Loop() {
		for _, tc := range cases {
			r.Reset(rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)})
			switch op := tc.Op.(type) {
			case testcases.Fill:
				if op.Rule == testcases.EvenOdd {
					r.FillEvenOdd(tc.Path, emit)
				} else {
					r.FillNonZero(tc.Path, emit)
				}
			case testcases.Stroke:
				r.Width = op.Width
				r.Cap = op.Cap
				r.StrokeSegments(tc.Path, emit)
			}
		}
	}
}

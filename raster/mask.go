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
	"image"
	"image/color"
	"strings"

	"seehuhn.de/go/geom/rect"
)

// Mask is a binary raster.  Pixel (x, y) of the mask is stored in
// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)], with 1 for set pixels and 0
// for clear pixels.  Rect is given in absolute image coordinates, so that
// a mask covering only part of an image keeps the image's pixel numbering.
type Mask struct {
	Rect   image.Rectangle
	Stride int
	Pix    []uint8
}

// NewMask returns an empty mask covering r.
func NewMask(r image.Rectangle) *Mask {
	r = r.Canon()
	return &Mask{
		Rect:   r,
		Stride: r.Dx(),
		Pix:    make([]uint8, r.Dx()*r.Dy()),
	}
}

// Bounds returns the rectangle covered by the mask.
func (m *Mask) Bounds() image.Rectangle {
	return m.Rect
}

// Get reports whether pixel (x, y) is set.
// Pixels outside the mask are clear.
func (m *Mask) Get(x, y int) bool {
	if !(image.Point{x, y}.In(m.Rect)) {
		return false
	}
	return m.Pix[m.offset(x, y)] != 0
}

// Set changes pixel (x, y).  Pixels outside the mask are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	var b uint8
	if v {
		b = 1
	}
	m.Pix[m.offset(x, y)] = b
}

func (m *Mask) offset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x - m.Rect.Min.X)
}

// FillRect sets or clears all pixels of r which lie inside the mask.
func (m *Mask) FillRect(r image.Rectangle, v bool) {
	r = r.Intersect(m.Rect)
	var b uint8
	if v {
		b = 1
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.Pix[m.offset(r.Min.X, y):m.offset(r.Max.X, y)]
		for i := range row {
			row[i] = b
		}
	}
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Rect)
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		copy(c.Pix[c.offset(m.Rect.Min.X, y):], m.row(y))
	}
	return c
}

func (m *Mask) row(y int) []uint8 {
	i := m.offset(m.Rect.Min.X, y)
	return m.Pix[i : i+m.Rect.Dx()]
}

// Area returns the number of set pixels.
func (m *Mask) Area() int {
	n := 0
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for _, b := range m.row(y) {
			if b != 0 {
				n++
			}
		}
	}
	return n
}

// Empty reports whether no pixel is set.
func (m *Mask) Empty() bool {
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for _, b := range m.row(y) {
			if b != 0 {
				return false
			}
		}
	}
	return true
}

// Or sets every pixel of m which is set in o.
// Only the overlap of the two rectangles is considered.
func (m *Mask) Or(o *Mask) {
	r := m.Rect.Intersect(o.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst := m.Pix[m.offset(r.Min.X, y):m.offset(r.Max.X, y)]
		src := o.Pix[o.offset(r.Min.X, y):o.offset(r.Max.X, y)]
		for i, b := range src {
			dst[i] |= b
		}
	}
}

// AndNot clears every pixel of m which is set in o.
func (m *Mask) AndNot(o *Mask) {
	r := m.Rect.Intersect(o.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst := m.Pix[m.offset(r.Min.X, y):m.offset(r.Max.X, y)]
		src := o.Pix[o.offset(r.Min.X, y):o.offset(r.Max.X, y)]
		for i, b := range src {
			dst[i] &^= b
		}
	}
}

// Equal reports whether both masks cover the same rectangle and have the
// same pixels set.
func (m *Mask) Equal(o *Mask) bool {
	if m.Rect != o.Rect {
		return false
	}
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		a, b := m.row(y), o.row(y)
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// SetBounds returns the smallest rectangle containing all set pixels.
// The result is empty if no pixel is set.
func (m *Mask) SetBounds() image.Rectangle {
	var res image.Rectangle
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for i, b := range m.row(y) {
			if b != 0 {
				x := m.Rect.Min.X + i
				res = res.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return res
}

// Clip returns the mask area as a clip rectangle for a Rasteriser.
func (m *Mask) Clip() rect.Rect {
	return rect.Rect{
		LLx: float64(m.Rect.Min.X),
		LLy: float64(m.Rect.Min.Y),
		URx: float64(m.Rect.Max.X),
		URy: float64(m.Rect.Max.Y),
	}
}

// Gray converts the mask to a greyscale image, with set pixels black on a
// white background.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(m.Rect)
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			if m.Pix[m.offset(x, y)] != 0 {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// String renders the mask as text, one line per row, '#' for set pixels.
func (m *Mask) String() string {
	var b strings.Builder
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for _, v := range m.row(y) {
			if v != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseMask builds a mask from rows of text as produced by String, with
// the top-left character at origin.  Any character other than '#' or 'X'
// is a clear pixel.
func ParseMask(origin image.Point, rows ...string) *Mask {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	m := NewMask(image.Rectangle{Min: origin, Max: origin.Add(image.Pt(width, len(rows)))})
	for j, row := range rows {
		for i := 0; i < len(row); i++ {
			if row[i] == '#' || row[i] == 'X' {
				m.Set(origin.X+i, origin.Y+j, true)
			}
		}
	}
	return m
}

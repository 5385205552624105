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
	"testing"
)

func TestMaskBounds(t *testing.T) {
	m := NewMask(image.Rect(10, 20, 15, 23))
	m.Set(10, 20, true)
	m.Set(14, 22, true)
	m.Set(15, 22, true) // outside
	m.Set(9, 20, true)  // outside

	if !m.Get(10, 20) || !m.Get(14, 22) {
		t.Error("set pixels not reported")
	}
	if m.Get(15, 22) || m.Get(9, 20) || m.Get(-1, -1) {
		t.Error("pixels outside the mask are set")
	}
	if n := m.Area(); n != 2 {
		t.Errorf("area %d, want 2", n)
	}
	if r := m.SetBounds(); r != image.Rect(10, 20, 15, 23) {
		t.Errorf("SetBounds %v", r)
	}

	m.Set(10, 20, false)
	if r := m.SetBounds(); r != image.Rect(14, 22, 15, 23) {
		t.Errorf("SetBounds %v", r)
	}
}

func TestMaskText(t *testing.T) {
	m := ParseMask(image.Pt(3, 4),
		"#..X",
		".##.",
	)
	if m.Rect != image.Rect(3, 4, 7, 6) {
		t.Fatalf("rect %v", m.Rect)
	}
	if !m.Get(3, 4) || !m.Get(6, 4) || !m.Get(4, 5) || m.Get(4, 4) {
		t.Errorf("unexpected pixels:\n%s", m)
	}
	want := "#..#\n.##.\n"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMaskSetOperations(t *testing.T) {
	a := NewMask(image.Rect(0, 0, 10, 10))
	a.FillRect(image.Rect(2, 2, 8, 8), true)

	b := NewMask(image.Rect(5, 5, 20, 20))
	b.FillRect(image.Rect(5, 5, 20, 20), true)

	u := a.Clone()
	u.Or(b)
	if n := u.Area(); n != 36+25-9 {
		t.Errorf("union area %d, want %d", n, 36+25-9)
	}
	if a.Area() != 36 {
		t.Error("Clone shares pixels with the original")
	}

	d := a.Clone()
	d.AndNot(b)
	if n := d.Area(); n != 36-9 {
		t.Errorf("difference area %d, want %d", n, 36-9)
	}
	if d.Get(6, 6) || !d.Get(4, 6) {
		t.Error("wrong pixels cleared")
	}

	if a.Equal(u) || !a.Equal(a.Clone()) {
		t.Error("Equal gives wrong result")
	}
}

func TestMaskOverlap(t *testing.T) {
	m := NewMask(image.Rect(0, 0, 10, 10))
	m.FillRect(image.Rect(0, 0, 10, 10), true)

	c := NewMask(image.Rect(8, 8, 12, 12))
	c.Or(m)
	if n := c.Area(); n != 4 {
		t.Errorf("area %d, want 4", n)
	}
	if !c.Get(9, 9) || c.Get(10, 10) {
		t.Error("Or sets pixels outside the overlap")
	}

	m.AndNot(c)
	if n := m.Area(); n != 96 || m.Get(9, 9) {
		t.Errorf("AndNot: area %d, want 96", n)
	}

	if !NewMask(image.Rect(0, 0, 3, 3)).Empty() || c.Empty() {
		t.Error("Empty gives wrong result")
	}
}

func TestMaskGray(t *testing.T) {
	m := ParseMask(image.Point{}, "#.")
	img := m.Gray()
	if img.GrayAt(0, 0).Y != 0 || img.GrayAt(1, 0).Y != 255 {
		t.Errorf("got %d %d, want 0 255", img.GrayAt(0, 0).Y, img.GrayAt(1, 0).Y)
	}
}

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

// Package bitmap reads input images and separates dark shapes from a
// light background.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/engrave/raster"
)

var (
	// ErrInputNotFound indicates that the image file does not exist.
	ErrInputNotFound = errors.New("image file not found")

	// ErrInvalidImage indicates that the file is not a supported image.
	ErrInvalidImage = errors.New("not a valid image file")
)

// Load reads an image file in any of the supported formats: PNG, JPEG,
// GIF, BMP, TIFF and WebP.
func Load(fname string) (image.Image, error) {
	fd, err := os.Open(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, fname)
	} else if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, fname, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s: image is empty", ErrInvalidImage, fname)
	}
	return img, nil
}

// Gray converts img to greyscale, composited over a white background.
// The result has its top-left pixel at (0, 0).
func Gray(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(image.Rectangle{Max: b.Size()})
	draw.Draw(g, g.Rect, image.White, image.Point{}, draw.Src)
	draw.Draw(g, g.Rect, img, b.Min, draw.Over)
	return g
}

// Otsu returns the threshold which best separates the grey levels of g
// into two classes, maximising the variance between the classes.
// Pixels above the threshold belong to the light class.
func Otsu(g *image.Gray) uint8 {
	var hist [256]int
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.Pix[g.PixOffset(b.Min.X, y):g.PixOffset(b.Max.X, y)]
		for _, v := range row {
			hist[v]++
		}
	}
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	scale := 1 / float64(total)
	mu := 0.0
	for i, n := range hist {
		mu += float64(i) * float64(n)
	}
	mu *= scale

	const eps = 1.19209290e-07 // float32 epsilon
	var q1, mu1, maxSigma float64
	var best uint8
	for i, n := range hist {
		p := float64(n) * scale
		mu1 *= q1
		q1 += p
		q2 := 1 - q1
		if min(q1, q2) < eps || max(q1, q2) > 1-eps {
			continue
		}
		mu1 = (mu1 + float64(i)*p) / q1
		mu2 := (mu - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > maxSigma {
			maxSigma = sigma
			best = uint8(i)
		}
	}
	return best
}

// Threshold returns a mask with all pixels of g set which are not lighter
// than t.
func Threshold(g *image.Gray, t uint8) *raster.Mask {
	b := g.Bounds()
	m := raster.NewMask(image.Rectangle{Max: b.Size()})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g.Pix[g.PixOffset(x, y)] <= t {
				m.Set(x-b.Min.X, y-b.Min.Y, true)
			}
		}
	}
	return m
}

// Shapes converts img to a mask of its dark regions, using Otsu's
// threshold.  It returns the mask and the threshold used.
func Shapes(img image.Image) (*raster.Mask, uint8) {
	g := Gray(img)
	t := Otsu(g)
	return Threshold(g, t), t
}

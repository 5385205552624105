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

// Package engrave converts images of dark shapes on a light background
// into G-code for a laser engraver.
//
// The image is thresholded into a binary mask and the borders of the
// shapes are traced.  In vector mode every shape is first outlined half
// a beam inside its border and then filled by concentric tracks one beam
// apart (see package peel).  In linear mode the shapes are swept row by
// row.  Holes in shapes are kept clear of the beam in both modes.
//
// Output coordinates are in millimetres with the origin at the top-left
// image pixel; the Y axis points down the image.
package engrave

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"seehuhn.de/go/engrave/bitmap"
	"seehuhn.de/go/engrave/contour"
	"seehuhn.de/go/engrave/gcode"
	"seehuhn.de/go/engrave/peel"
	"seehuhn.de/go/engrave/preview"
	"seehuhn.de/go/engrave/raster"
	"seehuhn.de/go/engrave/scale"
	"seehuhn.de/go/engrave/toolpath"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects how shapes are filled.
type Mode int

const (
	// Vector follows the shape outlines with concentric tracks.
	Vector Mode = iota

	// Linear sweeps the shapes row by row.
	Linear
)

func (m Mode) String() string {
	switch m {
	case Vector:
		return "vector"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "vector" or "linear" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "vector":
		return Vector, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

// Config holds the settings of a conversion.
type Config struct {
	// WidthMM and HeightMM give the physical size of the image.
	// They must have the same ratio as the image size in pixels.
	WidthMM, HeightMM float64

	// BeamMM is the diameter of the laser spot.
	BeamMM float64

	Mode   Mode
	Corner peel.Corner

	// Workers limits the number of shapes processed concurrently.
	// 0 means GOMAXPROCS.
	Workers int

	Templates gcode.Templates
}

// DefaultConfig returns a configuration for a 0.1mm beam in vector mode.
// The image size must be filled in by the caller.
func DefaultConfig() Config {
	return Config{
		BeamMM:    0.1,
		Mode:      Vector,
		Corner:    peel.RoundCorners,
		Templates: gcode.DefaultTemplates(),
	}
}

// Plan is the result of planning a conversion.
type Plan struct {
	Scale    scale.Context
	Mode     Mode
	Contours int // number of borders found in the image

	// Shapes holds the engraving levels of every shape (vector mode only).
	Shapes []*peel.Shape

	Segments []toolpath.Segment
}

// NewPlan computes the laser moves for the set pixels of mask.
func NewPlan(mask *raster.Mask, cfg Config) (*Plan, error) {
	sc, err := scale.New(mask.Bounds().Size(), cfg.WidthMM, cfg.HeightMM, cfg.BeamMM)
	if err != nil {
		return nil, err
	}

	tree := contour.Find(mask)
	size := mask.Bounds().Size()
	log := Logger()
	log.Info("planning",
		"width_px", size.X, "height_px", size.Y,
		"width_mm", cfg.WidthMM, "height_mm", cfg.HeightMM,
		"beam_mm", cfg.BeamMM, "beam_px", sc.BeamPx, "half_beam_px", sc.HalfBeamPx,
		"contours", len(tree), "mode", cfg.Mode)

	plan := &Plan{
		Scale:    sc,
		Mode:     cfg.Mode,
		Contours: len(tree),
	}

	switch cfg.Mode {
	case Vector:
		s := &peel.Scheduler{
			BeamPx:     sc.BeamPx,
			HalfBeamPx: sc.HalfBeamPx,
			Corner:     cfg.Corner,
			Workers:    cfg.Workers,
			Logger:     log,
		}
		plan.Shapes, err = s.PeelAll(tree)
		if err != nil {
			return nil, err
		}
		plan.Segments = toolpath.Sequencer{Scale: sc}.Sequence(plan.Shapes)

	case Linear:
		plan.Segments = toolpath.Scan(sc, Effective(tree, mask.Bounds(), sc.HalfBeamPx, cfg.Corner))

	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownMode, int(cfg.Mode))
	}

	st := toolpath.Measure(plan.Segments)
	log.Info("planned",
		"shapes", len(plan.Shapes), "segments", st.Segments, "laser_on", st.LaserOn,
		"engrave_mm", st.EngraveMM, "travel_mm", st.FastMM)
	return plan, nil
}

// Effective returns the union of the hole compensated areas of all
// top-level shapes in tree, as a mask covering r.
func Effective(tree contour.Tree, r image.Rectangle, halfBeam int, corner peel.Corner) *raster.Mask {
	o := peel.NewOffsetter(corner)
	m := raster.NewMask(r)
	for _, root := range tree.Roots() {
		m.Or(o.Compensate(tree, root, halfBeam))
	}
	return m
}

// WriteGCode writes the planned moves as a G-code program.
func (p *Plan) WriteGCode(w io.Writer, t gcode.Templates) error {
	return gcode.Write(w, t, p.Segments)
}

// WritePreview writes a PDF drawing of the planned moves.
func (p *Plan) WritePreview(fname string, cfg Config) error {
	return preview.Write(fname, preview.Options{
		WidthMM:  cfg.WidthMM,
		HeightMM: cfg.HeightMM,
		BeamMM:   cfg.BeamMM,
	}, p.Segments)
}

// Convert reads the image file fname and writes the G-code program for it
// to w.
func Convert(fname string, w io.Writer, cfg Config) (*Plan, error) {
	img, err := bitmap.Load(fname)
	if err != nil {
		return nil, err
	}
	mask, threshold := bitmap.Shapes(img)
	Logger().Debug("image loaded", "file", fname, "threshold", threshold, "pixels_set", mask.Area())

	plan, err := NewPlan(mask, cfg)
	if err != nil {
		return nil, err
	}
	if err := plan.WriteGCode(w, cfg.Templates); err != nil {
		return nil, fmt.Errorf("writing G-code: %w", err)
	}
	return plan, nil
}

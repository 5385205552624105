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

package peel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/engrave/contour"
	"seehuhn.de/go/engrave/internal/logging"
	"seehuhn.de/go/engrave/raster"
)

// Scheduler turns the top-level shapes of a contour tree into engraving
// levels.
type Scheduler struct {
	// BeamPx is the erosion distance between levels.
	BeamPx int

	// HalfBeamPx is the inset of the first level from the shape outline,
	// and the clearance kept around holes.
	HalfBeamPx int

	Corner Corner

	// Workers limits the number of shapes peeled concurrently.
	// 0 means GOMAXPROCS.
	Workers int

	// Logger receives debug output.  If nil, the shared package logger
	// is used.
	Logger *slog.Logger

	// Trace, if not nil, is called with the mask of a shape just before
	// each level is traced.  With more than one worker, Trace is called
	// concurrently for different shapes.
	Trace func(shape, level int, m *raster.Mask)
}

// Peel computes the levels of the shape whose outer border is contour
// root of t.
func (s *Scheduler) Peel(t contour.Tree, root int) (*Shape, error) {
	return s.peel(NewOffsetter(s.Corner), t, root)
}

func (s *Scheduler) peel(o *Offsetter, t contour.Tree, root int) (*Shape, error) {
	outline := t[root].Points
	shape := &Shape{Index: root, Outline: outline}

	m := o.Compensate(t, root, s.HalfBeamPx)
	o.Shrink(m, []contour.Polygon{outline}, s.HalfBeamPx)

	area := m.Area()
	for area > 0 {
		if s.Trace != nil {
			s.Trace(root, len(shape.Levels), m)
		}
		tracks := contour.Find(m).Polygons()
		if len(tracks) == 0 {
			break
		}
		shape.Levels = append(shape.Levels, Level{Tracks: tracks})

		o.Shrink(m, tracks, s.BeamPx)
		next := m.Area()
		if next >= area {
			return nil, fmt.Errorf("shape %d, level %d: %w", root, len(shape.Levels), ErrStalled)
		}
		area = next
	}
	return shape, nil
}

// PeelAll peels every top-level shape of t.  The result is in discovery
// order and omits shapes which vanished; these are narrower than the
// beam allows to engrave.  After the first error, no further shapes are
// started.
func (s *Scheduler) PeelAll(t contour.Tree) ([]*Shape, error) {
	log := logging.Or(s.Logger)
	roots := t.Roots()

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	offsetters := sync.Pool{
		New: func() any { return NewOffsetter(s.Corner) },
	}

	shapes := make([]*Shape, len(roots))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i, root := range roots {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			o := offsetters.Get().(*Offsetter)
			defer offsetters.Put(o)

			shape, err := s.peel(o, t, root)
			shapes[i] = shape
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]*Shape, 0, len(roots))
	for i, shape := range shapes {
		if shape.Empty() {
			log.Debug("shape vanished", "contour", roots[i], "bounds", t[roots[i]].Points.Bounds())
			continue
		}
		log.Debug("shape peeled", "contour", roots[i], "levels", len(shape.Levels), "tracks", shape.NumTracks())
		res = append(res, shape)
	}
	return res, nil
}

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

// Package gcode writes laser moves as G-code.
package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/engrave/toolpath"
)

// ErrNegativeCoordinate is returned for moves to negative positions.
// The machine origin is the top-left image pixel, so no valid move can
// go there.
var ErrNegativeCoordinate = errors.New("negative coordinate")

// DefaultHeader switches a Marlin fan output to on/off mode for driving the
// laser and sets up absolute millimetre positioning.
const DefaultHeader = `M107 ; disable FAN
M106 L1 S0 ; switch FAN from PWM to On/Off mode (require Marlin code change)
M107       ; disable Laser
G90        ; use absolute positioning
G21        ; use mm
G92 X0     ; set current X position as 0
G92 Y0     ; set current Y position as 0
`

// DefaultFooter switches the laser off, returns home and stops.
const DefaultFooter = `M107 ; disable laser
M106 L0 S0 ; switch FAN from On/Off to PWM mode (require Marlin code change)
M107       ; disable FAN
G0 X0 Y0   ; go to initial home X and Y
M84        ; disable steppers
M0         ; unconditional stop of printer
`

// Templates holds the machine specific parts of the output.
type Templates struct {
	Header string
	Footer string

	LaserOn  string
	LaserOff string
	Dwell    string // written after a laser switch if the move asks for it

	Move     string // command for straight moves
	FastFeed float64
	SlowFeed float64
}

// DefaultTemplates returns templates for a Marlin machine with the laser
// connected to the fan output.
func DefaultTemplates() Templates {
	return Templates{
		Header:   DefaultHeader,
		Footer:   DefaultFooter,
		LaserOn:  "M106 S1",
		LaserOff: "M107",
		Dwell:    "G4 P50",
		Move:     "G1",
		FastFeed: 1500,
		SlowFeed: 900,
	}
}

// LoadHeader replaces the header by the contents of a file.
func (t *Templates) LoadHeader(fname string) error {
	s, err := readTemplate(fname)
	if err != nil {
		return err
	}
	t.Header = s
	return nil
}

// LoadFooter replaces the footer by the contents of a file.
func (t *Templates) LoadFooter(fname string) error {
	s, err := readTemplate(fname)
	if err != nil {
		return err
	}
	t.Footer = s
	return nil
}

func readTemplate(fname string) (string, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return string(data), nil
}

// Emitter writes G-code to an underlying writer.
//
// After the first write error all further calls do nothing and return
// the same error.
type Emitter struct {
	w   *bufio.Writer
	t   Templates
	err error
}

// NewEmitter returns an Emitter writing to w.
func NewEmitter(w io.Writer, t Templates) *Emitter {
	return &Emitter{w: bufio.NewWriter(w), t: t}
}

// Header writes the header block.
func (e *Emitter) Header() error {
	e.block(e.t.Header)
	return e.err
}

// Footer writes the footer block and flushes the output.
func (e *Emitter) Footer() error {
	e.block(e.t.Footer)
	return e.Flush()
}

// Flush writes buffered data to the underlying writer.
func (e *Emitter) Flush() error {
	if e.err == nil {
		e.err = e.w.Flush()
	}
	return e.err
}

// Segment writes one move, followed by the laser switch and dwell if
// requested.
func (e *Emitter) Segment(s toolpath.Segment) error {
	if e.err != nil {
		return e.err
	}
	if s.To.X < 0 || s.To.Y < 0 {
		e.err = fmt.Errorf("move to (%g, %g): %w", s.To.X, s.To.Y, ErrNegativeCoordinate)
		return e.err
	}

	feed := e.t.SlowFeed
	if s.Feed == toolpath.Fast {
		feed = e.t.FastFeed
	}
	e.line(fmt.Sprintf("%s X%.2f Y%.2f F%s", e.t.Move, s.To.X, s.To.Y, formatFloat(feed)))

	switch s.Laser {
	case toolpath.On:
		e.line(e.t.LaserOn)
	case toolpath.Off:
		e.line(e.t.LaserOff)
	}
	if s.Dwell && e.t.Dwell != "" {
		e.line(e.t.Dwell)
	}
	return e.err
}

// Write writes a complete program: header, all segments and footer.
func Write(w io.Writer, t Templates, segs []toolpath.Segment) error {
	e := NewEmitter(w, t)
	if err := e.Header(); err != nil {
		return err
	}
	for _, s := range segs {
		if err := e.Segment(s); err != nil {
			return err
		}
	}
	return e.Footer()
}

func (e *Emitter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s + "\n")
}

// block writes a multi-line template, making sure it ends in a newline.
func (e *Emitter) block(s string) {
	if e.err != nil || s == "" {
		return
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, e.err = e.w.WriteString(s)
}

// formatFloat writes f with as few digits as needed.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

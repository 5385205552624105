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

// Package cli implements the img2gcode command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"seehuhn.de/go/engrave"
	"seehuhn.de/go/engrave/peel"
	"seehuhn.de/go/engrave/scale"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	hintColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

type options struct {
	image      string
	widthMM    float64
	heightMM   float64
	output     string
	laserMM    float64
	mode       string
	corners    string
	workers    int
	preview    string
	headerFile string
	footerFile string
	dwell      string
	fastFeed   float64
	slowFeed   float64
	verbose    bool
}

// NewRootCmd returns the img2gcode command.
func NewRootCmd() *cobra.Command {
	def := engrave.DefaultConfig()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "img2gcode",
		Short: "Convert an image to G-code for laser engraving",
		Long: `img2gcode converts an image of dark shapes on a light background into
G-code for a laser engraver.

In vector mode, every shape is outlined half a beam inside its border and
filled with concentric tracks.  In linear mode, shapes are swept row by row.
The physical image size must have the same aspect ratio as the image.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.image, "image", "", "input image file")
	f.Float64Var(&opts.widthMM, "width-mm", 0, "image width in mm")
	f.Float64Var(&opts.heightMM, "height-mm", 0, "image height in mm")
	f.StringVar(&opts.output, "gcode", "", `output G-code file, "-" for stdout`)
	f.Float64Var(&opts.laserMM, "laser-mm", def.BeamMM, "laser dot size in mm")
	f.StringVar(&opts.mode, "mode", def.Mode.String(), "fill mode: vector or linear")
	f.StringVar(&opts.corners, "corners", def.Corner.String(), "offset corner shape: round or square")
	f.IntVar(&opts.workers, "workers", 0, "shapes processed in parallel (0: one per CPU)")
	f.StringVar(&opts.preview, "preview", "", "also write a PDF preview of the moves")
	f.StringVar(&opts.headerFile, "header-file", "", "read the G-code header from a file")
	f.StringVar(&opts.footerFile, "footer-file", "", "read the G-code footer from a file")
	f.StringVar(&opts.dwell, "dwell", def.Templates.Dwell, "command issued after switching the laser off in linear mode")
	f.Float64Var(&opts.fastFeed, "fast-feed", def.Templates.FastFeed, "feed rate for travel moves")
	f.Float64Var(&opts.slowFeed, "slow-feed", def.Templates.SlowFeed, "feed rate for engraving moves")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")

	for _, name := range []string{"image", "width-mm", "height-mm", "gcode"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (o *options) config() (engrave.Config, error) {
	cfg := engrave.DefaultConfig()
	cfg.WidthMM = o.widthMM
	cfg.HeightMM = o.heightMM
	cfg.BeamMM = o.laserMM
	cfg.Workers = o.workers

	mode, err := engrave.ParseMode(o.mode)
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode

	switch strings.ToLower(o.corners) {
	case "round":
		cfg.Corner = peel.RoundCorners
	case "square":
		cfg.Corner = peel.SquareCorners
	default:
		return cfg, fmt.Errorf("unknown corner shape %q", o.corners)
	}

	t := &cfg.Templates
	t.Dwell = o.dwell
	t.FastFeed = o.fastFeed
	t.SlowFeed = o.slowFeed
	if o.headerFile != "" {
		if err := t.LoadHeader(o.headerFile); err != nil {
			return cfg, err
		}
	}
	if o.footerFile != "" {
		if err := t.LoadFooter(o.footerFile); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func run(cmd *cobra.Command, o *options) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	engrave.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	defer engrave.SetLogger(nil)

	cfg, err := o.config()
	if err != nil {
		return err
	}

	var plan *engrave.Plan
	if o.output == "-" {
		plan, err = engrave.Convert(o.image, cmd.OutOrStdout(), cfg)
	} else {
		plan, err = convertFile(o.image, o.output, cfg)
	}
	if err != nil {
		return err
	}

	if o.preview != "" {
		if err := plan.WritePreview(o.preview, cfg); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
	}

	if o.output != "-" {
		okColor.Fprintf(cmd.ErrOrStderr(), "G-code file generated: %s\n", o.output)
	}
	return nil
}

// createOutput opens the G-code output file.
var createOutput = func(fname string) (io.WriteCloser, error) {
	return os.Create(fname)
}

// convertFile writes the G-code for img to fname.  If anything fails,
// including closing the file, the partial program is removed.
func convertFile(img, fname string, cfg engrave.Config) (*engrave.Plan, error) {
	fd, err := createOutput(fname)
	if err != nil {
		return nil, err
	}
	plan, err := engrave.Convert(img, fd, cfg)
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(fname)
		return nil, err
	}
	return plan, nil
}

// Execute runs the command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// PrintError writes a diagnostic for err to w.
func PrintError(w io.Writer, err error) {
	errColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err)

	var aspect *scale.AspectMismatchError
	if errors.As(err, &aspect) {
		hintColor.Fprintf(w, "image is %d x %d px; use --width-mm %f or --height-mm %f\n",
			aspect.WidthPx, aspect.HeightPx, aspect.EstWidthMM, aspect.EstHeightMM)
	}
}

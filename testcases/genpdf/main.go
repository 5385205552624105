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

// Command genpdf plans toolpaths for all test cases and draws them as PDF
// files, one per test case and fill mode.  Run from the module root
// directory.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/engrave"
	"seehuhn.de/go/engrave/testcases"
)

const (
	previewDir = "testdata/preview"

	mmPerPixel = 0.125 // exact in binary, so both axes agree
	beamMM     = 0.375
)

func main() {
	if err := os.MkdirAll(previewDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			for _, mode := range []engrave.Mode{engrave.Vector, engrave.Linear} {
				name := category + "_" + tc.Name + "_" + mode.String()
				pdfPath := filepath.Join(previewDir, name+".pdf")
				if err := generatePDF(tc, mode, pdfPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, mode engrave.Mode, pdfPath string) error {
	cfg := engrave.DefaultConfig()
	cfg.WidthMM = float64(tc.Width) * mmPerPixel
	cfg.HeightMM = float64(tc.Height) * mmPerPixel
	cfg.BeamMM = beamMM
	cfg.Mode = mode

	plan, err := engrave.NewPlan(tc.Mask(), cfg)
	if err != nil {
		return err
	}
	return plan.WritePreview(pdfPath, cfg)
}

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

package cli

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/engrave/gcode"
	"seehuhn.de/go/engrave/scale"
	"seehuhn.de/go/engrave/testcases"
)

// writeImage stores the basic/square test case (40×40 px) as a PNG file.
func writeImage(t *testing.T, dir string) string {
	t.Helper()
	tc := testcases.All["basic"][0]
	fname := filepath.Join(dir, "square.png")
	fd, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	if err := png.Encode(fd, tc.Image()); err != nil {
		t.Fatal(err)
	}
	return fname
}

func execute(args ...string) (stdout, stderr string, err error) {
	cmd := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestHelp(t *testing.T) {
	out, _, err := execute("--help")
	if err != nil {
		t.Fatal(err)
	}
	for _, flag := range []string{"--image", "--width-mm", "--height-mm", "--gcode", "--laser-mm", "--mode"} {
		if !strings.Contains(out, flag) {
			t.Errorf("help does not mention %s", flag)
		}
	}
}

func TestRequiredFlags(t *testing.T) {
	_, _, err := execute("--image", "x.png")
	if err == nil || !strings.Contains(err.Error(), "required flag") {
		t.Errorf("got %v, want a required flag error", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir)
	out := filepath.Join(dir, "square.gcode")
	pdfName := filepath.Join(dir, "square.pdf")

	_, stderr, err := execute(
		"--image", img,
		"--width-mm", "10", "--height-mm", "10",
		"--laser-mm", "0.5",
		"--gcode", out,
		"--preview", pdfName,
	)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), gcode.DefaultHeader) || !strings.Contains(string(data), "M106 S1\n") {
		t.Errorf("unexpected output:\n%s", data)
	}
	if _, err := os.Stat(pdfName); err != nil {
		t.Error(err)
	}
	if !strings.Contains(stderr, "G-code file generated") {
		t.Errorf("no success message in %q", stderr)
	}
}

func TestRunStdout(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir)
	header := filepath.Join(dir, "header.gcode")
	if err := os.WriteFile(header, []byte("; custom header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(
		"--image", img,
		"--width-mm", "10", "--height-mm", "10",
		"--laser-mm", "0.5",
		"--mode", "linear",
		"--header-file", header,
		"--dwell", "",
		"--gcode", "-",
		"-v",
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "; custom header\nG1 X") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if strings.Contains(stdout, "G4 P50") {
		t.Error("dwell written although disabled")
	}
	if !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("no debug output in %q", stderr)
	}
}

func TestAspectMismatch(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir)
	out := filepath.Join(dir, "square.gcode")

	_, _, err := execute(
		"--image", img,
		"--width-mm", "10", "--height-mm", "11",
		"--gcode", out,
	)
	var aspect *scale.AspectMismatchError
	if !errors.As(err, &aspect) {
		t.Fatalf("got %v, want AspectMismatchError", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("partial output file was not removed")
	}

	buf := &bytes.Buffer{}
	PrintError(buf, err)
	msg := buf.String()
	if !strings.Contains(msg, "error: ") || !strings.Contains(msg, "--width-mm 11.000000") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestBadOptions(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir)
	base := []string{"--image", img, "--width-mm", "10", "--height-mm", "10", "--gcode", "-"}

	for _, extra := range [][]string{
		{"--mode", "spiral"},
		{"--corners", "bevel"},
		{"--footer-file", filepath.Join(dir, "missing")},
	} {
		if _, _, err := execute(append(base, extra...)...); err == nil {
			t.Errorf("%v: no error", extra)
		}
	}
}

// failingClose is an output file whose final write to disk fails.
type failingClose struct {
	*os.File
}

func (f failingClose) Close() error {
	f.File.Close()
	return errDiskFull
}

var errDiskFull = errors.New("disk full")

func TestCloseError(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir)
	out := filepath.Join(dir, "square.gcode")

	defer func(orig func(string) (io.WriteCloser, error)) { createOutput = orig }(createOutput)
	createOutput = func(fname string) (io.WriteCloser, error) {
		fd, err := os.Create(fname)
		if err != nil {
			return nil, err
		}
		return failingClose{fd}, nil
	}

	_, stderr, err := execute(
		"--image", img,
		"--width-mm", "10", "--height-mm", "10",
		"--laser-mm", "0.5",
		"--gcode", out,
	)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("got %v, want %v", err, errDiskFull)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file was not removed")
	}
	if strings.Contains(stderr, "G-code file generated") {
		t.Error("success reported after a failed close")
	}
}

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

package engrave

import (
	"log/slog"

	"seehuhn.de/go/engrave/internal/logging"
)

// SetLogger configures the logger for engrave and all its sub-packages.
// By default no log output is produced.  Pass nil to restore the silent
// default.  SetLogger is safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: per shape results, vanished shapes
//   - [slog.LevelInfo]: the run report (image size, scale, beam, mode)
//
// Example:
//
//	engrave.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.Logger()
}
